// Package apiconnect wires the billsplitter.v1 LedgerService to Connect.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	v1 "github.com/mmynk/billsplitter/pkg/api/v1"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "billsplitter.v1.LedgerService"

// Procedure names, usable as the path of an HTTP request to the service.
const (
	LedgerServiceComputeBalancesProcedure   = "/billsplitter.v1.LedgerService/ComputeBalances"
	LedgerServiceComputeSettlementProcedure = "/billsplitter.v1.LedgerService/ComputeSettlement"
	LedgerServiceSettleGroupProcedure       = "/billsplitter.v1.LedgerService/SettleGroup"
)

// LedgerServiceHandler is implemented by the server side of the service.
type LedgerServiceHandler interface {
	ComputeBalances(context.Context, *connect.Request[v1.ComputeBalancesRequest]) (*connect.Response[v1.ComputeBalancesResponse], error)
	ComputeSettlement(context.Context, *connect.Request[v1.ComputeSettlementRequest]) (*connect.Response[v1.ComputeSettlementResponse], error)
	SettleGroup(context.Context, *connect.Request[v1.SettleGroupRequest]) (*connect.Response[v1.SettleGroupResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		WithJSONCodec(),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	}, opts...)

	computeBalances := connect.NewUnaryHandler(LedgerServiceComputeBalancesProcedure, svc.ComputeBalances, opts...)
	computeSettlement := connect.NewUnaryHandler(LedgerServiceComputeSettlementProcedure, svc.ComputeSettlement, opts...)
	settleGroup := connect.NewUnaryHandler(LedgerServiceSettleGroupProcedure, svc.SettleGroup, opts...)

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceComputeBalancesProcedure:
			computeBalances.ServeHTTP(w, r)
		case LedgerServiceComputeSettlementProcedure:
			computeSettlement.ServeHTTP(w, r)
		case LedgerServiceSettleGroupProcedure:
			settleGroup.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// LedgerServiceClient is a client for the billsplitter.v1.LedgerService service.
type LedgerServiceClient interface {
	ComputeBalances(context.Context, *connect.Request[v1.ComputeBalancesRequest]) (*connect.Response[v1.ComputeBalancesResponse], error)
	ComputeSettlement(context.Context, *connect.Request[v1.ComputeSettlementRequest]) (*connect.Response[v1.ComputeSettlementResponse], error)
	SettleGroup(context.Context, *connect.Request[v1.SettleGroupRequest]) (*connect.Response[v1.SettleGroupResponse], error)
}

// NewLedgerServiceClient constructs a client for the service. baseURL is the
// server root, e.g. http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{
		WithJSONCodec(),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	}, opts...)

	return &ledgerServiceClient{
		computeBalances: connect.NewClient[v1.ComputeBalancesRequest, v1.ComputeBalancesResponse](
			httpClient, baseURL+LedgerServiceComputeBalancesProcedure, opts...,
		),
		computeSettlement: connect.NewClient[v1.ComputeSettlementRequest, v1.ComputeSettlementResponse](
			httpClient, baseURL+LedgerServiceComputeSettlementProcedure, opts...,
		),
		settleGroup: connect.NewClient[v1.SettleGroupRequest, v1.SettleGroupResponse](
			httpClient, baseURL+LedgerServiceSettleGroupProcedure, opts...,
		),
	}
}

type ledgerServiceClient struct {
	computeBalances   *connect.Client[v1.ComputeBalancesRequest, v1.ComputeBalancesResponse]
	computeSettlement *connect.Client[v1.ComputeSettlementRequest, v1.ComputeSettlementResponse]
	settleGroup       *connect.Client[v1.SettleGroupRequest, v1.SettleGroupResponse]
}

func (c *ledgerServiceClient) ComputeBalances(ctx context.Context, req *connect.Request[v1.ComputeBalancesRequest]) (*connect.Response[v1.ComputeBalancesResponse], error) {
	return c.computeBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ComputeSettlement(ctx context.Context, req *connect.Request[v1.ComputeSettlementRequest]) (*connect.Response[v1.ComputeSettlementResponse], error) {
	return c.computeSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SettleGroup(ctx context.Context, req *connect.Request[v1.SettleGroupRequest]) (*connect.Response[v1.SettleGroupResponse], error) {
	return c.settleGroup.CallUnary(ctx, req)
}
