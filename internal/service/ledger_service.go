package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/middleware"
	"github.com/mmynk/billsplitter/internal/models"
	v1 "github.com/mmynk/billsplitter/pkg/api/v1"
	"github.com/mmynk/billsplitter/pkg/api/v1/apiconnect"
)

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// Recorder receives counts of processed expenses and emitted payments.
type Recorder interface {
	RecordExpenses(n int)
	RecordPayments(n int)
}

type noopRecorder struct{}

func (noopRecorder) RecordExpenses(int) {}
func (noopRecorder) RecordPayments(int) {}

// LedgerService implements the Connect LedgerService.
// It is stateless: every request carries its own participants and expenses.
type LedgerService struct {
	tolerance decimal.Decimal
	recorder  Recorder
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithTolerance sets the amount below which balances count as settled.
func WithTolerance(tol decimal.Decimal) Option {
	return func(s *LedgerService) {
		s.tolerance = tol
	}
}

// WithRecorder reports expense and payment counts to r.
func WithRecorder(r Recorder) Option {
	return func(s *LedgerService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(opts ...Option) *LedgerService {
	s := &LedgerService{
		tolerance: calculator.DefaultTolerance,
		recorder:  noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// toConnectError maps calculator errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, calculator.ErrInvalidExpense),
		errors.Is(err, calculator.ErrInvalidParticipant),
		errors.Is(err, calculator.ErrInvalidPayment):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, calculator.ErrDegenerateBalances):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func logFailure(ctx context.Context, msg string, err error) {
	attrs := []any{"error", err, "request_id", middleware.GetRequestID(ctx)}
	if connect.CodeOf(err) == connect.CodeInternal {
		slog.Error(msg, attrs...)
		return
	}
	slog.Warn(msg, attrs...)
}

func (s *LedgerService) groupBalances(participants []string, expenses []v1.Expense, payments []v1.Payment) ([]calculator.MemberBalance, error) {
	members, err := calculator.ComputeGroupBalances(models.Group{
		Participants: toParticipants(participants),
		Expenses:     toExpenses(expenses),
		Payments:     toPayments(payments),
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	s.recorder.RecordExpenses(len(expenses))
	return members, nil
}

func (s *LedgerService) settle(balances models.Balances) ([]models.Payment, error) {
	payments, err := calculator.ComputeSettlementWithTolerance(balances, s.tolerance)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.recorder.RecordPayments(len(payments))
	return payments, nil
}

// ComputeBalances aggregates expenses (and payments already made) into net balances.
func (s *LedgerService) ComputeBalances(ctx context.Context, req *connect.Request[v1.ComputeBalancesRequest]) (*connect.Response[v1.ComputeBalancesResponse], error) {
	slog.Debug("ComputeBalances request received",
		"participants", len(req.Msg.Participants),
		"expenses", len(req.Msg.Expenses),
		"payments", len(req.Msg.Payments),
	)

	members, err := s.groupBalances(req.Msg.Participants, req.Msg.Expenses, req.Msg.Payments)
	if err != nil {
		logFailure(ctx, "ComputeBalances failed", err)
		return nil, err
	}

	return connect.NewResponse(&v1.ComputeBalancesResponse{
		Balances: fromMembers(members),
	}), nil
}

// ComputeSettlement turns balances into an ordered list of payments.
func (s *LedgerService) ComputeSettlement(ctx context.Context, req *connect.Request[v1.ComputeSettlementRequest]) (*connect.Response[v1.ComputeSettlementResponse], error) {
	slog.Debug("ComputeSettlement request received", "balances", len(req.Msg.Balances))

	balances, err := toBalances(req.Msg.Balances)
	if err != nil {
		cerr := toConnectError(err)
		logFailure(ctx, "ComputeSettlement failed", cerr)
		return nil, cerr
	}

	payments, err := s.settle(balances)
	if err != nil {
		logFailure(ctx, "ComputeSettlement failed", err)
		return nil, err
	}

	return connect.NewResponse(&v1.ComputeSettlementResponse{
		Payments: fromPayments(payments),
	}), nil
}

// SettleGroup computes balances and the settlement plan in one call.
func (s *LedgerService) SettleGroup(ctx context.Context, req *connect.Request[v1.SettleGroupRequest]) (*connect.Response[v1.SettleGroupResponse], error) {
	slog.Debug("SettleGroup request received",
		"participants", len(req.Msg.Participants),
		"expenses", len(req.Msg.Expenses),
		"payments", len(req.Msg.Payments),
	)

	members, err := s.groupBalances(req.Msg.Participants, req.Msg.Expenses, req.Msg.Payments)
	if err != nil {
		logFailure(ctx, "SettleGroup failed", err)
		return nil, err
	}

	payments, err := s.settle(calculator.BalancesOf(members))
	if err != nil {
		logFailure(ctx, "SettleGroup failed", err)
		return nil, err
	}

	slog.Debug("Group settled",
		"request_id", middleware.GetRequestID(ctx),
		"payments", len(payments),
	)

	return connect.NewResponse(&v1.SettleGroupResponse{
		Balances: fromMembers(members),
		Payments: fromPayments(payments),
	}), nil
}
