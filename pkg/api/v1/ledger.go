// Package v1 defines the request and response messages of the billsplitter
// LedgerService. Messages travel as JSON; amounts are decimal strings so no
// precision is lost on the wire.
package v1

import "github.com/shopspring/decimal"

// Expense is one shared purchase.
type Expense struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Payer       string          `json:"payer"`
	Sharers     []string        `json:"sharers"`
}

// Payment is a transfer from Debtor to Creditor.
type Payment struct {
	Debtor   string          `json:"debtor"`
	Creditor string          `json:"creditor"`
	Amount   decimal.Decimal `json:"amount"`
}

// Balance is one participant's net position.
// TotalPaid and TotalOwed are only populated by balance computations.
type Balance struct {
	Participant string           `json:"participant"`
	Amount      decimal.Decimal  `json:"amount"`
	TotalPaid   *decimal.Decimal `json:"total_paid,omitempty"`
	TotalOwed   *decimal.Decimal `json:"total_owed,omitempty"`
}

type ComputeBalancesRequest struct {
	Participants []string  `json:"participants"`
	Expenses     []Expense `json:"expenses"`
	// Payments already made, applied after the expenses.
	Payments []Payment `json:"payments,omitempty"`
}

type ComputeBalancesResponse struct {
	Balances []Balance `json:"balances"`
}

type ComputeSettlementRequest struct {
	// Balances in the order that drives settlement.
	Balances []Balance `json:"balances"`
}

type ComputeSettlementResponse struct {
	Payments []Payment `json:"payments"`
}

type SettleGroupRequest struct {
	Participants []string  `json:"participants"`
	Expenses     []Expense `json:"expenses"`
	Payments     []Payment `json:"payments,omitempty"`
}

type SettleGroupResponse struct {
	Balances []Balance `json:"balances"`
	Payments []Payment `json:"payments"`
}
