package models

import "github.com/shopspring/decimal"

// Participant is a member of a group, identified by a unique non-empty name.
type Participant string

// String returns the participant name.
func (p Participant) String() string {
	return string(p)
}

// Expense represents one shared purchase.
// The payer paid the full Amount; each sharer owes Amount / len(Sharers).
type Expense struct {
	// Description is a human-readable label (e.g., "Dinner", "Taxi").
	Description string

	// Amount is the total paid. Must be positive.
	Amount decimal.Decimal

	// Payer is the participant who paid. The payer does not have to be
	// one of the sharers.
	Payer Participant

	// Sharers is the non-empty list of participants splitting the amount
	// equally. Order is preserved for determinism.
	Sharers []Participant
}

// Share returns the equal share of the expense owed by each sharer.
// Callers must ensure Sharers is non-empty.
func (e Expense) Share() decimal.Decimal {
	return e.Amount.Div(decimal.NewFromInt(int64(len(e.Sharers))))
}
