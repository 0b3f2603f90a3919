package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Payment represents a transfer between group members that clears debt.
// A settlement plan is an ordered list of payments; a recorded payment is one
// that has already been made.
type Payment struct {
	// Debtor is the participant who pays (owes money).
	Debtor Participant

	// Creditor is the participant who receives payment (is owed money).
	Creditor Participant

	// Amount is the payment amount. Always positive.
	Amount decimal.Decimal
}

func (p Payment) String() string {
	return fmt.Sprintf("%s -> %s: %s", p.Debtor, p.Creditor, p.Amount.String())
}
