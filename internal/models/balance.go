package models

import "github.com/shopspring/decimal"

// Balance is one participant's net position.
// Positive = is owed money, negative = owes money, zero = settled up.
type Balance struct {
	Participant Participant
	Amount      decimal.Decimal
}

// Balances maps participants to their net position, keeping the order in
// which participants were given. The order drives settlement, so it must be
// stable across calls.
type Balances []Balance

// Sum returns the sum of all balances. For balances produced from expenses it
// is zero up to division rounding.
func (b Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, bal := range b {
		sum = sum.Add(bal.Amount)
	}
	return sum
}

// Clone returns an independent copy.
func (b Balances) Clone() Balances {
	if b == nil {
		return nil
	}
	out := make(Balances, len(b))
	copy(out, b)
	return out
}
