package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
)

// DefaultTolerance is the magnitude below which an amount counts as zero.
// Decimal division rounds at 16 places, so residuals from splitting stay
// many orders of magnitude below it.
var DefaultTolerance = decimal.New(1, -9)

// outstanding is a creditor's remaining credit or a debtor's remaining debt.
type outstanding struct {
	participant models.Participant
	remaining   decimal.Decimal
}

// ComputeSettlement returns the payments that bring every balance to zero,
// using DefaultTolerance.
func ComputeSettlement(balances models.Balances) ([]models.Payment, error) {
	return ComputeSettlementWithTolerance(balances, DefaultTolerance)
}

// ComputeSettlementWithTolerance returns an ordered list of debtor -> creditor
// payments that brings every balance to zero within tol.
//
// Algorithm (greedy matching):
//   - Split participants into creditors (balance > tol) and debtors
//     (balance < -tol), both in input order
//   - Walk both lists with one cursor each; pay min(credit, debt) from the
//     current debtor to the current creditor
//   - Advance every cursor whose remaining amount is within tol of zero,
//     carrying that remainder into the next entry on the same side
//   - Stop as soon as either list is exhausted
//
// The result is small but not guaranteed minimal. Balances that do not sum to
// zero within tol fail with ErrDegenerateBalances.
func ComputeSettlementWithTolerance(balances models.Balances, tol decimal.Decimal) ([]models.Payment, error) {
	if tol.IsNegative() {
		return nil, fmt.Errorf("tolerance cannot be negative: %s", tol)
	}
	if sum := balances.Sum(); sum.Abs().GreaterThan(tol) {
		return nil, fmt.Errorf("%w: balances sum to %s", ErrDegenerateBalances, sum)
	}

	// dust is the magnitude left out of matching: balances within tol and
	// remainders with no later entry to carry into.
	dust := decimal.Zero
	var creditors, debtors []outstanding
	for _, bal := range balances {
		switch {
		case bal.Amount.GreaterThan(tol):
			creditors = append(creditors, outstanding{participant: bal.Participant, remaining: bal.Amount})
		case bal.Amount.LessThan(tol.Neg()):
			debtors = append(debtors, outstanding{participant: bal.Participant, remaining: bal.Amount.Neg()})
		default:
			dust = dust.Add(bal.Amount.Abs())
		}
	}

	advance := func(side []outstanding, k int) int {
		rest := side[k].remaining
		side[k].remaining = decimal.Zero
		if k+1 < len(side) {
			side[k+1].remaining = side[k+1].remaining.Add(rest)
		} else {
			dust = dust.Add(rest)
		}
		return k + 1
	}

	payments := make([]models.Payment, 0, len(creditors)+len(debtors))
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := decimal.Min(creditor.remaining, debtor.remaining)
		payments = append(payments, models.Payment{
			Debtor:   debtor.participant,
			Creditor: creditor.participant,
			Amount:   amount,
		})

		creditor.remaining = creditor.remaining.Sub(amount)
		debtor.remaining = debtor.remaining.Sub(amount)

		if creditor.remaining.LessThanOrEqual(tol) {
			i = advance(creditors, i)
		}
		if debtor.remaining.LessThanOrEqual(tol) {
			j = advance(debtors, j)
		}
	}

	// Whatever is left on the unexhausted side is bounded by the sum and
	// the dust; anything beyond that means the matching went wrong.
	limit := tol.Add(dust)
	if residual := residualOf(creditors[i:], limit); residual != nil {
		return nil, fmt.Errorf("%w: creditor %s left with %s", ErrDegenerateBalances, residual.participant, residual.remaining)
	}
	if residual := residualOf(debtors[j:], limit); residual != nil {
		return nil, fmt.Errorf("%w: debtor %s left with %s", ErrDegenerateBalances, residual.participant, residual.remaining)
	}

	return payments, nil
}

func residualOf(rest []outstanding, tol decimal.Decimal) *outstanding {
	for k := range rest {
		if rest[k].remaining.GreaterThan(tol) {
			return &rest[k]
		}
	}
	return nil
}

// ApplyPayments returns a copy of balances with every payment applied: the
// debtor's balance rises and the creditor's falls by the amount. Applying a
// complete settlement plan leaves every balance within tolerance of zero.
// Participants missing from balances are appended in first-seen order.
func ApplyPayments(balances models.Balances, payments []models.Payment) models.Balances {
	out := balances.Clone()
	if out == nil {
		out = models.Balances{}
	}
	index := make(map[models.Participant]int, len(out))
	for i, bal := range out {
		index[bal.Participant] = i
	}
	adjust := func(p models.Participant, delta decimal.Decimal) {
		i, ok := index[p]
		if !ok {
			index[p] = len(out)
			out = append(out, models.Balance{Participant: p, Amount: delta})
			return
		}
		out[i].Amount = out[i].Amount.Add(delta)
	}
	for _, p := range payments {
		adjust(p.Debtor, p.Amount)
		adjust(p.Creditor, p.Amount.Neg())
	}
	return out
}

// IsSettled reports whether every balance is within tol of zero.
func IsSettled(balances models.Balances, tol decimal.Decimal) bool {
	for _, bal := range balances {
		if bal.Amount.Abs().GreaterThan(tol) {
			return false
		}
	}
	return true
}
