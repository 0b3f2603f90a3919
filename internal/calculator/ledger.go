package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Participant models.Participant
	NetBalance  decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid   decimal.Decimal // Expenses paid plus recorded payments sent
	TotalOwed   decimal.Decimal // Expense shares plus recorded payments received
}

// Ledger accumulates expenses into per-participant balances.
// A Ledger is owned by a single caller; it is not safe for concurrent use.
type Ledger struct {
	members []MemberBalance
	index   map[models.Participant]int
}

// NewLedger creates a ledger with every participant at zero, in the given order.
func NewLedger(participants []models.Participant) (*Ledger, error) {
	l := &Ledger{
		members: make([]MemberBalance, 0, len(participants)),
		index:   make(map[models.Participant]int, len(participants)),
	}
	for _, p := range participants {
		if p == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidParticipant)
		}
		if _, exists := l.index[p]; exists {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidParticipant, p)
		}
		l.index[p] = len(l.members)
		l.members = append(l.members, MemberBalance{
			Participant: p,
			NetBalance:  decimal.Zero,
			TotalPaid:   decimal.Zero,
			TotalOwed:   decimal.Zero,
		})
	}
	return l, nil
}

// AddExpense applies one expense: the payer is credited the full amount and
// each sharer is debited an equal share. A rejected expense leaves the ledger
// untouched, so callers may skip it and continue.
func (l *Ledger) AddExpense(e models.Expense) error {
	if err := l.validateExpense(e, -1); err != nil {
		return err
	}
	l.apply(e)
	return nil
}

// RecordPayment applies a payment that was already made: the debtor's balance
// improves and the creditor's decreases by the amount.
func (l *Ledger) RecordPayment(p models.Payment) error {
	if !p.Amount.IsPositive() {
		return &PaymentError{Payment: p, Reason: "amount must be greater than zero"}
	}
	if p.Debtor == p.Creditor {
		return &PaymentError{Payment: p, Reason: "debtor and creditor must differ"}
	}
	from, ok := l.index[p.Debtor]
	if !ok {
		return &PaymentError{Payment: p, Reason: fmt.Sprintf("unknown participant %q", p.Debtor)}
	}
	to, ok := l.index[p.Creditor]
	if !ok {
		return &PaymentError{Payment: p, Reason: fmt.Sprintf("unknown participant %q", p.Creditor)}
	}

	l.members[from].TotalPaid = l.members[from].TotalPaid.Add(p.Amount)
	l.members[from].NetBalance = l.members[from].NetBalance.Add(p.Amount)
	l.members[to].TotalOwed = l.members[to].TotalOwed.Add(p.Amount)
	l.members[to].NetBalance = l.members[to].NetBalance.Sub(p.Amount)
	return nil
}

// Balances returns a snapshot of the net balances in participant order.
func (l *Ledger) Balances() models.Balances {
	return BalancesOf(l.members)
}

// Members returns a snapshot of the per-member totals in participant order.
func (l *Ledger) Members() []MemberBalance {
	out := make([]MemberBalance, len(l.members))
	copy(out, l.members)
	return out
}

func (l *Ledger) validateExpense(e models.Expense, index int) error {
	reject := func(reason string) error {
		return &ExpenseError{Index: index, Description: e.Description, Reason: reason}
	}
	if !e.Amount.IsPositive() {
		return reject("amount must be greater than zero")
	}
	if len(e.Sharers) == 0 {
		return reject("must have at least one sharer")
	}
	if _, ok := l.index[e.Payer]; !ok {
		return reject(fmt.Sprintf("payer %q is not a participant", e.Payer))
	}
	for _, s := range e.Sharers {
		if _, ok := l.index[s]; !ok {
			return reject(fmt.Sprintf("sharer %q is not a participant", s))
		}
	}
	return nil
}

// apply assumes e has been validated.
func (l *Ledger) apply(e models.Expense) {
	share := e.Share()
	for _, s := range e.Sharers {
		m := &l.members[l.index[s]]
		m.TotalOwed = m.TotalOwed.Add(share)
		m.NetBalance = m.NetBalance.Sub(share)
	}
	payer := &l.members[l.index[e.Payer]]
	payer.TotalPaid = payer.TotalPaid.Add(e.Amount)
	payer.NetBalance = payer.NetBalance.Add(e.Amount)
}

// ComputeBalances computes each participant's net balance from a list of expenses.
//
// Algorithm:
//   - Every participant starts at zero, including those with no expenses
//   - For each expense: share = amount / len(sharers); each sharer is debited
//     the share and the payer is credited the full amount
//   - A payer who is also a sharer nets to amount * (1 - 1/len(sharers))
//
// All expenses are validated before any balance is touched; the first invalid
// expense aborts the computation with an error wrapping ErrInvalidExpense.
func ComputeBalances(participants []models.Participant, expenses []models.Expense) (models.Balances, error) {
	l, err := NewLedger(participants)
	if err != nil {
		return nil, err
	}
	for i, e := range expenses {
		if err := l.validateExpense(e, i); err != nil {
			return nil, err
		}
	}
	for _, e := range expenses {
		l.apply(e)
	}
	return l.Balances(), nil
}

// ComputeGroupBalances computes per-member totals for a group: expenses
// first, then payments already made.
func ComputeGroupBalances(group models.Group) ([]MemberBalance, error) {
	l, err := NewLedger(group.Participants)
	if err != nil {
		return nil, err
	}
	for i, e := range group.Expenses {
		if err := l.validateExpense(e, i); err != nil {
			return nil, err
		}
	}
	for _, e := range group.Expenses {
		l.apply(e)
	}
	for _, p := range group.Payments {
		if err := l.RecordPayment(p); err != nil {
			return nil, err
		}
	}
	return l.Members(), nil
}

// BalancesOf converts member totals into net balances, keeping order.
func BalancesOf(members []MemberBalance) models.Balances {
	out := make(models.Balances, len(members))
	for i, m := range members {
		out[i] = models.Balance{Participant: m.Participant, Amount: m.NetBalance}
	}
	return out
}
