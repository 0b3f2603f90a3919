package service

import (
	"fmt"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/models"
	v1 "github.com/mmynk/billsplitter/pkg/api/v1"
)

func toParticipants(names []string) []models.Participant {
	out := make([]models.Participant, len(names))
	for i, n := range names {
		out[i] = models.Participant(n)
	}
	return out
}

func toExpenses(in []v1.Expense) []models.Expense {
	out := make([]models.Expense, len(in))
	for i, e := range in {
		out[i] = models.Expense{
			Description: e.Description,
			Amount:      e.Amount,
			Payer:       models.Participant(e.Payer),
			Sharers:     toParticipants(e.Sharers),
		}
	}
	return out
}

func toPayments(in []v1.Payment) []models.Payment {
	out := make([]models.Payment, len(in))
	for i, p := range in {
		out[i] = models.Payment{
			Debtor:   models.Participant(p.Debtor),
			Creditor: models.Participant(p.Creditor),
			Amount:   p.Amount,
		}
	}
	return out
}

// toBalances rejects empty and repeated participants; settlement needs each
// participant exactly once.
func toBalances(in []v1.Balance) (models.Balances, error) {
	out := make(models.Balances, len(in))
	seen := make(map[string]bool, len(in))
	for i, b := range in {
		if b.Participant == "" {
			return nil, fmt.Errorf("%w: balance #%d has no participant", calculator.ErrInvalidParticipant, i)
		}
		if seen[b.Participant] {
			return nil, fmt.Errorf("%w: duplicate balance for %q", calculator.ErrInvalidParticipant, b.Participant)
		}
		seen[b.Participant] = true
		out[i] = models.Balance{Participant: models.Participant(b.Participant), Amount: b.Amount}
	}
	return out, nil
}

func fromMembers(members []calculator.MemberBalance) []v1.Balance {
	out := make([]v1.Balance, len(members))
	for i, m := range members {
		paid, owed := m.TotalPaid, m.TotalOwed
		out[i] = v1.Balance{
			Participant: m.Participant.String(),
			Amount:      m.NetBalance,
			TotalPaid:   &paid,
			TotalOwed:   &owed,
		}
	}
	return out
}

func fromPayments(payments []models.Payment) []v1.Payment {
	out := make([]v1.Payment, len(payments))
	for i, p := range payments {
		out[i] = v1.Payment{
			Debtor:   p.Debtor.String(),
			Creditor: p.Creditor.String(),
			Amount:   p.Amount,
		}
	}
	return out
}
