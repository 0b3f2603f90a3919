package toml

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version      int             `toml:"version"`
	Name         string          `toml:"name"`
	Participants []string        `toml:"participants"`
	Expenses     []expenseSchema `toml:"expenses"`
	Payments     []paymentSchema `toml:"payments"`
}

// Amounts may be written as strings ("12.50") or plain TOML numbers.
type expenseSchema struct {
	Description string   `toml:"description"`
	Amount      any      `toml:"amount"`
	Payer       string   `toml:"payer"`
	Sharers     []string `toml:"sharers"`
}

type paymentSchema struct {
	From   string `toml:"from"`
	To     string `toml:"to"`
	Amount any    `toml:"amount"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported group schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", storage.ErrInvalidGroup, fmt.Sprintf(format, args...))
}

func parseAmount(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("amount is missing")
	case string:
		amount, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("amount %q is not a number", v)
		}
		return amount, nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Zero, fmt.Errorf("amount has unsupported type %T", raw)
	}
}

// toGroup converts the decoded file into a validated models.Group.
// An expense without sharers is split among all participants.
func (s fileSchema) toGroup() (*models.Group, error) {
	group := &models.Group{Name: strings.TrimSpace(s.Name)}

	seen := make(map[models.Participant]bool, len(s.Participants))
	for _, raw := range s.Participants {
		name := models.Participant(strings.TrimSpace(raw))
		if name == "" {
			return nil, invalid("participant name cannot be empty")
		}
		if seen[name] {
			return nil, invalid("participant %q already added", name)
		}
		seen[name] = true
		group.Participants = append(group.Participants, name)
	}
	if len(group.Participants) == 0 {
		return nil, invalid("must have at least one participant")
	}

	known := func(raw string, role string, where string) (models.Participant, error) {
		name := models.Participant(strings.TrimSpace(raw))
		if !seen[name] {
			return "", invalid("%s: %s %q must be one of the participants", where, role, raw)
		}
		return name, nil
	}

	for i, e := range s.Expenses {
		where := fmt.Sprintf("expense #%d", i+1)
		description := strings.TrimSpace(e.Description)
		if description == "" {
			return nil, invalid("%s: description cannot be empty", where)
		}
		amount, err := parseAmount(e.Amount)
		if err != nil {
			return nil, invalid("%s: %v", where, err)
		}
		if !amount.IsPositive() {
			return nil, invalid("%s: amount must be greater than zero", where)
		}
		payer, err := known(e.Payer, "payer", where)
		if err != nil {
			return nil, err
		}

		sharers := make([]models.Participant, 0, len(e.Sharers))
		for _, raw := range e.Sharers {
			sharer, err := known(raw, "sharer", where)
			if err != nil {
				return nil, err
			}
			sharers = append(sharers, sharer)
		}
		if len(sharers) == 0 {
			sharers = append(sharers, group.Participants...)
		}

		group.Expenses = append(group.Expenses, models.Expense{
			Description: description,
			Amount:      amount,
			Payer:       payer,
			Sharers:     sharers,
		})
	}

	for i, p := range s.Payments {
		where := fmt.Sprintf("payment #%d", i+1)
		amount, err := parseAmount(p.Amount)
		if err != nil {
			return nil, invalid("%s: %v", where, err)
		}
		if !amount.IsPositive() {
			return nil, invalid("%s: amount must be greater than zero", where)
		}
		from, err := known(p.From, "from", where)
		if err != nil {
			return nil, err
		}
		to, err := known(p.To, "to", where)
		if err != nil {
			return nil, err
		}
		group.Payments = append(group.Payments, models.Payment{Debtor: from, Creditor: to, Amount: amount})
	}

	return group, nil
}
