package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/billsplitter/internal/models"
)

var (
	// ErrInvalidExpense is returned when an expense has a non-positive amount,
	// no sharers, or references someone outside the participant list.
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrInvalidParticipant is returned for empty or duplicate participant names.
	ErrInvalidParticipant = errors.New("invalid participant")

	// ErrInvalidPayment is returned when a recorded payment is non-positive,
	// pays oneself, or references an unknown participant.
	ErrInvalidPayment = errors.New("invalid payment")

	// ErrDegenerateBalances is returned when balances do not sum to zero
	// within tolerance, so no settlement plan can clear them.
	ErrDegenerateBalances = errors.New("degenerate balances")
)

// ExpenseError describes why an expense was rejected.
type ExpenseError struct {
	Index       int // position in the input, -1 when added incrementally
	Description string
	Reason      string
}

func (e *ExpenseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid expense #%d (%q): %s", e.Index, e.Description, e.Reason)
	}
	return fmt.Sprintf("invalid expense %q: %s", e.Description, e.Reason)
}

func (e *ExpenseError) Unwrap() error {
	return ErrInvalidExpense
}

// PaymentError describes why a recorded payment was rejected.
type PaymentError struct {
	Payment models.Payment
	Reason  string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("invalid payment %s: %s", e.Payment, e.Reason)
}

func (e *PaymentError) Unwrap() error {
	return ErrInvalidPayment
}
