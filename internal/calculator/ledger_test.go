package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func people(names ...string) []models.Participant {
	out := make([]models.Participant, len(names))
	for i, n := range names {
		out[i] = models.Participant(n)
	}
	return out
}

func amountOf(t *testing.T, balances models.Balances, p models.Participant) decimal.Decimal {
	t.Helper()
	for _, b := range balances {
		if b.Participant == p {
			return b.Amount
		}
	}
	t.Fatalf("no balance for %s", p)
	return decimal.Zero
}

func approx(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(DefaultTolerance)
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		expenses     []models.Expense
		wantErr      error
		want         map[models.Participant]string
	}{
		{
			name:         "equal split among three",
			participants: people("A", "B", "C"),
			expenses: []models.Expense{
				{Description: "Dinner", Amount: d("30"), Payer: "A", Sharers: people("A", "B", "C")},
			},
			// A: +30 - 10 = 20, B: -10, C: -10
			want: map[models.Participant]string{"A": "20", "B": "-10", "C": "-10"},
		},
		{
			name:         "two expenses net out",
			participants: people("A", "B"),
			expenses: []models.Expense{
				{Description: "Hotel", Amount: d("50"), Payer: "A", Sharers: people("A", "B")},
				{Description: "Taxi", Amount: d("20"), Payer: "B", Sharers: people("A", "B")},
			},
			// A: +50 - 25 - 10 = 15, B: +20 - 25 - 10 = -15
			want: map[models.Participant]string{"A": "15", "B": "-15"},
		},
		{
			name:         "payer excluded from sharers",
			participants: people("A", "B"),
			expenses: []models.Expense{
				{Description: "Gift", Amount: d("10"), Payer: "A", Sharers: people("B")},
			},
			want: map[models.Participant]string{"A": "10", "B": "-10"},
		},
		{
			name:         "participant without expenses stays at zero",
			participants: people("A", "B", "Idle"),
			expenses: []models.Expense{
				{Description: "Coffee", Amount: d("8"), Payer: "B", Sharers: people("A", "B")},
			},
			want: map[models.Participant]string{"A": "-4", "B": "4", "Idle": "0"},
		},
		{
			name:         "no expenses",
			participants: people("A", "B"),
			want:         map[models.Participant]string{"A": "0", "B": "0"},
		},
		{
			name:         "zero amount rejected",
			participants: people("A", "B"),
			expenses: []models.Expense{
				{Description: "Nothing", Amount: d("0"), Payer: "A", Sharers: people("A", "B")},
			},
			wantErr: ErrInvalidExpense,
		},
		{
			name:         "negative amount rejected",
			participants: people("A", "B"),
			expenses: []models.Expense{
				{Description: "Refund", Amount: d("-5"), Payer: "A", Sharers: people("B")},
			},
			wantErr: ErrInvalidExpense,
		},
		{
			name:         "empty sharers rejected",
			participants: people("A", "B"),
			expenses: []models.Expense{
				{Description: "Lonely", Amount: d("10"), Payer: "A", Sharers: nil},
			},
			wantErr: ErrInvalidExpense,
		},
		{
			name:         "unknown payer rejected",
			participants: people("A", "B"),
			expenses: []models.Expense{
				{Description: "Stranger", Amount: d("10"), Payer: "Z", Sharers: people("A")},
			},
			wantErr: ErrInvalidExpense,
		},
		{
			name:         "unknown sharer rejected",
			participants: people("A", "B"),
			expenses: []models.Expense{
				{Description: "Plus one", Amount: d("10"), Payer: "A", Sharers: people("A", "Z")},
			},
			wantErr: ErrInvalidExpense,
		},
		{
			name:         "duplicate participant rejected",
			participants: people("A", "A"),
			wantErr:      ErrInvalidParticipant,
		},
		{
			name:         "empty participant name rejected",
			participants: people("A", ""),
			wantErr:      ErrInvalidParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := ComputeBalances(tt.participants, tt.expenses)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeBalances() error = %v, want %v", err, tt.wantErr)
				}
				if balances != nil {
					t.Errorf("ComputeBalances() returned balances %v alongside error", balances)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeBalances() unexpected error: %v", err)
			}

			if len(balances) != len(tt.participants) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.participants))
			}
			for i, bal := range balances {
				if bal.Participant != tt.participants[i] {
					t.Errorf("balance %d is for %s, want %s", i, bal.Participant, tt.participants[i])
				}
				if want := d(tt.want[bal.Participant]); !bal.Amount.Equal(want) {
					t.Errorf("%s balance = %s, want %s", bal.Participant, bal.Amount, want)
				}
			}
		})
	}
}

func TestComputeBalances_ThreeWaySplitConserves(t *testing.T) {
	balances, err := ComputeBalances(people("A", "B", "C"), []models.Expense{
		{Description: "Pizza", Amount: d("10"), Payer: "A", Sharers: people("A", "B", "C")},
		{Description: "Beer", Amount: d("7"), Payer: "B", Sharers: people("A", "B", "C")},
	})
	if err != nil {
		t.Fatalf("ComputeBalances() unexpected error: %v", err)
	}

	// A: 10 - 10/3 - 7/3 = 13/3, B: 7 - 17/3 = 4/3, C: -17/3
	third := d("1").Div(d("3"))
	want := map[models.Participant]decimal.Decimal{
		"A": third.Mul(d("13")),
		"B": third.Mul(d("4")),
		"C": third.Mul(d("-17")),
	}
	for _, bal := range balances {
		if !approx(bal.Amount, want[bal.Participant]) {
			t.Errorf("%s balance = %s, want ~%s", bal.Participant, bal.Amount, want[bal.Participant])
		}
	}
	if sum := balances.Sum(); !approx(sum, decimal.Zero) {
		t.Errorf("balances sum to %s, want ~0", sum)
	}
}

func TestComputeBalances_RejectsWholeBatch(t *testing.T) {
	_, err := ComputeBalances(people("A", "B"), []models.Expense{
		{Description: "Fine", Amount: d("10"), Payer: "A", Sharers: people("A", "B")},
		{Description: "Broken", Amount: d("0"), Payer: "B", Sharers: people("A", "B")},
	})

	var expErr *ExpenseError
	if !errors.As(err, &expErr) {
		t.Fatalf("expected *ExpenseError, got %v", err)
	}
	if expErr.Index != 1 {
		t.Errorf("ExpenseError.Index = %d, want 1", expErr.Index)
	}
	if expErr.Description != "Broken" {
		t.Errorf("ExpenseError.Description = %q, want %q", expErr.Description, "Broken")
	}
}

func TestLedger_AddExpenseIsAtomic(t *testing.T) {
	l, err := NewLedger(people("A", "B"))
	if err != nil {
		t.Fatalf("NewLedger() unexpected error: %v", err)
	}

	if err := l.AddExpense(models.Expense{Description: "Lunch", Amount: d("12"), Payer: "A", Sharers: people("A", "B")}); err != nil {
		t.Fatalf("AddExpense() unexpected error: %v", err)
	}
	before := l.Balances()

	// Valid sharer first, unknown sharer second: nothing may be applied.
	err = l.AddExpense(models.Expense{Description: "Bad", Amount: d("9"), Payer: "B", Sharers: people("A", "Z")})
	if !errors.Is(err, ErrInvalidExpense) {
		t.Fatalf("AddExpense() error = %v, want ErrInvalidExpense", err)
	}
	err = l.AddExpense(models.Expense{Description: "Empty", Amount: d("9"), Payer: "B"})
	if !errors.Is(err, ErrInvalidExpense) {
		t.Fatalf("AddExpense() error = %v, want ErrInvalidExpense", err)
	}

	after := l.Balances()
	for i := range before {
		if !before[i].Amount.Equal(after[i].Amount) {
			t.Errorf("%s balance changed from %s to %s after rejected expense",
				before[i].Participant, before[i].Amount, after[i].Amount)
		}
	}

	// The caller may skip the rejected expense and keep going.
	if err := l.AddExpense(models.Expense{Description: "Snacks", Amount: d("4"), Payer: "B", Sharers: people("A", "B")}); err != nil {
		t.Fatalf("AddExpense() unexpected error: %v", err)
	}
	if got := amountOf(t, l.Balances(), "A"); !got.Equal(d("4")) {
		t.Errorf("A balance = %s, want 4", got)
	}
}

func TestLedger_RecordPayment(t *testing.T) {
	l, err := NewLedger(people("A", "B"))
	if err != nil {
		t.Fatalf("NewLedger() unexpected error: %v", err)
	}
	if err := l.AddExpense(models.Expense{Description: "Rent", Amount: d("100"), Payer: "A", Sharers: people("A", "B")}); err != nil {
		t.Fatalf("AddExpense() unexpected error: %v", err)
	}
	if err := l.RecordPayment(models.Payment{Debtor: "B", Creditor: "A", Amount: d("30")}); err != nil {
		t.Fatalf("RecordPayment() unexpected error: %v", err)
	}

	members := l.Members()
	// A paid 100, owes 50 share + received 30 => net 20
	if !members[0].NetBalance.Equal(d("20")) {
		t.Errorf("A net = %s, want 20", members[0].NetBalance)
	}
	if !members[0].TotalPaid.Equal(d("100")) || !members[0].TotalOwed.Equal(d("80")) {
		t.Errorf("A totals = paid %s owed %s, want paid 100 owed 80", members[0].TotalPaid, members[0].TotalOwed)
	}
	// B owes 50 share, paid 30 => net -20
	if !members[1].NetBalance.Equal(d("-20")) {
		t.Errorf("B net = %s, want -20", members[1].NetBalance)
	}

	invalid := []models.Payment{
		{Debtor: "B", Creditor: "A", Amount: d("0")},
		{Debtor: "A", Creditor: "A", Amount: d("5")},
		{Debtor: "Z", Creditor: "A", Amount: d("5")},
		{Debtor: "B", Creditor: "Z", Amount: d("5")},
	}
	for _, p := range invalid {
		if err := l.RecordPayment(p); !errors.Is(err, ErrInvalidPayment) {
			t.Errorf("RecordPayment(%s) error = %v, want ErrInvalidPayment", p, err)
		}
	}
	if got := amountOf(t, l.Balances(), "A"); !got.Equal(d("20")) {
		t.Errorf("A balance changed by rejected payments: %s", got)
	}
}

func TestComputeGroupBalances(t *testing.T) {
	members, err := ComputeGroupBalances(models.Group{
		Name:         "Trip",
		Participants: people("A", "B", "C"),
		Expenses: []models.Expense{
			{Description: "Dinner", Amount: d("30"), Payer: "A", Sharers: people("A", "B", "C")},
		},
		Payments: []models.Payment{
			{Debtor: "B", Creditor: "A", Amount: d("10")},
		},
	})
	if err != nil {
		t.Fatalf("ComputeGroupBalances() unexpected error: %v", err)
	}

	balances := BalancesOf(members)
	want := map[models.Participant]string{"A": "10", "B": "0", "C": "-10"}
	for _, bal := range balances {
		if !bal.Amount.Equal(d(want[bal.Participant])) {
			t.Errorf("%s balance = %s, want %s", bal.Participant, bal.Amount, want[bal.Participant])
		}
	}

	_, err = ComputeGroupBalances(models.Group{
		Participants: people("A", "B"),
		Payments:     []models.Payment{{Debtor: "A", Creditor: "B", Amount: d("-1")}},
	})
	if !errors.Is(err, ErrInvalidPayment) {
		t.Errorf("ComputeGroupBalances() error = %v, want ErrInvalidPayment", err)
	}
}
