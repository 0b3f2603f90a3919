package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
)

const tripFile = `
name = "Hanoi trip"
participants = ["An", "Binh", "Chi"]

[[expenses]]
description = "Dinner"
amount = "30.00"
payer = "An"
sharers = ["An", "Binh", "Chi"]

[[expenses]]
description = "Taxi"
amount = 12
payer = "Binh"

[[expenses]]
description = "Coffee"
amount = 4.5
payer = "Chi"
sharers = ["An"]

[[payments]]
from = "Binh"
to = "An"
amount = "5"
`

func writeGroupFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "group.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReader_ReadGroup(t *testing.T) {
	path := writeGroupFile(t, tripFile)

	group, err := NewReader().ReadGroup(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Hanoi trip", group.Name)
	assert.Equal(t, []models.Participant{"An", "Binh", "Chi"}, group.Participants)
	require.Len(t, group.Expenses, 3)

	assert.Equal(t, "Dinner", group.Expenses[0].Description)
	assert.Equal(t, "30", group.Expenses[0].Amount.String())
	assert.Equal(t, models.Participant("An"), group.Expenses[0].Payer)

	// Missing sharers means everyone.
	assert.Equal(t, group.Participants, group.Expenses[1].Sharers)
	assert.Equal(t, "12", group.Expenses[1].Amount.String())

	assert.Equal(t, "4.5", group.Expenses[2].Amount.String())
	assert.Equal(t, []models.Participant{"An"}, group.Expenses[2].Sharers)

	require.Len(t, group.Payments, 1)
	assert.Equal(t, models.Participant("Binh"), group.Payments[0].Debtor)
	assert.Equal(t, models.Participant("An"), group.Payments[0].Creditor)
	assert.Equal(t, "5", group.Payments[0].Amount.String())
}

func TestReader_ReadGroupMissingFile(t *testing.T) {
	_, err := NewReader().ReadGroup(context.Background(), filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader_ReadGroupCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader().ReadGroup(ctx, writeGroupFile(t, tripFile))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no participants",
			content: `name = "Empty"`,
		},
		{
			name:    "duplicate participant",
			content: `participants = ["An", "An"]`,
		},
		{
			name:    "blank participant",
			content: `participants = ["An", "  "]`,
		},
		{
			name: "zero amount",
			content: `participants = ["An", "Binh"]
[[expenses]]
description = "Free"
amount = 0
payer = "An"`,
		},
		{
			name: "unparsable amount",
			content: `participants = ["An", "Binh"]
[[expenses]]
description = "Dinner"
amount = "thirty"
payer = "An"`,
		},
		{
			name: "missing amount",
			content: `participants = ["An", "Binh"]
[[expenses]]
description = "Dinner"
payer = "An"`,
		},
		{
			name: "unknown payer",
			content: `participants = ["An", "Binh"]
[[expenses]]
description = "Dinner"
amount = 10
payer = "Zed"`,
		},
		{
			name: "unknown sharer",
			content: `participants = ["An", "Binh"]
[[expenses]]
description = "Dinner"
amount = 10
payer = "An"
sharers = ["Zed"]`,
		},
		{
			name: "empty description",
			content: `participants = ["An", "Binh"]
[[expenses]]
description = ""
amount = 10
payer = "An"`,
		},
		{
			name: "negative payment",
			content: `participants = ["An", "Binh"]
[[payments]]
from = "An"
to = "Binh"
amount = -3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.content))
			assert.ErrorIs(t, err, storage.ErrInvalidGroup)
		})
	}
}

func TestDecode_RejectsUnknownFieldsAndNewerVersions(t *testing.T) {
	_, err := Decode([]byte(`participants = ["An"]
currency = "VND"`))
	assert.Error(t, err)

	_, err = Decode([]byte(`version = 2
participants = ["An"]`))
	assert.ErrorContains(t, err, "unsupported group schema version")
}
