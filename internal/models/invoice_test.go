package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-12-31", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)},
		{" 2026-12-31 ", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2026-12-31T10:00:00Z", time.Date(2026, 12, 31, 10, 0, 0, 0, time.UTC)},
		{"2026-12-31T10:00:00+02:00", time.Date(2026, 12, 31, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	for _, bad := range []string{"", "31/12/2026", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestInvoiceForm_Apply(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := Invoice{ID: "id-1", Number: "INV-00001", CreatedAt: created, Name: "Old", Amount: 1, Status: StatusPending}

	due := time.Date(2026, 12, 31, 0, 0, 0, 0, time.FixedZone("CET", 3600))
	InvoiceForm{Name: "Acme Corp", DueDate: &due, Amount: 99.5, Status: StatusPaid}.Apply(&inv)

	assert.Equal(t, "id-1", inv.ID)
	assert.Equal(t, "INV-00001", inv.Number)
	assert.Equal(t, created, inv.CreatedAt)
	assert.Equal(t, "Acme Corp", inv.Name)
	assert.Equal(t, 99.5, inv.Amount)
	assert.Equal(t, StatusPaid, inv.Status)
	assert.Equal(t, time.UTC, inv.DueDate.Location())
}

func TestInvoiceStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, InvoiceStatus("overdue").Valid())
	assert.False(t, InvoiceStatus("").Valid())
}
