package search

import (
	"testing"

	"invoice-bookkeeping-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() []models.Invoice {
	return []models.Invoice{
		{ID: "1", Number: "INV-10001", Name: "Acme Corp", Status: models.StatusPaid, Amount: 10},
		{ID: "2", Number: "INV-20002", Name: "Bolt Co", Status: models.StatusUnpaid, Amount: 20},
		{ID: "3", Number: "INV-30003", Name: "Acme Subsidiary", Status: models.StatusPending, Amount: 30},
	}
}

func ids(invoices []models.Invoice) []string {
	out := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, inv.ID)
	}
	return out
}

func TestFilter_AcmeBolt(t *testing.T) {
	invoices := []models.Invoice{
		{ID: "acme", Number: "INV-11111", Name: "Acme Corp", Status: models.StatusPaid},
		{ID: "bolt", Number: "INV-22222", Name: "Bolt Co", Status: models.StatusUnpaid},
	}

	assert.Equal(t, []string{"acme"}, ids(Filter(invoices, Criteria{Query: "acme"})))
	assert.Equal(t, []string{"bolt"}, ids(Filter(invoices, Criteria{Status: "unpaid"})))
	assert.Empty(t, Filter(invoices, Criteria{Query: "zzz"}))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"empty criteria keeps all", Criteria{}, []string{"1", "2", "3"}},
		{"all status keeps all", Criteria{Status: StatusAll}, []string{"1", "2", "3"}},
		{"query is case-insensitive", Criteria{Query: "ACME"}, []string{"1", "3"}},
		{"query matches number", Criteria{Query: "inv-2"}, []string{"2"}},
		{"query and status combine", Criteria{Query: "acme", Status: "pending"}, []string{"3"}},
		{"status only", Criteria{Status: "paid"}, []string{"1"}},
		{"no match", Criteria{Query: "acme", Status: "unpaid"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(fixtures(), tt.criteria)))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	c := Criteria{Query: "acme", Status: "all"}
	once := Filter(fixtures(), c)
	twice := Filter(once, c)
	assert.Equal(t, once, twice)
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := fixtures()
	_ = Filter(in, Criteria{Status: "paid"})
	assert.Equal(t, fixtures(), in)
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]string{
		"":        StatusAll,
		"all":     StatusAll,
		" Paid ":  "paid",
		"unpaid":  "unpaid",
		"PENDING": "pending",
	} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("overdue")
	assert.Error(t, err)
}

func TestFilter_NormalizesUnicode(t *testing.T) {
	invoices := []models.Invoice{{ID: "1", Name: "Caf\u00e9 Noir", Number: "INV-00001", Status: models.StatusPaid}}

	got := Filter(invoices, Criteria{Query: "CAFE\u0301"})
	assert.Len(t, got, 1)
}
