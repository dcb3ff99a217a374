package search

import (
	"fmt"
	"strings"

	"invoice-bookkeeping-backend/internal/models"

	"golang.org/x/text/unicode/norm"
)

// StatusAll selects invoices of every status.
const StatusAll = "all"

type Criteria struct {
	Query  string
	Status string
}

// ParseStatus normalises a status selector. Empty means all.
func ParseStatus(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == StatusAll {
		return StatusAll, nil
	}
	if !models.InvoiceStatus(s).Valid() {
		return "", fmt.Errorf("unknown status filter %q", s)
	}
	return s, nil
}

// Filter returns the invoices whose name or number contains the query
// (case-insensitive, NFC normalized) and whose status matches the selector.
// Source order is kept and the input is not modified.
func Filter(invoices []models.Invoice, c Criteria) []models.Invoice {
	query := fold(c.Query)
	status := c.Status
	if status == "" {
		status = StatusAll
	}

	result := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if query != "" &&
			!strings.Contains(fold(inv.Name), query) &&
			!strings.Contains(fold(inv.Number), query) {
			continue
		}
		if status != StatusAll && string(inv.Status) != status {
			continue
		}
		result = append(result, inv)
	}
	return result
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
