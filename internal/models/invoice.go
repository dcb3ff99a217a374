package models

import (
	"fmt"
	"strings"
	"time"
)

type InvoiceStatus string

const (
	StatusPaid    InvoiceStatus = "paid"
	StatusUnpaid  InvoiceStatus = "unpaid"
	StatusPending InvoiceStatus = "pending"
)

// Statuses lists every valid status in display order.
var Statuses = []InvoiceStatus{StatusPaid, StatusUnpaid, StatusPending}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusUnpaid, StatusPending:
		return true
	}
	return false
}

// Invoice is the persisted record. The JSON shape is the storage format, so
// field names must not change.
type Invoice struct {
	ID        string        `json:"id" validate:"required,uuid"`
	Number    string        `json:"number" validate:"required"`
	Name      string        `json:"name"`
	DueDate   time.Time     `json:"dueDate"`
	Amount    float64       `json:"amount" validate:"gt=0"`
	Status    InvoiceStatus `json:"status" validate:"oneof=paid unpaid pending"`
	CreatedAt time.Time     `json:"createdAt"`
}

// InvoiceForm carries the user-editable fields for create and update.
type InvoiceForm struct {
	Name    string        `json:"name" validate:"min=3"`
	DueDate *time.Time    `json:"dueDate" validate:"required"`
	Amount  float64       `json:"amount" validate:"gt=0"`
	Status  InvoiceStatus `json:"status" validate:"oneof=paid unpaid pending"`
}

// Apply copies the editable fields onto inv. id, number and createdAt are
// left untouched.
func (f InvoiceForm) Apply(inv *Invoice) {
	inv.Name = f.Name
	if f.DueDate != nil {
		inv.DueDate = f.DueDate.UTC()
	}
	inv.Amount = f.Amount
	inv.Status = f.Status
}

// ParseDate reads a due date given either as an RFC 3339 timestamp or as a
// plain calendar date (2006-01-02). The result is in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
