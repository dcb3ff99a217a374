package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"invoice-bookkeeping-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// DecodeError reports why a stored collection could not be trusted. Index is
// the offending record, or -1 when the payload as a whole is unreadable.
type DecodeError struct {
	Index  int
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return "decoding invoices: " + e.Reason
	}
	return fmt.Sprintf("decoding invoice %d: %s", e.Index, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses a stored collection strictly: the payload must be a JSON
// array of invoice objects with no unknown fields, and every record must
// satisfy the model invariants. A literal null is an empty collection.
func Decode(data []byte, validate *validator.Validate) ([]models.Invoice, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var invoices []models.Invoice
	if err := dec.Decode(&invoices); err != nil {
		return nil, &DecodeError{Index: -1, Reason: err.Error(), Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Index: -1, Reason: "unexpected data after array"}
	}

	if err := checkRecords(invoices, validate); err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, nil
}

func checkRecords(invoices []models.Invoice, validate *validator.Validate) error {
	seen := make(map[string]struct{}, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if err := validate.Struct(inv); err != nil {
			return &DecodeError{Index: i, Reason: err.Error(), Err: err}
		}
		if inv.DueDate.IsZero() {
			return &DecodeError{Index: i, Reason: "dueDate is missing"}
		}
		if inv.CreatedAt.IsZero() {
			return &DecodeError{Index: i, Reason: "createdAt is missing"}
		}
		if _, dup := seen[inv.ID]; dup {
			return &DecodeError{Index: i, Reason: fmt.Sprintf("duplicate id %s", inv.ID)}
		}
		seen[inv.ID] = struct{}{}
	}
	return nil
}
