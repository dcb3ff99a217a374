package invoicing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"invoice-bookkeeping-backend/internal/models"
	"invoice-bookkeeping-backend/internal/services/validation"
)

var ErrBadCSV = errors.New("invalid invoice CSV")

// dueDateLayouts are tried in order when reading the due_date column.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02", "02-01-2006"}

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Added   []models.Invoice `json:"added"`
	Skipped []SkippedRow     `json:"skipped"`
}

// ImportCSV reads invoices from a CSV file with a header row naming the
// columns name, due_date, amount and status (status defaults to pending).
// Each row is validated like the add form; bad rows are skipped and
// reported. Accepted rows are appended with a single write.
func (s *InvoiceService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	br := bufio.NewReader(r)
	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	sample, _ := br.Peek(1024)
	if !bytes.Contains(sample, []byte(",")) && bytes.Contains(sample, []byte("\t")) {
		reader.Comma = '\t'
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header: %v", ErrBadCSV, err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading invoices: %w", err)
	}
	used := usedNumbers(existing)

	res := &ImportResult{Added: []models.Invoice{}, Skipped: []SkippedRow{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			row := 0
			if errors.As(err, &pe) {
				row = pe.StartLine
			}
			res.Skipped = append(res.Skipped, SkippedRow{Row: row, Reason: err.Error()})
			continue
		}
		rowNum, _ := reader.FieldPos(0)
		if strings.Join(record, "") == "" {
			continue
		}

		form, err := formFromRecord(record, cols)
		if err == nil {
			err = s.validator.ValidateCreate(form)
		}
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Row: rowNum, Reason: err.Error()})
			continue
		}

		number, err := s.uniqueNumber(used)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Row: rowNum, Reason: err.Error()})
			continue
		}
		used[number] = struct{}{}
		res.Added = append(res.Added, s.newInvoice(number, form))
	}

	if len(res.Added) == 0 {
		s.log.Info().Int("skipped", len(res.Skipped)).Msg("csv import added nothing")
		return res, nil
	}

	if err := s.repo.SaveAll(ctx, append(existing, res.Added...)); err != nil {
		s.log.Error().Err(err).Int("rows", len(res.Added)).Msg("failed to save imported invoices")
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.log.Info().Int("added", len(res.Added)).Int("skipped", len(res.Skipped)).Msg("csv import finished")
	return res, nil
}

type columns struct {
	name, dueDate, amount, status int
}

func columnIndex(header []string) (columns, error) {
	cols := columns{name: -1, dueDate: -1, amount: -1, status: -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.NewReplacer("_", "", " ", "", "\ufeff", "").Replace(key)
		switch key {
		case "name", "customername":
			cols.name = i
		case "duedate":
			cols.dueDate = i
		case "amount":
			cols.amount = i
		case "status":
			cols.status = i
		}
	}

	var missing []string
	if cols.name < 0 {
		missing = append(missing, "name")
	}
	if cols.dueDate < 0 {
		missing = append(missing, "due_date")
	}
	if cols.amount < 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: missing columns %s", ErrBadCSV, strings.Join(missing, ", "))
	}
	return cols, nil
}

func formFromRecord(record []string, cols columns) (models.InvoiceForm, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	form := models.InvoiceForm{
		Name:   field(cols.name),
		Status: models.StatusPending,
	}
	if st := field(cols.status); st != "" {
		form.Status = models.InvoiceStatus(strings.ToLower(st))
	}

	amountStr := field(cols.amount)
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return form, &validation.ValidationError{Fields: map[string]string{
			"amount": fmt.Sprintf("invalid amount %q", amountStr),
		}}
	}
	form.Amount = amount

	if dueStr := field(cols.dueDate); dueStr != "" {
		due, err := parseDueDate(dueStr)
		if err != nil {
			return form, &validation.ValidationError{Fields: map[string]string{
				"dueDate": fmt.Sprintf("invalid due date %q", dueStr),
			}}
		}
		form.DueDate = &due
	}
	return form, nil
}

func parseDueDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
