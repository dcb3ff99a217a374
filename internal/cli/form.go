package cli

import (
	"errors"
	"fmt"

	"invoice-bookkeeping-backend/internal/models"
	"invoice-bookkeeping-backend/internal/services/validation"

	"github.com/spf13/cobra"
)

type formFlags struct {
	name   string
	due    string
	amount float64
	status string
}

func (f *formFlags) register(cmd *cobra.Command, defaultStatus string) {
	cmd.Flags().StringVar(&f.name, "name", "", "customer name")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().Float64Var(&f.amount, "amount", 0, "invoice amount")
	cmd.Flags().StringVar(&f.status, "status", defaultStatus, "paid, unpaid or pending")
}

func (f *formFlags) form() (models.InvoiceForm, error) {
	form := models.InvoiceForm{
		Name:   f.name,
		Amount: f.amount,
		Status: models.InvoiceStatus(f.status),
	}
	if f.due == "" {
		return form, nil
	}
	due, err := models.ParseDate(f.due)
	if err != nil {
		return form, &validation.ValidationError{Fields: map[string]string{"dueDate": err.Error()}}
	}
	form.DueDate = &due
	return form, nil
}

// overlay starts from the stored invoice and replaces only the fields whose
// flags were given on the command line.
func (f *formFlags) overlay(cmd *cobra.Command, inv models.Invoice) (models.InvoiceForm, error) {
	due := inv.DueDate
	form := models.InvoiceForm{
		Name:    inv.Name,
		DueDate: &due,
		Amount:  inv.Amount,
		Status:  inv.Status,
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		form.Name = f.name
	}
	if flags.Changed("amount") {
		form.Amount = f.amount
	}
	if flags.Changed("status") {
		form.Status = models.InvoiceStatus(f.status)
	}
	if flags.Changed("due") {
		parsed, err := models.ParseDate(f.due)
		if err != nil {
			return form, &validation.ValidationError{Fields: map[string]string{"dueDate": err.Error()}}
		}
		form.DueDate = &parsed
	}
	return form, nil
}

// reportedError marks a failure whose message was already printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// report prints field messages for validation failures and the given
// notification for anything else. The returned error is not printed again.
func report(cmd *cobra.Command, err error, failed models.Notification) error {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprint(cmd.ErrOrStderr(), RenderFieldErrors(verr.Fields))
		return reportedError{err}
	}
	fmt.Fprint(cmd.ErrOrStderr(), RenderNotification(failed))
	return reportedError{err}
}
