package validation

import (
	"testing"
	"time"

	"invoice-bookkeeping-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return now }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validForm() models.InvoiceForm {
	return models.InvoiceForm{
		Name:    "Acme",
		DueDate: date(2026, 11, 1),
		Amount:  10,
		Status:  models.StatusPaid,
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestValidateCreate_Valid(t *testing.T) {
	v := New(fixedNow)
	assert.NoError(t, v.ValidateCreate(validForm()))
}

func TestValidateCreate_ShortName(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.Name = "Ab"

	fields := fieldsOf(t, v.ValidateCreate(form))
	assert.Equal(t, map[string]string{"name": "Invoice name must be at least 3 characters"}, fields)
}

func TestValidateCreate_NameCountsRunes(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.Name = "Été"
	assert.NoError(t, v.ValidateCreate(form))
}

func TestValidateCreate_NegativeAmount(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.Amount = -5

	fields := fieldsOf(t, v.ValidateCreate(form))
	assert.Equal(t, map[string]string{"amount": "Amount must be positive"}, fields)
}

func TestValidateCreate_ZeroAmount(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.Amount = 0

	fields := fieldsOf(t, v.ValidateCreate(form))
	assert.Contains(t, fields, "amount")
}

func TestValidateCreate_MissingDueDate(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.DueDate = nil

	fields := fieldsOf(t, v.ValidateCreate(form))
	assert.Equal(t, map[string]string{"dueDate": "Due date is required"}, fields)
}

func TestValidateCreate_PastDueDate(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.DueDate = date(2026, 10, 14)

	fields := fieldsOf(t, v.ValidateCreate(form))
	assert.Equal(t, map[string]string{"dueDate": "Due date cannot be in the past"}, fields)
}

func TestValidateCreate_TodayIsAllowed(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.DueDate = date(2026, 10, 15)
	assert.NoError(t, v.ValidateCreate(form))
}

func TestValidateCreate_BadStatus(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.Status = "overdue"

	fields := fieldsOf(t, v.ValidateCreate(form))
	assert.Equal(t, map[string]string{"status": "Status must be one of paid, unpaid, pending"}, fields)
}

func TestValidateCreate_ReportsEveryField(t *testing.T) {
	v := New(fixedNow)
	form := models.InvoiceForm{Name: "A", Amount: -1, Status: ""}

	fields := fieldsOf(t, v.ValidateCreate(form))
	assert.Len(t, fields, 4)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "dueDate")
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "status")
}

func TestValidateUpdate_AllowsPastDueDate(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.DueDate = date(2020, 1, 1)
	assert.NoError(t, v.ValidateUpdate(form))
}

func TestValidateUpdate_StillRequiresDueDate(t *testing.T) {
	v := New(fixedNow)
	form := validForm()
	form.DueDate = nil

	fields := fieldsOf(t, v.ValidateUpdate(form))
	assert.Contains(t, fields, "dueDate")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"name":   "Invoice name must be at least 3 characters",
		"amount": "Amount must be positive",
	}}
	assert.Equal(t,
		"invalid invoice: amount: Amount must be positive; name: Invoice name must be at least 3 characters",
		err.Error())
}

func TestNew_RegistersNotPast(t *testing.T) {
	var v *Validator
	require.NotPanics(t, func() { v = New(fixedNow) })

	assert.NoError(t, v.validate.Var(*date(2026, 10, 15), "notpast"))
	assert.Error(t, v.validate.Var(*date(2026, 10, 14), "notpast"))
}
