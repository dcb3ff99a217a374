package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"invoice-bookkeeping-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps JSON field names to user-facing messages.
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid invoice: " + strings.Join(parts, "; ")
}

var messages = map[string]string{
	"name.min":         "Invoice name must be at least 3 characters",
	"dueDate.required": "Due date is required",
	"dueDate.notpast":  "Due date cannot be in the past",
	"amount.gt":        "Amount must be positive",
	"status.oneof":     "Status must be one of paid, unpaid, pending",
}

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New returns a form validator. now supplies the current time for the
// due-date check on creation.
func New(now func() time.Time) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.validate.RegisterValidation("notpast", v.notPast); err != nil {
		panic(fmt.Sprintf("registering notpast validation: %v", err))
	}
	return v
}

// ValidateCreate checks a form for a new invoice: the field rules plus a due
// date no earlier than today.
func (v *Validator) ValidateCreate(form models.InvoiceForm) error {
	fields := v.fieldErrors(form)
	if form.DueDate != nil {
		if err := v.validate.Var(*form.DueDate, "notpast"); err != nil {
			fields["dueDate"] = messages["dueDate.notpast"]
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateUpdate checks a form editing an existing invoice. Past due dates
// are accepted so overdue invoices stay editable.
func (v *Validator) ValidateUpdate(form models.InvoiceForm) error {
	fields := v.fieldErrors(form)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (v *Validator) fieldErrors(form models.InvoiceForm) map[string]string {
	fields := map[string]string{}

	err := v.validate.Struct(form)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["form"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		key := fe.Field() + "." + fe.Tag()
		msg, ok := messages[key]
		if !ok {
			msg = fe.Error()
		}
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = msg
		}
	}
	return fields
}

func (v *Validator) notPast(fl validator.FieldLevel) bool {
	due, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !startOfDay(due).Before(startOfDay(v.now()))
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
