package invoicing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoice-bookkeeping-backend/internal/models"
	"invoice-bookkeeping-backend/internal/repository"
	"invoice-bookkeeping-backend/internal/services/numbering"
	"invoice-bookkeeping-backend/internal/services/search"
	"invoice-bookkeeping-backend/internal/services/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrInvoiceNotFound is returned by Get for an unknown id
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrNumberExhausted is returned when no unused display number was found
	ErrNumberExhausted = errors.New("could not generate a unique invoice number")

	// ErrPersist wraps storage failures on the write path
	ErrPersist = errors.New("failed to persist invoices")
)

const maxNumberAttempts = 25

// InvoiceService runs the add/list/edit/delete workflow on top of the
// invoice repository. It holds no invoice state of its own: every call
// reloads the collection from storage.
type InvoiceService struct {
	repo      *repository.InvoiceRepository
	validator *validation.Validator
	numbers   numbering.Generator
	now       func() time.Time
	newID     func() string
	log       zerolog.Logger
}

type Option func(*InvoiceService)

func WithClock(now func() time.Time) Option {
	return func(s *InvoiceService) { s.now = now }
}

func WithNumberGenerator(g numbering.Generator) Option {
	return func(s *InvoiceService) { s.numbers = g }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *InvoiceService) { s.newID = newID }
}

func NewInvoiceService(repo *repository.InvoiceRepository, log zerolog.Logger, opts ...Option) *InvoiceService {
	s := &InvoiceService{
		repo:    repo,
		numbers: numbering.RandomGenerator{},
		now:     time.Now,
		newID:   uuid.NewString,
		log:     log.With().Str("component", "invoice_service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = validation.New(s.now)
	return s
}

// List returns the invoices matching c, in stored order.
func (s *InvoiceService) List(ctx context.Context, c search.Criteria) ([]models.Invoice, error) {
	invoices, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading invoices: %w", err)
	}
	return search.Filter(invoices, c), nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading invoices: %w", err)
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

// NextNumber returns a number for display on the add form. The number is not
// reserved; Create draws its own when the invoice is saved.
func (s *InvoiceService) NextNumber(ctx context.Context) (string, error) {
	invoices, err := s.repo.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("loading invoices: %w", err)
	}
	return s.uniqueNumber(usedNumbers(invoices))
}

// Create validates form and appends a new invoice with a fresh id, a number
// unused in the collection and createdAt set to now.
func (s *InvoiceService) Create(ctx context.Context, form models.InvoiceForm) (*models.Invoice, error) {
	if err := s.validator.ValidateCreate(form); err != nil {
		return nil, err
	}

	invoices, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading invoices: %w", err)
	}
	number, err := s.uniqueNumber(usedNumbers(invoices))
	if err != nil {
		return nil, err
	}

	inv := s.newInvoice(number, form)
	if err := s.repo.Add(ctx, inv); err != nil {
		s.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("failed to add invoice")
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.log.Info().Str("invoice_id", inv.ID).Str("number", inv.Number).Msg("invoice created")
	return &inv, nil
}

// Update applies form to the invoice with the given id. A missing invoice is
// not an error: applied is false and nothing is written.
func (s *InvoiceService) Update(ctx context.Context, id string, form models.InvoiceForm) (inv *models.Invoice, applied bool, err error) {
	if err := s.validator.ValidateUpdate(form); err != nil {
		return nil, false, err
	}

	inv, applied, err = s.repo.Update(ctx, id, form)
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to update invoice")
		return nil, false, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if !applied {
		s.log.Debug().Str("invoice_id", id).Msg("update skipped, invoice not found")
		return nil, false, nil
	}

	s.log.Info().Str("invoice_id", id).Msg("invoice updated")
	return inv, true, nil
}

// Delete removes the invoice with the given id, reporting whether one was
// removed.
func (s *InvoiceService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", id).Msg("failed to delete invoice")
		return false, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if removed {
		s.log.Info().Str("invoice_id", id).Msg("invoice deleted")
	} else {
		s.log.Debug().Str("invoice_id", id).Msg("delete skipped, invoice not found")
	}
	return removed, nil
}

func (s *InvoiceService) newInvoice(number string, form models.InvoiceForm) models.Invoice {
	inv := models.Invoice{
		ID:        s.newID(),
		Number:    number,
		CreatedAt: s.now().UTC(),
	}
	form.Apply(&inv)
	return inv
}

func (s *InvoiceService) uniqueNumber(used map[string]struct{}) (string, error) {
	for i := 0; i < maxNumberAttempts; i++ {
		n := s.numbers.Next()
		if _, taken := used[n]; !taken {
			return n, nil
		}
	}
	return "", ErrNumberExhausted
}

func usedNumbers(invoices []models.Invoice) map[string]struct{} {
	used := make(map[string]struct{}, len(invoices))
	for _, inv := range invoices {
		used[inv.Number] = struct{}{}
	}
	return used
}
