package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"invoice-bookkeeping-backend/internal/models"
	"invoice-bookkeeping-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// DefaultKey is the storage key holding the invoice collection.
const DefaultKey = "invoices"

var ErrDuplicateID = errors.New("invoice id already exists")

// InvoiceRepository stores the whole invoice collection as one JSON array
// under a single key. Every mutation reads the collection, changes it and
// writes it back in one Set call; there is no locking, so concurrent writers
// are last-write-wins.
type InvoiceRepository struct {
	kv       storage.KeyValue
	key      string
	validate *validator.Validate
	log      zerolog.Logger
}

func NewInvoiceRepository(kv storage.KeyValue, key string, log zerolog.Logger) *InvoiceRepository {
	if key == "" {
		key = DefaultKey
	}
	return &InvoiceRepository{
		kv:       kv,
		key:      key,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With().Str("component", "invoice_repository").Logger(),
	}
}

// LoadAll returns the stored collection in insertion order. A missing key or
// a payload that fails to decode yields an empty collection; decode failures
// are logged, not returned. Errors from the storage backend itself are
// returned.
func (r *InvoiceRepository) LoadAll(ctx context.Context) ([]models.Invoice, error) {
	data, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.Invoice{}, nil
	}
	if err != nil {
		return nil, err
	}

	invoices, err := Decode(data, r.validate)
	if err != nil {
		r.log.Warn().Err(err).Str("key", r.key).Msg("stored invoices are unreadable, treating collection as empty")
		return []models.Invoice{}, nil
	}
	return invoices, nil
}

// SaveAll overwrites the stored collection.
func (r *InvoiceRepository) SaveAll(ctx context.Context, invoices []models.Invoice) error {
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	if err := checkRecords(invoices, r.validate); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}

	data, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("encoding invoices: %w", err)
	}
	return r.kv.Set(ctx, r.key, data)
}

// Add appends invoice to the collection.
func (r *InvoiceRepository) Add(ctx context.Context, invoice models.Invoice) error {
	invoices, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		if inv.ID == invoice.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, invoice.ID)
		}
	}
	return r.SaveAll(ctx, append(invoices, invoice))
}

// Update applies patch to the invoice with the given id and returns the
// record as written. It reports false, without writing, when no invoice
// matches.
func (r *InvoiceRepository) Update(ctx context.Context, id string, patch models.InvoiceForm) (*models.Invoice, bool, error) {
	invoices, err := r.LoadAll(ctx)
	if err != nil {
		return nil, false, err
	}

	idx := indexOf(invoices, id)
	if idx < 0 {
		return nil, false, nil
	}
	patch.Apply(&invoices[idx])

	if err := r.SaveAll(ctx, invoices); err != nil {
		return nil, false, err
	}
	updated := invoices[idx]
	return &updated, true, nil
}

// Remove deletes the invoice with the given id. It reports false, without
// writing, when no invoice matches.
func (r *InvoiceRepository) Remove(ctx context.Context, id string) (bool, error) {
	invoices, err := r.LoadAll(ctx)
	if err != nil {
		return false, err
	}

	idx := indexOf(invoices, id)
	if idx < 0 {
		return false, nil
	}
	kept := append(invoices[:idx:idx], invoices[idx+1:]...)

	if err := r.SaveAll(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoices, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(invoices, id)
	if idx < 0 {
		return nil, nil
	}
	return &invoices[idx], nil
}

func indexOf(invoices []models.Invoice, id string) int {
	for i := range invoices {
		if invoices[i].ID == id {
			return i
		}
	}
	return -1
}
