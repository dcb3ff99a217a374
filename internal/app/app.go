package app

import (
	"errors"
	"fmt"
	"io"

	"invoice-bookkeeping-backend/internal/config"
	"invoice-bookkeeping-backend/internal/repository"
	"invoice-bookkeeping-backend/internal/services/invoicing"
	"invoice-bookkeeping-backend/internal/storage"

	"github.com/rs/zerolog"
)

// App holds the wired invoice service and the resources it owns.
type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	Service *invoicing.InvoiceService

	store     storage.KeyValue
	logCloser io.Closer
}

// New opens the configured storage backend and builds the service on top of
// it. logCloser may be nil.
func New(cfg *config.Config, log zerolog.Logger, logCloser io.Closer, opts ...invoicing.Option) (*App, error) {
	store, err := config.InitStorage(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("initialising %s storage: %w", cfg.StorageDriver, err)
	}

	repo := repository.NewInvoiceRepository(store, cfg.StorageKey, log)
	log.Debug().Str("driver", cfg.StorageDriver).Str("key", cfg.StorageKey).Msg("storage ready")

	return &App{
		Config:    cfg,
		Log:       log,
		Service:   invoicing.NewInvoiceService(repo, log, opts...),
		store:     store,
		logCloser: logCloser,
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing log file: %w", err))
		}
	}
	return errors.Join(errs...)
}
