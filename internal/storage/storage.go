package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been written
	ErrNotFound = errors.New("storage: key not found")

	// ErrQuotaExceeded is returned by Set when the value does not fit
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// KeyValue is the storage primitive the invoice store persists into. Values
// are opaque bytes; Set replaces whatever was stored under the key.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
