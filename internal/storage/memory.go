package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps values in process memory. With a quota set it behaves
// like browser local storage: a write that would push the total size over
// the quota fails and leaves the previous value in place.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int
}

type MemoryOption func(*MemoryStore)

// WithQuota limits the summed length of keys and values in bytes.
func WithQuota(bytes int) MemoryOption {
	return func(m *MemoryStore) {
		m.quota = bytes
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		used := 0
		for k, v := range m.data {
			if k == key {
				continue
			}
			used += len(k) + len(v)
		}
		if used+len(key)+len(value) > m.quota {
			return fmt.Errorf("setting %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
		}
	}

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
