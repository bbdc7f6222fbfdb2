package storage

import (
	"context"
	"sync"

	"eldercare/internal/errs"
)

// Memory is an in-memory KV used by tests and ephemeral runs.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.records[key]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := make([]byte, len(v))
	copy(cpy, v)
	return cpy, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cpy := make([]byte, len(value))
	copy(cpy, value)
	m.records[key] = cpy
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *Memory) Close() error { return nil }
