// Package storage provides the local key-value store backing all persisted
// application records. Values are opaque JSON blobs owned by the repositories.
package storage

import (
	"context"
	"fmt"

	"eldercare/internal/config"
)

// KV is a local key-value store. Get returns errs.ErrNotFound when the key is
// absent. Implementations are safe for use from a single process; there is no
// cross-process isolation.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NewFromConfig creates a KV implementation based on the storage config type.
func NewFromConfig(cfg config.StorageConfig) (KV, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("path required for sqlite storage")
		}
		return NewSQLite(cfg.Path)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
