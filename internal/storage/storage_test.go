package storage

import (
	"context"
	"path/filepath"
	"testing"

	"eldercare/internal/config"
	"eldercare/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kvContract exercises the behavior both backends must share.
func kvContract(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte(`{"a":1}`)))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	// overwrite
	require.NoError(t, kv.Set(ctx, "k", []byte(`{"a":2}`)))
	got, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), got)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// deleting an absent key is not an error
	require.NoError(t, kv.Delete(ctx, "k"))
}

func TestMemoryKV(t *testing.T) {
	t.Parallel()
	kvContract(t, NewMemory())
}

func TestSQLiteKV(t *testing.T) {
	t.Parallel()
	kv, err := NewSQLite(filepath.Join(t.TempDir(), "care.db"))
	require.NoError(t, err)
	defer kv.Close()
	kvContract(t, kv)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "care.db")

	kv, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, kv.Close())

	kv, err = NewSQLite(path)
	require.NoError(t, err)
	defer kv.Close()
	got, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	kv, err := NewFromConfig(config.StorageConfig{Type: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = NewFromConfig(config.StorageConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "care.db"),
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	kv.Close()

	_, err = NewFromConfig(config.StorageConfig{Type: "sqlite"})
	assert.Error(t, err)

	_, err = NewFromConfig(config.StorageConfig{Type: "redis"})
	assert.Error(t, err)
}
