package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := NewConfig("/var/lib/eldercare")
	cfg.DefaultProfile = ProfileSeed{
		ElderName: "Maria da Silva",
		BirthDate: "1940-03-15",
	}

	var buf bytes.Buffer
	m := &Manager{}
	require.NoError(t, m.Write(&buf, cfg))

	got, err := m.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig("/data")
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, filepath.Join("/data", "care.db"), cfg.Storage.Path)
	assert.Empty(t, cfg.DefaultProfile.ElderName)
}

func TestReadRejectsGarbage(t *testing.T) {
	t.Parallel()

	m := &Manager{}
	_, err := m.Read(bytes.NewBufferString("data_dir = [unclosed"))
	assert.Error(t, err)
}

func TestInitRefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := NewConfig(t.TempDir())
	require.NoError(t, Init(path, cfg))
	assert.Error(t, Init(path, cfg))
}
