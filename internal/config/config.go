// Package config reads and writes the application configuration file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the installation-level settings for the care CLI.
type Config struct {
	DataDir        string        `toml:"data_dir"`
	Storage        StorageConfig `toml:"storage"`
	DefaultProfile ProfileSeed   `toml:"default_profile"`
}

// StorageConfig selects the key-value store backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StorageConfig struct {
	Type string `toml:"type"`           // "sqlite" or "memory"
	Path string `toml:"path,omitempty"` // sqlite database file, only for type=sqlite
}

// ProfileSeed is the identity profile used to bootstrap the store before the
// first signup. Empty values are allowed; the default user then carries the
// fallback credentials.
type ProfileSeed struct {
	ElderName     string `toml:"elder_name"`
	BirthDate     string `toml:"birth_date"`
	CaregiverName string `toml:"caregiver_name,omitempty"`
	Sex           string `toml:"sex,omitempty"`
}

// NewConfig creates a Config with defaults rooted at the given data directory.
func NewConfig(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		Storage: StorageConfig{
			Type: "sqlite",
			Path: filepath.Join(dataDir, "care.db"),
		},
	}
}

// DefaultDataDir returns the per-user data directory for the application.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "eldercare"), nil
}

// DefaultPath returns the config file location inside the default data dir.
func DefaultPath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	return m.Read(f)
}

// WriteToFile writes a Config to the specified file path, creating parent
// directories as needed.
func WriteToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	return m.Write(f, cfg)
}

// Init writes cfg to path unless a file already exists there.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	return WriteToFile(path, cfg)
}
