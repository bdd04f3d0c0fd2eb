package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds connection settings for the Linkloft server.
type Config struct {
	ServerURL string `toml:"server_url"`
	Token     string `toml:"token"`
	LogFile   string `toml:"log_file,omitempty"`

	// Path is where the config was loaded from; not persisted.
	Path string `toml:"-"`
}

// DefaultPath returns the per-user config location (~/.linkloftrc).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".linkloftrc"
	}
	return filepath.Join(home, ".linkloftrc")
}

// Load reads the TOML config at path, then applies LINKLOFT_URL and
// LINKLOFT_TOKEN environment overrides. A missing file is not an error; the
// environment alone may carry the settings.
func Load(path string) (Config, error) {
	cfg := Config{Path: path}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// fall through to env
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv("LINKLOFT_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("LINKLOFT_TOKEN"); v != "" {
		cfg.Token = v
	}
	return cfg, nil
}

// Save writes the config back to path with owner-only permissions, since it
// carries the API token.
func Save(path string, cfg Config) error {
	if cfg.Token == "" {
		return errors.New("refusing to save config without token")
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
