// Package config persists session credentials and preferences across runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is the finance API endpoint used when none is configured.
const DefaultBaseURL = "http://localhost:3000"

// Config holds all moneygrow configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Session    SessionConfig    `toml:"session"`
	Appearance AppearanceConfig `toml:"appearance"`
	General    GeneralConfig    `toml:"general"`
}

// APIConfig holds finance API connection settings.
type APIConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// SessionConfig holds the persisted login session.
type SessionConfig struct {
	Token    string `toml:"token,omitempty"`
	Username string `toml:"username,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	HasSeenOnboarding bool `toml:"has_seen_onboarding"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:    DefaultBaseURL,
			TimeoutSec: 10,
		},
		Appearance: AppearanceConfig{
			Theme: "emerald",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moneygrow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "moneygrow")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return loadFrom(ConfigPath())
}

func loadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = 10
	}

	return cfg, nil
}

// Save writes the config to disk. The token lives here, so the file is
// created user-readable only.
func Save(cfg Config) error {
	return saveTo(ConfigPath(), cfg)
}

func saveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
