package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope", "config.toml"))
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want default", cfg.API.BaseURL)
	}
	if cfg.Appearance.Theme != "emerald" {
		t.Fatalf("Theme = %q, want emerald", cfg.Appearance.Theme)
	}
	if cfg.API.TimeoutSec != 10 {
		t.Fatalf("TimeoutSec = %d, want 10", cfg.API.TimeoutSec)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Session.Token = "tok-123"
	cfg.Session.Username = "alice"
	cfg.Appearance.Theme = "ocean"
	cfg.General.HasSeenOnboarding = true

	if err := saveTo(path, cfg); err != nil {
		t.Fatalf("saveTo: %v", err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if got.Session.Token != "tok-123" || got.Session.Username != "alice" {
		t.Fatalf("session = %+v, want token/username back", got.Session)
	}
	if got.Appearance.Theme != "ocean" {
		t.Fatalf("Theme = %q, want ocean", got.Appearance.Theme)
	}
	if !got.General.HasSeenOnboarding {
		t.Fatal("HasSeenOnboarding lost on round trip")
	}
}

func TestSavedFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := saveTo(path, DefaultConfig()); err != nil {
		t.Fatalf("saveTo: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("file perm = %o, want 600", perm)
	}
}

func TestLoadHealsBrokenNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[api]\nbase_url = \"\"\ntimeout_sec = -5\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want default restored", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSec != 10 {
		t.Fatalf("TimeoutSec = %d, want 10 restored", cfg.API.TimeoutSec)
	}
}
