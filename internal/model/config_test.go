package model

import (
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend.BaseURL == "" {
		t.Fatal("default base URL missing")
	}
	if cfg.Backend.TimeoutSec != 30 {
		t.Fatalf("default timeout got=%d want=30", cfg.Backend.TimeoutSec)
	}
	if cfg.Display.RefreshIntervalSec != 120 {
		t.Fatalf("default refresh interval got=%d want=120", cfg.Display.RefreshIntervalSec)
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskmaster", "config.yaml")

	want := &AppConfig{
		Backend: BackendConfig{BaseURL: "https://api.example.com", TimeoutSec: 10},
		Display: DisplayConfig{Theme: "dark", RefreshIntervalSec: 45},
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Backend.BaseURL != want.Backend.BaseURL {
		t.Errorf("base URL got=%q want=%q", got.Backend.BaseURL, want.Backend.BaseURL)
	}
	if got.Backend.TimeoutSec != 10 {
		t.Errorf("timeout got=%d want=10", got.Backend.TimeoutSec)
	}
	if got.Display.Theme != "dark" || got.Display.RefreshIntervalSec != 45 {
		t.Errorf("display got=%+v", got.Display)
	}
}

func TestLoadConfig_ZeroValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &AppConfig{
		Backend: BackendConfig{BaseURL: "https://api.example.com", TimeoutSec: 0},
		Display: DisplayConfig{RefreshIntervalSec: -5},
	}
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Backend.TimeoutSec != 30 {
		t.Errorf("timeout got=%d want fallback 30", got.Backend.TimeoutSec)
	}
	if got.Display.RefreshIntervalSec != 120 {
		t.Errorf("refresh interval got=%d want fallback 120", got.Display.RefreshIntervalSec)
	}
}
