package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "http://localhost:5001" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DBType != "sql" {
		t.Errorf("DBType = %q", cfg.DBType)
	}
	if cfg.ExportFormat != "csv" {
		t.Errorf("ExportFormat = %q", cfg.ExportFormat)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.BaseURL != DefaultConfig().BaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "base_url: http://db.example.com:9000\ndb_type: mongodb\nverbose: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	if cfg.BaseURL != "http://db.example.com:9000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DBType != "mongodb" {
		t.Errorf("DBType = %q", cfg.DBType)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	// Values absent from the file keep their defaults.
	if cfg.ExportFormat != "csv" {
		t.Errorf("ExportFormat = %q, want csv", cfg.ExportFormat)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://from-file:1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DBCHAT_BASE_URL", "http://from-env:2")
	t.Setenv("DBCHAT_DB_TYPE", "mongodb")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	if cfg.BaseURL != "http://from-env:2" {
		t.Errorf("BaseURL = %q, want env override", cfg.BaseURL)
	}
	if cfg.DBType != "mongodb" {
		t.Errorf("DBType = %q, want env override", cfg.DBType)
	}
}
