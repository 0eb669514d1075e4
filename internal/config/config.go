// Package config handles user configuration for dbchat.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment overrides, e.g.
// DBCHAT_BASE_URL, DBCHAT_DB_TYPE.
const envPrefix = "DBCHAT_"

// Config represents the user configuration.
type Config struct {
	// BaseURL is the backend base URL.
	BaseURL string `koanf:"base_url"`
	// DBType selects the question-answering engine: "sql" or "mongodb".
	DBType string `koanf:"db_type"`
	// DownloadDir is where exported files are saved.
	DownloadDir string `koanf:"download_dir"`
	// ExportFormat is the default analytics export format.
	ExportFormat string `koanf:"export_format"`
	// Theme is the markdown rendering style: "dark", "light" or a path
	// to a glamour JSON theme.
	Theme string `koanf:"theme"`
	// CopyToClipboard copies one-shot answers to the clipboard.
	CopyToClipboard bool `koanf:"copy_to_clipboard"`
	// Verbose enables diagnostic logging of transport failures.
	Verbose bool `koanf:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		BaseURL:      "http://localhost:5001",
		DBType:       "sql",
		DownloadDir:  filepath.Join(homeDir, ".dbchat", "downloads"),
		ExportFormat: "csv",
		Theme:        "dark",
	}
}

// Dir returns the configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dbchat"), nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration: defaults, then the config file, then
// DBCHAT_* environment variables.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), err
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the config file, creating the
// directory if needed.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	k := koanf.New(".")
	values := map[string]any{
		"base_url":          cfg.BaseURL,
		"db_type":           cfg.DBType,
		"download_dir":      cfg.DownloadDir,
		"export_format":     cfg.ExportFormat,
		"theme":             cfg.Theme,
		"copy_to_clipboard": cfg.CopyToClipboard,
		"verbose":           cfg.Verbose,
	}
	for key, val := range values {
		if err := k.Set(key, val); err != nil {
			return err
		}
	}

	out, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	path, err := Path()
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}
