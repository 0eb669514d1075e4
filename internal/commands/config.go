package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmartins/dbchat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show the current configuration, or change a setting.

Keys: base_url, db_type, download_dir, export_format, theme,
copy_to_clipboard, verbose.

Examples:
  dbchat config
  dbchat config set base_url http://localhost:5001
  dbchat config set db_type mongodb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfig(args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path, _ := config.Path()
	fmt.Printf("# %s\n", path)
	fmt.Printf("base_url:          %s\n", cfg.BaseURL)
	fmt.Printf("db_type:           %s\n", cfg.DBType)
	fmt.Printf("download_dir:      %s\n", cfg.DownloadDir)
	fmt.Printf("export_format:     %s\n", cfg.ExportFormat)
	fmt.Printf("theme:             %s\n", cfg.Theme)
	fmt.Printf("copy_to_clipboard: %t\n", cfg.CopyToClipboard)
	fmt.Printf("verbose:           %t\n", cfg.Verbose)
	return nil
}

func setConfig(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "base_url":
		cfg.BaseURL = value
	case "db_type":
		if value != "sql" && value != "mongodb" {
			return fmt.Errorf("db_type must be sql or mongodb")
		}
		cfg.DBType = value
	case "download_dir":
		cfg.DownloadDir = value
	case "export_format":
		if value != "csv" && value != "excel" && value != "json" {
			return fmt.Errorf("export_format must be csv, excel or json")
		}
		cfg.ExportFormat = value
	case "theme":
		cfg.Theme = value
	case "copy_to_clipboard", "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		if key == "verbose" {
			cfg.Verbose = b
		} else {
			cfg.CopyToClipboard = b
		}
	default:
		return fmt.Errorf("unknown key %q", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("%s set to %s\n", key, value)
	return nil
}
