// Package commands provides CLI commands for dbchat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmartins/dbchat/internal/config"
	"github.com/dmartins/dbchat/internal/models"
)

var (
	// Global flags
	baseURLFlag string
	dbFlag      string
	outputFlag  string
	fileFlag    string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dbchat [question]",
	Short: "Chat with your database in plain language",
	Long: `dbchat is a conversational front-end for a natural-language database
backend. Ask questions in plain language; the backend translates them
into SQL or MongoDB queries and returns the results.

Examples:
  dbchat chat                            Start interactive chat
  dbchat "How many orders last month?"   Ask a single question
  dbchat --db mongodb "Top customers"    Query a MongoDB backend
  dbchat -f question.txt                 Read the question from a file
  echo "List products" | dbchat          Read the question from stdin
  dbchat schema                          Show the connected schema
  dbchat export "Monthly totals" -F csv  Ask and export the result rows`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("dbchat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(cmd.Context(), string(data), !isStdoutTTY())
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(cmd.Context(), string(data), !isStdoutTTY())
		}

		if len(args) > 0 {
			return runQuery(cmd.Context(), args[0], !isStdoutTTY())
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Query engine: sql or mongodb (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log transport diagnostics to stderr")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the answer to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the question from file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig returns the effective configuration with flag overrides
// applied on top.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && verboseFlag {
		fmt.Fprintf(os.Stderr, "[verbose] config load: %v\n", err)
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	if dbFlag != "" {
		cfg.DBType = dbFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	return cfg
}

// engineFromConfig maps the configured db_type to an engine.
func engineFromConfig(cfg config.Config) models.Engine {
	return models.ParseEngine(cfg.DBType)
}
