package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmartins/dbchat/internal/analytics"
	"github.com/dmartins/dbchat/internal/api"
	"github.com/dmartins/dbchat/internal/models"
)

var (
	exportFormatFlag   string
	exportFilenameFlag string
	exportDirFlag      string
)

var exportCmd = &cobra.Command{
	Use:   "export [question]",
	Short: "Ask a question and export the result rows to a file",
	Long: `Ask a single question and export its result rows through the backend.

The filename defaults to a cleaned version of the question. Supported
formats: csv, excel, json.

Examples:
  dbchat export "Monthly revenue by region"
  dbchat export "Top customers" -F excel -n top_customers`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), args[0])
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormatFlag, "format", "F", "", "Export format: csv, excel or json")
	exportCmd.Flags().StringVarP(&exportFilenameFlag, "name", "n", "", "Export filename (without extension)")
	exportCmd.Flags().StringVarP(&exportDirFlag, "dir", "d", "", "Download directory (overrides config)")
}

func runExport(parent context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	cfg := loadConfig()

	client, err := api.NewClient(cfg.BaseURL,
		api.WithDBType(cfg.DBType),
		api.WithVerbose(cfg.Verbose),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	spin := newSpinner("Thinking")
	spin.start()

	answer, err := client.Ask(ctx, question, engineFromConfig(cfg))
	if err != nil {
		spin.stopWithError()
		return printAskError(err, false)
	}
	if !answer.HasResults() {
		spin.stopWithError()
		return fmt.Errorf("the answer has no result rows to export")
	}
	spin.stopWithSuccess(fmt.Sprintf("%d rows", answer.Results.Len()))

	format := models.ParseExportFormat(exportFormatFlag)
	if exportFormatFlag == "" {
		format = models.ParseExportFormat(cfg.ExportFormat)
	}

	filename := strings.TrimSpace(exportFilenameFlag)
	if filename == "" {
		filename = analytics.DefaultFilename(question)
	}

	downloadDir := cfg.DownloadDir
	if exportDirFlag != "" {
		downloadDir = exportDirFlag
	}

	spin = newSpinner("Exporting")
	spin.start()

	result, err := client.Export(ctx, answer.Results, format, filename)
	if err != nil {
		spin.stopWithError()
		return fmt.Errorf("export failed: %w", err)
	}

	path, err := client.DownloadFile(ctx, result.DownloadURL, downloadDir, result.Filename)
	if err != nil {
		spin.stopWithError()
		return fmt.Errorf("download failed: %w", err)
	}
	spin.stopWithSuccess("Saved " + path)

	return nil
}
