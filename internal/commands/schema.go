package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dmartins/dbchat/internal/api"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the connected database schema",
	Long:  `Fetch and print the tables and columns the backend exposes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchema(cmd.Context())
	},
}

func runSchema(parent context.Context) error {
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

	sch, err := client.FetchSchema(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch schema: %w", err)
	}
	if len(sch) == 0 {
		fmt.Println("No tables found.")
		return nil
	}

	names := make([]string, 0, len(sch))
	for name := range sch {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"TABLE", "COLUMNS"})
	for _, name := range names {
		t.AppendRow(table.Row{name, strings.Join(sch[name], ", ")})
	}

	fmt.Printf("%d tables\n", len(names))
	fmt.Println(t.Render())
	return nil
}
