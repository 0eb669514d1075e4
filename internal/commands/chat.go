package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmartins/dbchat/internal/analytics"
	"github.com/dmartins/dbchat/internal/api"
	"github.com/dmartins/dbchat/internal/chat"
	"github.com/dmartins/dbchat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the database backend.

Ask questions in plain language; answers with result rows can be
charted and exported from the analytics panel (ctrl+a).
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg := loadConfig()

	client, err := api.NewClient(cfg.BaseURL,
		api.WithDBType(cfg.DBType),
		api.WithVerbose(cfg.Verbose),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	store := chat.NewStore()
	notifier := chat.NewNotifier()
	session := chat.NewSession(client, store, notifier,
		chat.WithEngine(engineFromConfig(cfg)),
		chat.WithSessionVerbose(cfg.Verbose),
	)
	panel := analytics.NewPanel(client, cfg.DownloadDir)

	return tui.Run(client, session, notifier, panel, cfg.Theme)
}
