package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/backoffice/internal/tui"
	"github.com/Veraticus/backoffice/internal/tui/themes"
)

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive grievance board",
		Long: `Fetch pending customer and guest grievances and work through them
in a terminal UI. Open a grievance to read it, add a message and resolve it.

Logs go to logging.file while the board is open; without one they are
discarded so they do not draw over the screen.`,
		RunE: runBoard,
	}
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if cfg.Logging.File == "" {
		if err := setupLogging(cfg.Logging, io.Discard); err != nil {
			return err
		}
	}

	client, err := newScheduleClient(cfg)
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(),
		tui.WithService(client),
		tui.WithTheme(themes.GetTheme(cfg.Display.Theme)),
		tui.WithDateFormatter(cfg.DateFormatter()),
		tui.WithFetchRetry(cfg.Schedule.RetryOptions()),
		tui.WithRequireMessage(cfg.Grievances.RequireMessage),
	)
}
