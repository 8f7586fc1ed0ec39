package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/szhu/claude-code-history-exporter/internal/catalog"
	"github.com/szhu/claude-code-history-exporter/internal/config"
	"github.com/szhu/claude-code-history-exporter/internal/tui"
)

func listCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse sessions interactively and export one",
		Long:  `Opens a TUI panel showing all known sessions, newest first. Type to filter by summary, project, or working directory; enter exports the selected session.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := catalog.Open(cfg.CatalogPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := catalog.Refresh(db, cfg.ClaudeRoot); err != nil {
				fmt.Fprintf(os.Stderr, "WARN: catalog refresh: %v\n", err)
			}

			sessions, err := db.List("", 0)
			if err != nil {
				return err
			}

			return tui.Run(sessions, title, cfg.OutputDir)
		},
	}

	cmd.Flags().StringVar(&title, "title", defaultTitle, "Document title for exported sessions")

	return cmd
}
