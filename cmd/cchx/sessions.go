package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/szhu/claude-code-history-exporter/internal/catalog"
	"github.com/szhu/claude-code-history-exporter/internal/config"
)

func sessionsCmd() *cobra.Command {
	var project string
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List known sessions (non-interactive)",
		Long:  `Prints cataloged sessions newest first, one per line, for scripting. Columns: session key, updated, messages, summary.`,
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

			sessions, err := db.List(project, limit)
			if err != nil {
				return err
			}

			width := 0
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			for _, s := range sessions {
				summary := strings.ReplaceAll(s.Summary, "\n", " ")
				line := fmt.Sprintf("%s\t%s\t%d\t%s", s.SessionKey, s.UpdatedAt, s.MessageCount, summary)
				if width > 0 && runewidth.StringWidth(line) > width {
					line = runewidth.Truncate(line, width, "")
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Filter by project directory name")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
