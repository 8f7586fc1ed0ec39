package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/szhu/claude-code-history-exporter/internal/config"
	"github.com/szhu/claude-code-history-exporter/internal/export"
	"github.com/szhu/claude-code-history-exporter/internal/scan"
)

func exportCmd() *cobra.Command {
	var chats []string
	var output, title string

	cmd := &cobra.Command{
		Use:   "export [project]",
		Short: "Export a project's chat history to Markdown",
		Long: `Export the chat logs of a Claude Code project as one Markdown document.

The project argument may be a directory of .jsonl chat files, a project path,
or a project directory name under the Claude root. With no argument, the
project for the current working directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var projectArg string
			if len(args) == 1 {
				projectArg = args[0]
			}
			projectPath, err := scan.ResolveProject(projectArg, cfg.ClaudeRoot)
			if err != nil {
				return err
			}

			files, err := scan.ListChatFiles(projectPath, chats)
			if err != nil {
				return err
			}

			doc, err := export.BuildDocument(title, files, export.Options{
				Chats:  chats,
				Output: output,
			})
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				fmt.Print(doc)
				return nil
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&chats, "chat", nil, "Restrict to the named chat ids (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&title, "title", defaultTitle, "Document title")

	return cmd
}
