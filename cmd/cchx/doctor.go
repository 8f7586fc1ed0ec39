package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/szhu/claude-code-history-exporter/internal/catalog"
	"github.com/szhu/claude-code-history-exporter/internal/config"
	"github.com/szhu/claude-code-history-exporter/internal/scan"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify the Claude root, catalog, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Claude Root ===")
			checkDir("Projects", cfg.ClaudeRoot)

			fmt.Println("\n=== Project Scan ===")
			projects, err := scan.WalkProjects(cfg.ClaudeRoot)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fileCount := 0
				for _, p := range projects {
					if files, err := scan.ListChatFiles(p, nil); err == nil {
						fileCount += len(files)
					}
				}
				fmt.Printf("  Projects:   %d\n", len(projects))
				fmt.Printf("  Chat files: %d\n", fileCount)
			}

			fmt.Println("\n=== Catalog ===")
			fmt.Printf("  Path: %s\n", cfg.CatalogPath)
			if _, err := os.Stat(cfg.CatalogPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'cchx list' or 'cchx sessions' first)")
				return nil
			}

			db, err := catalog.Open(cfg.CatalogPath)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer db.Close()

			count, err := db.Count()
			if err != nil {
				return fmt.Errorf("count sessions: %w", err)
			}
			fmt.Printf("  Sessions: %d\n", count)

			if info, err := os.Stat(cfg.CatalogPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== Catalog Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
