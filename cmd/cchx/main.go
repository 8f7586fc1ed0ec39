package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// defaultTitle is the document title used when --title is not given.
const defaultTitle = "Claude Code History"

func main() {
	rootCmd := &cobra.Command{
		Use:     "cchx",
		Short:   "Export Claude Code conversation logs to readable Markdown",
		Version: version,
	}

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(sessionsCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
