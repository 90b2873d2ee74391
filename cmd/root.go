// Package cmd implements the CLI commands for ArchGenie using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "archgenie",
	Short: "ArchGenie — generate cloud architectures from a description",
	Long: `ArchGenie turns an application description into an architecture diagram,
infrastructure code, a cost estimate, and documentation, by calling the
ArchGenie generation service and rendering its response.

Usage:
  archgenie generate --app <name> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
