// Package cli provides the Cobra command structure for shpatch.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shpatch/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root shpatch command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "shpatch",
		Short: "Apply shell-script fix suggestions from static analysis tools",
		Long: `shpatch applies batches of fix suggestions, as emitted by shell
static-analysis tools in their JSON fix format, onto a single script.

Each fix may carry several coordinated replacements that land atomically:
either every replacement is accepted or the whole fix is rejected. Fixes
whose edit ranges collide with already-accepted edits are rejected
individually without aborting the batch.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
