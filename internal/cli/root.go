// Package cli provides the Cobra command structure for mddecor.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/logging"
)

// ErrUsage wraps command-line parsing errors.
var ErrUsage = errors.New("invalid usage")

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mddecor command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "mddecor",
		Short: "Decorate Markdown without rewriting it",
		Long: `mddecor scans Markdown line by line and reports the decorations an
editor would paint over it: heading, list, quote and rule lines, inline
emphasis, links, images, code fences and interactive task checkboxes.

The text itself is never rewritten, except when toggling a checkbox, which
changes exactly the three characters of its [ ] token.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			switch {
			case debug:
				logging.SetLevel("debug")
			case logLevel != "":
				logging.SetLevel(logLevel)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn, error (overrides config)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newDecorateCommand())
	rootCmd.AddCommand(newToggleCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newOpenCommand())
	rootCmd.AddCommand(newCursorCommand())
	rootCmd.AddCommand(newClassesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
