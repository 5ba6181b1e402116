// =============================================================================
// Concrete Mix Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'report', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (mixreport)
//   ├── reportCmd (mixreport report)
//   └── versionCmd (mixreport version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/concretebot/mixreport/internal/config"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mixreport",
	Short: "Concrete Mix Report - Summarize delivery line items into a monthly CSV report",
	Long: `Concrete Mix Report is a one-shot batch tool that aggregates concrete
delivery line items from a directory of Excel workbooks into a single
summarized CSV report.

Line items are read from the LineItems tab of each workbook, grouped by
location, building level, and mix description, and reported in two sections:
"Main Mixes" (Mix Customer items) and "Additional Mixes" (pump charges,
surcharges, and other item types), with totals for quantity, cost, and
distinct delivery tickets.

Example Usage:
  mixreport report --input ./tickets          # Report on all workbooks in ./tickets
  mixreport report -i ./tickets -o report.csv # Write the report to a custom path
  mixreport report --config ./my.yaml         # Use a custom configuration file`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the diagnostic logger used across the run. Diagnostics go
// to stderr so the report counters on stdout stay machine-readable.
func newLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.Level()
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"mixreport.yaml",
		"Path to the configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
