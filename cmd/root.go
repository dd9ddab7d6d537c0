// =============================================================================
// Sales Import - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('export', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sales-import)
//   ├── exportCmd (sales-import export)
//   └── versionCmd (sales-import version)
//
// The root command owns the global flags (--config, --verbose) and the
// shared structured logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logger is the shared structured logger, configured before any subcommand
// runs.
var logger = logrus.New()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sales-import",
	Short: "Sales Import - Rebuild normalized sales datasets from legacy workbooks",

	Long: `Sales Import reads hand-maintained Excel sales workbooks (a grand-totals
summary and a month of per-day transaction sheets) and reconstructs a
normalized relational dataset: monthly aggregates, daily aggregates, and
synthesized order / line-item records ready for loading into a database.

Every dataset is written together with a provenance artifact mapping the
original spreadsheet headers to the normalized output columns.

Example Usage:
  sales-import export                   # Export all datasets
  sales-import export --config my.yaml  # Use a custom configuration file`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetOutput(os.Stdout)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
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

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
