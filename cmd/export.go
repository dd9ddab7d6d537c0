// =============================================================================
// Sales Import - Export Command
// =============================================================================
//
// This file defines the 'export' command, which runs the full import
// pipeline and writes every dataset.
//
// COMMAND USAGE:
//   sales-import export [flags]
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Export the monthly summary from the grand-totals workbook
//   3. Export the daily summary from the sales workbook
//   4. Export synthesized orders and order items from the transaction sheets
//   5. Export the complete per-row transaction dataset
//   6. Write the run summary log
//
// Datasets are exported strictly in sequence: row order determines the
// synthesized ID sequence, which is part of the observable output. A
// failure in one dataset is reported and the run continues with the rest;
// the command fails only when no dataset could be produced at all.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fujipos/sales-import/internal/config"
	"github.com/fujipos/sales-import/internal/export"
	"github.com/fujipos/sales-import/internal/types"
	"github.com/fujipos/sales-import/pkg/utils"
)

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all normalized sales datasets",
	Long: `The export command reads the configured workbooks and writes the
monthly_summary, daily_summary, orders, order_items and transactions
datasets, each with a provenance artifact mapping original headers to
normalized column names.

Each dataset is exported independently: a missing sheet or unreadable
workbook skips that dataset and the run continues. Dataset files are
written atomically and replace any previous export in full.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

// runExport is the main function that orchestrates the export pipeline.
func runExport() error {
	startTime := time.Now()

	fmt.Println("=== Sales Import ===")
	fmt.Println("Loading configuration...")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !verbose {
		applyLogLevel(cfg.LogLevel)
	}

	// Either workbook alone still yields its datasets; with both absent
	// there is nothing to do and the run fails.
	if !utils.FileExists(cfg.SummaryWorkbook) && !utils.FileExists(cfg.SalesWorkbook) {
		return fmt.Errorf("no input workbooks found (looked for %s and %s)",
			cfg.SummaryWorkbook, cfg.SalesWorkbook)
	}

	runID := uuid.NewString()
	exporter := export.NewExporter(cfg, logger, runID)

	fmt.Println("Exporting datasets...")

	var results []types.Result
	results = append(results, exporter.MonthlySummary())
	results = append(results, exporter.DailySummary())
	results = append(results, exporter.OrdersAndItems()...)
	results = append(results, exporter.Transactions())

	summary := utils.RunSummary{
		RunID:     runID,
		StartedAt: startTime.UTC(),
	}

	for _, result := range results {
		if result.Success {
			summary.Successful++
			fmt.Printf("  ✓ %-16s %6d records -> %s\n",
				result.Dataset, result.Stats.RecordsWritten, filepath.Base(result.OutputFile))
		} else {
			summary.Failed++
			fmt.Printf("  ✗ %-16s %v\n", result.Dataset, result.Error)
		}
		summary.Datasets = append(summary.Datasets, datasetSummary(result))
	}

	elapsed := time.Since(startTime)
	summary.ElapsedMS = elapsed.Milliseconds()

	fmt.Println("\n=== Export Complete ===")
	fmt.Printf("Datasets:        %d\n", len(results))
	fmt.Printf("Successful:      %d\n", summary.Successful)
	fmt.Printf("Failed:          %d\n", summary.Failed)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if path, err := utils.WriteSummaryLog(summary, cfg.OutputDir); err != nil {
		logger.WithError(err).Warn("failed to write run summary log")
	} else {
		fmt.Printf("Run summary:     %s\n", path)
	}

	if summary.Successful == 0 {
		return fmt.Errorf("all dataset exports failed")
	}
	return nil
}

// datasetSummary converts an export result into its summary-log line.
func datasetSummary(r types.Result) utils.DatasetSummary {
	ds := utils.DatasetSummary{
		Dataset:    r.Dataset,
		Success:    r.Success,
		Records:    r.Stats.RecordsWritten,
		Skipped:    r.Stats.RowsSkipped,
		OutputFile: r.OutputFile,
	}
	if r.Error != nil {
		ds.Error = r.Error.Error()
	}
	return ds
}

// applyLogLevel maps the configured level onto the shared logger.
func applyLogLevel(level string) {
	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}
