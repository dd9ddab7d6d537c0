// =============================================================================
// Sales Import - Dataset Exporter
// =============================================================================
//
// The Exporter orchestrates one dataset export end to end: open the source
// workbook, build the dataset, write it and its provenance artifact. Each
// dataset is an independent export function that opens its own workbook, so
// a failure in one (missing sheet, unreadable file) never halts its
// siblings; it is reported through the Result and the run continues.
//
// =============================================================================

package export

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fujipos/sales-import/internal/config"
	"github.com/fujipos/sales-import/internal/types"
	"github.com/fujipos/sales-import/internal/workbook"
)

// Exporter runs dataset exports for a single run.
type Exporter struct {
	cfg   *config.Config
	log   *logrus.Logger
	runID string
}

// NewExporter builds an exporter for one run. The run ID is stamped into
// every provenance artifact written by this exporter.
func NewExporter(cfg *config.Config, log *logrus.Logger, runID string) *Exporter {
	return &Exporter{cfg: cfg, log: log, runID: runID}
}

// =============================================================================
// DATASET EXPORT FUNCTIONS
// =============================================================================

// MonthlySummary exports the monthly_summary dataset from the grand-totals
// workbook. The aggregate sheet is the workbook's first sheet.
func (e *Exporter) MonthlySummary() types.Result {
	start := time.Now()

	wb, err := workbook.Open(e.cfg.SummaryWorkbook)
	if err != nil {
		return e.fail(DatasetMonthlySummary, err)
	}
	defer wb.Close()

	names := wb.SheetNames()
	if len(names) == 0 {
		return e.fail(DatasetMonthlySummary, fmt.Errorf("workbook %s has no sheets", wb.Path()))
	}

	sheet, err := wb.ReadSheet(names[0])
	if err != nil {
		return e.fail(DatasetMonthlySummary, err)
	}

	ds, stats, err := BuildMonthlySummary(sheet, e.cfg.CountColumnSet(), e.log)
	if err != nil {
		return e.fail(DatasetMonthlySummary, err)
	}

	prov, err := BuildProvenance(sheet.Header, sheet.Keys)
	if err != nil {
		return e.fail(DatasetMonthlySummary, err)
	}

	return e.finish(ds, prov, stats, start)
}

// DailySummary exports the daily_summary dataset from the sales workbook's
// month summary sheet.
func (e *Exporter) DailySummary() types.Result {
	start := time.Now()

	wb, err := workbook.Open(e.cfg.SalesWorkbook)
	if err != nil {
		return e.fail(DatasetDailySummary, err)
	}
	defer wb.Close()

	sheet, err := wb.ReadSheet(e.cfg.Sheets.MonthSummarySheet)
	if err != nil {
		return e.fail(DatasetDailySummary, err)
	}

	ds, stats, err := BuildDailySummary(sheet, e.log)
	if err != nil {
		return e.fail(DatasetDailySummary, err)
	}

	prov, err := BuildProvenance(sheet.Header, sheet.Keys)
	if err != nil {
		return e.fail(DatasetDailySummary, err)
	}

	return e.finish(ds, prov, stats, start)
}

// OrdersAndItems exports the orders and order_items datasets from the
// per-day transaction sheets. The two datasets are produced by one pass and
// succeed or fail together up to the point of writing; each write is still
// atomic on its own.
func (e *Exporter) OrdersAndItems() []types.Result {
	start := time.Now()

	wb, err := workbook.Open(e.cfg.SalesWorkbook)
	if err != nil {
		return []types.Result{e.fail(DatasetOrders, err), e.fail(DatasetOrderItems, err)}
	}
	defer wb.Close()

	ordersDS, itemsDS, stats, err := BuildOrders(wb, e.cfg, e.log)
	if err != nil {
		return []types.Result{e.fail(DatasetOrders, err), e.fail(DatasetOrderItems, err)}
	}

	// Synthesized datasets have canonical columns already; their provenance
	// maps each column to itself.
	ordersProv, err := BuildProvenance(ordersDS.Columns, ordersDS.Columns)
	if err != nil {
		return []types.Result{e.fail(DatasetOrders, err), e.fail(DatasetOrderItems, err)}
	}
	itemsProv, err := BuildProvenance(itemsDS.Columns, itemsDS.Columns)
	if err != nil {
		return []types.Result{e.fail(DatasetOrders, err), e.fail(DatasetOrderItems, err)}
	}

	itemStats := stats
	itemStats.RecordsWritten = len(itemsDS.Rows)

	return []types.Result{
		e.finish(ordersDS, ordersProv, stats, start),
		e.finish(itemsDS, itemsProv, itemStats, start),
	}
}

// Transactions exports the complete per-row transaction dataset from the
// per-day transaction sheets.
func (e *Exporter) Transactions() types.Result {
	start := time.Now()

	wb, err := workbook.Open(e.cfg.SalesWorkbook)
	if err != nil {
		return e.fail(DatasetTransactions, err)
	}
	defer wb.Close()

	ds, prov, stats, err := BuildTransactions(wb, e.cfg, e.log)
	if err != nil {
		return e.fail(DatasetTransactions, err)
	}

	return e.finish(ds, prov, stats, start)
}

// =============================================================================
// RESULT HELPERS
// =============================================================================

// finish writes a built dataset and its provenance artifact, returning the
// completed Result.
func (e *Exporter) finish(ds *types.Dataset, prov types.ColumnProvenanceMap, stats types.ExportStats, start time.Time) types.Result {
	outputPath, err := WriteDataset(e.cfg.OutputDir, ds)
	if err != nil {
		return e.fail(ds.Name, err)
	}

	provPath, err := WriteProvenance(e.cfg.OutputDir, ds.Name, e.runID, prov)
	if err != nil {
		return e.fail(ds.Name, err)
	}

	stats.Elapsed = time.Since(start)

	e.log.WithFields(logrus.Fields{
		"dataset": ds.Name,
		"records": stats.RecordsWritten,
		"skipped": stats.RowsSkipped,
		"output":  outputPath,
	}).Info("dataset exported")

	return types.Result{
		Dataset:        ds.Name,
		OutputFile:     outputPath,
		ProvenanceFile: provPath,
		Success:        true,
		Stats:          stats,
	}
}

// fail logs and returns a failed Result for a dataset.
func (e *Exporter) fail(dataset string, err error) types.Result {
	e.log.WithFields(logrus.Fields{"dataset": dataset}).WithError(err).
		Error("dataset export failed")
	return types.Result{Dataset: dataset, Success: false, Error: err}
}
