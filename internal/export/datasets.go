// =============================================================================
// Sales Import - Dataset Builders
// =============================================================================
//
// This module turns classified sheets into the output datasets:
//
//   monthly_summary  - one record per month from the grand-totals sheet
//   daily_summary    - one record per day from the month summary sheet
//   orders           - synthesized orders from the per-day transaction sheets
//   order_items      - synthesized line items belonging to those orders
//   transactions     - the complete per-row transaction export, all columns
//
// Builders are pure with respect to the filesystem: they consume sheets and
// produce in-memory datasets plus statistics. Sheets are processed in
// workbook order and rows in source order, which fixes the user-visible ID
// sequence of the synthesized records.
//
// =============================================================================

package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fujipos/sales-import/internal/config"
	"github.com/fujipos/sales-import/internal/engine"
	"github.com/fujipos/sales-import/internal/normalize"
	"github.com/fujipos/sales-import/internal/types"
	"github.com/fujipos/sales-import/internal/workbook"
)

// Dataset names double as output file basenames.
const (
	DatasetMonthlySummary = "monthly_summary"
	DatasetDailySummary   = "daily_summary"
	DatasetOrders         = "orders"
	DatasetOrderItems     = "order_items"
	DatasetTransactions   = "transactions"
)

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// BuildMonthlySummary converts the grand-totals sheet into the
// monthly_summary dataset. Rows whose label fails month resolution (repeated
// headers, stray notes) are skipped, not errors.
func BuildMonthlySummary(sheet *workbook.Sheet, countCols map[string]bool, log *logrus.Logger) (*types.Dataset, types.ExportStats, error) {
	var stats types.ExportStats

	monthIdx := sheet.ColumnIndex("month")
	if monthIdx < 0 {
		return nil, stats, fmt.Errorf("sheet %s has no month column", sheet.Name)
	}

	// Fixed lead columns followed by every other sheet column in order.
	columns := []string{"id", "date", "year", "month", "month_name", "original_month_string"}
	var extraIdx []int
	for i, key := range sheet.Keys {
		if i == monthIdx {
			continue
		}
		columns = append(columns, key)
		extraIdx = append(extraIdx, i)
	}

	ds := &types.Dataset{Name: DatasetMonthlySummary, Columns: columns}

	for _, row := range sheet.Rows {
		stats.RowsRead++

		label := row.Cell(monthIdx)
		if label.Kind != types.CellText {
			stats.RowsSkipped++
			continue
		}
		year, month, ok := workbook.ResolveMonthLabel(label.Text)
		if !ok {
			stats.RowsSkipped++
			log.WithFields(logrus.Fields{
				"dataset": DatasetMonthlySummary,
				"row":     row.Index,
				"label":   strings.TrimSpace(label.Text),
			}).Debug("skipping row with unresolvable month label")
			continue
		}

		out := []string{
			fmt.Sprintf("monthly_%d_%02d", year, month),
			fmt.Sprintf("%04d-%02d-01", year, month),
			strconv.Itoa(year),
			strconv.Itoa(month),
			workbook.MonthName(month),
			strings.TrimSpace(label.Text),
		}
		for n, i := range extraIdx {
			cell := row.Cell(i)
			if countCols[columns[6+n]] {
				out = append(out, strconv.Itoa(normalize.Count(cell)))
			} else {
				out = append(out, normalize.Currency(cell).StringFixed(2))
			}
		}
		ds.Rows = append(ds.Rows, out)
		stats.RecordsWritten++
	}

	return ds, stats, nil
}

// =============================================================================
// DAILY SUMMARY
// =============================================================================

// BuildDailySummary converts the month summary sheet into the daily_summary
// dataset. A row counts as data only when its date cell actually holds a
// date; weekday labels and repeated headers carry none and drop out here.
func BuildDailySummary(sheet *workbook.Sheet, log *logrus.Logger) (*types.Dataset, types.ExportStats, error) {
	var stats types.ExportStats

	dateIdx := sheet.ColumnIndex("date")
	if dateIdx < 0 {
		return nil, stats, fmt.Errorf("sheet %s has no date column", sheet.Name)
	}

	columns := []string{"id", "date"}
	var extraIdx []int
	for i, key := range sheet.Keys {
		if i == dateIdx {
			continue
		}
		columns = append(columns, key)
		extraIdx = append(extraIdx, i)
	}

	ds := &types.Dataset{Name: DatasetDailySummary, Columns: columns}

	for _, row := range sheet.Rows {
		stats.RowsRead++

		dateCell := row.Cell(dateIdx)
		if dateCell.Kind != types.CellDate {
			stats.RowsSkipped++
			continue
		}
		date := dateCell.Date.Format("2006-01-02")

		out := []string{
			"daily_" + strings.ReplaceAll(date, "-", "_"),
			date,
		}
		for n, i := range extraIdx {
			cell := row.Cell(i)
			key := columns[2+n]
			if key == "day" || strings.HasPrefix(key, "day_") {
				// Weekday labels stay text.
				out = append(out, cellText(cell))
			} else {
				out = append(out, normalize.Currency(cell).StringFixed(2))
			}
		}
		ds.Rows = append(ds.Rows, out)
		stats.RecordsWritten++
	}

	return ds, stats, nil
}

// =============================================================================
// TRANSACTION SHEETS
// =============================================================================

// transactionSheet is one per-day sheet with its resolved calendar date.
type transactionSheet struct {
	sheet *workbook.Sheet
	date  time.Time
}

// readTransactionSheets reads every per-day transaction sheet from the sales
// workbook in workbook order. A sheet that cannot be read or dated is logged
// and contributes nothing; processing continues with the next sheet.
func readTransactionSheets(wb *workbook.Workbook, cfg *config.Config, log *logrus.Logger) []transactionSheet {
	var sheets []transactionSheet

	for _, name := range wb.SheetNames() {
		if name == cfg.Sheets.MonthSummarySheet {
			continue
		}
		if !strings.HasPrefix(name, cfg.Sheets.TransactionSheetPrefix) {
			continue
		}

		sheet, err := wb.ReadSheet(name)
		if err != nil {
			log.WithFields(logrus.Fields{"sheet": name}).WithError(err).
				Warn("skipping unreadable transaction sheet")
			continue
		}

		date, ok := workbook.ResolveSheetDate(sheet, cfg.Sheets.Year)
		if !ok {
			log.WithFields(logrus.Fields{"sheet": name}).
				Warn("skipping transaction sheet with unresolvable date")
			continue
		}

		sheets = append(sheets, transactionSheet{sheet: sheet, date: date})
	}

	return sheets
}

// monetaryField normalizes the first matching column among keys, or zero
// when the sheet has none of them.
func monetaryField(sheet *workbook.Sheet, row types.Row, keys ...string) decimal.Decimal {
	for _, key := range keys {
		if idx := sheet.ColumnIndex(key); idx >= 0 {
			return normalize.Currency(row.Cell(idx))
		}
	}
	return decimal.Zero
}

// =============================================================================
// ORDERS AND ORDER ITEMS
// =============================================================================

// BuildOrders runs the transaction sheets through the synthesis engine and
// materializes the orders and order_items datasets. The sequence context is
// created here, scoped to this build, so repeated runs over the same
// workbook produce byte-identical output.
func BuildOrders(wb *workbook.Workbook, cfg *config.Config, log *logrus.Logger) (*types.Dataset, *types.Dataset, types.ExportStats, error) {
	var stats types.ExportStats

	ordersDS := &types.Dataset{
		Name: DatasetOrders,
		Columns: []string{
			"id", "order_date", "type", "table_number", "server_id", "status",
			"subtotal", "tax", "gratuity", "total", "payment_method",
		},
	}
	itemsDS := &types.Dataset{
		Name: DatasetOrderItems,
		Columns: []string{
			"id", "order_id", "item_id", "quantity", "unit_price",
			"modifiers", "special_instructions",
		},
	}

	eng := engine.New(cfg.Synthesis)
	seq := engine.NewSequence(cfg.Synthesis.TableMin, cfg.Synthesis.TableMax)

	sheets := readTransactionSheets(wb, cfg, log)
	if len(sheets) == 0 {
		return nil, nil, stats, fmt.Errorf("workbook %s has no usable transaction sheets", wb.Path())
	}

	for _, ts := range sheets {
		leadIdx := ts.sheet.ColumnIndex("transaction")
		if leadIdx < 0 {
			log.WithFields(logrus.Fields{"sheet": ts.sheet.Name}).
				Warn("skipping transaction sheet without transaction column")
			continue
		}

		for _, row := range ts.sheet.Rows {
			stats.RowsRead++

			if workbook.SkipTransactionRow(row.Cell(leadIdx)) {
				stats.RowsSkipped++
				continue
			}

			trow := engine.TransactionRow{
				Date:    ts.date,
				ToGo:    monetaryField(ts.sheet, row, "to_go", "togo"),
				DineIn:  monetaryField(ts.sheet, row, "dine_in"),
				Total:   monetaryField(ts.sheet, row, "total"),
				Service: monetaryField(ts.sheet, row, "service"),
				Receipt: monetaryField(ts.sheet, row, "receipt"),
			}

			order, items, ok := eng.Synthesize(trow, seq)
			if !ok {
				stats.RowsSkipped++
				log.WithFields(logrus.Fields{
					"sheet": ts.sheet.Name,
					"row":   row.Index,
				}).Debug("skipping transaction row with non-positive total")
				continue
			}

			ordersDS.Rows = append(ordersDS.Rows, renderOrder(order))
			for _, item := range items {
				itemsDS.Rows = append(itemsDS.Rows, renderOrderItem(item))
			}
			stats.RecordsWritten++
		}
	}

	return ordersDS, itemsDS, stats, nil
}

// renderOrder renders one order record in the orders column order.
func renderOrder(o types.OrderRecord) []string {
	table := ""
	if o.TableNumber != nil {
		table = strconv.Itoa(*o.TableNumber)
	}
	return []string{
		o.ID,
		o.OrderDate,
		string(o.Type),
		table,
		o.ServerID,
		o.Status,
		o.Subtotal.StringFixed(2),
		o.Tax.StringFixed(2),
		o.Gratuity.StringFixed(2),
		o.Total.StringFixed(2),
		string(o.PaymentMethod),
	}
}

// renderOrderItem renders one item record in the order_items column order.
func renderOrderItem(i types.OrderItemRecord) []string {
	return []string{
		i.ID,
		i.OrderID,
		i.ItemID,
		strconv.Itoa(i.Quantity),
		i.UnitPrice.StringFixed(2),
		i.Modifiers,
		i.SpecialInstructions,
	}
}

// =============================================================================
// COMPLETE TRANSACTION EXPORT
// =============================================================================

// BuildTransactions materializes the complete per-row transaction dataset:
// every normalized column of every sale row, before any synthesis. The
// column layout is taken from the first transaction sheet; all per-day
// sheets share it. Rows are kept only when they carry meaningful sale data
// (a positive total, to-go or dine-in amount).
func BuildTransactions(wb *workbook.Workbook, cfg *config.Config, log *logrus.Logger) (*types.Dataset, types.ColumnProvenanceMap, types.ExportStats, error) {
	var stats types.ExportStats

	sheets := readTransactionSheets(wb, cfg, log)
	if len(sheets) == 0 {
		return nil, types.ColumnProvenanceMap{}, stats,
			fmt.Errorf("workbook %s has no usable transaction sheets", wb.Path())
	}

	sample := sheets[0].sheet
	prov, err := BuildProvenance(sample.Header, sample.Keys)
	if err != nil {
		return nil, types.ColumnProvenanceMap{}, stats, err
	}

	columns := []string{"id", "date", "sheet_name", "row_index"}
	var valueKeys []string
	for _, key := range sample.Keys {
		if key == "date" {
			continue
		}
		columns = append(columns, key)
		valueKeys = append(valueKeys, key)
	}

	ds := &types.Dataset{Name: DatasetTransactions, Columns: columns}
	txnID := 1

	for _, ts := range sheets {
		leadIdx := ts.sheet.ColumnIndex("transaction")
		if leadIdx < 0 {
			log.WithFields(logrus.Fields{"sheet": ts.sheet.Name}).
				Warn("skipping transaction sheet without transaction column")
			continue
		}
		date := ts.date.Format("2006-01-02")

		for _, row := range ts.sheet.Rows {
			stats.RowsRead++

			if workbook.SkipTransactionRow(row.Cell(leadIdx)) {
				stats.RowsSkipped++
				continue
			}

			// Only rows with meaningful sale data are exported.
			total := monetaryField(ts.sheet, row, "total")
			togo := monetaryField(ts.sheet, row, "to_go", "togo")
			dineIn := monetaryField(ts.sheet, row, "dine_in")
			if !total.IsPositive() && !togo.IsPositive() && !dineIn.IsPositive() {
				stats.RowsSkipped++
				continue
			}

			out := []string{
				fmt.Sprintf("txn_%s_%03d", strings.ReplaceAll(date, "-", "_"), txnID),
				date,
				ts.sheet.Name,
				strconv.Itoa(row.Index),
			}
			for _, key := range valueKeys {
				idx := ts.sheet.ColumnIndex(key)
				cell := row.Cell(idx)
				if key == "transaction" {
					out = append(out, cellText(cell))
				} else {
					out = append(out, normalize.Currency(cell).StringFixed(2))
				}
			}

			ds.Rows = append(ds.Rows, out)
			stats.RecordsWritten++
			txnID++
		}
	}

	return ds, prov, stats, nil
}

// cellText renders a cell's content as plain text.
func cellText(cell types.RawCell) string {
	switch cell.Kind {
	case types.CellText:
		return strings.TrimSpace(cell.Text)
	case types.CellNumber:
		return strconv.FormatFloat(cell.Number, 'f', -1, 64)
	case types.CellDate:
		return cell.Date.Format("2006-01-02")
	default:
		return ""
	}
}
