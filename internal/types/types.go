// =============================================================================
// Sales Import - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - workbook
//   - engine
//   - export
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RAW CELL UNION
// =============================================================================

// CellKind identifies the shape of a raw spreadsheet cell.
type CellKind int

const (
	// CellBlank is an empty or whitespace-only cell.
	CellBlank CellKind = iota

	// CellNumber is a cell whose content parses as a number.
	CellNumber

	// CellText is any other non-empty cell.
	CellText

	// CellDate is a cell whose content parses as a calendar date.
	CellDate
)

// RawCell is an untyped value read from a spreadsheet cell. It is the source
// of truth for all normalization and is never mutated after construction.
// Exactly one of Number, Text, or Date is meaningful, selected by Kind; a
// blank cell carries no payload at all.
type RawCell struct {
	Kind   CellKind
	Number float64
	Text   string
	Date   time.Time
}

// BlankCell returns a cell of kind CellBlank.
func BlankCell() RawCell {
	return RawCell{Kind: CellBlank}
}

// NumberCell returns a cell of kind CellNumber holding n.
func NumberCell(n float64) RawCell {
	return RawCell{Kind: CellNumber, Number: n}
}

// TextCell returns a cell of kind CellText holding s.
func TextCell(s string) RawCell {
	return RawCell{Kind: CellText, Text: s}
}

// DateCell returns a cell of kind CellDate holding t.
func DateCell(t time.Time) RawCell {
	return RawCell{Kind: CellDate, Date: t}
}

// IsBlank reports whether the cell is blank.
func (c RawCell) IsBlank() bool {
	return c.Kind == CellBlank
}

// Row is a single data row of a sheet. Index is the 0-based position within
// the sheet's data region, kept for provenance and error reporting.
type Row struct {
	Index int
	Cells []RawCell
}

// Cell returns the cell at column i, or a blank cell when the row is shorter
// than the header (trailing blank cells are routinely dropped by readers).
func (r Row) Cell(i int) RawCell {
	if i >= 0 && i < len(r.Cells) {
		return r.Cells[i]
	}
	return BlankCell()
}

// =============================================================================
// AGGREGATE RECORDS
// =============================================================================

// MonthlyAggregateRecord is one summarized month from the grand-totals
// workbook. Values holds every normalized column besides the month label,
// already cleaned and formatted for output.
type MonthlyAggregateRecord struct {
	ID                 string
	Date               string
	Year               int
	Month              int
	MonthName          string
	OriginalMonthLabel string
	Values             map[string]string
}

// DailyAggregateRecord is one summarized calendar day from the month summary
// sheet of the sales workbook.
type DailyAggregateRecord struct {
	ID     string
	Date   string
	Values map[string]string
}

// TransactionExportRecord is one raw transaction row exported with all of its
// normalized columns, before any synthesis.
type TransactionExportRecord struct {
	ID        string
	Date      string
	SheetName string
	RowIndex  int
	Values    map[string]string
}

// =============================================================================
// SYNTHESIZED ORDER RECORDS
// =============================================================================

// OrderType distinguishes dine-in from take-out orders.
type OrderType string

const (
	OrderDineIn  OrderType = "dine_in"
	OrderTakeOut OrderType = "take_out"
)

// PaymentMethod is inferred from the service-charge column: card processors
// collect a service fee, cash does not.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
)

// OrderRecord is a synthesized order reconstructed from one transaction row.
//
// Invariants maintained by the engine:
//   - Subtotal, Tax and Gratuity are never negative.
//   - Total is strictly positive (non-positive rows are never materialized).
//   - TableNumber is nil for take-out orders.
type OrderRecord struct {
	ID            string
	OrderDate     string
	Type          OrderType
	TableNumber   *int
	ServerID      string
	Status        string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Gratuity      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
}

// OrderItemRecord is a synthesized line item. No item-level detail exists in
// the source workbooks, so the engine fabricates between one and four items
// per order whose unit prices sum back to the order subtotal.
type OrderItemRecord struct {
	ID                  string
	OrderID             string
	ItemID              string
	Quantity            int
	UnitPrice           decimal.Decimal
	Modifiers           string
	SpecialInstructions string
}

// =============================================================================
// PROVENANCE
// =============================================================================

// ColumnProvenanceMap records the original -> normalized column-name mapping
// for a dataset. It is written alongside each dataset for audit and is never
// read back by the engine.
type ColumnProvenanceMap struct {
	OriginalColumns []string `json:"original_columns"`
	CleanedColumns  []string `json:"cleaned_columns"`
	TotalColumns    int      `json:"total_columns"`
}

// =============================================================================
// DATASETS AND RESULTS
// =============================================================================

// Dataset is a fully materialized tabular output: an ordered column set and
// the rows rendered as strings, ready for the CSV writer.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Result represents the outcome of exporting a single dataset.
type Result struct {
	// Dataset is the dataset name (e.g. "monthly_summary").
	Dataset string

	// OutputFile is the path to the written dataset file.
	// Empty if the export failed.
	OutputFile string

	// ProvenanceFile is the path to the written provenance artifact.
	ProvenanceFile string

	// Success indicates whether the export completed.
	Success bool

	// Error contains the failure if Success is false.
	Error error

	// Stats contains export statistics.
	Stats ExportStats
}

// ExportStats contains statistics about a single dataset export.
type ExportStats struct {
	// RowsRead is the number of sheet rows examined.
	RowsRead int

	// RowsSkipped is the number of rows rejected by the classifier or the
	// engine (header rows, weekday labels, non-positive totals).
	RowsSkipped int

	// RecordsWritten is the number of output records produced.
	RecordsWritten int

	// Elapsed is the time taken for this dataset.
	Elapsed time.Duration
}
