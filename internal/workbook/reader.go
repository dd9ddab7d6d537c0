// =============================================================================
// Sales Import - Workbook Reader
// =============================================================================
//
// This module reads XLSX workbooks via excelize and converts each sheet into
// typed rows of RawCell values. The reader performs no interpretation beyond
// cell typing: blank, number, date, or text. All domain logic (sentinel rows,
// month labels, monetary cleanup) lives in the classifier and normalizers.
//
// Cell typing works on the formatted cell text excelize returns:
//   - empty / whitespace-only        -> Blank
//   - matches a known date layout    -> Date
//   - parses as a float              -> Number
//   - anything else                  -> Text
//
// =============================================================================

package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fujipos/sales-import/internal/normalize"
	"github.com/fujipos/sales-import/internal/types"
)

// dateLayouts are the formats excelize produces for date-styled cells plus
// the ISO form found in hand-entered cells. Order matters: the most specific
// layouts come first so "1/2/06 15:04" is not truncated by "1/2/06".
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"1/2/06 15:04",
	"01-02-06 15:04",
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"01-02-06",
}

// Workbook wraps an open XLSX file.
type Workbook struct {
	path string
	file *excelize.File
}

// Sheet is one sheet converted into typed rows. Header holds the original
// header strings, Keys the normalized column keys (positionally aligned),
// and Rows the data rows below the header.
type Sheet struct {
	Name   string
	Header []string
	Keys   []string
	Rows   []types.Row
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Path returns the workbook's file path.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the sheet names in workbook order. Order is significant:
// it determines row processing order and therefore the user-visible ID
// sequence of synthesized records.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// ReadSheet reads a single sheet into typed rows. The first row is treated
// as the header; each subsequent row is typed cell by cell. Fully empty rows
// are dropped.
func (w *Workbook) ReadSheet(name string) (*Sheet, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", name)
	}

	header := rows[0]
	sheet := &Sheet{
		Name:   name,
		Header: header,
		Keys:   normalize.Headers(header),
	}

	for i, raw := range rows[1:] {
		if isRowEmpty(raw) {
			continue
		}
		row := types.Row{Index: i, Cells: make([]types.RawCell, len(raw))}
		for j, cell := range raw {
			row.Cells[j] = TypeCell(cell)
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// ColumnIndex returns the position of a normalized column key within the
// sheet, or -1 when the sheet has no such column.
func (s *Sheet) ColumnIndex(key string) int {
	for i, k := range s.Keys {
		if k == key {
			return i
		}
	}
	return -1
}

// TypeCell converts one formatted cell string into a RawCell.
func TypeCell(text string) types.RawCell {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.BlankCell()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return types.DateCell(t)
		}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return types.NumberCell(n)
	}
	return types.TextCell(text)
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
