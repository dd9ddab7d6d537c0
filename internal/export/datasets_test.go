package export_test

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fujipos/sales-import/internal/export"
	"github.com/fujipos/sales-import/internal/types"
	"github.com/fujipos/sales-import/internal/workbook"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func textRow(index int, values ...types.RawCell) types.Row {
	return types.Row{Index: index, Cells: values}
}

func TestBuildMonthlySummary(t *testing.T) {
	sheet := &workbook.Sheet{
		Name:   "Sheet1",
		Header: []string{"MONTH", "TOTAL SALES", "NO. OF DAYS CLOSED"},
		Keys:   []string{"month", "total_sales", "no_of_days_closed"},
		Rows: []types.Row{
			// Repeated header row mid-sheet.
			textRow(5, types.TextCell("MONTH"), types.TextCell("TOTAL SALES"), types.TextCell("NO. OF DAYS CLOSED")),
			textRow(6, types.TextCell("FEB 2022"), types.NumberCell(12345.678), types.NumberCell(3)),
			// Stray note with no resolvable month.
			textRow(7, types.TextCell("see notes"), types.BlankCell(), types.BlankCell()),
			// Blank label row.
			textRow(8, types.BlankCell(), types.NumberCell(1), types.BlankCell()),
		},
	}

	ds, stats, err := export.BuildMonthlySummary(sheet, map[string]bool{"no_of_days_closed": true}, quietLogger())
	if err != nil {
		t.Fatalf("BuildMonthlySummary: %v", err)
	}

	wantColumns := []string{"id", "date", "year", "month", "month_name", "original_month_string", "total_sales", "no_of_days_closed"}
	if !reflect.DeepEqual(ds.Columns, wantColumns) {
		t.Fatalf("Columns got=%v want=%v", ds.Columns, wantColumns)
	}

	if len(ds.Rows) != 1 {
		t.Fatalf("row count got=%d want=1", len(ds.Rows))
	}
	want := []string{"monthly_2022_02", "2022-02-01", "2022", "2", "FEB", "FEB 2022", "12345.68", "3"}
	if !reflect.DeepEqual(ds.Rows[0], want) {
		t.Fatalf("row got=%v want=%v", ds.Rows[0], want)
	}

	if stats.RowsRead != 4 || stats.RowsSkipped != 3 || stats.RecordsWritten != 1 {
		t.Fatalf("stats got=%+v want read=4 skipped=3 written=1", stats)
	}
}

func TestBuildMonthlySummary_NoMonthColumn(t *testing.T) {
	sheet := &workbook.Sheet{
		Name:   "Sheet1",
		Header: []string{"TOTAL"},
		Keys:   []string{"total"},
	}
	if _, _, err := export.BuildMonthlySummary(sheet, nil, quietLogger()); err == nil {
		t.Fatalf("BuildMonthlySummary accepted a sheet without a month column")
	}
}

func TestBuildDailySummary(t *testing.T) {
	day := time.Date(2022, 2, 7, 0, 0, 0, 0, time.UTC)
	sheet := &workbook.Sheet{
		Name:   "FEB 2022",
		Header: []string{"DATE", "DAY", "TOTAL"},
		Keys:   []string{"date", "day", "total"},
		Rows: []types.Row{
			// Weekday label row carries no date.
			textRow(3, types.TextCell("MON"), types.TextCell("DAY"), types.BlankCell()),
			textRow(4, types.DateCell(day), types.TextCell("MON"), types.NumberCell(431.5)),
			textRow(5, types.BlankCell(), types.BlankCell(), types.BlankCell()),
		},
	}

	ds, stats, err := export.BuildDailySummary(sheet, quietLogger())
	if err != nil {
		t.Fatalf("BuildDailySummary: %v", err)
	}

	wantColumns := []string{"id", "date", "day", "total"}
	if !reflect.DeepEqual(ds.Columns, wantColumns) {
		t.Fatalf("Columns got=%v want=%v", ds.Columns, wantColumns)
	}

	if len(ds.Rows) != 1 {
		t.Fatalf("row count got=%d want=1", len(ds.Rows))
	}
	want := []string{"daily_2022_02_07", "2022-02-07", "MON", "431.50"}
	if !reflect.DeepEqual(ds.Rows[0], want) {
		t.Fatalf("row got=%v want=%v", ds.Rows[0], want)
	}

	if stats.RowsRead != 3 || stats.RowsSkipped != 2 || stats.RecordsWritten != 1 {
		t.Fatalf("stats got=%+v want read=3 skipped=2 written=1", stats)
	}
}

func TestBuildDailySummary_NoDateColumn(t *testing.T) {
	sheet := &workbook.Sheet{
		Name:   "FEB 2022",
		Header: []string{"DAY"},
		Keys:   []string{"day"},
	}
	if _, _, err := export.BuildDailySummary(sheet, quietLogger()); err == nil {
		t.Fatalf("BuildDailySummary accepted a sheet without a date column")
	}
}
