// =============================================================================
// Sales Import - Row Classifier / Date Resolver
// =============================================================================
//
// The source workbooks interleave label rows with data rows: the grand-totals
// sheet repeats its "MONTH" header mid-sheet, and the per-day transaction
// sheets carry weekday labels and "CASH/CR" subheadings between sales. This
// module distinguishes those label rows from data rows and resolves a
// calendar date or month-year key per sheet.
//
// Two sheet roles are recognized:
//   - aggregate:     one row per month, label column holds "JAN 2021" etc.
//   - transactional: one row per sale, sheets named by a day token ("2-7"
//                    meaning February 7), date resolved once per sheet.
//
// =============================================================================

package workbook

import (
	"strconv"
	"strings"
	"time"

	"github.com/fujipos/sales-import/internal/types"
)

// monthHeaderSentinel is the label-column header repeated inside the
// grand-totals sheet body.
const monthHeaderSentinel = "MONTH"

// monthAbbrevs maps the fixed three-letter month abbreviations used in the
// aggregate sheet's labels.
var monthAbbrevs = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// monthNames is the reverse of monthAbbrevs, for building records.
var monthNames = [13]string{"",
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// weekdaySentinels are labels that appear in the day column of summary
// sheets in place of data. "DAY" is the repeated column header.
var weekdaySentinels = map[string]bool{
	"DAY": true,
	"MON": true, "TUE": true, "WED": true, "THU": true,
	"FRI": true, "SAT": true, "SUN": true,
}

// transactionSentinels are labels that appear in the lead column of
// transaction sheets in place of a transaction number.
var transactionSentinels = map[string]bool{
	"TRANSACTION": true,
	"CASH/CR":     true,
}

// MonthName returns the fixed abbreviation for a month number, or "" when
// the number is out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// ResolveMonthLabel parses an aggregate-sheet label such as "JAN 2021" into
// a (year, month) pair. It returns ok=false for the repeated header
// sentinel, labels with fewer than two tokens, unknown month abbreviations,
// and years that are not four digits. Callers skip such rows; they are not
// errors.
func ResolveMonthLabel(label string) (year, month int, ok bool) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" || strings.EqualFold(trimmed, monthHeaderSentinel) {
		return 0, 0, false
	}

	parts := strings.Fields(trimmed)
	if len(parts) < 2 {
		return 0, 0, false
	}

	month, found := monthAbbrevs[strings.ToUpper(parts[0])]
	if !found {
		return 0, 0, false
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1000 || year > 9999 {
		return 0, 0, false
	}

	return year, month, true
}

// IsWeekdaySentinel reports whether a cell holds a weekday label or the
// repeated "DAY" header rather than data.
func IsWeekdaySentinel(cell types.RawCell) bool {
	if cell.Kind != types.CellText {
		return false
	}
	return weekdaySentinels[strings.ToUpper(strings.TrimSpace(cell.Text))]
}

// SkipTransactionRow reports whether a transaction row should be skipped
// based on its lead (transaction-number) cell: blank cells and the repeated
// header/"CASH/CR" labels mark structural rows, not sales.
func SkipTransactionRow(lead types.RawCell) bool {
	switch lead.Kind {
	case types.CellBlank:
		return true
	case types.CellText:
		label := strings.ToUpper(strings.TrimSpace(lead.Text))
		return transactionSentinels[label] || weekdaySentinels[label]
	default:
		return false
	}
}

// ParseSheetToken parses a transaction sheet name of the form
// "<month-digit>-<day-digit>", e.g. "2-7". It returns ok=false for any name
// outside that convention (summary sheets, scratch sheets).
func ParseSheetToken(name string) (month, day int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(name), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	day, err = strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, false
	}
	return month, day, true
}

// ResolveSheetDate resolves the calendar date for a transactional sheet.
// An explicit date-typed cell in the first data row wins; otherwise the date
// is derived from the sheet's day token combined with the configured year.
// Every data row in the sheet inherits this date.
func ResolveSheetDate(sheet *Sheet, year int) (time.Time, bool) {
	if idx := sheet.ColumnIndex("date"); idx >= 0 && len(sheet.Rows) > 0 {
		if cell := sheet.Rows[0].Cell(idx); cell.Kind == types.CellDate {
			d := cell.Date
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	month, day, ok := ParseSheetToken(sheet.Name)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
