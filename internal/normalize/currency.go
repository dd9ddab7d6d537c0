// =============================================================================
// Sales Import - Monetary Normalizer
// =============================================================================
//
// This module converts arbitrary cell representations of currency into
// canonical signed decimal values. The source workbooks are human-authored:
// the same column can hold a bare number in one row, "$1,234.56" in the next,
// and "(45.00)" for a refund.
//
// The normalizer is a total function. A malformed cell becomes zero rather
// than an error, so one bad cell never aborts a batch.
//
// =============================================================================

package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fujipos/sales-import/internal/types"
)

// Currency converts a raw cell into a canonical signed decimal value.
//
// Rules, in order:
//   - blank cells, empty strings and literal zero yield 0
//   - numeric cells are converted directly
//   - text cells are stripped of currency symbols and thousands separators;
//     a value wrapped in parentheses is negated (accounting notation)
//   - anything that still fails to parse yields 0
func Currency(cell types.RawCell) decimal.Decimal {
	switch cell.Kind {
	case types.CellBlank:
		return decimal.Zero
	case types.CellNumber:
		return decimal.NewFromFloat(cell.Number)
	case types.CellDate:
		// A date has no monetary reading.
		return decimal.Zero
	}

	cleaned := strings.TrimSpace(cell.Text)
	if cleaned == "" {
		return decimal.Zero
	}

	// Strip currency symbols and thousands separators.
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	// Accounting notation: (45.00) means -45.00.
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		// Fail closed: malformed cells become zero.
		return decimal.Zero
	}
	return value
}

// Count converts a raw cell into a non-negative integer count. Columns such
// as "days closed" hold counts, not currency; values that do not parse as a
// whole number yield 0, mirroring the fail-closed currency policy.
func Count(cell types.RawCell) int {
	switch cell.Kind {
	case types.CellNumber:
		if cell.Number < 0 {
			return 0
		}
		return int(cell.Number)
	case types.CellText:
		v := Currency(cell)
		if v.IsNegative() {
			return 0
		}
		return int(v.IntPart())
	default:
		return 0
	}
}
