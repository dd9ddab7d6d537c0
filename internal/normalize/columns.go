// =============================================================================
// Sales Import - Column Key Normalizer
// =============================================================================
//
// This module canonicalizes arbitrary spreadsheet headers into stable
// snake_case identifiers suitable for downstream table columns. Headers in
// the source workbooks carry trailing spaces, mixed case and punctuation
// ("TO GO ", "CREDT TOTAL", "CASH "), and some columns have no header at all.
//
// Anonymous columns are keyed by their positional index so that two unnamed
// columns can never silently collide.
//
// =============================================================================

package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// anonymousSentinel marks headers that spreadsheet tooling emits for columns
// without a title.
const anonymousSentinel = "Unnamed:"

var (
	nonKeyRuns     = regexp.MustCompile(`[^a-z0-9_]+`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// ColumnKey converts a single header into a snake_case identifier:
// lower-case, every run of characters outside [a-z0-9_] collapsed to one
// underscore, repeated underscores collapsed, leading/trailing underscores
// trimmed. The function is deterministic and idempotent.
func ColumnKey(header string) string {
	key := strings.ToLower(header)
	key = nonKeyRuns.ReplaceAllString(key, "_")
	key = underscoreRuns.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

// AnonymousKey returns the synthetic key for an unnamed column at the given
// positional index.
func AnonymousKey(index int) string {
	return fmt.Sprintf("unnamed_column_%d", index)
}

// Headers normalizes a full header row positionally. Blank headers and
// anonymous-column sentinels map to unnamed_column_<index>; everything else
// goes through ColumnKey. The result has the same length and order as the
// input.
func Headers(raw []string) []string {
	keys := make([]string, len(raw))
	for i, header := range raw {
		trimmed := strings.TrimSpace(header)
		if trimmed == "" || strings.HasPrefix(trimmed, anonymousSentinel) {
			keys[i] = AnonymousKey(i)
			continue
		}
		keys[i] = ColumnKey(trimmed)
	}
	return keys
}
