// =============================================================================
// Sales Import - Dataset Writer
// =============================================================================
//
// Renders a materialized dataset to CSV and writes it atomically: the bytes
// are built in memory, written to a temp file and renamed into place, so a
// dataset file on disk is always complete or absent, never partial.
//
// =============================================================================

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/fujipos/sales-import/internal/types"
	"github.com/fujipos/sales-import/pkg/utils"
)

// WriteDataset writes a dataset as <name>.csv in the output directory and
// returns the written path.
func WriteDataset(outDir string, ds *types.Dataset) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.Columns); err != nil {
		return "", fmt.Errorf("failed to render header for %s: %w", ds.Name, err)
	}
	for i, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to render row %d of %s: %w", i, ds.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", ds.Name, err)
	}

	path := filepath.Join(outDir, ds.Name+".csv")
	if err := utils.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ds.Name, err)
	}
	return path, nil
}
