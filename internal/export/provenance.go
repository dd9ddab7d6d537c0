// =============================================================================
// Sales Import - Provenance Exporter
// =============================================================================
//
// Every dataset is written together with a provenance artifact recording the
// original -> normalized column-name mapping, so an auditor can trace any
// output column back to the hand-written header it came from. The artifact
// is output-only; nothing in the pipeline reads it back.
//
// =============================================================================

package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fujipos/sales-import/internal/types"
	"github.com/fujipos/sales-import/pkg/utils"
)

// BuildProvenance constructs the positional 1:1 mapping between original and
// cleaned headers. A length mismatch between the two lists means the caller
// mixed up header rows; that corrupts the audit trail and is a hard error
// here, even though the dataset records themselves are unaffected.
func BuildProvenance(original, cleaned []string) (types.ColumnProvenanceMap, error) {
	if len(original) != len(cleaned) {
		return types.ColumnProvenanceMap{}, fmt.Errorf(
			"column count mismatch: %d original vs %d cleaned", len(original), len(cleaned))
	}
	return types.ColumnProvenanceMap{
		OriginalColumns: append([]string(nil), original...),
		CleanedColumns:  append([]string(nil), cleaned...),
		TotalColumns:    len(cleaned),
	}, nil
}

// provenanceArtifact is the on-disk shape of a provenance document.
type provenanceArtifact struct {
	RunID       string `json:"run_id"`
	Dataset     string `json:"dataset"`
	GeneratedAt string `json:"generated_at"`
	types.ColumnProvenanceMap
}

// WriteProvenance writes the provenance artifact for a dataset as
// <dataset>_columns.json in the output directory. The write is atomic.
func WriteProvenance(outDir, dataset, runID string, prov types.ColumnProvenanceMap) (string, error) {
	artifact := provenanceArtifact{
		RunID:               runID,
		Dataset:             dataset,
		GeneratedAt:         time.Now().UTC().Format(time.RFC3339),
		ColumnProvenanceMap: prov,
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal provenance for %s: %w", dataset, err)
	}

	path := filepath.Join(outDir, dataset+"_columns.json")
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write provenance for %s: %w", dataset, err)
	}
	return path, nil
}
