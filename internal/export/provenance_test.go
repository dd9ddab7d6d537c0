package export_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fujipos/sales-import/internal/export"
)

func TestBuildProvenance(t *testing.T) {
	original := []string{"MONTH", "TOTAL SALES", "Unnamed: 7"}
	cleaned := []string{"month", "total_sales", "unnamed_column_1"}

	prov, err := export.BuildProvenance(original, cleaned)
	if err != nil {
		t.Fatalf("BuildProvenance: %v", err)
	}

	if prov.TotalColumns != 3 {
		t.Fatalf("TotalColumns got=%d want=3", prov.TotalColumns)
	}
	if !reflect.DeepEqual(prov.OriginalColumns, original) {
		t.Fatalf("OriginalColumns got=%v want=%v", prov.OriginalColumns, original)
	}
	if !reflect.DeepEqual(prov.CleanedColumns, cleaned) {
		t.Fatalf("CleanedColumns got=%v want=%v", prov.CleanedColumns, cleaned)
	}

	// The map must be a copy, not a view of the caller's slices.
	original[0] = "mutated"
	if prov.OriginalColumns[0] != "MONTH" {
		t.Fatalf("OriginalColumns aliases caller slice")
	}
}

func TestBuildProvenance_SelfMap(t *testing.T) {
	// Synthesized datasets map their canonical columns to themselves.
	columns := []string{"id", "order_id", "item_id"}
	prov, err := export.BuildProvenance(columns, columns)
	if err != nil {
		t.Fatalf("BuildProvenance: %v", err)
	}
	if !reflect.DeepEqual(prov.OriginalColumns, prov.CleanedColumns) {
		t.Fatalf("self-map differs: %v vs %v", prov.OriginalColumns, prov.CleanedColumns)
	}
	if prov.TotalColumns != 3 {
		t.Fatalf("TotalColumns got=%d want=3", prov.TotalColumns)
	}
}

func TestBuildProvenance_LengthMismatch(t *testing.T) {
	_, err := export.BuildProvenance([]string{"A", "B"}, []string{"a"})
	if err == nil {
		t.Fatalf("BuildProvenance accepted mismatched column lists")
	}
}

func TestWriteProvenance(t *testing.T) {
	dir := t.TempDir()

	prov, err := export.BuildProvenance([]string{"DATE", "TOTAL"}, []string{"date", "total"})
	if err != nil {
		t.Fatalf("BuildProvenance: %v", err)
	}

	path, err := export.WriteProvenance(dir, "daily_summary", "run-123", prov)
	if err != nil {
		t.Fatalf("WriteProvenance: %v", err)
	}
	if want := filepath.Join(dir, "daily_summary_columns.json"); path != want {
		t.Fatalf("path got=%s want=%s", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}

	var artifact struct {
		RunID           string   `json:"run_id"`
		Dataset         string   `json:"dataset"`
		GeneratedAt     string   `json:"generated_at"`
		OriginalColumns []string `json:"original_columns"`
		CleanedColumns  []string `json:"cleaned_columns"`
		TotalColumns    int      `json:"total_columns"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		t.Fatalf("unmarshal artifact: %v", err)
	}

	if artifact.RunID != "run-123" {
		t.Fatalf("run_id got=%s want=run-123", artifact.RunID)
	}
	if artifact.Dataset != "daily_summary" {
		t.Fatalf("dataset got=%s want=daily_summary", artifact.Dataset)
	}
	if artifact.GeneratedAt == "" {
		t.Fatalf("generated_at is empty")
	}
	if artifact.TotalColumns != 2 || len(artifact.CleanedColumns) != 2 {
		t.Fatalf("column map not preserved: %+v", artifact)
	}
}
