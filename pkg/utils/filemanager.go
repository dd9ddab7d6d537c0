// =============================================================================
// Sales Import - File Manager
// =============================================================================
//
// Shared filesystem utilities: directory bootstrap, atomic writes, and the
// per-run summary log.
//
// Atomic writes are the contract the whole exporter relies on: a dataset
// file visible in the output directory is always a complete export. The
// bytes go to a temp file in the same directory first and are renamed into
// place, which is atomic on POSIX filesystems.
//
// =============================================================================

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// DIRECTORIES AND ATOMIC WRITES
// =============================================================================

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteFileAtomic writes data to path through a temp file and rename. On any
// failure the temp file is removed and the destination is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// =============================================================================
// RUN SUMMARY LOG
// =============================================================================

// DatasetSummary is the per-dataset line of a run summary.
type DatasetSummary struct {
	Dataset    string `json:"dataset"`
	Success    bool   `json:"success"`
	Records    int    `json:"records"`
	Skipped    int    `json:"skipped"`
	OutputFile string `json:"output_file,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RunSummary records the outcome of one full export run.
type RunSummary struct {
	RunID      string           `json:"run_id"`
	StartedAt  time.Time        `json:"started_at"`
	ElapsedMS  int64            `json:"elapsed_ms"`
	Datasets   []DatasetSummary `json:"datasets"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
}

// WriteSummaryLog writes the run summary as a timestamped JSON file in the
// output directory and returns the written path.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run summary: %w", err)
	}

	name := fmt.Sprintf("run_summary_%s.json", summary.StartedAt.Format("20060102_150405"))
	path := filepath.Join(outputDir, name)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write run summary: %w", err)
	}
	return path, nil
}
