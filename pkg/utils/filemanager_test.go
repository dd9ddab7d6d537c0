package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fujipos/sales-import/pkg/utils"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "data.csv")

	if err := utils.WriteFileAtomic(path, []byte("a,b\n1,2\n")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Fatalf("content got=%q", string(data))
	}

	// Overwrite replaces the file in place.
	if err := utils.WriteFileAtomic(path, []byte("replaced")); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(data) != "replaced" {
		t.Fatalf("overwrite content got=%q", string(data))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("directory has %d entries, want 1", len(entries))
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	if utils.FileExists(filepath.Join(dir, "missing")) {
		t.Fatalf("FileExists true for missing file")
	}
	if utils.FileExists(dir) {
		t.Fatalf("FileExists true for directory")
	}

	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if !utils.FileExists(path) {
		t.Fatalf("FileExists false for existing file")
	}
}
