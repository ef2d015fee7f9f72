package table

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadWriteCSV(t *testing.T) {
	tbl := New("PEAKID", "PKNAME")
	if err := tbl.Append([]string{"EVER", "Everest"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := tbl.Append([]string{"AMAD", "Ama Dablam, the \"jewel\""}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "sub", "peaks.csv")
	if err := WriteCSV(path, tbl); err != nil {
		t.Fatalf("Expected no error writing, got %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("Expected no error reading, got %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", got.Len())
	}
	if v := got.Get(1, "PKNAME"); v != "Ama Dablam, the \"jewel\"" {
		t.Errorf("Expected quoted cell round-tripped, got %q", v)
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Error("Expected an error for an empty file, got nil")
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected an error for a missing file, got nil")
	}
}

func TestReadCSVRaggedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	if err := os.WriteFile(path, []byte("A,B\n1\n"), 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Error("Expected an error for a ragged record, got nil")
	}
}
