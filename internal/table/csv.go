package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ReadCSV loads a CSV file into a table. The first record is the
// header. Any structural error aborts: downstream stages assume a
// fully-valid table shape, so no partial recovery is attempted.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: empty file, expected a header record", path)
	}

	t := New(records[0]...)
	for i, rec := range records[1:] {
		if err := t.Append(rec); err != nil {
			return nil, fmt.Errorf("parse %s: record %d: %w", path, i+2, err)
		}
	}
	return t, nil
}

// WriteCSV writes the table to a CSV file, creating the parent
// directory if needed.
func WriteCSV(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(t.cols); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range t.rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
