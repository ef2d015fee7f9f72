// Package etl stages the Himalayan Database source extracts: it
// repairs malformed times and dates, expands categorical codes into
// descriptions, cleans route free text, applies hand-curated record
// fixes, and assigns surrogate identifiers to members.
package etl

import (
	"strings"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

// ReplaceNoneValues clears literal "None" strings left behind by the
// source export in the given columns.
func ReplaceNoneValues(t *table.Table, cols ...string) error {
	if err := t.Require(cols...); err != nil {
		return err
	}
	for _, col := range cols {
		for i := 0; i < t.Len(); i++ {
			if t.Get(i, col) == "None" {
				t.Set(i, col, "")
			}
		}
	}
	return nil
}

// FixTimeColumn applies FixTime to every cell of a time column.
func FixTimeColumn(t *table.Table, col string) error {
	if err := t.Require(col); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		t.Set(i, col, FixTime(t.Get(i, col)))
	}
	return nil
}

// isTrue parses the boolean encodings found in the source extracts.
func isTrue(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "t", "1", "y", "yes":
		return true
	}
	return false
}

// isNumeric reports whether s is a non-empty all-digit string.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
