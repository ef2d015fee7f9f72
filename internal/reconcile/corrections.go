// Package reconcile matches peak records across the two independently
// curated datasets and applies the hand-curated field corrections that
// make the match possible.
package reconcile

import (
	"fmt"
	"sort"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

// ApplyCorrections returns a corrected copy of t. Each directive
// locates its record(s) by the value of keyCol, overwrites every
// listed field, and only then rewrites the key itself. The key
// rewrite MUST come last: rewriting first would make the field
// lookups silently target zero rows.
//
// A directive whose key matches nothing is a silent no-op; some
// directives document peaks that are intentionally never scraped.
func ApplyCorrections(t *table.Table, keyCol string, corrections []model.Correction) (*table.Table, error) {
	if err := t.Require(keyCol); err != nil {
		return nil, fmt.Errorf("corrections: %w", err)
	}
	out := t.Clone()
	for _, c := range corrections {
		for _, field := range sortedFields(c.Mutations) {
			if field == keyCol {
				return nil, fmt.Errorf("corrections: directive %q mutates the key column %s; use KeyRewrite", c.MatchKey, keyCol)
			}
			if !out.HasColumn(field) {
				return nil, fmt.Errorf("corrections: directive %q references unknown column %s", c.MatchKey, field)
			}
			value := c.Mutations[field]
			for i := 0; i < out.Len(); i++ {
				if out.Get(i, keyCol) == c.MatchKey {
					out.Set(i, field, value)
				}
			}
		}
		if c.KeyRewrite != "" {
			for i := 0; i < out.Len(); i++ {
				if out.Get(i, keyCol) == c.MatchKey {
					out.Set(i, keyCol, c.KeyRewrite)
				}
			}
		}
	}
	return out, nil
}

// sortedFields keeps mutation application deterministic.
func sortedFields(m map[string]string) []string {
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
