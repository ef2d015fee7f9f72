package table

import (
	"fmt"
	"sort"
	"strings"
)

// Table is a fully-materialized, column-ordered table of string cells.
// It is the hand-off unit between pipeline stages: each stage owns its
// table exclusively until it passes the table on.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// New creates an empty table with the given column order.
func New(cols ...string) *Table {
	t := &Table{
		cols:  append([]string(nil), cols...),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range t.cols {
		t.index[c] = i
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require returns an error naming the first missing column, if any.
// Stages call this once up front so a malformed source extract fails
// fast instead of surfacing as a panic mid-transform.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return fmt.Errorf("table: missing required column %q (have: %s)", c, strings.Join(t.cols, ","))
		}
	}
	return nil
}

func (t *Table) col(name string) int {
	i, ok := t.index[name]
	if !ok {
		panic(fmt.Sprintf("table: unknown column %q", name))
	}
	return i
}

// Get returns the cell at row i, named column. The column must exist.
func (t *Table) Get(i int, name string) string {
	return t.rows[i][t.col(name)]
}

// Set overwrites the cell at row i, named column. The column must exist.
func (t *Table) Set(i int, name, value string) {
	t.rows[i][t.col(name)] = value
}

// Append adds a row. The row must have exactly one cell per column.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("table: row has %d cells, want %d", len(row), len(t.cols))
	}
	t.rows = append(t.rows, append([]string(nil), row...))
	return nil
}

// AppendMap adds a row from a column-name keyed map. Columns absent
// from the map are left empty, keys without a column are ignored.
func (t *Table) AppendMap(m map[string]string) {
	row := make([]string, len(t.cols))
	for k, v := range m {
		if i, ok := t.index[k]; ok {
			row[i] = v
		}
	}
	t.rows = append(t.rows, row)
}

// AddColumn appends a new column filled with the given value.
func (t *Table) AddColumn(name, fill string) {
	if t.HasColumn(name) {
		panic(fmt.Sprintf("table: column %q already exists", name))
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill)
	}
}

// DropColumns removes the named columns. Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var cols []string
	keep := make([]int, 0, len(t.cols))
	for i, c := range t.cols {
		if !drop[c] {
			cols = append(cols, c)
			keep = append(keep, i)
		}
	}
	t.cols = cols
	t.index = make(map[string]int, len(cols))
	for i, c := range cols {
		t.index[c] = i
	}
	for r, row := range t.rows {
		next := make([]string, len(keep))
		for i, src := range keep {
			next[i] = row[src]
		}
		t.rows[r] = next
	}
}

// Filter keeps only rows for which keep returns true and returns the
// number of rows removed.
func (t *Table) Filter(keep func(i int) bool) int {
	var kept [][]string
	for i, row := range t.rows {
		if keep(i) {
			kept = append(kept, row)
		}
	}
	dropped := len(t.rows) - len(kept)
	t.rows = kept
	return dropped
}

// Values returns a copy of all cells of the named column, in row order.
func (t *Table) Values(name string) []string {
	out := make([]string, len(t.rows))
	c := t.col(name)
	for i, row := range t.rows {
		out[i] = row[c]
	}
	return out
}

// RowMap returns row i as a column-name keyed map.
func (t *Table) RowMap(i int) map[string]string {
	m := make(map[string]string, len(t.cols))
	for c, name := range t.cols {
		m[name] = t.rows[i][c]
	}
	return m
}

// Find returns the index of the first row whose named column equals
// value, or -1.
func (t *Table) Find(name, value string) int {
	c := t.col(name)
	for i, row := range t.rows {
		if row[c] == value {
			return i
		}
	}
	return -1
}

// SortBy sorts rows lexicographically by the named columns, stable.
func (t *Table) SortBy(names ...string) {
	cols := make([]int, len(names))
	for i, n := range names {
		cols[i] = t.col(n)
	}
	sort.SliceStable(t.rows, func(a, b int) bool {
		for _, c := range cols {
			if t.rows[a][c] != t.rows[b][c] {
				return t.rows[a][c] < t.rows[b][c]
			}
		}
		return false
	})
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.cols...)
	out.rows = make([][]string, len(t.rows))
	for i, row := range t.rows {
		out.rows[i] = append([]string(nil), row...)
	}
	return out
}
