package table

// Concat stacks tables vertically. The result's columns are the union
// of all input columns in first-seen order; cells for columns a table
// does not have are left empty.
func Concat(tables ...*Table) *Table {
	var cols []string
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, c := range t.cols {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	out := New(cols...)
	for _, t := range tables {
		for i := 0; i < t.Len(); i++ {
			out.AppendMap(t.RowMap(i))
		}
	}
	return out
}
