package table

import "testing"

func newTestTable(t *testing.T, rows ...[]string) *Table {
	t.Helper()
	tbl := New("ID", "NAME", "YEAR")
	for _, row := range rows {
		if err := tbl.Append(row); err != nil {
			t.Fatalf("Expected no error appending test row, got %v", err)
		}
	}
	return tbl
}

func TestAppendRejectsWrongWidth(t *testing.T) {
	tbl := New("A", "B")
	if err := tbl.Append([]string{"only one"}); err == nil {
		t.Error("Expected an error for a short row, got nil")
	}
	if tbl.Len() != 0 {
		t.Errorf("Expected no rows after a rejected append, got %d", tbl.Len())
	}
}

func TestRequire(t *testing.T) {
	tbl := newTestTable(t)
	if err := tbl.Require("ID", "NAME"); err != nil {
		t.Errorf("Expected no error for present columns, got %v", err)
	}
	if err := tbl.Require("ID", "MISSING"); err == nil {
		t.Error("Expected an error for a missing column, got nil")
	}
}

func TestAddColumn(t *testing.T) {
	tbl := newTestTable(t, []string{"1", "a", "2000"})
	tbl.AddColumn("FLAG", "False")
	if got := tbl.Get(0, "FLAG"); got != "False" {
		t.Errorf("Expected fill value False, got %q", got)
	}
	if !tbl.HasColumn("FLAG") {
		t.Error("Expected the new column to be present")
	}
}

func TestDropColumns(t *testing.T) {
	tbl := newTestTable(t, []string{"1", "a", "2000"})
	tbl.DropColumns("NAME", "NO_SUCH")
	if tbl.HasColumn("NAME") {
		t.Error("Expected NAME dropped")
	}
	if got := tbl.Get(0, "YEAR"); got != "2000" {
		t.Errorf("Expected remaining cells intact, got %q", got)
	}
}

func TestFilterPassesOriginalIndices(t *testing.T) {
	tbl := newTestTable(t,
		[]string{"1", "a", "2000"},
		[]string{"2", "b", "2001"},
		[]string{"3", "c", "2002"},
		[]string{"4", "d", "2003"},
	)
	var seen []int
	dropped := tbl.Filter(func(i int) bool {
		seen = append(seen, i)
		return i%2 == 0
	})

	if dropped != 2 {
		t.Errorf("Expected 2 rows dropped, got %d", dropped)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows kept, got %d", tbl.Len())
	}
	// The predicate must observe the table before any removal.
	for i, s := range seen {
		if s != i {
			t.Errorf("Predicate call %d: expected index %d, got %d", i, i, s)
		}
	}
	if got := tbl.Get(0, "ID"); got != "1" {
		t.Errorf("Expected row 1 kept first, got %q", got)
	}
	if got := tbl.Get(1, "ID"); got != "3" {
		t.Errorf("Expected row 3 kept second, got %q", got)
	}
}

func TestFind(t *testing.T) {
	tbl := newTestTable(t,
		[]string{"1", "a", "2000"},
		[]string{"2", "b", "2001"},
	)
	if got := tbl.Find("NAME", "b"); got != 1 {
		t.Errorf("Expected row 1, got %d", got)
	}
	if got := tbl.Find("NAME", "zzz"); got != -1 {
		t.Errorf("Expected -1 for no match, got %d", got)
	}
}

func TestSortBy(t *testing.T) {
	tbl := newTestTable(t,
		[]string{"3", "c", "2001"},
		[]string{"1", "a", "2001"},
		[]string{"2", "b", "2000"},
	)
	tbl.SortBy("YEAR", "ID")
	want := []string{"2", "1", "3"}
	for i, w := range want {
		if got := tbl.Get(i, "ID"); got != w {
			t.Errorf("Row %d: expected ID %q, got %q", i, w, got)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := newTestTable(t, []string{"1", "a", "2000"})
	cp := tbl.Clone()
	cp.Set(0, "NAME", "changed")
	cp.AddColumn("EXTRA", "")

	if got := tbl.Get(0, "NAME"); got != "a" {
		t.Errorf("Expected original cell untouched, got %q", got)
	}
	if tbl.HasColumn("EXTRA") {
		t.Error("Expected original columns untouched")
	}
}

func TestRowMapAndValues(t *testing.T) {
	tbl := newTestTable(t, []string{"1", "a", "2000"}, []string{"2", "b", "2001"})

	row := tbl.RowMap(1)
	if row["NAME"] != "b" || row["YEAR"] != "2001" {
		t.Errorf("Unexpected row map: %v", row)
	}

	vals := tbl.Values("ID")
	if len(vals) != 2 || vals[0] != "1" || vals[1] != "2" {
		t.Errorf("Unexpected column values: %v", vals)
	}
}

func TestConcat(t *testing.T) {
	a := New("ID", "NAME")
	if err := a.Append([]string{"1", "alpha"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b := New("ID", "LAT")
	if err := b.Append([]string{"2", "27.5"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := Concat(a, b)
	if out.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", out.Len())
	}
	for _, col := range []string{"ID", "NAME", "LAT"} {
		if !out.HasColumn(col) {
			t.Errorf("Expected column %s in the union", col)
		}
	}
	if got := out.Get(0, "LAT"); got != "" {
		t.Errorf("Expected missing cell empty, got %q", got)
	}
	if got := out.Get(1, "LAT"); got != "27.5" {
		t.Errorf("Expected cell carried over, got %q", got)
	}
}
