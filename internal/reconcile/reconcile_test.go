package reconcile

import (
	"testing"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

func TestNameVariants(t *testing.T) {
	tests := []struct {
		name       string
		primary    string
		alternates string
		want       []string
	}{
		{"primary only", "Ama Dablam", "", []string{"Ama Dablam"}},
		{"with alternates", "Everest", "Sagarmatha,Chomolungma", []string{"Everest", "Sagarmatha", "Chomolungma"}},
		{"placeholders stripped", "Lhotse ?", "Lhotse Shar*", []string{"Lhotse", "Lhotse Shar"}},
		{"empty entries dropped", "Makalu", " , ,Makalu II", []string{"Makalu", "Makalu II"}},
		{"all empty", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameVariants(tt.primary, tt.alternates)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d variants, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Variant %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func newSide(t *testing.T, rows [][]string) Side {
	t.Helper()
	tbl := table.New("ID", "NAME", "ALT")
	for _, row := range rows {
		if err := tbl.Append(row); err != nil {
			t.Fatalf("Expected no error appending test row, got %v", err)
		}
	}
	return Side{Table: tbl, IDCol: "ID", NameCol: "NAME", AltCol: "ALT"}
}

func TestMatch(t *testing.T) {
	a := newSide(t, [][]string{
		{"EVER", "Everest", "Sagarmatha"},
		{"AMAD", "Ama Dablam", ""},
		{"LONE", "Lonely Peak", ""},
	})
	b := newSide(t, [][]string{
		{"101", "Sagarmatha", "Chomolungma"},
		{"102", "Amadablam", "Ama Dablam"},
		{"103", "Orphan", ""},
	})

	res, err := Match(a, b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(res.Pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(res.Pairs))
	}
	if res.Pairs[0].A != 0 || res.Pairs[0].B != 0 {
		t.Errorf("Expected Everest paired via alternate name, got %+v", res.Pairs[0])
	}
	if res.Pairs[1].A != 1 || res.Pairs[1].B != 1 {
		t.Errorf("Expected Ama Dablam paired via the other side's alternates, got %+v", res.Pairs[1])
	}
	if len(res.ResidualA) != 1 || res.ResidualA[0] != 2 {
		t.Errorf("Expected Lonely Peak residual, got %v", res.ResidualA)
	}
	if len(res.ResidualB) != 1 || res.ResidualB[0] != 2 {
		t.Errorf("Expected Orphan residual, got %v", res.ResidualB)
	}
}

func TestMatchSharedIdentifierShortCircuits(t *testing.T) {
	a := newSide(t, [][]string{{"EVER", "Totally Different", ""}})
	b := newSide(t, [][]string{{"EVER", "Everest", ""}})

	res, err := Match(a, b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(res.Pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(res.Pairs))
	}
	if len(res.ResidualA) != 0 || len(res.ResidualB) != 0 {
		t.Errorf("Expected no residuals, got %v and %v", res.ResidualA, res.ResidualB)
	}
}

// Every record must land in exactly one of {paired, residual}.
func TestMatchPartitionsBothSides(t *testing.T) {
	a := newSide(t, [][]string{
		{"P1", "Alpha", "Shared"},
		{"P2", "Beta", ""},
		{"P3", "Gamma", ""},
	})
	b := newSide(t, [][]string{
		{"Q1", "Shared", ""},
		{"Q2", "Beta", "Shared"},
		{"Q3", "Delta", ""},
	})

	res, err := Match(a, b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	seenA := make(map[int]int)
	for _, p := range res.Pairs {
		seenA[p.A]++
	}
	for _, i := range res.ResidualA {
		seenA[i]++
	}
	for i := 0; i < a.Table.Len(); i++ {
		if seenA[i] == 0 {
			t.Errorf("Side A row %d appears nowhere", i)
		}
	}

	seenB := make(map[int]bool)
	for _, p := range res.Pairs {
		seenB[p.B] = true
	}
	for _, j := range res.ResidualB {
		if seenB[j] {
			t.Errorf("Side B row %d is both paired and residual", j)
		}
		seenB[j] = true
	}
	for j := 0; j < b.Table.Len(); j++ {
		if !seenB[j] {
			t.Errorf("Side B row %d appears nowhere", j)
		}
	}
}

func TestAssignCanonicalIDs(t *testing.T) {
	target := newSide(t, [][]string{
		{"1", "Sagarmatha", ""},
		{"2", "Nowhere", ""},
		{"EVER", "Everest", ""},
	})
	canonical := newSide(t, [][]string{
		{"EVER", "Everest", "Sagarmatha"},
	})

	assigned, err := AssignCanonicalIDs(target, canonical)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if assigned != 1 {
		t.Errorf("Expected 1 assignment, got %d", assigned)
	}
	if got := target.Table.Get(0, "ID"); got != "EVER" {
		t.Errorf("Expected canonical identifier EVER, got %q", got)
	}
	if got := target.Table.Get(1, "ID"); got != "2" {
		t.Errorf("Expected unmatched record to keep its identifier, got %q", got)
	}
}
