package neo4jdb

import (
	"testing"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

func TestFixUnknownRoutes(t *testing.T) {
	tbl := table.New("EXPID", "ROUTE1", "SUCCESS1")
	rows := [][]string{
		{"E1", "", "True"},
		{"E2", "", "False"},
		{"E3", "SE Ridge", "True"},
	}
	for _, row := range rows {
		if err := tbl.Append(row); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	fixUnknownRoutes(tbl)

	if got := tbl.Get(0, "ROUTE1"); got != "Unknown" {
		t.Errorf("Expected Unknown route for a successful expedition, got %q", got)
	}
	if got := tbl.Get(1, "ROUTE1"); got != "" {
		t.Errorf("Expected failed expedition untouched, got %q", got)
	}
	if got := tbl.Get(2, "ROUTE1"); got != "SE Ridge" {
		t.Errorf("Expected named route untouched, got %q", got)
	}
}

func TestTestSubset(t *testing.T) {
	imp := NewImporter(nil, model.ImportConfig{
		BatchSize: 50, TestSize: 2, TestExtra: []string{"E5"},
	}, logger.Nop())

	tbl := table.New("EXPID")
	for _, id := range []string{"E1", "E2", "E3", "E4", "E5"} {
		if err := tbl.Append([]string{id}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	out := imp.testSubset(tbl, "EXPID")

	want := []string{"E1", "E2", "E5"}
	if out.Len() != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), out.Len())
	}
	for i, w := range want {
		if got := out.Get(i, "EXPID"); got != w {
			t.Errorf("Row %d: expected %q, got %q", i, w, got)
		}
	}
	if tbl.Len() != 5 {
		t.Errorf("Expected the input table untouched, got %d rows", tbl.Len())
	}
}

func TestUniqueExpeditions(t *testing.T) {
	tbl := table.New("EXPID", "YEAR", "PEAKID")
	rows := [][]string{
		{"E1", "1953", "EVER"},
		{"E1", "1953", "EVER"},
		{"E1", "1954", "EVER"},
		{"E2", "1953", "AMAD"},
	}
	for _, row := range rows {
		if err := tbl.Append(row); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	out := uniqueExpeditions(tbl)
	if out.Len() != 3 {
		t.Fatalf("Expected 3 distinct expedition/year pairs, got %d", out.Len())
	}
	if out.Get(0, "EXPID") != "E1" || out.Get(0, "YEAR") != "1953" {
		t.Errorf("Unexpected first pair %q/%q", out.Get(0, "EXPID"), out.Get(0, "YEAR"))
	}
	if out.Get(1, "YEAR") != "1954" {
		t.Errorf("Expected the same expedition in another year kept, got %q", out.Get(1, "YEAR"))
	}
}

func TestKeepLast(t *testing.T) {
	tbl := table.New("PERSID", "FNAME", "RESIDENCE", "EXPID")
	rows := [][]string{
		{"100", "Tenzing", "Thame", "E1"},
		{"200", "Edmund", "Auckland", "E1"},
		{"100", "Tenzing", "Darjeeling", "E2"},
	}
	for _, row := range rows {
		if err := tbl.Append(row); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	out := keepLast(tbl, "PERSID", []string{"PERSID", "FNAME", "RESIDENCE"})
	if out.Len() != 2 {
		t.Fatalf("Expected 2 people, got %d", out.Len())
	}
	// Row order follows the surviving (last) occurrences.
	if got := out.Get(0, "RESIDENCE"); got != "Auckland" {
		t.Errorf("Expected Edmund first, got residence %q", got)
	}
	if got := out.Get(1, "RESIDENCE"); got != "Darjeeling" {
		t.Errorf("Expected the later residence kept, got %q", got)
	}
	if out.HasColumn("EXPID") {
		t.Error("Expected only the person columns kept")
	}
}

func TestRowsAsMaps(t *testing.T) {
	tbl := table.New("EXPID", "YEAR")
	for _, row := range [][]string{{"E1", "1953"}, {"E2", "1954"}, {"E3", "1955"}} {
		if err := tbl.Append(row); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	batch := rowsAsMaps(tbl, 1, 3)
	if len(batch) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(batch))
	}
	if batch[0]["EXPID"] != "E2" {
		t.Errorf("Expected the batch to start at row 1, got %v", batch[0]["EXPID"])
	}
	if batch[1]["YEAR"] != "1955" {
		t.Errorf("Expected the last row included, got %v", batch[1]["YEAR"])
	}
}
