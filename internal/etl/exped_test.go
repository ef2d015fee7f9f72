package etl

import (
	"testing"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

var expedColumns = []string{
	"EXPID", "SEASON", "HOST", "TERMREASON", "SMTTIME", "SMTDATE",
	"COMRTE", "STDRTE", "PRIMREF", "TERMDATE", "ROUTEMEMO", "BCDATE",
	"ROUTE1", "ROUTE2", "ROUTE3", "ROUTE4",
}

func newExpedTable(rows ...map[string]string) *table.Table {
	t := table.New(expedColumns...)
	for _, row := range rows {
		t.AppendMap(row)
	}
	return t
}

func TestStageExpeditions(t *testing.T) {
	tbl := newExpedTable(
		map[string]string{
			"EXPID": "EVER53101", "SEASON": "1", "HOST": "1", "TERMREASON": "1",
			"SMTTIME": "1130", "COMRTE": "None",
			"ROUTE1": "S Col-SE Ridge (to 8500m)",
		},
		map[string]string{
			"EXPID": "AMAD79301", "SEASON": "3", "HOST": "1", "TERMREASON": "4",
		},
	)
	members := map[string]bool{"EVER53101": true}

	if err := StageExpeditions(tbl, members, DefaultCodes(), logger.Nop()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if tbl.Len() != 1 {
		t.Fatalf("Expected the memberless expedition dropped, got %d rows", tbl.Len())
	}
	if got := tbl.Get(0, "SMTTIME"); got != "11:30+0545" {
		t.Errorf("Expected repaired summit time, got %q", got)
	}
	if got := tbl.Get(0, "COMRTE"); got != "" {
		t.Errorf("Expected None cleared, got %q", got)
	}
	if got := tbl.Get(0, "ROUTE1"); got != "S Col-SE Ridge" {
		t.Errorf("Expected cleaned route, got %q", got)
	}
	if got := tbl.Get(0, "SEASON_DESC"); got != "Spring" {
		t.Errorf("Expected Spring, got %q", got)
	}
	if got := tbl.Get(0, "HOST_DESC"); got != "Nepal" {
		t.Errorf("Expected Nepal, got %q", got)
	}
	if got := tbl.Get(0, "TERMREASON_DESC"); got != "Success (main peak)" {
		t.Errorf("Expected success description, got %q", got)
	}
}

func TestStageExpeditionsMissingColumn(t *testing.T) {
	tbl := table.New("EXPID")
	err := StageExpeditions(tbl, nil, DefaultCodes(), logger.Nop())
	if err == nil {
		t.Error("Expected an error for missing columns, got nil")
	}
}
