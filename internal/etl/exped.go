package etl

import (
	"fmt"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

var expedRouteColumns = []string{"ROUTE1", "ROUTE2", "ROUTE3", "ROUTE4"}

// StageExpeditions transforms the raw expeditions extract in place:
// time repair, 'None' cleanup, removal of expeditions without
// members, route-name cleanup, and code expansion. memberExpIDs is
// the set of expedition IDs present in the members table.
func StageExpeditions(t *table.Table, memberExpIDs map[string]bool, codes *Codes, log *logger.Logger) error {
	if err := t.Require("EXPID", "SEASON", "HOST", "TERMREASON"); err != nil {
		return fmt.Errorf("expeditions: %w", err)
	}
	if err := FixTimeColumn(t, "SMTTIME"); err != nil {
		return fmt.Errorf("expeditions: %w", err)
	}
	if err := ReplaceNoneValues(t, "COMRTE", "STDRTE", "PRIMREF", "TERMDATE", "ROUTEMEMO", "BCDATE", "SMTDATE"); err != nil {
		return fmt.Errorf("expeditions: %w", err)
	}

	// An expedition with no member rows would import as an orphan
	// node. Exclusion is expected and counted, not an error.
	dropped := t.Filter(func(i int) bool { return memberExpIDs[t.Get(i, "EXPID")] })
	if dropped > 0 {
		log.Info("discarded expeditions without members", "count", dropped)
	}

	if err := t.Require(expedRouteColumns...); err != nil {
		return fmt.Errorf("expeditions: %w", err)
	}
	for _, col := range expedRouteColumns {
		for i := 0; i < t.Len(); i++ {
			t.Set(i, col, CleanRoute(t.Get(i, col)))
		}
	}

	for _, exp := range []struct{ src, tbl, dest string }{
		{"SEASON", CodesSeason, "SEASON_DESC"},
		{"HOST", CodesExpedHost, "HOST_DESC"},
		{"TERMREASON", CodesTermReason, "TERMREASON_DESC"},
	} {
		if err := codes.Expand(t, exp.src, exp.tbl, exp.dest); err != nil {
			return fmt.Errorf("expeditions: %w", err)
		}
	}
	return nil
}
