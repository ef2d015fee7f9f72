package neo4jdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

// memberNodeColumns are the person-level attributes that live on the
// Member node; everything else on a member row describes one
// expedition membership.
var memberNodeColumns = []string{
	"PERSID", "FNAME", "LNAME", "SEX", "YOB", "CITIZEN", "RESIDENCE",
	"OCCUPATION", "SHERPA", "TIBETAN",
}

// Importer writes the merged tables to the graph in fixed-size
// batches, one write transaction per batch.
type Importer struct {
	client    *Client
	batchSize int
	testSize  int
	testExtra []string
	log       *logger.Logger
}

// NewImporter creates an Importer.
func NewImporter(client *Client, cfg model.ImportConfig, log *logger.Logger) *Importer {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Importer{
		client:    client,
		batchSize: batchSize,
		testSize:  cfg.TestSize,
		testExtra: cfg.TestExtra,
		log:       log,
	}
}

// ImportExpeditions loads the expeditions table: Expedition, Peak,
// Agency and Route nodes plus their relationships. In test mode only
// the first rows (plus any configured extra expeditions) are loaded.
func (imp *Importer) ImportExpeditions(ctx context.Context, exped *table.Table, test bool) error {
	if err := exped.Require("EXPID", "YEAR", "PEAKID", "ROUTE1", "SUCCESS1"); err != nil {
		return fmt.Errorf("import expeditions: %w", err)
	}
	exped = exped.Clone()
	fixUnknownRoutes(exped)
	if test {
		exped = imp.testSubset(exped, "EXPID")
	}
	imp.log.Info("importing expeditions", "rows", exped.Len())
	return imp.importTable(ctx, "expeditions", exped, expeditionsQuery, expeditionsConstraints)
}

// ImportMembers loads the members table in three passes: the unique
// Member nodes, the expedition memberships, and the climb-together
// relationships.
func (imp *Importer) ImportMembers(ctx context.Context, members, exped *table.Table, test bool) error {
	if err := members.Require(append([]string{"EXPID", "MYEAR", "MSEASON"}, memberNodeColumns...)...); err != nil {
		return fmt.Errorf("import members: %w", err)
	}
	if err := exped.Require("EXPID", "YEAR"); err != nil {
		return fmt.Errorf("import members: %w", err)
	}

	// Sort by expedition year and season so the node upsert keeps each
	// person's most recent personal data (residence in particular).
	members = members.Clone()
	members.SortBy("MYEAR", "MSEASON")

	expeditions := uniqueExpeditions(exped)
	if test {
		expeditions = imp.testSubset(expeditions, "EXPID")
		keep := make(map[string]bool, expeditions.Len())
		for i := 0; i < expeditions.Len(); i++ {
			keep[expeditions.Get(i, "EXPID")] = true
		}
		members.Filter(func(i int) bool { return keep[members.Get(i, "EXPID")] })
	}

	people := keepLast(members, "PERSID", memberNodeColumns)
	imp.log.Info("importing members", "people", people.Len(), "memberships", members.Len())
	if err := imp.importTable(ctx, "members", people, membersQuery, membersConstraints); err != nil {
		return err
	}
	if err := imp.importTable(ctx, "members", members, membershipsQuery, nil); err != nil {
		return err
	}
	return imp.createClimbTogether(ctx, expeditions)
}

// ImportPeaks loads the merged peaks table: Peak, Range, District and
// Province nodes plus their relationships. In test mode only the
// peaks climbed by the test expeditions are loaded.
func (imp *Importer) ImportPeaks(ctx context.Context, peaks, exped *table.Table, test bool) error {
	if err := peaks.Require("PEAKID"); err != nil {
		return fmt.Errorf("import peaks: %w", err)
	}
	peaks = peaks.Clone()
	if test {
		if err := exped.Require("EXPID", "PEAKID"); err != nil {
			return fmt.Errorf("import peaks: %w", err)
		}
		subset := imp.testSubset(exped, "EXPID")
		climbed := make(map[string]bool, subset.Len())
		for i := 0; i < subset.Len(); i++ {
			climbed[subset.Get(i, "PEAKID")] = true
		}
		peaks.Filter(func(i int) bool { return climbed[peaks.Get(i, "PEAKID")] })
	}
	imp.log.Info("importing peaks", "rows", peaks.Len())
	return imp.importTable(ctx, "peaks", peaks, peaksQuery, peaksConstraints)
}

// importTable applies the constraints and then loads the table in
// batches, one write transaction per batch. Schema changes and data
// writes cannot share a transaction.
func (imp *Importer) importTable(ctx context.Context, param string, t *table.Table, query string, constraints []string) error {
	session := imp.client.Driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: imp.client.Database})
	defer func() { _ = session.Close(ctx) }()

	for _, constraint := range constraints {
		if _, err := session.Run(ctx, constraint, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	nodesCreated := 0
	relationshipsCreated := 0
	for start := 0; start < t.Len(); start += imp.batchSize {
		end := start + imp.batchSize
		if end > t.Len() {
			end = t.Len()
		}
		batch := rowsAsMaps(t, start, end)

		res, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			result, err := tx.Run(ctx, query, map[string]any{param: batch})
			if err != nil {
				return nil, err
			}
			return result.Consume(ctx)
		})
		if err != nil {
			return fmt.Errorf("import %s batch at row %d: %w", param, start, err)
		}
		counters := res.(neo4j.ResultSummary).Counters()
		nodesCreated += counters.NodesCreated()
		relationshipsCreated += counters.RelationshipsCreated()
	}
	imp.log.Info("import pass finished", "table", param,
		"nodes_created", nodesCreated, "relationships_created", relationshipsCreated)
	return nil
}

// createClimbTogether links the members of each expedition to each
// other, strictly one expedition per auto-commit query so each run
// sees the relationships committed by the previous ones. Batching
// several expeditions into one transaction would link members who
// shared more than one expedition twice, because the duplicate guard
// would not see the uncommitted relationship from the earlier
// expedition.
func (imp *Importer) createClimbTogether(ctx context.Context, expeditions *table.Table) error {
	session := imp.client.Driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: imp.client.Database})
	defer func() { _ = session.Close(ctx) }()

	total := 0
	for i := 0; i < expeditions.Len(); i++ {
		result, err := session.Run(ctx, climbTogetherQuery, map[string]any{
			"id":   expeditions.Get(i, "EXPID"),
			"year": expeditions.Get(i, "YEAR"),
		})
		if err != nil {
			return fmt.Errorf("climb together for expedition %s: %w", expeditions.Get(i, "EXPID"), err)
		}
		summary, err := result.Consume(ctx)
		if err != nil {
			return fmt.Errorf("climb together for expedition %s: %w", expeditions.Get(i, "EXPID"), err)
		}
		total += summary.Counters().RelationshipsCreated()
	}
	imp.log.Info("climb together pass finished", "expeditions", expeditions.Len(), "relationships_created", total)
	return nil
}

// fixUnknownRoutes names the route of successful expeditions that
// carry no route text. Leaving them empty would strand their
// Expedition nodes without a Route relationship.
func fixUnknownRoutes(t *table.Table) {
	for i := 0; i < t.Len(); i++ {
		if t.Get(i, "ROUTE1") == "" && t.Get(i, "SUCCESS1") == "True" {
			t.Set(i, "ROUTE1", "Unknown")
		}
	}
}

// testSubset keeps the first testSize rows plus any rows whose id
// column matches a configured extra expedition.
func (imp *Importer) testSubset(t *table.Table, idCol string) *table.Table {
	extra := make(map[string]bool, len(imp.testExtra))
	for _, id := range imp.testExtra {
		extra[id] = true
	}
	out := t.Clone()
	out.Filter(func(i int) bool { return i < imp.testSize || extra[out.Get(i, idCol)] })
	return out
}

// uniqueExpeditions returns the distinct (EXPID, YEAR) pairs in row
// order.
func uniqueExpeditions(exped *table.Table) *table.Table {
	out := table.New("EXPID", "YEAR")
	seen := make(map[string]bool, exped.Len())
	for i := 0; i < exped.Len(); i++ {
		key := exped.Get(i, "EXPID") + "\x00" + exped.Get(i, "YEAR")
		if seen[key] {
			continue
		}
		seen[key] = true
		out.AppendMap(map[string]string{
			"EXPID": exped.Get(i, "EXPID"),
			"YEAR":  exped.Get(i, "YEAR"),
		})
	}
	return out
}

// keepLast deduplicates rows by the key column, keeping the last
// occurrence of each key and only the given columns.
func keepLast(t *table.Table, keyCol string, cols []string) *table.Table {
	last := make(map[string]int, t.Len())
	for i := 0; i < t.Len(); i++ {
		last[t.Get(i, keyCol)] = i
	}
	out := table.New(cols...)
	for i := 0; i < t.Len(); i++ {
		if last[t.Get(i, keyCol)] != i {
			continue
		}
		row := make(map[string]string, len(cols))
		for _, c := range cols {
			row[c] = t.Get(i, c)
		}
		out.AppendMap(row)
	}
	return out
}

// rowsAsMaps converts the half-open row range [start, end) to the
// parameter maps the driver sends with the query.
func rowsAsMaps(t *table.Table, start, end int) []map[string]any {
	rows := make([]map[string]any, 0, end-start)
	for i := start; i < end; i++ {
		row := make(map[string]any, len(t.Columns()))
		for k, v := range t.RowMap(i) {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows
}
