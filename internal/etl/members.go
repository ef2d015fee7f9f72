package etl

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/identity"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

var memberTimeColumns = []string{"MSMTTIME1", "MSMTTIME2", "MSMTTIME3", "DEATHTIME", "INJURYTIME"}

// StageMembers transforms the raw members extract in place: time and
// 'None' repair, removal of unusable rows, known-record fixes,
// citizenship cleanup, surrogate identifier assignment, and code
// expansion. seed fixes the identifier draws so repeated runs over
// the same input assign the same identifiers. maxRetries bounds the
// collision retry loop.
func StageMembers(t *table.Table, codes *Codes, seed int64, maxRetries int, log *logger.Logger) error {
	if err := t.Require("EXPID", "FNAME", "LNAME", "SEX", "YOB", "RESIDENCE", "CITIZEN", "SHERPA"); err != nil {
		return fmt.Errorf("members: %w", err)
	}
	for _, col := range memberTimeColumns {
		if err := FixTimeColumn(t, col); err != nil {
			return fmt.Errorf("members: %w", err)
		}
	}
	if err := ReplaceNoneValues(t, "BIRTHDATE", "MSPEED", "MSMTDATE1", "MSMTDATE2", "MSMTDATE3",
		"DEATHDATE", "INJURYDATE", "MEMBERMEMO", "NECROLOGY"); err != nil {
		return fmt.Errorf("members: %w", err)
	}

	discardUnnamedMembers(t, log)
	fixKnownMembers(t)
	cleanupCitizenship(t)

	if err := assignPersonIDs(t, seed, maxRetries, log); err != nil {
		return fmt.Errorf("members: %w", err)
	}

	// The Tandler row on expedition PUMO96105 is coded with the wrong
	// injury in the source.
	for i := 0; i < t.Len(); i++ {
		if t.Get(i, "LNAME") == "Tandler" {
			t.Set(i, "INJURYTYPE", "1")
		}
	}

	for _, exp := range []struct{ src, tbl, dest string }{
		{"DEATHTYPE", CodesDeathType, "DEATHTYPE_DESC"},
		{"DEATHCLASS", CodesDeathClass, "DEATHCLASS_DESC"},
		{"INJURYTYPE", CodesInjuryType, "INJURYTYPE_DESC"},
		{"MSMTBID", CodesSummitBid, "MSMTBID_DESC"},
		{"MSMTTERM", CodesSummitBidTerm, "MSMTTERM_DESC"},
	} {
		if err := codes.Expand(t, exp.src, exp.tbl, exp.dest); err != nil {
			return fmt.Errorf("members: %w", err)
		}
	}
	return nil
}

// discardUnnamedMembers removes rows with a last name of "Unknown"
// and a first name that is empty or a bare number. They cannot be
// identified and would pollute the member graph.
func discardUnnamedMembers(t *table.Table, log *logger.Logger) {
	dropped := t.Filter(func(i int) bool {
		if t.Get(i, "LNAME") != "Unknown" {
			return true
		}
		fname := strings.TrimSpace(t.Get(i, "FNAME"))
		return fname != "" && !isNumeric(fname)
	})
	if dropped > 0 {
		log.Info("discarded unnamed members", "count", dropped)
	}
}

// fixKnownMembers applies record fixes discovered during manual
// observation of the data. Tombazi is registered both as "Nicolas
// Alexander" and "N. A."; unifying the rows keeps him a single node.
func fixKnownMembers(t *table.Table) {
	yob := ""
	for i := 0; i < t.Len(); i++ {
		if t.Get(i, "LNAME") == "Tombazi" && t.Get(i, "FNAME") == "Nicolas Alexander" {
			yob = t.Get(i, "YOB")
			break
		}
	}
	if yob == "" {
		return
	}
	for i := 0; i < t.Len(); i++ {
		if t.Get(i, "LNAME") == "Tombazi" && t.Get(i, "FNAME") == "N. A." {
			t.Set(i, "YOB", yob)
			t.Set(i, "FNAME", "Nicolas Alexander")
		}
	}
}

// cleanupCitizenship fixes known country-name defects.
func cleanupCitizenship(t *table.Table) {
	for i := 0; i < t.Len(); i++ {
		c := t.Get(i, "CITIZEN")
		switch c {
		case "Malaysi":
			c = "Malaysia"
		case "W Germany":
			c = "Germany"
		}
		if isNumeric(c) {
			c = ""
		}
		c = strings.TrimSpace(strings.ReplaceAll(c, "?", ""))
		t.Set(i, "CITIZEN", c)
	}
}

// assignPersonIDs adds the PERSID column. Every row sharing a natural
// key receives the same identifier; the whole batch is regenerated on
// a truncation collision so identifiers stay reproducible under the
// fixed seed.
func assignPersonIDs(t *table.Table, seed int64, maxRetries int, log *logger.Logger) error {
	keys := make([]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		keys[i] = identity.Key(
			t.Get(i, "FNAME"), t.Get(i, "LNAME"), t.Get(i, "SEX"), t.Get(i, "YOB"),
			t.Get(i, "RESIDENCE"), isTrue(t.Get(i, "SHERPA")),
		)
	}

	rng := rand.New(rand.NewSource(seed))
	var ids map[string]string
	for attempt := 1; ; attempt++ {
		var err error
		ids, err = identity.Generate(keys, rng)
		if err == nil {
			break
		}
		log.Warn("identifier collision, regenerating batch", "attempt", attempt)
		if attempt >= maxRetries {
			return fmt.Errorf("no collision-free identifier assignment after %d attempts; the key space has likely outgrown the identifier width: %w", attempt, err)
		}
	}

	t.AddColumn("PERSID", "")
	for i := 0; i < t.Len(); i++ {
		t.Set(i, "PERSID", ids[keys[i]])
	}
	log.Info("assigned member identifiers", "rows", t.Len(), "unique", len(ids))
	return nil
}
