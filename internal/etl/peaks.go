package etl

import (
	"fmt"
	"time"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

// Peaks whose first-ascent date field is broken in the source but
// whose first-ascent expedition carries a proper summit date. Their
// date is pulled from the expeditions table instead.
var peaksWithBrokenSummitDate = []string{
	"PHUK", "KYR1", "CHOP", "PARC", "PIMU", "RAMD", "RAMT", "LING", "PANT",
}

// Peaks whose first-ascent date is just a month name and whose
// expedition has no summit date either. Forced to empty, stays empty.
var peaksWithMonthOnlyDate = []string{
	"DHAM", "GANC", "GHYM", "MERA", "SPHN", "CHRI", "TKPO", "YAUP", "DUDH", "NILE",
}

// StageHDPeaks transforms the raw Himalayan Database peaks extract in
// place: first-ascent date reconstruction, 'None' cleanup, climbed
// tri-state, and host-country code expansion. exped is the raw
// expeditions table, needed to recover broken first-ascent dates.
func StageHDPeaks(t *table.Table, exped *table.Table, codes *Codes, log *logger.Logger) error {
	if err := t.Require("PEAKID", "PYEAR", "PSMTDATE", "PEXPID", "PSTATUS", "PHOST"); err != nil {
		return fmt.Errorf("peaks: %w", err)
	}
	if err := fixFirstAscentDates(t, exped); err != nil {
		return fmt.Errorf("peaks: %w", err)
	}
	if err := ReplaceNoneValues(t, "PEAKMEMO", "REFERMEMO", "PHOTOMEMO"); err != nil {
		return fmt.Errorf("peaks: %w", err)
	}
	setClimbedTriState(t)
	if err := codes.Expand(t, "PHOST", CodesPeakHost, "PHOST_DESC"); err != nil {
		return fmt.Errorf("peaks: %w", err)
	}
	log.Debug("staged HD peaks", "rows", t.Len())
	return nil
}

// fixFirstAscentDates rebuilds PSMTDATE as an ISO 8601 date from the
// split "Mon day" value plus the PYEAR year. The exception lists are
// explicit and enumerated: they were identified by inspection of the
// source, not inferred.
func fixFirstAscentDates(t *table.Table, exped *table.Table) error {
	// Peak SPH2 has PYEAR "201"; its first ascent expedition SPH218301
	// climbed in 2018.
	if i := t.Find("PEAKID", "SPH2"); i >= 0 {
		t.Set(i, "PYEAR", "2018")
	}

	broken := make(map[string]bool, len(peaksWithBrokenSummitDate))
	for _, id := range peaksWithBrokenSummitDate {
		broken[id] = true
	}
	monthOnly := make(map[string]bool, len(peaksWithMonthOnlyDate))
	for _, id := range peaksWithMonthOnlyDate {
		monthOnly[id] = true
	}

	for i := 0; i < t.Len(); i++ {
		id := t.Get(i, "PEAKID")
		if broken[id] || monthOnly[id] {
			t.Set(i, "PSMTDATE", "")
			continue
		}
		raw := t.Get(i, "PSMTDATE")
		if raw == "" || raw == "None" {
			t.Set(i, "PSMTDATE", "")
			continue
		}
		parsed, err := time.Parse("Jan 2 2006", raw+" "+t.Get(i, "PYEAR"))
		if err != nil {
			return fmt.Errorf("peak %s: cannot parse first ascent date %q year %q: %w", id, raw, t.Get(i, "PYEAR"), err)
		}
		t.Set(i, "PSMTDATE", parsed.Format("2006-01-02"))
	}

	// Recover the broken dates from the first-ascent expedition row.
	if err := exped.Require("EXPID", "SMTDATE"); err != nil {
		return err
	}
	for _, id := range peaksWithBrokenSummitDate {
		pi := t.Find("PEAKID", id)
		if pi < 0 {
			continue
		}
		ei := exped.Find("EXPID", t.Get(pi, "PEXPID"))
		if ei < 0 {
			return fmt.Errorf("peak %s: first ascent expedition %s not found", id, t.Get(pi, "PEXPID"))
		}
		t.Set(pi, "PSMTDATE", exped.Get(ei, "SMTDATE"))
	}
	return nil
}

// setClimbedTriState adds PCLIMBED from the PSTATUS code: 2 climbed,
// 1 unclimbed, 0 unknown (left empty).
func setClimbedTriState(t *table.Table) {
	t.AddColumn("PCLIMBED", "")
	for i := 0; i < t.Len(); i++ {
		switch t.Get(i, "PSTATUS") {
		case "2":
			t.Set(i, "PCLIMBED", "True")
		case "1":
			t.Set(i, "PCLIMBED", "False")
		}
	}
}
