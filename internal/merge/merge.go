// Package merge combines the reconciled Nepal peaks with the
// Himalayan Database peaks into the final table consumed by the graph
// loader. HD is the authoritative source: its values win whenever
// present, the Nepal-side values fill only the gaps.
package merge

import (
	"fmt"
	"strings"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/reconcile"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

// statusToOpen is the fixed enumeration mapping a scraped status text
// to the tri-state OPEN flag. Anything else maps to unknown (empty)
// and passes through to the RESTRICT free-text field instead of being
// dropped.
func statusToOpen(status string) string {
	switch status {
	case "Opened":
		return "True"
	case "Proposed to open", "Closed", "Not open for expedition":
		return "False"
	}
	return ""
}

// PrepareNepalPeaks builds the reconciled Nepal-side peaks table from
// the three collection sources, assigns canonical HD identifiers by
// name matching, and returns the prepared table, the corrected HD
// table, and the residual report of unmatched records.
func PrepareNepalPeaks(scraped, peakvisor, manual, hd *table.Table, log *logger.Logger) (*table.Table, *table.Table, *table.Table, error) {
	scraped, err := reconcile.ApplyCorrections(scraped, "ID", reconcile.NHPPPeakCorrections)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("merge: NHPP corrections: %w", err)
	}
	hd, err = reconcile.ApplyCorrections(hd, "PEAKID", reconcile.HDPeakCorrections)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("merge: HD corrections: %w", err)
	}

	nepal := table.Concat(scraped, peakvisor, manual)
	if !nepal.HasColumn("PEAKID") {
		nepal.AddColumn("PEAKID", "")
	}

	nepalSide := reconcile.Side{Table: nepal, IDCol: "PEAKID", NameCol: "NAME", AltCol: "ALTERNATE_NAMES"}
	hdSide := reconcile.Side{Table: hd, IDCol: "PEAKID", NameCol: "PKNAME", AltCol: "PKNAME2"}

	res, err := reconcile.Match(nepalSide, hdSide)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("merge: %w", err)
	}
	assigned, err := reconcile.AssignCanonicalIDs(nepalSide, hdSide)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("merge: %w", err)
	}
	log.Info("reconciled peak identities",
		"matched", len(res.Pairs), "assigned", assigned,
		"residual_nepal", len(res.ResidualA), "residual_hd", len(res.ResidualB))

	nepal = dedupeByFirst(nepal, "ID")
	for i := 0; i < nepal.Len(); i++ {
		if nepal.Get(i, "PEAKID") == "" {
			nepal.Set(i, "PEAKID", nepal.Get(i, "ID"))
		}
		// Range names come suffixed "X Himal" on the Nepal side; the
		// graph keys ranges by the bare name.
		nepal.Set(i, "RANGE", strings.ReplaceAll(nepal.Get(i, "RANGE"), " Himal", ""))
	}
	nepal.SortBy("ID")

	// Match ran with the Nepal table as side A; the report wants the
	// HD residuals first. Residual Nepal records are identified by
	// their own ID, not the canonical one they never received.
	reportSide := reconcile.Side{Table: nepalSide.Table, IDCol: "ID", NameCol: "NAME", AltCol: "ALTERNATE_NAMES"}
	report := reconcile.ResidualReport(&reconcile.Result{
		ResidualA: res.ResidualB,
		ResidualB: res.ResidualA,
	}, hdSide, reportSide)
	return nepal, hd, report, nil
}

// hdFallbackPairs lists HD columns whose empty cells are filled from
// the Nepal-side column. HD wins when non-empty.
var hdFallbackPairs = [][2]string{
	{"PKNAME", "NAME"},
	{"PKNAME2", "ALTERNATE_NAMES"},
	{"HEIGHTM", "ELEVATION_M"},
	{"HEIGHTF", "ELEVATION_FT"},
}

// nepalOnlyColumns are consumed by the fallback rules or judged
// unreliable and do not survive into the merged table.
var nepalOnlyColumns = []string{
	"ID", "NAME", "ALTERNATE_NAMES", "ELEVATION_M", "ELEVATION_FT",
	"STATUS", "FIRST_ASCENT_ON", "FIRST_ASCENT_BY",
}

// Peaks left-joins the staged HD peaks into the prepared Nepal peaks
// on the canonical identifier and resolves attribute conflicts by
// strict precedence. Every output row carries an IS_HD_PEAK
// provenance flag.
func Peaks(nepal, hd *table.Table, log *logger.Logger) (*table.Table, error) {
	if err := nepal.Require("PEAKID", "NAME", "ALTERNATE_NAMES", "ELEVATION_M", "ELEVATION_FT", "STATUS", "RANGE"); err != nil {
		return nil, fmt.Errorf("merge peaks: nepal side: %w", err)
	}
	if err := hd.Require("PEAKID", "PKNAME", "PKNAME2", "HEIGHTM", "HEIGHTF", "OPEN", "RESTRICT"); err != nil {
		return nil, fmt.Errorf("merge peaks: hd side: %w", err)
	}

	hdRows := make(map[string]int, hd.Len())
	for i := 0; i < hd.Len(); i++ {
		if _, dup := hdRows[hd.Get(i, "PEAKID")]; !dup {
			hdRows[hd.Get(i, "PEAKID")] = i
		}
	}

	// Output: Nepal columns (minus the consumed ones), HD columns
	// (minus the duplicated join key), and the provenance flag.
	dropNepal := make(map[string]bool)
	for _, c := range nepalOnlyColumns {
		dropNepal[c] = true
	}
	var cols []string
	for _, c := range nepal.Columns() {
		if !dropNepal[c] {
			cols = append(cols, c)
		}
	}
	for _, c := range hd.Columns() {
		if c != "PEAKID" {
			cols = append(cols, c)
		}
	}
	cols = append(cols, "IS_HD_PEAK")
	out := table.New(cols...)

	hdPeakCount := 0
	for i := 0; i < nepal.Len(); i++ {
		row := nepal.RowMap(i)
		hi, isHD := hdRows[row["PEAKID"]]
		if isHD {
			hdPeakCount++
			for k, v := range hd.RowMap(hi) {
				if k != "PEAKID" {
					row[k] = v
				}
			}
			row["IS_HD_PEAK"] = "True"
		} else {
			row["IS_HD_PEAK"] = "False"
		}
		for _, pair := range hdFallbackPairs {
			if row[pair[0]] == "" {
				row[pair[0]] = row[pair[1]]
			}
		}
		if row["OPEN"] == "" {
			row["OPEN"] = statusToOpen(row["STATUS"])
		}
		if row["RESTRICT"] == "" {
			row["RESTRICT"] = row["STATUS"]
		}
		out.AppendMap(row)
	}
	log.Info("merged peaks", "total", out.Len(), "hd", hdPeakCount, "nepal_only", out.Len()-hdPeakCount)
	return out, nil
}

// dedupeByFirst groups rows by the key column and keeps, per column,
// the first non-empty value of each group. Row order of first
// appearance is preserved.
func dedupeByFirst(t *table.Table, keyCol string) *table.Table {
	out := table.New(t.Columns()...)
	rowOf := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		key := t.Get(i, keyCol)
		if j, ok := rowOf[key]; ok {
			for _, c := range out.Columns() {
				if out.Get(j, c) == "" {
					out.Set(j, c, t.Get(i, c))
				}
			}
			continue
		}
		rowOf[key] = out.Len()
		out.AppendMap(t.RowMap(i))
	}
	return out
}
