package reconcile

import (
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

// ResidualReport flattens the unmatched records of both sides into a
// single review table. The residual sets are the load-bearing error
// surface of the reconciliation: they feed the manual-curation loop
// that produces the next round of correction directives, so they are
// written out rather than merely counted.
func ResidualReport(res *Result, hd, nhpp Side) *table.Table {
	out := table.New("HD_ID", "HD_NAME", "HD_ALT_NAMES", "NHPP_ID", "NHPP_NAME", "NHPP_ALT_NAMES")
	for _, i := range res.ResidualA {
		out.AppendMap(map[string]string{
			"HD_ID":        hd.Table.Get(i, hd.IDCol),
			"HD_NAME":      hd.Table.Get(i, hd.NameCol),
			"HD_ALT_NAMES": hd.Table.Get(i, hd.AltCol),
		})
	}
	for _, j := range res.ResidualB {
		out.AppendMap(map[string]string{
			"NHPP_ID":        nhpp.Table.Get(j, nhpp.IDCol),
			"NHPP_NAME":      nhpp.Table.Get(j, nhpp.NameCol),
			"NHPP_ALT_NAMES": nhpp.Table.Get(j, nhpp.AltCol),
		})
	}
	return out
}
