package model

// Correction is one hand-curated field override for a single record,
// located by the value of a key column. Corrections are applied in
// order; all mutations are written against the record found by the
// old key value, and only then is the key itself rewritten, so a key
// rewrite never strands the mutations that follow it in the same
// directive.
type Correction struct {
	// MatchKey is the value of the table's key column identifying the
	// record to correct. A key that matches no record is a silent
	// no-op: some directives document peaks that were never scraped.
	MatchKey string

	// Mutations maps column name to the replacement cell value.
	Mutations map[string]string

	// KeyRewrite, when non-empty, replaces the key column value
	// itself after all mutations are applied.
	KeyRewrite string
}
