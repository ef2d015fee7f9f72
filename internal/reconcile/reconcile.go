package reconcile

import (
	"fmt"
	"strings"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

// Side describes one dataset taking part in the reconciliation: the
// table, the column holding the record identifier, and the columns
// holding the primary name and the comma-delimited alternate names.
type Side struct {
	Table   *table.Table
	IDCol   string
	NameCol string
	AltCol  string
}

// Pair is one matched record pair, referenced by row index per side.
type Pair struct {
	A, B int
}

// Result partitions the input records: every record of either side
// appears exactly once, in Pairs or in its side's residual list.
type Result struct {
	Pairs     []Pair
	ResidualA []int
	ResidualB []int
}

// NameVariants flattens a primary name plus a comma-delimited
// alternate list into the record's full name set: trimmed, with '?'
// and '*' placeholder characters stripped, empty entries dropped.
// Duplicate variants are kept; matching is a set-membership test so
// they are harmless. Malformed (empty) fields contribute no variants.
func NameVariants(name, alternates string) []string {
	var out []string
	for _, raw := range append([]string{name}, strings.Split(alternates, ",")...) {
		v := strings.TrimSpace(strings.NewReplacer("?", "", "*", "").Replace(raw))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Match reconciles the two sides. A record matches when it shares a
// record identifier with the other side, or when ANY of its name
// variants appears verbatim in the other side's flattened name pool.
// The membership test is evaluated independently per direction so a
// record without alternates on one side is not penalized.
//
// The first structural match wins and no ranking of multiple
// candidates is performed: when a name matches several records on the
// other side the pairing depends on row order. This mirrors the
// curation workflow this tool supports and is a documented limitation,
// not a defect to fix with scoring.
func Match(a, b Side) (*Result, error) {
	if err := a.Table.Require(a.IDCol, a.NameCol, a.AltCol); err != nil {
		return nil, fmt.Errorf("reconcile: side A: %w", err)
	}
	if err := b.Table.Require(b.IDCol, b.NameCol, b.AltCol); err != nil {
		return nil, fmt.Errorf("reconcile: side B: %w", err)
	}

	variantsA := sideVariants(a)
	variantsB := sideVariants(b)

	// Name -> first owning row, per side.
	ownerA := variantOwners(variantsA)
	ownerB := variantOwners(variantsB)

	idRowsB := make(map[string]int, b.Table.Len())
	for i := 0; i < b.Table.Len(); i++ {
		if id := b.Table.Get(i, b.IDCol); id != "" {
			if _, dup := idRowsB[id]; !dup {
				idRowsB[id] = i
			}
		}
	}

	res := &Result{}
	matchedB := make(map[int]bool)

	for i := 0; i < a.Table.Len(); i++ {
		// A shared canonical identifier short-circuits name comparison.
		if j, ok := idRowsB[a.Table.Get(i, a.IDCol)]; ok {
			res.Pairs = append(res.Pairs, Pair{A: i, B: j})
			matchedB[j] = true
			continue
		}
		if j, ok := firstVariantMatch(variantsA[i], ownerB); ok {
			res.Pairs = append(res.Pairs, Pair{A: i, B: j})
			matchedB[j] = true
			continue
		}
		res.ResidualA = append(res.ResidualA, i)
	}

	for j := 0; j < b.Table.Len(); j++ {
		if matchedB[j] {
			continue
		}
		// Evaluated from B's own variants, independently of the A
		// pass: B may match an A record that already paired with a
		// different B record. The pair is still recorded so that
		// every record lands in exactly one of {matched, residual}.
		if i, ok := firstVariantMatch(variantsB[j], ownerA); ok {
			res.Pairs = append(res.Pairs, Pair{A: i, B: j})
			continue
		}
		res.ResidualB = append(res.ResidualB, j)
	}
	return res, nil
}

func sideVariants(s Side) [][]string {
	out := make([][]string, s.Table.Len())
	for i := 0; i < s.Table.Len(); i++ {
		out[i] = NameVariants(s.Table.Get(i, s.NameCol), s.Table.Get(i, s.AltCol))
	}
	return out
}

func variantOwners(variants [][]string) map[string]int {
	owners := make(map[string]int)
	for i, vs := range variants {
		for _, v := range vs {
			if _, taken := owners[v]; !taken {
				owners[v] = i
			}
		}
	}
	return owners
}

func firstVariantMatch(variants []string, owners map[string]int) (int, bool) {
	for _, v := range variants {
		if row, ok := owners[v]; ok {
			return row, true
		}
	}
	return 0, false
}

// AssignCanonicalIDs copies the canonical identifier of the matched
// canonical-side record into target's IDCol wherever a match exists,
// leaving unmatched records with their own identifier. Returns the
// number of records that received a canonical identifier.
func AssignCanonicalIDs(target, canonical Side) (int, error) {
	res, err := Match(target, canonical)
	if err != nil {
		return 0, err
	}
	assigned := 0
	done := make(map[int]bool)
	for _, p := range res.Pairs {
		// First match wins when a target row pairs more than once.
		if done[p.A] {
			continue
		}
		done[p.A] = true
		id := canonical.Table.Get(p.B, canonical.IDCol)
		if id == "" || target.Table.Get(p.A, target.IDCol) == id {
			continue
		}
		target.Table.Set(p.A, target.IDCol, id)
		assigned++
	}
	return assigned, nil
}
