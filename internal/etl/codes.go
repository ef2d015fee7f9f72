package etl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

// Code table names, one per coded source column.
const (
	CodesSeason        = "SEAS_DESC"
	CodesExpedHost     = "EXHOST_DESC"
	CodesTermReason    = "EXTERM_DESC"
	CodesDeathType     = "MEMDEATHTYPE_DESC"
	CodesDeathClass    = "MEMDEATHCLASS_DESC"
	CodesInjuryType    = "MEMINJ_DESC"
	CodesSummitBid     = "MEMSUMMBID_DESC"
	CodesSummitBidTerm = "MEMSUMMBIDTERM_DESC"
	CodesPeakHost      = "PHOST_DESC"
)

// Codes maps small-integer category codes to human-readable
// descriptions, one table per coded column. The tables are loaded
// once and treated as immutable; a code absent from its table is a
// fatal lookup error, never a silent default. The tables below cover
// every code observed in the source extracts.
type Codes struct {
	tables map[string]map[int]string
}

// DefaultCodes returns the built-in code tables.
func DefaultCodes() *Codes {
	return &Codes{tables: map[string]map[int]string{
		CodesSeason: {
			0: "Unknown",
			1: "Spring",
			2: "Summer",
			3: "Autumn",
			4: "Winter",
		},
		CodesExpedHost: {
			0: "Unknown",
			1: "Nepal",
			2: "China",
			3: "India",
		},
		CodesTermReason: {
			0:  "Unknown",
			1:  "Success (main peak)",
			2:  "Success (subpeak)",
			3:  "Success (claimed)",
			4:  "Bad weather (storms, high winds)",
			5:  "Bad conditions (deep snow, avalanching, falling ice, or rock)",
			6:  "Accident (death or serious injury)",
			7:  "Illness, AMS, exhaustion, or frostbite",
			8:  "Lack (or loss) of supplies or equipment",
			9:  "Lack of time",
			10: "Route technically too difficult, lack of experience, strength, or motivation",
			11: "Did not reach base camp",
			12: "Did not attempt climb",
			13: "Attempt rumoured",
			14: "Other",
		},
		CodesDeathType: {
			0:  "Unspecified",
			1:  "AMS",
			2:  "Exhaustion",
			3:  "Exposure / frostbite",
			4:  "Fall",
			5:  "Crevasse",
			6:  "Icefall collapse",
			7:  "Avalanche",
			8:  "Falling rock / ice",
			9:  "Disappearance (unexplained)",
			10: "Illness (non-AMS)",
			11: "Other",
			12: "Unknown",
		},
		CodesDeathClass: {
			0: "Unspecified",
			1: "Death enroute to/from base camp",
			2: "Death at base camp or advanced base camp",
			3: "Death during route preparation",
			4: "Death while ascending in summit bid",
			5: "Death while descending from summit bid",
			6: "Death during expedition evacuation",
			7: "Other / Unknown",
		},
		CodesInjuryType: {
			0:  "Unspecified",
			1:  "AMS",
			2:  "Exhaustion",
			3:  "Exposure / frostbite",
			4:  "Fall",
			5:  "Crevasse",
			6:  "Icefall collapse",
			7:  "Avalanche",
			8:  "Falling rock / ice",
			9:  "Disappearance (unexplained)",
			10: "Illness (non-AMS)",
			11: "Other",
			12: "Unknown",
		},
		CodesSummitBid: {
			0: "No summit bid",
			1: "Aborted below high camp",
			2: "Aborted at high camp",
			3: "Aborted above high camp",
			4: "Successful summit bid",
		},
		CodesSummitBidTerm: {
			0:  "Unknown",
			1:  "Success (main peak)",
			2:  "Success (subpeak)",
			3:  "Success (claimed)",
			4:  "Bad weather (storms, high winds)",
			5:  "Bad conditions (deep snow, avalanching, falling ice, or rock)",
			6:  "Accident (death or serious injury)",
			7:  "Illness, AMS, exhaustion, or frostbite",
			8:  "Lack (or loss) of supplies or equipment",
			9:  "Lack of time",
			10: "Route technically too difficult, lack of experience, strength, or motivation",
			11: "Did not reach base camp",
			12: "Did not attempt climb",
			13: "Attempt rumoured",
			14: "Other",
		},
		CodesPeakHost: {
			0: "Unclassified",
			1: "Nepal only",
			2: "China only",
			3: "Nepal & China border",
			4: "India only",
			5: "Nepal & India border",
			6: "Nepal, China & India",
		},
	}}
}

// Validate checks that every table this package expands against is
// present and non-empty. Called once at pipeline start so a broken
// table surfaces before any row is transformed.
func (c *Codes) Validate() error {
	required := []string{
		CodesSeason, CodesExpedHost, CodesTermReason,
		CodesDeathType, CodesDeathClass, CodesInjuryType,
		CodesSummitBid, CodesSummitBidTerm, CodesPeakHost,
	}
	for _, name := range required {
		tbl, ok := c.tables[name]
		if !ok {
			return fmt.Errorf("codes: missing table %s", name)
		}
		if len(tbl) == 0 {
			return fmt.Errorf("codes: table %s is empty", name)
		}
	}
	return nil
}

// Describe returns the description for a code. An undocumented code
// value is a fatal error: defaulting would silently corrupt the
// imported graph.
func (c *Codes) Describe(tableName string, code int) (string, error) {
	tbl, ok := c.tables[tableName]
	if !ok {
		return "", fmt.Errorf("codes: unknown table %s", tableName)
	}
	desc, ok := tbl[code]
	if !ok {
		return "", fmt.Errorf("codes: table %s has no entry for code %d", tableName, code)
	}
	return desc, nil
}

// Expand adds destCol to t, filling it with the description of the
// integer code found in srcCol. An empty cell expands via code 0.
func (c *Codes) Expand(t *table.Table, srcCol, tableName, destCol string) error {
	if err := t.Require(srcCol); err != nil {
		return err
	}
	t.AddColumn(destCol, "")
	for i := 0; i < t.Len(); i++ {
		raw := strings.TrimSpace(t.Get(i, srcCol))
		code := 0
		if raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("codes: column %s row %d: %q is not an integer code: %w", srcCol, i, raw, err)
			}
			code = v
		}
		desc, err := c.Describe(tableName, code)
		if err != nil {
			return fmt.Errorf("codes: column %s row %d: %w", srcCol, i, err)
		}
		t.Set(i, destCol, desc)
	}
	return nil
}
