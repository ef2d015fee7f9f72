package reconcile

import "github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"

// Hand-curated correction directives, maintained from the residual
// report of previous runs. Each entry fixes a defect that blocks the
// name match or corrupts a peak attribute. Directives are applied in
// order; a key that matches nothing is a deliberate no-op.

// NHPPPeaksNotToImport lists NHPP peak identifiers skipped at scrape
// time. Gimmigela Chuli is listed as a single row but is two peaks.
var NHPPPeaksNotToImport = []string{"448"}

// PeakVisorNotToImport lists HD peak identifiers excluded from the
// PeakVisor fallback lookup: their name variants resolve to homonym
// peaks outside Nepal.
var PeakVisorNotToImport = []string{"KHAM", "NUPD", "SHA2", "URKM"}

// NHPPPeakCorrections fixes records scraped from the NHPP website.
var NHPPPeakCorrections = []model.Correction{
	{
		// NHPP spells the peak "Amadablam"; the HD dataset and every
		// alternate source use "Ama Dablam".
		MatchKey:  "3",
		Mutations: map[string]string{"NAME": "Ama Dablam", "ALTERNATE_NAMES": "Amadablam"},
	},
	{
		// The scraped elevation of Chamlang is the subpeak's; the
		// main summit is 7319 m.
		MatchKey:  "76",
		Mutations: map[string]string{"ELEVATION_M": "7319", "ELEVATION_FT": "24012"},
	},
	{
		// Kangchenjunga appears under its Nepali transliteration
		// only; add the common spellings so the HD match succeeds.
		MatchKey:  "155",
		Mutations: map[string]string{"ALTERNATE_NAMES": "Kangchenjunga,Kanchenjunga"},
	},
	{
		// Sagarmatha's row lacks the international name.
		MatchKey:  "251",
		Mutations: map[string]string{"ALTERNATE_NAMES": "Everest,Mount Everest,Chomolungma"},
	},
}

// HDPeakCorrections fixes records from the Himalayan Database
// extract before reconciliation.
var HDPeakCorrections = []model.Correction{
	{
		// LNJU is recorded with the wrong climbing status.
		MatchKey:  "LNJU",
		Mutations: map[string]string{"PSTATUS": "2"},
	},
	{
		// URKM's alternate-name cell holds a question mark only.
		MatchKey:  "URKM",
		Mutations: map[string]string{"PKNAME2": ""},
	},
	{
		// TKRG was re-surveyed and renamed; the NHPP dataset carries
		// the new identifier. All fields are corrected against the old
		// key first, then the key is rewritten.
		MatchKey:   "TKRG",
		Mutations:  map[string]string{"PKNAME": "Takargo", "PKNAME2": "Takar Go"},
		KeyRewrite: "TKG1",
	},
}
