package scrape

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/reconcile"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/scrape/adapters"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/worker"
)

const (
	nhppBaseURL     = "https://nepalhimalpeakprofile.org"
	nhppAllPeaksURL = nhppBaseURL + "/peak-profile/all-peaks"
)

// PeakVisorColumns is the column order of the fallback peaks table.
var PeakVisorColumns = []string{
	"ID", "NAME", "ALTERNATE_NAMES", "LAT", "LON",
	"PROVINCE", "DISTRICT", "RANGE", "DESCRIPTION",
}

// Scraper drives the collection stage: the NHPP peak index and
// profile pages first, then PeakVisor lookups for the peaks the
// Himalayan Database lists but NHPP does not.
type Scraper struct {
	fetcher         *Fetcher
	nhpp            *adapters.NHPPAdapter
	peakvisor       *adapters.PeakVisorAdapter
	profileWorkers  int
	fallbackWorkers int
	log             *logger.Logger
}

// NewScraper creates a Scraper.
func NewScraper(fetcher *Fetcher, cfg model.ScrapeConfig, log *logger.Logger) *Scraper {
	return &Scraper{
		fetcher:         fetcher,
		nhpp:            adapters.NewNHPPAdapter(),
		peakvisor:       adapters.NewPeakVisorAdapter(),
		profileWorkers:  cfg.ProfileWorkers,
		fallbackWorkers: cfg.FallbackWorkers,
		log:             log,
	}
}

// CollectNHPPPeaks scrapes the all-peaks index and then every peak's
// profile page concurrently. A profile page that fails to fetch or
// parse degrades to a row with only the index fields filled; the rest
// of the run is not blocked on one bad page.
func (s *Scraper) CollectNHPPPeaks(ctx context.Context) (*table.Table, error) {
	body, err := s.fetcher.Get(ctx, nhppAllPeaksURL)
	if err != nil {
		return nil, fmt.Errorf("fetch all-peaks index: %w", err)
	}

	skip := make(map[string]bool, len(reconcile.NHPPPeaksNotToImport))
	for _, id := range reconcile.NHPPPeaksNotToImport {
		skip[id] = true
	}
	peaks, err := s.nhpp.ParseAllPeaks(body, nhppBaseURL, skip)
	if err != nil {
		return nil, fmt.Errorf("parse all-peaks index: %w", err)
	}
	s.log.Info("collected peak index", "peaks", len(peaks))

	profiles := worker.Map(ctx, s.profileWorkers, peaks, func(ctx context.Context, peak model.PeakURL) model.PeakProfile {
		page, err := s.fetcher.Get(ctx, peak.URL)
		if err != nil {
			s.log.Warn("fetch peak profile failed", "peak", peak.ID, "error", err)
			return model.PeakProfile{ID: peak.ID, URL: peak.URL, Name: peak.Name}
		}
		profile, err := s.nhpp.ParseProfile(page, peak)
		if err != nil {
			s.log.Warn("parse peak profile failed", "peak", peak.ID, "error", err)
		}
		return profile
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := table.New(model.PeakProfileColumns...)
	for _, p := range profiles {
		if err := out.Append(p.Row()); err != nil {
			return nil, err
		}
	}
	s.log.Info("collected peak profiles", "peaks", out.Len())
	return out, nil
}

// NonMatchingPeaks reconciles the scraped NHPP peaks against the
// Himalayan Database peaks and returns the match result plus the
// residual review table of peaks found in only one dataset.
func NonMatchingPeaks(hdPeaks, nhppPeaks *table.Table) (*reconcile.Result, *table.Table, error) {
	hd := reconcile.Side{Table: hdPeaks, IDCol: "PEAKID", NameCol: "PKNAME", AltCol: "PKNAME2"}
	nhpp := reconcile.Side{Table: nhppPeaks, IDCol: "ID", NameCol: "NAME", AltCol: "ALTERNATE_NAMES"}
	res, err := reconcile.Match(hd, nhpp)
	if err != nil {
		return nil, nil, err
	}
	return res, reconcile.ResidualReport(res, hd, nhpp), nil
}

type fallbackPeak struct {
	hdRow    int
	id       string
	name     string
	altNames []string
}

var himalSuffixRe = regexp.MustCompile(`\sHimal.*`)

// CollectPeakVisorPeaks looks up the Himalayan Database peaks that
// NHPP does not list. For each one it probes PeakVisor pages built
// from the peak's name variants and keeps the first page that is a
// peak in Nepal. District names are aligned to the NHPP spelling and
// the province is copied from the NHPP peak sharing the district; the
// mountain range comes from the Himalayan Database location text.
// Peaks PeakVisor never resolves to coordinates are dropped.
func (s *Scraper) CollectPeakVisorPeaks(ctx context.Context, hdPeaks, nhppPeaks *table.Table, res *reconcile.Result) (*table.Table, error) {
	if err := hdPeaks.Require("PEAKID", "PKNAME", "PKNAME2", "LOCATION"); err != nil {
		return nil, err
	}
	if err := nhppPeaks.Require("DISTRICT", "PROVINCE"); err != nil {
		return nil, err
	}

	noImport := make(map[string]bool, len(reconcile.PeakVisorNotToImport))
	for _, id := range reconcile.PeakVisorNotToImport {
		noImport[id] = true
	}

	var inputs []fallbackPeak
	for _, i := range res.ResidualA {
		id := hdPeaks.Get(i, "PEAKID")
		if noImport[id] {
			continue
		}
		var altNames []string
		for _, raw := range strings.Split(hdPeaks.Get(i, "PKNAME2"), ",") {
			if name := strings.TrimSpace(strings.ReplaceAll(raw, "?", "")); name != "" {
				altNames = append(altNames, name)
			}
		}
		inputs = append(inputs, fallbackPeak{
			hdRow:    i,
			id:       id,
			name:     hdPeaks.Get(i, "PKNAME"),
			altNames: altNames,
		})
	}
	s.log.Info("looking up unmatched peaks on PeakVisor", "peaks", len(inputs))

	locations := worker.Map(ctx, s.fallbackWorkers, inputs, func(ctx context.Context, peak fallbackPeak) adapters.PeakVisorLocation {
		return s.lookupPeakVisor(ctx, peak)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	possibleDistricts := nhppPeaks.Values("DISTRICT")

	out := table.New(PeakVisorColumns...)
	for i, peak := range inputs {
		loc := locations[i]
		district := resolveDistrict(loc.District, possibleDistricts)
		province := ""
		if district != "" {
			if row := nhppPeaks.Find("DISTRICT", district); row >= 0 {
				province = nhppPeaks.Get(row, "PROVINCE")
			}
		}
		rng := hdRange(hdPeaks.Get(peak.hdRow, "LOCATION"))
		if peak.id == "SANK" && rng == "" {
			rng = "Damodar"
		}
		if loc.Lat == "" || loc.Lon == "" {
			continue
		}
		out.AppendMap(map[string]string{
			"ID":              peak.id,
			"NAME":            peak.name,
			"ALTERNATE_NAMES": strings.Join(peak.altNames, ","),
			"LAT":             loc.Lat,
			"LON":             loc.Lon,
			"PROVINCE":        province,
			"DISTRICT":        district,
			"RANGE":           rng,
			"DESCRIPTION":     loc.About,
		})
	}
	s.log.Info("resolved peaks on PeakVisor", "found", out.Len(), "missing", len(inputs)-out.Len())
	return out, nil
}

// lookupPeakVisor probes the candidate page URLs for one peak until a
// page for a peak in Nepal is found. Missing pages and pages for
// peaks elsewhere are expected; they just mean trying the next name.
func (s *Scraper) lookupPeakVisor(ctx context.Context, peak fallbackPeak) adapters.PeakVisorLocation {
	names := adapters.NameVariants(append([]string{peak.name}, peak.altNames...))
	for _, name := range names {
		page, err := s.fetcher.Get(ctx, adapters.PageURL(name))
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.Debug("peakvisor fetch failed", "peak", peak.id, "name", name, "error", err)
			}
			continue
		}
		loc, ok, err := s.peakvisor.ParsePage(page)
		if err != nil {
			s.log.Debug("peakvisor parse failed", "peak", peak.id, "name", name, "error", err)
			continue
		}
		if ok {
			return loc
		}
	}
	return adapters.PeakVisorLocation{}
}

// resolveDistrict aligns a PeakVisor district name to the spelling
// used by NHPP, when one of the NHPP districts contains it.
func resolveDistrict(district string, possible []string) string {
	if district == "" {
		return ""
	}
	for _, p := range possible {
		if p != "" && strings.Contains(p, district) {
			return p
		}
	}
	return district
}

// hdRange maps a Himalayan Database location text to the range name
// used by NHPP.
func hdRange(location string) string {
	switch {
	case strings.Contains(location, "Saipal"):
		return "Saipal"
	case strings.Contains(location, "Kangchenjunga"):
		return "Kanchenjunga"
	default:
		return himalSuffixRe.ReplaceAllString(location, "")
	}
}
