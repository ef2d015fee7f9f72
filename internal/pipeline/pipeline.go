// Package pipeline wires the stages together: scrape the web sources,
// stage the Himalayan Database extracts, merge the peak datasets, and
// load the result into Neo4j. Each stage reads and writes whole CSV
// tables under the configured data directories, so stages can be
// re-run independently.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/cache"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/etl"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/merge"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/neo4jdb"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/scrape"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/worker"
)

// File names inside the data directories.
const (
	fileExpeditions = "exped.csv"
	fileMembers     = "members.csv"
	filePeaks       = "peaks.csv"
	fileNHPPPeaks   = "nhpp_peaks.csv"
	filePeakVisor   = "peakvisor_peaks.csv"
	fileManualPeaks = "manually_collected_peaks.csv"
	fileNonMatching = "non_matching_peaks.csv"
	fileNepalPeaks  = "preprocessed_nhpp_peaks.csv"
)

// Pipeline runs the stages against the configured data directories.
// Every run gets a unique identifier carried on all its log lines.
type Pipeline struct {
	cfg   *model.Config
	log   *logger.Logger
	runID string
}

// New creates a Pipeline.
func New(cfg *model.Config, log *logger.Logger) *Pipeline {
	runID := uuid.NewString()
	return &Pipeline{cfg: cfg, log: log.With("run_id", runID), runID: runID}
}

// RunID returns the unique identifier of this pipeline instance.
func (p *Pipeline) RunID() string { return p.runID }

// Scrape collects the NHPP peak profiles, reconciles them against the
// Himalayan Database peaks, and looks the unmatched HD peaks up on
// PeakVisor. Outputs land in the scraped data directory.
func (p *Pipeline) Scrape(ctx context.Context) error {
	scraper := scrape.NewScraper(p.newFetcher(), p.cfg.Scrape, p.log)

	nhpp, err := scraper.CollectNHPPPeaks(ctx)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}
	if err := table.WriteCSV(filepath.Join(p.cfg.Data.ScrapedDir, fileNHPPPeaks), nhpp); err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	hd, err := table.ReadCSV(filepath.Join(p.cfg.Data.SourceDir, filePeaks))
	if err != nil {
		return fmt.Errorf("scrape: read HD peaks: %w", err)
	}
	res, report, err := scrape.NonMatchingPeaks(hd, nhpp)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}
	if err := table.WriteCSV(filepath.Join(p.cfg.Data.ScrapedDir, fileNonMatching), report); err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	peakvisor, err := scraper.CollectPeakVisorPeaks(ctx, hd, nhpp, res)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}
	if err := table.WriteCSV(filepath.Join(p.cfg.Data.ScrapedDir, filePeakVisor), peakvisor); err != nil {
		return fmt.Errorf("scrape: %w", err)
	}
	return nil
}

// Stage transforms the raw Himalayan Database extracts into the
// staged tables: time and date repair, categorical code expansion,
// route cleanup and surrogate person identifiers.
func (p *Pipeline) Stage(ctx context.Context) error {
	codes := etl.DefaultCodes()
	if err := codes.Validate(); err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	members, err := table.ReadCSV(filepath.Join(p.cfg.Data.SourceDir, fileMembers))
	if err != nil {
		return fmt.Errorf("stage: read members: %w", err)
	}
	if err := etl.StageMembers(members, codes, p.cfg.Identity.Seed, p.cfg.Identity.MaxRetries, p.log); err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	// Expeditions nobody took part in are dropped, so the membership
	// set drives the expedition filter.
	memberExpIDs := make(map[string]bool, members.Len())
	for i := 0; i < members.Len(); i++ {
		memberExpIDs[members.Get(i, "EXPID")] = true
	}
	exped, err := table.ReadCSV(filepath.Join(p.cfg.Data.SourceDir, fileExpeditions))
	if err != nil {
		return fmt.Errorf("stage: read expeditions: %w", err)
	}
	if err := etl.StageExpeditions(exped, memberExpIDs, codes, p.log); err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	peaks, err := table.ReadCSV(filepath.Join(p.cfg.Data.SourceDir, filePeaks))
	if err != nil {
		return fmt.Errorf("stage: read peaks: %w", err)
	}
	if err := etl.StageHDPeaks(peaks, exped, codes, p.log); err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	for _, out := range []struct {
		name string
		t    *table.Table
	}{
		{fileExpeditions, exped},
		{fileMembers, members},
		{filePeaks, peaks},
	} {
		if err := table.WriteCSV(filepath.Join(p.cfg.Data.StagedDir, out.name), out.t); err != nil {
			return fmt.Errorf("stage: %w", err)
		}
	}
	p.log.Info("staging finished",
		"expeditions", exped.Len(), "members", members.Len(), "peaks", peaks.Len())
	return nil
}

// Merge reconciles the scraped peak tables with the staged HD peaks
// and writes the processed tables the loader consumes. Expeditions
// and members need no merging and pass through unchanged.
func (p *Pipeline) Merge(ctx context.Context) error {
	scraped, err := table.ReadCSV(filepath.Join(p.cfg.Data.ScrapedDir, fileNHPPPeaks))
	if err != nil {
		return fmt.Errorf("merge: read scraped peaks: %w", err)
	}
	peakvisor, err := table.ReadCSV(filepath.Join(p.cfg.Data.ScrapedDir, filePeakVisor))
	if err != nil {
		return fmt.Errorf("merge: read peakvisor peaks: %w", err)
	}
	manual, err := p.readManualPeaks()
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	hd, err := table.ReadCSV(filepath.Join(p.cfg.Data.StagedDir, filePeaks))
	if err != nil {
		return fmt.Errorf("merge: read staged peaks: %w", err)
	}

	nepal, hd, report, err := merge.PrepareNepalPeaks(scraped, peakvisor, manual, hd, p.log)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if err := table.WriteCSV(filepath.Join(p.cfg.Data.ScrapedDir, fileNepalPeaks), nepal); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if err := table.WriteCSV(filepath.Join(p.cfg.Data.ScrapedDir, fileNonMatching), report); err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	peaks, err := merge.Peaks(nepal, hd, p.log)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if err := table.WriteCSV(filepath.Join(p.cfg.Data.ProcessedDir, filePeaks), peaks); err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	for _, name := range []string{fileExpeditions, fileMembers} {
		t, err := table.ReadCSV(filepath.Join(p.cfg.Data.StagedDir, name))
		if err != nil {
			return fmt.Errorf("merge: read staged %s: %w", name, err)
		}
		if err := table.WriteCSV(filepath.Join(p.cfg.Data.ProcessedDir, name), t); err != nil {
			return fmt.Errorf("merge: %w", err)
		}
	}
	return nil
}

// Load creates (or replaces) the target database and imports the
// processed tables. When test is set only a configurable head of the
// expeditions, and the members and peaks tied to them, are imported.
func (p *Pipeline) Load(ctx context.Context, test bool) error {
	exped, err := table.ReadCSV(filepath.Join(p.cfg.Data.ProcessedDir, fileExpeditions))
	if err != nil {
		return fmt.Errorf("load: read expeditions: %w", err)
	}
	members, err := table.ReadCSV(filepath.Join(p.cfg.Data.ProcessedDir, fileMembers))
	if err != nil {
		return fmt.Errorf("load: read members: %w", err)
	}
	peaks, err := table.ReadCSV(filepath.Join(p.cfg.Data.ProcessedDir, filePeaks))
	if err != nil {
		return fmt.Errorf("load: read peaks: %w", err)
	}

	client, err := neo4jdb.NewFromEnv(p.log)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	defer func() { _ = client.Close(ctx) }()

	if err := client.CreateDatabase(ctx); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	importer := neo4jdb.NewImporter(client, p.cfg.Import, p.log)
	if err := importer.ImportExpeditions(ctx, exped, test); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := importer.ImportMembers(ctx, members, exped, test); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := importer.ImportPeaks(ctx, peaks, exped, test); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}

// Run executes stage, merge and load in order. Scraping is not part
// of the combined run; it hits external websites and its outputs are
// usually committed alongside the manually curated data.
func (p *Pipeline) Run(ctx context.Context, test bool) error {
	if err := p.Stage(ctx); err != nil {
		return err
	}
	if err := p.Merge(ctx); err != nil {
		return err
	}
	return p.Load(ctx, test)
}

// readManualPeaks reads the manually curated peaks table. The file is
// optional: a missing file just means no hand-collected records.
func (p *Pipeline) readManualPeaks() (*table.Table, error) {
	path := filepath.Join(p.cfg.Data.ScrapedDir, fileManualPeaks)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		p.log.Warn("no manually collected peaks file", "path", path)
		return table.New(scrape.PeakVisorColumns...), nil
	}
	return table.ReadCSV(path)
}

// newFetcher assembles the HTTP fetcher from the configuration.
func (p *Pipeline) newFetcher() *scrape.Fetcher {
	var pages cache.Cache
	if p.cfg.Cache.Enabled {
		pages = cache.NewLayeredCache(p.cfg.Cache.TTL, p.cfg.Cache.Dir, p.cfg.Cache.TTL)
	}
	var robots *scrape.RobotsChecker
	if p.cfg.Scrape.RespectRobotsTxt {
		robots = scrape.NewRobotsChecker(p.cfg.HTTP.UserAgent, p.cfg.HTTP.Timeout)
	}
	limiter := worker.NewLimiter(p.cfg.Scrape.RequestsPerSec, p.cfg.Scrape.Burst)
	return scrape.NewFetcher(p.cfg.HTTP.Timeout, p.cfg.HTTP.UserAgent, p.cfg.HTTP.MaxBodyBytes,
		pages, p.cfg.Cache.TTL, limiter, robots)
}
