package model

import "time"

// Config holds the full pipeline configuration
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Cache    CacheConfig    `yaml:"cache"`
	Data     DataConfig     `yaml:"data"`
	Identity IdentityConfig `yaml:"identity"`
	Import   ImportConfig   `yaml:"import"`
	Output   OutputConfig   `yaml:"output"`
}

// HTTPConfig configures the scraper's HTTP client
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// ScrapeConfig configures the web-scraping fan-out
type ScrapeConfig struct {
	ProfileWorkers   int     `yaml:"profile_workers"`   // NHPP peak profile pages
	FallbackWorkers  int     `yaml:"fallback_workers"`  // PeakVisor lookups
	RequestsPerSec   float64 `yaml:"requests_per_sec"`  // per-domain rate limit
	Burst            int     `yaml:"burst"`
	RespectRobotsTxt bool    `yaml:"respect_robots_txt"`
}

// CacheConfig configures the fetched-page cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// DataConfig holds the data directory layout
type DataConfig struct {
	SourceDir    string `yaml:"source_dir"`    // Himalayan Database extracts
	ScrapedDir   string `yaml:"scraped_dir"`   // NHPP / PeakVisor output
	StagedDir    string `yaml:"staged_dir"`    // per-table ETL output
	ProcessedDir string `yaml:"processed_dir"` // merged tables for the loader
}

// IdentityConfig configures member surrogate identifier generation
type IdentityConfig struct {
	Seed       int64 `yaml:"seed"`        // fixed so runs are reproducible
	MaxRetries int   `yaml:"max_retries"` // bound on collision retries
}

// ImportConfig configures the Neo4j loader
type ImportConfig struct {
	BatchSize int      `yaml:"batch_size"`
	TestSize  int      `yaml:"test_size"` // rows imported when --test is set
	TestExtra []string `yaml:"test_extra"`
}

// OutputConfig configures user-facing output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "himalaya-import/1.0 (+https://github.com/mlnrt/himalayan-database-neo4j-import-tool)",
			MaxBodyBytes: 2_000_000,
		},
		Scrape: ScrapeConfig{
			ProfileWorkers:   8,
			FallbackWorkers:  4,
			RequestsPerSec:   4,
			Burst:            4,
			RespectRobotsTxt: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".himalaya-cache",
			TTL:     7 * 24 * time.Hour,
		},
		Data: DataConfig{
			SourceDir:    "data/hdb",
			ScrapedDir:   "data/nhpp",
			StagedDir:    "data/staged",
			ProcessedDir: "data/processed",
		},
		Identity: IdentityConfig{
			Seed:       0,
			MaxRetries: 100,
		},
		Import: ImportConfig{
			BatchSize: 50,
			TestSize:  100,
		},
		Output: OutputConfig{},
	}
}
