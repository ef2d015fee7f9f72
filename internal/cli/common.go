package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/pipeline"
)

var (
	sourceDir    string
	scrapedDir   string
	stagedDir    string
	processedDir string
)

// addDataFlags registers the data directory overrides shared by the
// pipeline commands.
func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sourceDir, "source-dir", "", "directory of the Himalayan Database CSV extracts")
	cmd.Flags().StringVar(&scrapedDir, "scraped-dir", "", "directory of the scraped NHPP/PeakVisor tables")
	cmd.Flags().StringVar(&stagedDir, "staged-dir", "", "directory of the staged tables")
	cmd.Flags().StringVar(&processedDir, "processed-dir", "", "directory of the processed tables")
}

// buildConfig layers the configuration: defaults, then the config
// file, then command-line flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if sourceDir != "" {
		cfg.Data.SourceDir = sourceDir
	}
	if scrapedDir != "" {
		cfg.Data.ScrapedDir = scrapedDir
	}
	if stagedDir != "" {
		cfg.Data.StagedDir = stagedDir
	}
	if processedDir != "" {
		cfg.Data.ProcessedDir = processedDir
	}
	cfg.Output.Verbose = verbose
	return cfg, nil
}

// newPipeline assembles a pipeline with its logger. mutate, when not
// nil, applies command-specific overrides on top of the built
// configuration. Callers must Sync the logger before exiting.
func newPipeline(mutate func(cfg *model.Config)) (*pipeline.Pipeline, *logger.Logger, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, nil, err
	}
	if mutate != nil {
		mutate(cfg)
	}
	log, err := logger.New(logMode, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return pipeline.New(cfg, log), log, nil
}
