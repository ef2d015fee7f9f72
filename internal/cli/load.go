package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
)

var (
	loadTest      bool
	loadBatchSize int
	loadTestSize  int
	loadTestExtra []string
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the processed tables into Neo4j",
	Long: `Load creates (or replaces) the target Neo4j database and imports the
processed tables: Expedition, Member, Peak, Agency, Route, Country,
Range, District and Province nodes with their relationships, then
links the members of each expedition with CLIMBED_WITH relationships.

Connection settings come from the environment:
  NEO4J_SERVER_URL, NEO4J_SERVER_USERNAME, NEO4J_SERVER_PASSWORD,
  NEO4J_DATABASE_NAME (default: himalayandb)

With --test only the first expeditions (plus any --test-expedition)
and the members and peaks tied to them are imported.

Example:
  himalaya load
  himalaya load --test --test-size 100 --test-expedition EVER54101`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	addDataFlags(loadCmd)
	loadCmd.Flags().BoolVar(&loadTest, "test", false, "import only a test subset")
	loadCmd.Flags().IntVar(&loadBatchSize, "batch-size", 0, "rows per write transaction (default from config)")
	loadCmd.Flags().IntVar(&loadTestSize, "test-size", 0, "expeditions imported with --test (default from config)")
	loadCmd.Flags().StringSliceVar(&loadTestExtra, "test-expedition", nil, "extra expedition IDs to include with --test")
}

func runLoad(cmd *cobra.Command, args []string) error {
	p, log, err := newPipeline(applyLoadFlags)
	if err != nil {
		return err
	}
	defer log.Sync()
	return p.Load(context.Background(), loadTest)
}

func applyLoadFlags(cfg *model.Config) {
	if loadBatchSize > 0 {
		cfg.Import.BatchSize = loadBatchSize
	}
	if loadTestSize > 0 {
		cfg.Import.TestSize = loadTestSize
	}
	if len(loadTestExtra) > 0 {
		cfg.Import.TestExtra = loadTestExtra
	}
}
