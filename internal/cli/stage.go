package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
)

var identitySeed int64

// stageCmd represents the stage command
var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Clean and stage the Himalayan Database extracts",
	Long: `Stage transforms the raw Himalayan Database CSV extracts into the
staged tables:

- members: surrogate person identifiers, citizenship cleanup, time
  repair, categorical code expansion
- expeditions: summit time repair, route name cleanup, code
  expansion; expeditions without members are dropped
- peaks: first-ascent date reconstruction, climbed tri-state

The surrogate person identifiers are generated from a fixed seed so
repeated runs produce the same identifiers.

Example:
  himalaya stage
  himalaya stage --source-dir data/hdb --staged-dir data/staged`,
	RunE: runStage,
}

func init() {
	rootCmd.AddCommand(stageCmd)
	addDataFlags(stageCmd)
	stageCmd.Flags().Int64Var(&identitySeed, "seed", 0, "random seed for surrogate person identifiers")
}

func runStage(cmd *cobra.Command, args []string) error {
	p, log, err := newPipeline(func(cfg *model.Config) {
		if cmd.Flags().Changed("seed") {
			cfg.Identity.Seed = identitySeed
		}
	})
	if err != nil {
		return err
	}
	defer log.Sync()
	return p.Stage(context.Background())
}
