package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the stage, merge and load stages in order",
	Long: `Run executes the full offline pipeline: stage the Himalayan
Database extracts, merge the peak datasets, and load the result into
Neo4j.

Scraping is not included; it hits external websites and its outputs
are usually committed alongside the manually curated data. Run
'himalaya scrape' separately when the web data needs refreshing.

Example:
  himalaya run
  himalaya run --test`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addDataFlags(runCmd)
	runCmd.Flags().BoolVar(&loadTest, "test", false, "import only a test subset")
}

func runRun(cmd *cobra.Command, args []string) error {
	p, log, err := newPipeline(applyLoadFlags)
	if err != nil {
		return err
	}
	defer log.Sync()
	return p.Run(context.Background(), loadTest)
}
