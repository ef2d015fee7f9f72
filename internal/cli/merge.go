package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Reconcile and merge the peak datasets",
	Long: `Merge combines the scraped peak tables (NHPP, PeakVisor, manually
collected) with the staged Himalayan Database peaks:

- applies the hand-curated correction directives to both sides
- matches peak identities across datasets by their name sets and
  assigns canonical Himalayan Database identifiers
- left-joins the HD attributes into the Nepal peaks with HD taking
  precedence, and flags each row with its provenance
- writes the residual review table of peaks found in only one side

Expeditions and members need no merging and pass through to the
processed directory unchanged.

Example:
  himalaya merge
  himalaya merge --staged-dir data/staged --processed-dir data/processed`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	addDataFlags(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	p, log, err := newPipeline(nil)
	if err != nil {
		return err
	}
	defer log.Sync()
	return p.Merge(context.Background())
}
