package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Collect peak data from the NHPP and PeakVisor websites",
	Long: `Scrape collects the web half of the source data:

- the peak index and every peak profile page from the Nepal Himal
  Peak Profile website (8 concurrent fetches by default)
- PeakVisor lookups for the Himalayan Database peaks NHPP does not
  list (4 concurrent fetches by default)

It also writes the review table of peaks found in only one dataset,
which feeds the manual curation of correction directives. Fetched
pages are cached on disk, so re-running after a failure does not
re-download everything.

Example:
  himalaya scrape
  himalaya scrape --scraped-dir data/nhpp --source-dir data/hdb`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	addDataFlags(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	p, log, err := newPipeline(nil)
	if err != nil {
		return err
	}
	defer log.Sync()
	return p.Scrape(context.Background())
}
