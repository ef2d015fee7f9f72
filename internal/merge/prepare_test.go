package merge

import (
	"testing"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

var nepalSourceColumns = []string{
	"ID", "NAME", "ALTERNATE_NAMES", "ELEVATION_M", "ELEVATION_FT",
	"STATUS", "RANGE", "LAT", "LON",
}

func TestPrepareNepalPeaks(t *testing.T) {
	scraped := table.New(nepalSourceColumns...)
	scraped.AppendMap(map[string]string{
		"ID": "3", "NAME": "Amadablam", "RANGE": "Khumbu Himal",
		"ELEVATION_M": "6814", "STATUS": "Opened",
	})
	peakvisor := table.New(nepalSourceColumns...)
	peakvisor.AppendMap(map[string]string{
		"ID": "KANG", "NAME": "Kang Kuru", "RANGE": "Peri Himal",
	})
	manual := table.New(nepalSourceColumns...)

	hd := table.New("PEAKID", "PKNAME", "PKNAME2", "PSTATUS")
	hd.AppendMap(map[string]string{
		"PEAKID": "AMAD", "PKNAME": "Ama Dablam", "PKNAME2": "Amai Dablang", "PSTATUS": "2",
	})

	nepal, hdOut, report, err := PrepareNepalPeaks(scraped, peakvisor, manual, hd, logger.Nop())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if nepal.Len() != 2 {
		t.Fatalf("Expected 2 prepared rows, got %d", nepal.Len())
	}
	// The Amadablam correction renames the peak, which lets the name
	// match assign the canonical HD identifier.
	if got := nepal.Get(0, "NAME"); got != "Ama Dablam" {
		t.Errorf("Expected corrected name, got %q", got)
	}
	if got := nepal.Get(0, "PEAKID"); got != "AMAD" {
		t.Errorf("Expected canonical identifier AMAD, got %q", got)
	}
	if got := nepal.Get(0, "RANGE"); got != "Khumbu" {
		t.Errorf("Expected Himal suffix stripped, got %q", got)
	}

	// The unmatched PeakVisor record keeps its own identifier.
	if got := nepal.Get(1, "PEAKID"); got != "KANG" {
		t.Errorf("Expected own identifier kept, got %q", got)
	}
	if got := nepal.Get(1, "RANGE"); got != "Peri" {
		t.Errorf("Expected Himal suffix stripped, got %q", got)
	}

	if hdOut.Len() != 1 {
		t.Fatalf("Expected 1 HD row, got %d", hdOut.Len())
	}

	if report.Len() != 1 {
		t.Fatalf("Expected 1 residual row, got %d", report.Len())
	}
	if got := report.Get(0, "NHPP_ID"); got != "KANG" {
		t.Errorf("Expected residual Nepal record KANG, got %q", got)
	}
	if got := report.Get(0, "HD_ID"); got != "" {
		t.Errorf("Expected no HD residual, got %q", got)
	}
}
