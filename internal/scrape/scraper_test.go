package scrape

import (
	"testing"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/table"
)

func TestNonMatchingPeaks(t *testing.T) {
	hd := table.New("PEAKID", "PKNAME", "PKNAME2")
	for _, row := range [][]string{
		{"AMAD", "Ama Dablam", "Amai Dablang"},
		{"LONE", "Lonely Peak", ""},
	} {
		if err := hd.Append(row); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	nhpp := table.New("ID", "NAME", "ALTERNATE_NAMES")
	for _, row := range [][]string{
		{"3", "Ama Dablam", ""},
		{"9", "Unlisted", ""},
	} {
		if err := nhpp.Append(row); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	res, report, err := NonMatchingPeaks(hd, nhpp)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(res.Pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(res.Pairs))
	}
	if len(res.ResidualA) != 1 || res.ResidualA[0] != 1 {
		t.Errorf("Expected the unmatched HD peak residual, got %v", res.ResidualA)
	}

	if report.Len() != 2 {
		t.Fatalf("Expected 2 report rows, got %d", report.Len())
	}
	if got := report.Get(0, "HD_ID"); got != "LONE" {
		t.Errorf("Expected HD residual LONE, got %q", got)
	}
	if got := report.Get(1, "NHPP_ID"); got != "9" {
		t.Errorf("Expected NHPP residual 9, got %q", got)
	}
}

func TestResolveDistrict(t *testing.T) {
	possible := []string{"Solukhumbu", "Sankhuwasabha", ""}
	tests := []struct {
		district string
		want     string
	}{
		{"Solukhumbu", "Solukhumbu"},
		{"Sankhuwasava", "Sankhuwasava"},
		{"Sankhuwa", "Sankhuwasabha"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resolveDistrict(tt.district, possible); got != tt.want {
			t.Errorf("resolveDistrict(%q) = %q, expected %q", tt.district, got, tt.want)
		}
	}
}

func TestHDRange(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"Khumbu Himal", "Khumbu"},
		{"Damodar Himal (north of Annapurna)", "Damodar"},
		{"Saipal Himal", "Saipal"},
		{"Kangchenjunga Himal", "Kanchenjunga"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := hdRange(tt.location); got != tt.want {
			t.Errorf("hdRange(%q) = %q, expected %q", tt.location, got, tt.want)
		}
	}
}
