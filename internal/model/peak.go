package model

// PeakURL is one row of the NHPP all-peaks index: the peak identifier,
// its display name and the URL of its profile page.
type PeakURL struct {
	ID   string
	Name string
	URL  string
}

// PeakProfile is one peak record scraped from the NHPP website or
// rebuilt from PeakVisor for peaks NHPP does not cover. It is the raw
// tabular shape handed to the reconciliation pipeline.
type PeakProfile struct {
	ID             string
	URL            string
	Name           string
	AlternateNames string // comma-delimited, may be empty
	Lat            string
	Lon            string
	ElevationM     string
	ElevationFt    string
	Status         string
	FirstAscentOn  string
	FirstAscentBy  string
	Description    string
	Province       string
	District       string
	Municipality   string
	Range          string
	NepaleseFees   string
	ForeignerFees  string
}

// PeakProfileColumns is the column order of the scraped peaks table.
var PeakProfileColumns = []string{
	"ID", "URL", "NAME", "ALTERNATE_NAMES", "LAT", "LON",
	"ELEVATION_M", "ELEVATION_FT", "STATUS", "FIRST_ASCENT_ON",
	"FIRST_ASCENT_BY", "DESCRIPTION", "PROVINCE", "DISTRICT",
	"MUNICIPALITY", "RANGE", "NEPALESE_FEES", "FOREIGNER_FEES",
}

// Row returns the profile as a row matching PeakProfileColumns.
func (p PeakProfile) Row() []string {
	return []string{
		p.ID, p.URL, p.Name, p.AlternateNames, p.Lat, p.Lon,
		p.ElevationM, p.ElevationFt, p.Status, p.FirstAscentOn,
		p.FirstAscentBy, p.Description, p.Province, p.District,
		p.Municipality, p.Range, p.NepaleseFees, p.ForeignerFees,
	}
}
