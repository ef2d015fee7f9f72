package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/model"
	"golang.org/x/net/html"
)

// NHPPAdapter extracts peak data from the Nepal Himal Peak Profile
// site. The profile pages delimit their sections with HTML comments
// (OVERVIEW START, FACTS START, ...) which the extractor uses as
// landmarks, and the fields inside each section are free text matched
// by regular expressions.
type NHPPAdapter struct {
	BaseAdapter
}

// NewNHPPAdapter creates an NHPP adapter.
func NewNHPPAdapter() *NHPPAdapter {
	return &NHPPAdapter{}
}

// Overview section fields.
var (
	nhppAltNamesRe  = regexp.MustCompile(`\s*Other Name\s+(?P<alternate_names>[A-Z][\w\s,]+)`)
	nhppStatusRe    = regexp.MustCompile(`\s*Status\s+(?P<status>[A-Z]\w+(?:\s\w+)*)\s*`)
	nhppElevationRe = regexp.MustCompile(`\s*Elevation\s+(?P<elevation_m>\d{4}(\.\d{2})?)\sM\s+/\s+(?P<elevation_ft>\d{5}(\.\d{2})?)\sFT`)
	nhppLatRe       = regexp.MustCompile(`\s*Latitude\s+((?P<degree>\d{2}\s*[º°]?\s*\d{2}\s*'?\s*\d{2}\s*[",']*)|(?P<decimal>\d{2}\.\d{2,10}))\s+`)
	nhppLonRe       = regexp.MustCompile(`\s*Longitude\s+((?P<degree>\d{2}\s*[º°]?\s*\d{2}\s*'?\s*\d{2}\s*[",']*)|(?P<decimal>\d{2}\.\d{2,10}))\s+`)
)

// First ascent fields. Dates appear in several shapes ("May 29, 1953",
// "29 May, 1953", "29/05/1953"), sometimes followed by "A.D.".
var (
	nhppFirstAscentOnRe = regexp.MustCompile(`(\w{3,}\s*\d{1,2}\s*,\s*\d{4})\s*A?\.?D?\.?.*|(\d{1,2}\s*\w{3,}\s*,\s*\d{4})\s*A?\.?D?\.?.*|(\d{2}/\d{2}/\d{4})\s*A?\.?D?\.?.*`)
	nhppFirstAscentByRe = regexp.MustCompile(`\s*([\w\s]+(?:\(\s[\w\s]+\))?),?\s`)
	commaSpacingRe      = regexp.MustCompile(`\s*,\s*`)
)

var firstAscentLayouts = []string{
	"January2,2006", "Jan2,2006", "January 2,2006", "Jan 2,2006",
	"2 January,2006", "2 Jan,2006", "02/01/2006",
}

// Location and fees fields.
var (
	nhppProvinceRe     = regexp.MustCompile(`\s*Province:\s+(?P<province>[\w\s]+)`)
	nhppDistrictRe     = regexp.MustCompile(`\s*District:\s+(?P<district>[\w\s]+/?\w+)\s*`)
	nhppMunicipalityRe = regexp.MustCompile(`\s*Municipality/Rural Municipality:\s+(?P<municipality>[\w\s]+/?\w+)\s*`)
	nhppRangeRe        = regexp.MustCompile(`\s*Mountain Range:\s+(?P<range>[\w\s]+)`)
	nhppNepaleseFeesRe = regexp.MustCompile(`\s*Nepalese \(NRs\):\s+([\w\s]+)`)
	nhppForeignFeesRe  = regexp.MustCompile(`\s*Foreigners \(USD\):\s+([\w\s]+)`)
)

// ParseAllPeaks extracts the peak index from the all-peaks page: one
// ID, name and profile URL per table row. Peaks whose ID is in skip
// are left out.
func (a *NHPPAdapter) ParseAllPeaks(htmlContent, baseURL string, skip map[string]bool) ([]model.PeakURL, error) {
	doc, err := a.ParseHTML(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	peakTable := a.FindFirst(doc, func(n *html.Node) bool {
		return a.IsElement(n, "table") && a.GetAttribute(n, "id") == "mountaintable"
	})
	if peakTable == nil {
		return nil, fmt.Errorf("peak table not found")
	}
	body := a.FindFirstDescendant(peakTable, "tbody")
	if body == nil {
		return nil, fmt.Errorf("peak table has no body")
	}

	var peaks []model.PeakURL
	for _, row := range a.FindAll(body, func(n *html.Node) bool { return a.IsElement(n, "tr") }) {
		fields := a.ChildElements(row, "td")
		if len(fields) < 2 {
			continue
		}
		id := strings.TrimSpace(a.ExtractText(fields[0]))
		if skip[id] {
			continue
		}
		link := a.FindFirstDescendant(fields[1], "a")
		if link == nil {
			continue
		}
		peaks = append(peaks, model.PeakURL{
			ID:   id,
			Name: strings.TrimSpace(strings.ReplaceAll(a.ExtractText(fields[1]), "*", "")),
			URL:  baseURL + a.GetAttribute(link, "href"),
		})
	}
	return peaks, nil
}

// ParseProfile extracts a full peak profile from a profile page.
// Fields the page does not carry stay empty.
func (a *NHPPAdapter) ParseProfile(htmlContent string, peak model.PeakURL) (model.PeakProfile, error) {
	profile := model.PeakProfile{ID: peak.ID, URL: peak.URL, Name: peak.Name}

	doc, err := a.ParseHTML(htmlContent)
	if err != nil {
		return profile, fmt.Errorf("parse HTML: %w", err)
	}

	for _, comment := range a.Comments(doc) {
		switch {
		case strings.Contains(comment.Data, "OVERVIEW START"):
			a.parseOverview(comment, &profile)
		case strings.Contains(comment.Data, "OVERVIEW END"):
			a.parseDescription(comment, &profile)
		case strings.Contains(comment.Data, "FACTS START"):
			a.parseFacts(comment, &profile)
		case strings.Contains(comment.Data, "FACTS END"):
			return profile, nil
		}
	}
	return profile, nil
}

func (a *NHPPAdapter) parseOverview(comment *html.Node, profile *model.PeakProfile) {
	section := a.NextSiblingElement(comment, "div")
	if section == nil {
		return
	}

	// The overview grid is three columns wide on large screens, the
	// history grid below it two.
	overview := a.FindFirst(section, func(n *html.Node) bool {
		return a.IsElement(n, "div") && a.HasClasses(n, "uk-grid-medium", "uk-grid-match", "uk-child-width-1-3@l")
	})
	if overview != nil {
		for _, detail := range a.ChildElements(overview, "div") {
			// The field patterns anchor on a trailing separator that
			// text extraction trims off.
			text := a.ExtractText(detail) + " "
			if m := findNamed(nhppAltNamesRe, text); m != nil {
				names := strings.TrimSpace(m["alternate_names"])
				names = strings.ReplaceAll(names, " *", "")
				names = strings.ReplaceAll(names, "'", "")
				profile.AlternateNames = strings.ReplaceAll(names, ", ", ",")
			} else if m := findNamed(nhppStatusRe, text); m != nil {
				profile.Status = m["status"]
			} else if m := findNamed(nhppElevationRe, text); m != nil {
				profile.ElevationM = m["elevation_m"]
				profile.ElevationFt = m["elevation_ft"]
			} else if m := findNamed(nhppLatRe, text); m != nil {
				profile.Lat = coordinate(m, "N")
			} else if m := findNamed(nhppLonRe, text); m != nil {
				profile.Lon = coordinate(m, "E")
			}
		}
	}

	history := a.FindFirst(section, func(n *html.Node) bool {
		return a.IsElement(n, "div") && a.HasClasses(n, "uk-grid-medium", "uk-grid-match", "uk-child-width-1-2@l")
	})
	if history == nil {
		return
	}
	details := a.FindAll(history, func(n *html.Node) bool {
		return a.IsElement(n, "div") && a.HasClasses(n, "el-content", "uk-panel", "uk-margin-small-top")
	})
	if len(details) < 2 {
		return
	}

	// The first panel carries the first ascent date, the second the
	// list of climbers.
	groups := nhppFirstAscentOnRe.FindStringSubmatch(a.ExtractText(details[0]))
	if groups != nil {
		var raw string
		for _, g := range groups[1:] {
			if g != "" {
				raw = g
				break
			}
		}
		profile.FirstAscentOn = normalizeFirstAscentDate(raw)
	}

	var climbers []string
	for _, m := range nhppFirstAscentByRe.FindAllStringSubmatch(a.ExtractText(details[1])+" ", -1) {
		name := strings.ReplaceAll(m[1], "( ", "(")
		name = strings.ReplaceAll(name, "   )", ")")
		climbers = append(climbers, name)
	}
	profile.FirstAscentBy = strings.Join(climbers, ",")
}

func (a *NHPPAdapter) parseDescription(comment *html.Node, profile *model.PeakProfile) {
	first := a.NextSiblingElement(comment, "div")
	if first == nil {
		return
	}
	section := a.NextSiblingElement(first, "div")
	if section == nil {
		return
	}
	description := a.FindFirst(section, func(n *html.Node) bool {
		return a.IsElement(n, "div") && a.HasClass(n, "uk-column-large")
	})
	if description != nil {
		profile.Description = a.ExtractText(description)
	}
}

func (a *NHPPAdapter) parseFacts(comment *html.Node, profile *model.PeakProfile) {
	section := a.NextSiblingElement(comment, "div")
	if section == nil {
		return
	}
	facts := a.FindFirst(section, func(n *html.Node) bool {
		return a.IsElement(n, "div") && a.HasClasses(n, "uk-child-width-1-2@m", "uk-grid-small", "uk-grid")
	})
	if facts == nil {
		return
	}
	subSections := a.ChildElements(facts, "div")

	// The first sub-section lists the location, the third the fees.
	if len(subSections) > 0 {
		if list := a.nestedList(subSections[0]); list != nil {
			for _, li := range a.FindAll(list, func(n *html.Node) bool { return a.IsElement(n, "li") }) {
				text := a.ExtractText(li)
				if m := findNamed(nhppProvinceRe, text); m != nil {
					profile.Province = strings.TrimSpace(m["province"])
				} else if m := findNamed(nhppMunicipalityRe, text); m != nil {
					profile.Municipality = strings.TrimSpace(m["municipality"])
				} else if m := findNamed(nhppDistrictRe, text); m != nil {
					profile.District = strings.TrimSpace(m["district"])
				} else if m := findNamed(nhppRangeRe, text); m != nil {
					profile.Range = strings.TrimSpace(m["range"])
				}
			}
		}
	}
	if len(subSections) > 2 {
		if list := a.nestedList(subSections[2]); list != nil {
			items := a.FindAll(list, func(n *html.Node) bool { return a.IsElement(n, "li") })
			if len(items) > 0 {
				if m := nhppNepaleseFeesRe.FindStringSubmatch(a.ExtractText(items[0])); m != nil {
					profile.NepaleseFees = strings.TrimSpace(m[1]) + " (NRs)"
				}
			}
			if len(items) > 1 {
				if m := nhppForeignFeesRe.FindStringSubmatch(a.ExtractText(items[1])); m != nil {
					profile.ForeignerFees = strings.TrimSpace(m[1]) + " (USD)"
				}
			}
		}
	}
}

// nestedList digs to the UL two DIV levels below a facts sub-section.
func (a *NHPPAdapter) nestedList(n *html.Node) *html.Node {
	d1 := a.FindFirstDescendant(n, "div")
	if d1 == nil {
		return nil
	}
	d2 := a.FindFirstDescendant(d1, "div")
	if d2 == nil {
		return nil
	}
	return a.FindFirstDescendant(d2, "ul")
}

// normalizeFirstAscentDate converts the matched date text to
// dd/mm/yyyy. Text that fits none of the known shapes passes through
// unchanged.
func normalizeFirstAscentDate(raw string) string {
	raw = commaSpacingRe.ReplaceAllString(raw, ",")
	for _, layout := range firstAscentLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return raw
}

// coordinate renders a matched latitude or longitude as decimal
// degrees, converting from DMS when the page uses that form.
func coordinate(m map[string]string, hemisphere string) string {
	if deg := m["degree"]; deg != "" {
		dec, err := DMSToDecimal(deg + " " + hemisphere)
		if err != nil {
			return ""
		}
		return strconv.FormatFloat(dec, 'f', -1, 64)
	}
	if dec := m["decimal"]; dec != "" {
		f, err := strconv.ParseFloat(dec, 64)
		if err != nil {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// findNamed returns the named capture groups of the first match, or
// nil when the pattern does not match.
func findNamed(re *regexp.Regexp, text string) map[string]string {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}
	return groups
}
