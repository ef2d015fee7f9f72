package adapters

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// PeakVisorAdapter extracts coordinates, district and a description
// from PeakVisor peak pages. PeakVisor has no search API the scraper
// can use, so callers probe candidate page URLs built from the peak's
// known names and feed the pages that exist to this adapter.
type PeakVisorAdapter struct {
	BaseAdapter
}

// NewPeakVisorAdapter creates a PeakVisor adapter.
func NewPeakVisorAdapter() *PeakVisorAdapter {
	return &PeakVisorAdapter{}
}

// PeakVisorLocation is the data lifted from one PeakVisor page.
type PeakVisorLocation struct {
	Lat      string
	Lon      string
	District string
	About    string
}

// NameVariants expands a list of known peak names with the spelling
// variants PeakVisor uses for its page slugs: names with "peak"
// removed, with "peak" appended and with a "mount" prefix. Each pass
// also expands the variants added by the previous one.
func NameVariants(names []string) []string {
	variants := append([]string{}, names...)
	for _, n := range variants {
		if i := strings.Index(strings.ToLower(n), "peak"); i >= 0 {
			variants = append(variants, strings.TrimSpace(n[:i]+n[i+len("peak"):]))
		}
	}
	base := variants
	for _, n := range base {
		if !strings.Contains(strings.ToLower(n), "peak") {
			variants = append(variants, n+" peak")
		}
	}
	base = variants
	for _, n := range base {
		if !strings.Contains(strings.ToLower(n), "peak") {
			variants = append(variants, "mount "+n)
		}
	}
	return variants
}

// PageURL builds the PeakVisor page URL for a candidate peak name.
func PageURL(name string) string {
	return fmt.Sprintf("https://peakvisor.com/peak/%s.html",
		strings.ReplaceAll(strings.ToLower(name), " ", "-"))
}

// ParsePage extracts the location data from a PeakVisor peak page.
// It returns ok=false when the page is not for a peak in Nepal or is
// missing any of the wanted fields, so the caller moves on to the
// next candidate name.
func (a *PeakVisorAdapter) ParsePage(htmlContent string) (PeakVisorLocation, bool, error) {
	var loc PeakVisorLocation

	doc, err := a.ParseHTML(htmlContent)
	if err != nil {
		return loc, false, fmt.Errorf("parse HTML: %w", err)
	}

	// The sidebar lists the peak per country; only pages whose first
	// country entry is Nepal count, and the district is that entry's
	// last item.
	nepal := false
	for _, country := range a.FindAll(doc, func(n *html.Node) bool {
		return a.IsElement(n, "div") && a.HasClass(n, "sidebar__hs-country")
	}) {
		content := a.FindFirst(country, func(n *html.Node) bool {
			return a.IsElement(n, "div") && a.HasClass(n, "sidebar__hs-chip-content")
		})
		if content == nil {
			continue
		}
		items := a.FindAll(content, func(n *html.Node) bool { return a.IsElement(n, "li") })
		if len(items) > 0 && a.ExtractText(items[0]) == "Nepal" {
			loc.District = a.ExtractText(items[len(items)-1])
			nepal = true
			break
		}
	}
	if !nepal {
		return PeakVisorLocation{}, false, nil
	}

	coords := a.FindFirst(doc, func(n *html.Node) bool {
		return a.IsElement(n, "div") && a.HasClasses(n, "sidebar__hs-chip", "location-coordinates")
	})
	if coords == nil {
		return PeakVisorLocation{}, false, nil
	}
	lat := a.FindFirst(coords, func(n *html.Node) bool { return a.GetAttribute(n, "id") == "lat" })
	lon := a.FindFirst(coords, func(n *html.Node) bool { return a.GetAttribute(n, "id") == "lng" })
	if lat == nil || lon == nil {
		return PeakVisorLocation{}, false, nil
	}
	loc.Lat = a.ExtractText(lat)
	loc.Lon = a.ExtractText(lon)

	about := a.FindFirst(doc, func(n *html.Node) bool {
		return a.IsElement(n, "div") && a.HasClass(n, "sidebar__hs-desc-text")
	})
	if about == nil {
		return PeakVisorLocation{}, false, nil
	}
	loc.About = a.ExtractText(about)

	return loc, true, nil
}
