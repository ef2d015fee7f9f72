package etl

import (
	"regexp"
	"strings"
)

// routeRule is one step of the route-name cleanup. The rules are pure
// find-and-replace and their order is part of the contract: later
// rules rely on earlier ones having normalized case and spacing.
type routeRule struct {
	apply func(string) string
}

func reRule(pattern, repl string) routeRule {
	re := regexp.MustCompile(pattern)
	return routeRule{apply: func(s string) string { return re.ReplaceAllString(s, repl) }}
}

func litRule(old, new string) routeRule {
	return routeRule{apply: func(s string) string { return strings.ReplaceAll(s, old, new) }}
}

// keptParens marks parentheticals that detail a specific route and
// must survive the generic parenthetical strip.
var keptParens = []string{"rte)", "couloir)", "couloirs)", "rib)"}

// stripParentheticals removes " (...)" segments unless they end with
// a route-detailing term or read "(new line)". RE2 has no lookahead,
// so this rule is a scan instead of a substitution.
func stripParentheticals(s string) string {
	for {
		open := strings.Index(s, " (")
		if open < 0 {
			return s
		}
		end := strings.Index(s[open:], ")")
		if end < 0 {
			return s
		}
		seg := s[open : open+end+1]
		keep := seg == " (new line)"
		for _, suffix := range keptParens {
			if strings.HasSuffix(seg, suffix) {
				keep = true
				break
			}
		}
		if keep {
			return s[:open+end+1] + stripParentheticals(s[open+end+1:])
		}
		s = s[:open] + s[open+end+1:]
	}
}

// routeRules is the ordered cleanup applied to every route column.
// Route names in the source carry annotations ("(to 6000m)", descent
// mentions, member counts) that would each mint a spurious Route node
// in the graph.
var routeRules = []routeRule{
	// Altitude and acclimatization annotations.
	reRule(`\(to \d{4}m\)`, ""),
	reRule(`\(\d{4} high\)`, ""),
	reRule(`\(acclimatization rte\)|for acclimatization`, ""),
	// Descent mentions: only the ascent route is kept.
	reRule(`[,;/].*\(?down\)?`, ""),
	reRule(`\s*up$`, ""),
	// Case normalization of domain terms.
	litRule("COl", "Col"),
	litRule("Couloir", "couloir"),
	litRule("Couloirs", "couloirs"),
	reRule(`\sRte\)`, " rte)"),
	reRule(`\(Tichy\)`, "(Tichy rte)"),
	reRule(`Rib`, "rib"),
	// Generic parenthetical strip, keeping route-detailing ones.
	{apply: stripParentheticals},
	// Dangling connective phrases.
	reRule(`\s(via|from)\s.*`, ""),
	litRule("(permit for trekking only)", ""),
	reRule(`\sby\s\d.*members`, ""),
	reRule(`\?$`, ""),
	reRule(`\s?-\s?`, "-"),
	// Known misspellings and over-specific route names.
	litRule("S Sol-SE Ridge", "S Col-SE Ridge"),
	litRule("Genava", "Geneva"),
	litRule("(1980 German rte, left of the rib)", "(1980 German rte)"),
	litRule("N Face (French 1950 rte)", "N Face (French rte)"),
	litRule("SW Face (Bonington 1975 rte)", "SW Face (Bonington rte)"),
}

// CleanRoute applies the full ordered rule set to one route name.
func CleanRoute(raw string) string {
	s := raw
	for _, rule := range routeRules {
		s = rule.apply(s)
	}
	return strings.TrimSpace(s)
}
