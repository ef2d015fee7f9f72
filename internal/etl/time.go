package etl

import "strings"

// nepalUTCOffset is appended to every repaired time value. All source
// times are local Kathmandu times.
const nepalUTCOffset = "+0545"

// FixTime repairs a raw summit/death/injury time string into an
// "HH:MM+0545" value, or "" when the value cannot be a valid 24-hour
// time. The repair steps run in a fixed order:
//
//  1. hour-only values ("9", "14") get a zero minute appended
//  2. 3-digit values ("945") get a leading zero
//  3. a minute component above 59 is clamped down to 00
//  4. anything lexicographically above "2359" is discarded
//
// FixTime is a pure function of its argument; it never looks at row
// context and never fails.
func FixTime(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if len(s) <= 2 {
		s += "00"
	}
	if len(s) == 3 {
		s = "0" + s
	}
	if s[len(s)-2:] > "59" {
		s = s[:len(s)-2] + "00"
	}
	if s > "2359" {
		return ""
	}
	return s[:len(s)-2] + ":" + s[len(s)-2:] + nepalUTCOffset
}
