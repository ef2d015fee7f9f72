package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var dmsRe = regexp.MustCompile(`(\d+)\s*[º°]?\s*(\d+)\s*'?\s*(\d+)`)

// DMSToDecimal converts a degrees-minutes-seconds coordinate such as
// `27º 59' 17" N` to decimal degrees. South and west coordinates come
// out negative.
func DMSToDecimal(dms string) (float64, error) {
	m := dmsRe.FindStringSubmatch(dms)
	if m == nil {
		return 0, fmt.Errorf("not a DMS coordinate: %q", dms)
	}

	deg, _ := strconv.ParseFloat(m[1], 64)
	min, _ := strconv.ParseFloat(m[2], 64)
	sec, _ := strconv.ParseFloat(m[3], 64)
	dec := deg + min/60 + sec/3600

	upper := strings.ToUpper(dms)
	if strings.Contains(upper, "S") || strings.Contains(upper, "W") {
		dec = -dec
	}
	return dec, nil
}
