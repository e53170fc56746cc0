// Package quantity turns donor-authored quantity strings into point
// estimates usable for charting. Donors pick free-text buckets like
// "6-15 Items" or "30+ Items", so exact counts do not exist; the range
// midpoint is a defensible stand-in for aggregate views.
package quantity

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rangeRe  = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	plusRe   = regexp.MustCompile(`(\d+)\s*\+`)
	digitsRe = regexp.MustCompile(`\d+`)
)

// Parse converts a free-text quantity into an integer >= 0.
// "6-15 Items" -> 10 (midpoint), "30+ Items" -> 30,
// "around 12" -> 12, anything without digits -> 0.
func Parse(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if m := rangeRe.FindStringSubmatch(text); m != nil {
		low, errLow := strconv.Atoi(m[1])
		high, errHigh := strconv.Atoi(m[2])
		if errLow == nil && errHigh == nil {
			// "6-15" yields 10: the midpoint truncates, matching how the
			// dashboards have always reported bucketed quantities.
			return (low + high) / 2
		}
	}

	if m := plusRe.FindStringSubmatch(text); m != nil {
		if base, err := strconv.Atoi(m[1]); err == nil {
			return base
		}
	}

	if m := digitsRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}

	return 0
}
