// Package dates wraps every date read coming from the backend. Payload
// date fields arrive as RFC3339 strings, bare dates, or epoch numbers
// depending on the endpoint, and some are plain garbage; all parsing
// here degrades to a zero value instead of failing.
package dates

import (
	"time"

	"github.com/tidwall/gjson"
)

// DisplayFallback is shown in place of a date the backend never gave us.
const DisplayFallback = "Date TBD"

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// Safe parses a payload value into a time. The second return is false
// when the value is missing, null, or unparsable.
func Safe(v gjson.Result) (time.Time, bool) {
	if !v.Exists() {
		return time.Time{}, false
	}
	switch v.Type {
	case gjson.String:
		return ParseString(v.Str)
	case gjson.Number:
		return fromEpoch(v.Num)
	default:
		return time.Time{}, false
	}
}

// ParseString tries the known backend layouts in order.
func ParseString(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fromEpoch treats large numbers as unix milliseconds, plausible ones as
// unix seconds, and anything small as not-a-date.
func fromEpoch(f float64) (time.Time, bool) {
	switch {
	case f > 1e12:
		return time.UnixMilli(int64(f)).UTC(), true
	case f > 1e9:
		return time.Unix(int64(f), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// MonthKey returns the month-bucket label for t, e.g. "Jan 2024".
func MonthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

// MonthStart truncates t to the first day of its month. Buckets are
// keyed on this internally so series sort by calendar order, not by
// label string order.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DayStart zeroes the time-of-day component. Lifecycle comparisons work
// at day granularity to avoid off-by-hours errors from clock skew.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDisplay renders a payload date for the UI, falling back to
// DisplayFallback when it cannot be parsed.
func FormatDisplay(v gjson.Result) string {
	t, ok := Safe(v)
	if !ok {
		return DisplayFallback
	}
	return t.Format("Jan 2, 2006")
}
