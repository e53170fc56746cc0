package dates

import (
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func field(doc string) gjson.Result {
	return gjson.Get(doc, "v")
}

func TestSafe(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		wantOK bool
		want   string // "2006-01-02" of the parsed value, when ok
	}{
		{"rfc3339", `{"v":"2024-01-10T09:30:00Z"}`, true, "2024-01-10"},
		{"date only", `{"v":"2024-01-10"}`, true, "2024-01-10"},
		{"slash date", `{"v":"2024/01/10"}`, true, "2024-01-10"},
		{"unix seconds", `{"v":1704931200}`, true, "2024-01-11"},
		{"unix millis", `{"v":1704931200000}`, true, "2024-01-11"},
		{"garbage", `{"v":"not a date"}`, false, ""},
		{"empty string", `{"v":""}`, false, ""},
		{"null", `{"v":null}`, false, ""},
		{"missing", `{}`, false, ""},
		{"small number", `{"v":42}`, false, ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Safe(field(tc.doc))
			if ok != tc.wantOK {
				t.Fatalf("Safe(%s) ok = %v, want %v", tc.doc, ok, tc.wantOK)
			}
			if ok && got.Format("2006-01-02") != tc.want {
				t.Fatalf("Safe(%s) = %s, want %s", tc.doc, got.Format("2006-01-02"), tc.want)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	d := time.Date(2024, time.January, 20, 15, 4, 5, 0, time.UTC)
	if got := MonthKey(d); got != "Jan 2024" {
		t.Fatalf("MonthKey = %q, want %q", got, "Jan 2024")
	}
}

func TestMonthStartSortsChronologically(t *testing.T) {
	nov := MonthStart(time.Date(2023, time.November, 30, 0, 0, 0, 0, time.UTC))
	dec := MonthStart(time.Date(2023, time.December, 1, 23, 59, 0, 0, time.UTC))
	jan := MonthStart(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))

	if !nov.Before(dec) || !dec.Before(jan) {
		t.Fatalf("month starts not chronological: %v %v %v", nov, dec, jan)
	}
}

func TestDayStart(t *testing.T) {
	d := time.Date(2024, time.March, 5, 23, 59, 59, 999, time.UTC)
	got := DayStart(d)
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DayStart = %v, want %v", got, want)
	}
}

func TestFormatDisplay(t *testing.T) {
	if got := FormatDisplay(field(`{"v":"2024-01-10"}`)); got != "Jan 10, 2024" {
		t.Fatalf("FormatDisplay = %q", got)
	}
	if got := FormatDisplay(field(`{"v":"???"}`)); got != DisplayFallback {
		t.Fatalf("FormatDisplay fallback = %q, want %q", got, DisplayFallback)
	}
	if got := FormatDisplay(field(`{}`)); got != DisplayFallback {
		t.Fatalf("FormatDisplay missing = %q, want %q", got, DisplayFallback)
	}
}
