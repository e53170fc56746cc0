// Package lifecycle classifies records as active, starting soon, or
// upcoming. Status strings win over dates when present; when neither
// exists the record counts as active, so missing information never
// hides a record from the dashboard.
package lifecycle

import (
	"strings"
	"time"

	"github.com/caredash/impactboard/pkg/dates"
	"github.com/tidwall/gjson"
)

// DefaultStartingSoonDays is the forward window for "starting soon".
// The 14-day window is inherited product behaviour; override it on the
// Classifier if the product ever changes its mind.
const DefaultStartingSoonDays = 14

var inactiveStatuses = map[string]bool{
	"inactive":  true,
	"completed": true,
	"ended":     true,
	"archived":  true,
	"cancelled": true,
	"canceled":  true,
}

var (
	startDateKeys = []string{"startDate", "start_date"}
	endDateKeys   = []string{"endDate", "end_date"}

	// PickupDateKeys is the fallback chain for pickup-style records:
	// preferred pickup date first, then pickup date, then creation date.
	PickupDateKeys = []string{
		"preferredPickupDate", "preferred_pickup_date",
		"pickupDate", "pickup_date",
		"createdAt", "created_at",
	}
)

// Classifier holds the clock and window used for date comparisons. The
// zero value is not usable; construct with New.
type Classifier struct {
	Now              func() time.Time
	StartingSoonDays int
}

func New() Classifier {
	return Classifier{Now: time.Now, StartingSoonDays: DefaultStartingSoonDays}
}

func (c Classifier) today() time.Time {
	return dates.DayStart(c.Now())
}

// IsActive reports whether a program record should appear in active
// views. A recognised terminal status wins; otherwise an end date in
// the past makes the record inactive; otherwise active.
func (c Classifier) IsActive(record gjson.Result) bool {
	if status := strings.TrimSpace(record.Get("status").String()); status != "" {
		return !inactiveStatuses[strings.ToLower(status)]
	}
	if end, ok := firstDate(record, endDateKeys); ok {
		return !dates.DayStart(end).Before(c.today())
	}
	return true
}

// IsStartingSoon reports whether the record's start date is today or
// later and within the configured forward window, inclusive.
func (c Classifier) IsStartingSoon(record gjson.Result) bool {
	start, ok := firstDate(record, startDateKeys)
	if !ok {
		return false
	}
	day := dates.DayStart(start)
	today := c.today()
	window := c.StartingSoonDays
	if window <= 0 {
		window = DefaultStartingSoonDays
	}
	return !day.Before(today) && !day.After(today.AddDate(0, 0, window))
}

// IsUpcoming reports whether a pickup-style record has a resolvable
// date that is today or later.
func (c Classifier) IsUpcoming(record gjson.Result) bool {
	t, ok := PickupDate(record)
	return ok && !dates.DayStart(t).Before(c.today())
}

// PickupDate resolves the pickup date for a donation via the fallback
// chain in PickupDateKeys.
func PickupDate(record gjson.Result) (time.Time, bool) {
	return firstDate(record, PickupDateKeys)
}

// StartDate resolves the program start date.
func StartDate(record gjson.Result) (time.Time, bool) {
	return firstDate(record, startDateKeys)
}

func firstDate(record gjson.Result, keys []string) (time.Time, bool) {
	for _, key := range keys {
		if t, ok := dates.Safe(record.Get(key)); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
