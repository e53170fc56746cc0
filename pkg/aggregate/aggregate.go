// Package aggregate folds raw program and donation collections into the
// stats, month-bucketed series, and rankings the dashboards render.
// Every input field is treated as unreliable; failures degrade to zero
// values and the fold never aborts.
package aggregate

import (
	"sort"
	"time"

	"github.com/caredash/impactboard/pkg/dates"
	"github.com/caredash/impactboard/pkg/identity"
	"github.com/caredash/impactboard/pkg/lifecycle"
	"github.com/caredash/impactboard/pkg/quantity"
	"github.com/tidwall/gjson"
)

// Config carries the tunable constants of the fold. ItemsPerPerson and
// StartingSoonDays are inherited product behaviour with no documented
// rationale; they are kept as named, overridable values on purpose.
type Config struct {
	ItemsPerPerson   int
	StartingSoonDays int
	TopN             int
	OwnerKeys        []string
	NestedOwnerKeys  []string
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		ItemsPerPerson:   5,
		StartingSoonDays: lifecycle.DefaultStartingSoonDays,
		TopN:             3,
		OwnerKeys:        identity.DefaultOwnerKeys,
		NestedOwnerKeys:  identity.DefaultNestedKeys,
	}
}

// Engine performs the aggregation. It holds no state between calls:
// Aggregate is pure given its inputs and the injected clock, so it can
// be re-invoked from a polling timer without locking.
type Engine struct {
	cfg Config
	cls lifecycle.Classifier
}

// New builds an Engine on the real clock.
func New(cfg Config) *Engine {
	return NewWithClock(cfg, time.Now)
}

// NewWithClock builds an Engine with an injected clock, used by tests
// and anything that needs reproducible "today" semantics.
func NewWithClock(cfg Config, now func() time.Time) *Engine {
	if cfg.ItemsPerPerson <= 0 {
		cfg.ItemsPerPerson = 5
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	if len(cfg.OwnerKeys) == 0 {
		cfg.OwnerKeys = identity.DefaultOwnerKeys
	}
	if len(cfg.NestedOwnerKeys) == 0 {
		cfg.NestedOwnerKeys = identity.DefaultNestedKeys
	}
	cls := lifecycle.New()
	cls.Now = now
	cls.StartingSoonDays = cfg.StartingSoonDays
	return &Engine{cfg: cfg, cls: cls}
}

// MonthBucket is one entry of the chronological time series.
type MonthBucket struct {
	Month          string `json:"month"`
	ProgramsAdded  int    `json:"programsAdded"`
	Donations      int    `json:"donations"`
	ItemsCollected int    `json:"itemsCollected"`
	PeopleHelped   int    `json:"peopleHelped"`
}

// PickupRank is an upcoming-pickup ranking entry.
type PickupRank struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Quantity   int    `json:"quantity"`
	PickupDate string `json:"pickupDate"`
}

// ProgramRank is a top-program ranking entry.
type ProgramRank struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	ItemsCollected int     `json:"itemsCollected"`
	TargetItems    int     `json:"targetItems"`
	Completion     float64 `json:"completion"`
}

// Rankings holds the two short ranked sublists the dashboards show.
type Rankings struct {
	UpcomingPickups []PickupRank  `json:"upcomingPickups"`
	TopPrograms     []ProgramRank `json:"topPrograms"`
}

// Result is the full dashboard aggregate. OwnedPrograms is nil when no
// actor identity was resolvable; nil means "not available" and must not
// be rendered as zero.
type Result struct {
	TotalDonations  int  `json:"totalDonations"`
	UpcomingPickups int  `json:"upcomingPickups"`
	TotalPrograms   int  `json:"totalPrograms"`
	ActivePrograms  int  `json:"activePrograms"`
	StartingSoon    int  `json:"startingSoon"`
	ItemsCollected  int  `json:"itemsCollected"`
	PeopleHelped    int  `json:"peopleHelped"`
	OwnedPrograms   *int `json:"ownedPrograms,omitempty"`

	Series   []MonthBucket `json:"series"`
	Rankings Rankings      `json:"rankings"`
}

// Aggregate folds the two collections into a Result. actor is the
// normalized identity token of the current session, or "" when unknown;
// owner scoping is only computed when it is non-empty. Either
// collection may be empty (including after an upstream fetch failure)
// without affecting the other.
func (e *Engine) Aggregate(programs, donations []gjson.Result, actor string) Result {
	var res Result
	buckets := map[time.Time]*MonthBucket{}

	owned := 0
	for _, p := range programs {
		res.TotalPrograms++
		if e.cls.IsActive(p) {
			res.ActivePrograms++
		}
		if e.cls.IsStartingSoon(p) {
			res.StartingSoon++
		}
		res.PeopleHelped += nonNegInt(p, "estimatedBeneficiaries", "estimated_beneficiaries")

		if actor != "" && identity.ResolveOwner(p, e.cfg.OwnerKeys, e.cfg.NestedOwnerKeys) == actor {
			owned++
		}

		if start, ok := lifecycle.StartDate(p); ok {
			bucketFor(buckets, start).ProgramsAdded++
		}
	}
	if actor != "" {
		res.OwnedPrograms = &owned
	}

	for _, d := range donations {
		res.TotalDonations++
		qty := quantity.Parse(firstString(d, "estimatedQuantity", "estimated_quantity"))
		res.ItemsCollected += qty
		if e.cls.IsUpcoming(d) {
			res.UpcomingPickups++
		}
		if t, ok := donationDate(d); ok {
			b := bucketFor(buckets, t)
			b.Donations++
			b.ItemsCollected += qty
		}
	}

	res.Series = e.buildSeries(buckets)
	res.Rankings = Rankings{
		UpcomingPickups: e.rankPickups(donations),
		TopPrograms:     e.rankPrograms(programs),
	}
	return res
}

// donationDate prefers the creation date for bucketing and falls back
// to the pickup chain when the backend omitted it.
func donationDate(d gjson.Result) (time.Time, bool) {
	for _, key := range []string{"createdAt", "created_at"} {
		if t, ok := dates.Safe(d.Get(key)); ok {
			return t, true
		}
	}
	return lifecycle.PickupDate(d)
}

func bucketFor(buckets map[time.Time]*MonthBucket, t time.Time) *MonthBucket {
	key := dates.MonthStart(t)
	b, ok := buckets[key]
	if !ok {
		b = &MonthBucket{Month: dates.MonthKey(key)}
		buckets[key] = b
	}
	return b
}

// buildSeries flattens the bucket map into a slice sorted by calendar
// order. Sorting happens on the month-start key, never on the label:
// "Feb 2024" precedes "Jan 2024" lexicographically.
func (e *Engine) buildSeries(buckets map[time.Time]*MonthBucket) []MonthBucket {
	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	series := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		b := *buckets[k]
		b.PeopleHelped = b.ItemsCollected / e.cfg.ItemsPerPerson
		series = append(series, b)
	}
	return series
}

// rankPickups returns the soonest upcoming pickups. Donations without a
// resolvable date sort last, so they only surface when fewer than TopN
// dated pickups exist.
func (e *Engine) rankPickups(donations []gjson.Result) []PickupRank {
	type candidate struct {
		rank  PickupRank
		date  time.Time
		dated bool
	}
	var cands []candidate
	for _, d := range donations {
		t, ok := lifecycle.PickupDate(d)
		if ok && dates.DayStart(t).Before(dates.DayStart(e.cls.Now())) {
			continue // already past
		}
		cands = append(cands, candidate{
			rank: PickupRank{
				ID:         recordID(d),
				FullName:   firstString(d, "fullName", "full_name", "name"),
				Quantity:   quantity.Parse(firstString(d, "estimatedQuantity", "estimated_quantity")),
				PickupDate: displayPickupDate(d),
			},
			date:  t,
			dated: ok,
		})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dated != cands[j].dated {
			return cands[i].dated
		}
		return cands[i].date.Before(cands[j].date)
	})
	out := make([]PickupRank, 0, e.cfg.TopN)
	for _, c := range cands {
		if len(out) == e.cfg.TopN {
			break
		}
		out = append(out, c.rank)
	}
	return out
}

func displayPickupDate(d gjson.Result) string {
	if t, ok := lifecycle.PickupDate(d); ok {
		return t.Format("Jan 2, 2006")
	}
	return dates.DisplayFallback
}

// rankPrograms returns the active programs closest to their collection
// target. A zero or missing target ranks as completion 0 rather than
// dividing by zero.
func (e *Engine) rankPrograms(programs []gjson.Result) []ProgramRank {
	var ranks []ProgramRank
	for _, p := range programs {
		if !e.cls.IsActive(p) {
			continue
		}
		collected := nonNegInt(p, "itemsCollected", "items_collected")
		target := nonNegInt(p, "targetItems", "target_items")
		completion := 0.0
		if target > 0 {
			completion = float64(collected) / float64(target)
		}
		ranks = append(ranks, ProgramRank{
			ID:             recordID(p),
			Title:          firstString(p, "title", "name", "programName"),
			ItemsCollected: collected,
			TargetItems:    target,
			Completion:     completion,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Completion > ranks[j].Completion })
	if len(ranks) > e.cfg.TopN {
		ranks = ranks[:e.cfg.TopN]
	}
	return ranks
}

func recordID(r gjson.Result) string {
	for _, key := range []string{"id", "_id", "programId", "program_id", "donationId", "donation_id"} {
		if tok := identity.NormalizeToken(r.Get(key)); tok != "" {
			return tok
		}
	}
	return ""
}

func firstString(r gjson.Result, keys ...string) string {
	for _, key := range keys {
		v := r.Get(key)
		if v.Type != gjson.String && v.Type != gjson.Number {
			continue
		}
		if s := v.String(); s != "" {
			return s
		}
	}
	return ""
}

// nonNegInt reads the first numeric-looking value among keys, clamping
// anything non-numeric or negative to 0.
func nonNegInt(r gjson.Result, keys ...string) int {
	for _, key := range keys {
		v := r.Get(key)
		if !v.Exists() {
			continue
		}
		switch v.Type {
		case gjson.Number:
			if n := int(v.Int()); n > 0 {
				return n
			}
			return 0
		case gjson.String:
			if n := quantity.Parse(v.Str); n > 0 {
				return n
			}
			return 0
		default:
			return 0
		}
	}
	return 0
}
