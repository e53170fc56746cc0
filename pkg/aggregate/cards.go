package aggregate

import "strconv"

// SummaryStat is one dashboard stat card. Value is pre-rendered so the
// presentation layer can show "N/A" for unknowns without special-casing.
type SummaryStat struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle"`
}

// NotAvailable is the rendered value for figures that could not be
// resolved. It is distinct from "0" on purpose: zero would falsely
// claim a known-empty result.
const NotAvailable = "N/A"

// StatCards projects a Result into the card list the dashboards render.
func StatCards(r Result) []SummaryStat {
	owned := NotAvailable
	ownedSub := "sign in to see your programs"
	if r.OwnedPrograms != nil {
		owned = strconv.Itoa(*r.OwnedPrograms)
		ownedSub = "programs you created"
	}
	return []SummaryStat{
		{Label: "Total Donations", Value: strconv.Itoa(r.TotalDonations), Subtitle: "all time"},
		{Label: "Upcoming Pickups", Value: strconv.Itoa(r.UpcomingPickups), Subtitle: "scheduled from today"},
		{Label: "Total Programs", Value: strconv.Itoa(r.TotalPrograms), Subtitle: "all time"},
		{Label: "Active Programs", Value: strconv.Itoa(r.ActivePrograms), Subtitle: "currently running"},
		{Label: "Starting Soon", Value: strconv.Itoa(r.StartingSoon), Subtitle: "next two weeks"},
		{Label: "Items Collected", Value: strconv.Itoa(r.ItemsCollected), Subtitle: "estimated from donations"},
		{Label: "People Helped", Value: strconv.Itoa(r.PeopleHelped), Subtitle: "estimated beneficiaries"},
		{Label: "My Programs", Value: owned, Subtitle: ownedSub},
	}
}
