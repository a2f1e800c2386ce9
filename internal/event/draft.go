// Package event holds the draft event record, the patch reducer that
// mutates it, the per-step validator, and the wizard flow controller.
// Everything in this package is pure: no I/O, no terminal, no network.
package event

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ActivityType distinguishes one-off events from recurring ones.
// The values match the platform's wire format.
type ActivityType string

const (
	ActivityNone      ActivityType = ""
	ActivitySingle    ActivityType = "Single"
	ActivityRecurring ActivityType = "Recurring"
)

// Date is a calendar date in ISO form (YYYY-MM-DD). Lexicographic order
// equals chronological order, which is what keeps EventDates sorted.
type Date string

// ParseDate validates an ISO date string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// Time returns the date at midnight local time. Invalid dates return the
// zero time; callers that need errors use ParseDate.
func (d Date) Time() time.Time {
	t, _ := time.Parse("2006-01-02", string(d))
	return t
}

// TimeOfDay is an hour/minute pair with no timezone. A nil *TimeOfDay on
// the draft means "not yet set".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Location is a geocoded place. The whole triple is set or cleared
// atomically; an empty address is the "not yet selected" marker, so
// (0,0) coordinates with a real address are legal.
type Location struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// IsSet reports whether a place has been selected.
func (l Location) IsSet() bool {
	return l.Address != ""
}

// Ticket is one sellable tier.
type Ticket struct {
	Name     string
	Price    float64
	Quantity int
}

// ListItem is an inclusion or exclusion entry. ID is generated locally
// when the item is added and never reused after deletion.
type ListItem struct {
	ID   string
	Text string
}

// DraftEvent is the single mutable record owned by the wizard for the
// duration of the flow. It is created empty (create mode) or hydrated
// from a fetched event (edit mode), mutated only through patches, and
// discarded when the wizard exits.
type DraftEvent struct {
	Title        string
	Description  string
	Category     string // category id from the fetched list
	ActivityType ActivityType
	EventDates   []Date // always sorted ascending, duplicate-free
	StartTime    *TimeOfDay
	EndTime      *TimeOfDay
	Location     Location
	IsTicketed   bool
	Tickets      []Ticket // empty whenever IsTicketed is false

	Inclusions []ListItem
	Exclusions []ListItem

	// BannerPath is a local file selected in this session. BannerURL is
	// the remote banner of an existing event (edit mode); it satisfies
	// the banner requirement when no new file is chosen.
	BannerPath string
	BannerURL  string

	SupportingImages []string // already-uploaded remote URLs

	OrganizerID string // injected from config, never user-editable
}

// HasBanner reports whether a banner is available, either a freshly
// picked local file or the event's existing remote image.
func (d DraftEvent) HasBanner() bool {
	return d.BannerPath != "" || d.BannerURL != ""
}

// Clone returns a deep copy of the draft.
func (d DraftEvent) Clone() DraftEvent {
	out := d
	out.EventDates = slices.Clone(d.EventDates)
	out.Tickets = slices.Clone(d.Tickets)
	out.Inclusions = slices.Clone(d.Inclusions)
	out.Exclusions = slices.Clone(d.Exclusions)
	out.SupportingImages = slices.Clone(d.SupportingImages)
	if d.StartTime != nil {
		st := *d.StartTime
		out.StartTime = &st
	}
	if d.EndTime != nil {
		et := *d.EndTime
		out.EndTime = &et
	}
	return out
}

// Normalize re-establishes the draft invariants after hydration from
// external data: dates sorted and deduplicated, tickets dropped when
// ticketing is off. Defensive against malformed server responses.
func (d DraftEvent) Normalize() DraftEvent {
	out := d.Clone()
	out.EventDates = normalizeDates(out.EventDates)
	if !out.IsTicketed {
		out.Tickets = nil
	}
	return out
}

// normalizeDates sorts ascending and collapses duplicates, dropping
// entries that don't parse.
func normalizeDates(dates []Date) []Date {
	var out []Date
	for _, d := range dates {
		if _, err := ParseDate(string(d)); err != nil {
			continue
		}
		out = append(out, d)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// insertDate adds a date keeping the set sorted and duplicate-free.
func insertDate(dates []Date, d Date) []Date {
	idx, found := slices.BinarySearch(dates, d)
	if found {
		return dates
	}
	return slices.Insert(slices.Clone(dates), idx, d)
}

// removeDate deletes a date if present.
func removeDate(dates []Date, d Date) []Date {
	idx, found := slices.BinarySearch(dates, d)
	if !found {
		return dates
	}
	return slices.Delete(slices.Clone(dates), idx, idx+1)
}

// HasDate reports whether the draft already contains the date.
func (d DraftEvent) HasDate(date Date) bool {
	_, found := slices.BinarySearch(d.EventDates, date)
	return found
}
