package event

import (
	"strings"

	"github.com/google/uuid"
)

// Patch is a whole-draft-replacement update emitted by a field editor.
// Apply is pure: it returns a new draft and never mutates its input, so
// the merge step is an ordinary testable reducer.
type Patch interface {
	Apply(DraftEvent) DraftEvent
}

// SetDetails updates the title/description slice of the draft.
type SetDetails struct {
	Title       string
	Description string
}

func (p SetDetails) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.Title = p.Title
	out.Description = p.Description
	return out
}

// SetCategory selects a category by id. Single-select only.
type SetCategory struct {
	ID string
}

func (p SetCategory) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.Category = p.ID
	return out
}

// SetActivityType switches between Single and Recurring. Switching
// clears the date set; the calendar repopulates it under the new mode.
type SetActivityType struct {
	Type ActivityType
}

func (p SetActivityType) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	if out.ActivityType != p.Type {
		out.EventDates = nil
	}
	out.ActivityType = p.Type
	return out
}

// ToggleDate adds or removes a date from the set (Recurring mode). The
// set stays sorted ascending and duplicate-free.
type ToggleDate struct {
	Date Date
}

func (p ToggleDate) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	if out.HasDate(p.Date) {
		out.EventDates = removeDate(out.EventDates, p.Date)
	} else {
		out.EventDates = insertDate(out.EventDates, p.Date)
	}
	return out
}

// SetSingleDate replaces the whole set with one date (Single mode).
type SetSingleDate struct {
	Date Date
}

func (p SetSingleDate) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.EventDates = []Date{p.Date}
	return out
}

// SetTimes updates start/end time. Nil means "unset".
type SetTimes struct {
	Start *TimeOfDay
	End   *TimeOfDay
}

func (p SetTimes) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.StartTime = nil
	out.EndTime = nil
	if p.Start != nil {
		st := *p.Start
		out.StartTime = &st
	}
	if p.End != nil {
		et := *p.End
		out.EndTime = &et
	}
	return out
}

// SetLocation replaces the location with one geocoder result. The triple
// is always written whole; a failed lookup never produces this patch.
type SetLocation struct {
	Location Location
}

func (p SetLocation) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.Location = p.Location
	return out
}

// ClearLocation resets all three location fields at once.
type ClearLocation struct{}

func (p ClearLocation) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.Location = Location{}
	return out
}

// SetTicketed toggles ticketing. Turning it off forces the tier list
// empty.
type SetTicketed struct {
	Ticketed bool
}

func (p SetTicketed) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.IsTicketed = p.Ticketed
	if !p.Ticketed {
		out.Tickets = nil
	}
	return out
}

// AddTicket appends a blank tier.
type AddTicket struct{}

func (p AddTicket) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.Tickets = append(out.Tickets, Ticket{})
	return out
}

// UpdateTicket replaces the tier at Index. Out-of-range indexes are
// ignored.
type UpdateTicket struct {
	Index  int
	Ticket Ticket
}

func (p UpdateTicket) Apply(d DraftEvent) DraftEvent {
	if p.Index < 0 || p.Index >= len(d.Tickets) {
		return d
	}
	out := d.Clone()
	out.Tickets[p.Index] = p.Ticket
	return out
}

// RemoveTicket deletes the tier at Index. Out-of-range indexes are
// ignored.
type RemoveTicket struct {
	Index int
}

func (p RemoveTicket) Apply(d DraftEvent) DraftEvent {
	if p.Index < 0 || p.Index >= len(d.Tickets) {
		return d
	}
	out := d.Clone()
	out.Tickets = append(out.Tickets[:p.Index], out.Tickets[p.Index+1:]...)
	return out
}

// ListKind selects which of the two item collections a list patch
// targets.
type ListKind int

const (
	Inclusions ListKind = iota
	Exclusions
)

// AddListItem appends an item with a freshly generated unique id.
// Blank text is ignored.
type AddListItem struct {
	Kind ListKind
	Text string
}

func (p AddListItem) Apply(d DraftEvent) DraftEvent {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return d
	}
	out := d.Clone()
	item := ListItem{ID: uuid.NewString(), Text: text}
	switch p.Kind {
	case Inclusions:
		out.Inclusions = append(out.Inclusions, item)
	case Exclusions:
		out.Exclusions = append(out.Exclusions, item)
	}
	return out
}

// EditListItem rewrites the text of the item with the given id.
type EditListItem struct {
	Kind ListKind
	ID   string
	Text string
}

func (p EditListItem) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	items := out.listFor(p.Kind)
	for i := range items {
		if items[i].ID == p.ID {
			items[i].Text = strings.TrimSpace(p.Text)
		}
	}
	return out
}

// RemoveListItem deletes the item with the given id. The id is never
// reused.
type RemoveListItem struct {
	Kind ListKind
	ID   string
}

func (p RemoveListItem) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	src := out.listFor(p.Kind)
	var kept []ListItem
	for _, item := range src {
		if item.ID != p.ID {
			kept = append(kept, item)
		}
	}
	switch p.Kind {
	case Inclusions:
		out.Inclusions = kept
	case Exclusions:
		out.Exclusions = kept
	}
	return out
}

func (d *DraftEvent) listFor(kind ListKind) []ListItem {
	if kind == Exclusions {
		return d.Exclusions
	}
	return d.Inclusions
}

// SetBanner replaces the banner with a local file (single-file replace).
type SetBanner struct {
	Path string
}

func (p SetBanner) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.BannerPath = p.Path
	return out
}

// ClearBanner removes the locally picked banner file. The remote banner
// of an existing event, if any, is untouched.
type ClearBanner struct{}

func (p ClearBanner) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.BannerPath = ""
	return out
}

// AddSupportingImage appends a remote image URL.
type AddSupportingImage struct {
	URL string
}

func (p AddSupportingImage) Apply(d DraftEvent) DraftEvent {
	url := strings.TrimSpace(p.URL)
	if url == "" {
		return d
	}
	out := d.Clone()
	out.SupportingImages = append(out.SupportingImages, url)
	return out
}

// RemoveSupportingImage deletes the URL at Index. Out-of-range indexes
// are ignored.
type RemoveSupportingImage struct {
	Index int
}

func (p RemoveSupportingImage) Apply(d DraftEvent) DraftEvent {
	if p.Index < 0 || p.Index >= len(d.SupportingImages) {
		return d
	}
	out := d.Clone()
	out.SupportingImages = append(out.SupportingImages[:p.Index], out.SupportingImages[p.Index+1:]...)
	return out
}

// ClearSupportingImages removes every supporting image URL.
type ClearSupportingImages struct{}

func (p ClearSupportingImages) Apply(d DraftEvent) DraftEvent {
	out := d.Clone()
	out.SupportingImages = nil
	return out
}
