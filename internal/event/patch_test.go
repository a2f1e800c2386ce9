package event

import (
	"slices"
	"testing"
)

func TestToggleDateKeepsSetSorted(t *testing.T) {
	var d DraftEvent
	for _, date := range []Date{"2026-09-05", "2026-09-01", "2026-09-03"} {
		d = ToggleDate{Date: date}.Apply(d)
	}
	want := []Date{"2026-09-01", "2026-09-03", "2026-09-05"}
	if !slices.Equal(d.EventDates, want) {
		t.Fatalf("dates = %v, want %v", d.EventDates, want)
	}

	// Toggling an existing date removes it.
	d = ToggleDate{Date: "2026-09-03"}.Apply(d)
	want = []Date{"2026-09-01", "2026-09-05"}
	if !slices.Equal(d.EventDates, want) {
		t.Fatalf("after removal dates = %v, want %v", d.EventDates, want)
	}

	// Toggling twice is a no-op overall, never a duplicate.
	d = ToggleDate{Date: "2026-09-01"}.Apply(d)
	d = ToggleDate{Date: "2026-09-01"}.Apply(d)
	want = []Date{"2026-09-01", "2026-09-05"}
	if !slices.Equal(d.EventDates, want) {
		t.Fatalf("after double toggle dates = %v, want %v", d.EventDates, want)
	}
}

func TestSetSingleDateReplacesSet(t *testing.T) {
	d := DraftEvent{EventDates: []Date{"2026-09-01", "2026-09-02"}}
	d = SetSingleDate{Date: "2026-10-10"}.Apply(d)
	if !slices.Equal(d.EventDates, []Date{"2026-10-10"}) {
		t.Fatalf("dates = %v, want single 2026-10-10", d.EventDates)
	}
}

func TestSetActivityTypeClearsDatesOnChange(t *testing.T) {
	d := DraftEvent{ActivityType: ActivityRecurring, EventDates: []Date{"2026-09-01", "2026-09-02"}}

	same := SetActivityType{Type: ActivityRecurring}.Apply(d)
	if len(same.EventDates) != 2 {
		t.Error("re-selecting the same type must keep the dates")
	}

	changed := SetActivityType{Type: ActivitySingle}.Apply(d)
	if len(changed.EventDates) != 0 {
		t.Errorf("switching type kept dates %v", changed.EventDates)
	}
	if changed.ActivityType != ActivitySingle {
		t.Errorf("type = %q, want Single", changed.ActivityType)
	}
}

func TestSetLocationWritesTripleAtomically(t *testing.T) {
	d := DraftEvent{Location: Location{Address: "Old Hall", Latitude: 1, Longitude: 2}}
	loc := Location{Address: "123 Main St, Springfield", Latitude: 39.78, Longitude: -89.65}
	d = SetLocation{Location: loc}.Apply(d)
	if d.Location != loc {
		t.Fatalf("location = %+v, want %+v", d.Location, loc)
	}

	d = ClearLocation{}.Apply(d)
	if d.Location != (Location{}) {
		t.Fatalf("cleared location = %+v, want zero", d.Location)
	}
	if d.Location.IsSet() {
		t.Error("cleared location still reports IsSet")
	}
}

func TestSetTicketedOffClearsTiers(t *testing.T) {
	d := DraftEvent{IsTicketed: true, Tickets: []Ticket{{Name: "GA", Price: 10, Quantity: 50}}}
	d = SetTicketed{Ticketed: false}.Apply(d)
	if len(d.Tickets) != 0 {
		t.Errorf("tickets = %v, want empty after ticketing off", d.Tickets)
	}

	// Turning it back on does not resurrect the old tiers.
	d = SetTicketed{Ticketed: true}.Apply(d)
	if len(d.Tickets) != 0 {
		t.Errorf("tickets = %v, want still empty after re-enable", d.Tickets)
	}
}

func TestTicketIndexPatches(t *testing.T) {
	var d DraftEvent
	d = AddTicket{}.Apply(d)
	d = AddTicket{}.Apply(d)
	d = UpdateTicket{Index: 1, Ticket: Ticket{Name: "VIP", Price: 99, Quantity: 10}}.Apply(d)
	if d.Tickets[1].Name != "VIP" {
		t.Fatalf("ticket 1 = %+v, want VIP", d.Tickets[1])
	}

	// Out-of-range updates and removals are ignored.
	d = UpdateTicket{Index: 5, Ticket: Ticket{Name: "ghost"}}.Apply(d)
	d = RemoveTicket{Index: -1}.Apply(d)
	if len(d.Tickets) != 2 {
		t.Fatalf("tickets = %v, want 2 tiers untouched", d.Tickets)
	}

	d = RemoveTicket{Index: 0}.Apply(d)
	if len(d.Tickets) != 1 || d.Tickets[0].Name != "VIP" {
		t.Fatalf("tickets = %v, want only VIP", d.Tickets)
	}
}

func TestListItemLifecycle(t *testing.T) {
	var d DraftEvent
	d = AddListItem{Kind: Inclusions, Text: "Lunch"}.Apply(d)
	d = AddListItem{Kind: Inclusions, Text: "Parking"}.Apply(d)
	d = AddListItem{Kind: Exclusions, Text: "Travel"}.Apply(d)

	if len(d.Inclusions) != 2 || len(d.Exclusions) != 1 {
		t.Fatalf("got %d inclusions, %d exclusions", len(d.Inclusions), len(d.Exclusions))
	}
	if d.Inclusions[0].ID == d.Inclusions[1].ID {
		t.Error("two items share the same id")
	}

	// Blank text is ignored entirely.
	d = AddListItem{Kind: Inclusions, Text: "   "}.Apply(d)
	if len(d.Inclusions) != 2 {
		t.Error("blank item was appended")
	}

	id := d.Inclusions[0].ID
	d = EditListItem{Kind: Inclusions, ID: id, Text: "Catered lunch"}.Apply(d)
	if d.Inclusions[0].Text != "Catered lunch" {
		t.Errorf("edit did not land: %+v", d.Inclusions[0])
	}

	d = RemoveListItem{Kind: Inclusions, ID: id}.Apply(d)
	if len(d.Inclusions) != 1 || d.Inclusions[0].Text != "Parking" {
		t.Fatalf("inclusions = %+v, want only Parking", d.Inclusions)
	}

	// Removing by a stale id is a no-op, not a panic.
	d = RemoveListItem{Kind: Inclusions, ID: id}.Apply(d)
	if len(d.Inclusions) != 1 {
		t.Error("stale-id removal changed the list")
	}
}

func TestPatchesDoNotMutateInput(t *testing.T) {
	orig := DraftEvent{
		Title:      "Jazz Night",
		EventDates: []Date{"2026-09-01"},
		Tickets:    []Ticket{{Name: "GA"}},
	}
	_ = SetDetails{Title: "Changed", Description: "x"}.Apply(orig)
	_ = ToggleDate{Date: "2026-09-09"}.Apply(orig)
	_ = UpdateTicket{Index: 0, Ticket: Ticket{Name: "VIP"}}.Apply(orig)

	if orig.Title != "Jazz Night" {
		t.Error("SetDetails mutated its input")
	}
	if len(orig.EventDates) != 1 {
		t.Error("ToggleDate mutated its input")
	}
	if orig.Tickets[0].Name != "GA" {
		t.Error("UpdateTicket mutated its input")
	}
}

func TestSupportingImagePatches(t *testing.T) {
	var d DraftEvent
	d = AddSupportingImage{URL: "https://cdn.example.com/1.png"}.Apply(d)
	d = AddSupportingImage{URL: "https://cdn.example.com/2.png"}.Apply(d)
	d = AddSupportingImage{URL: ""}.Apply(d)
	if len(d.SupportingImages) != 2 {
		t.Fatalf("images = %v, want 2", d.SupportingImages)
	}
	d = RemoveSupportingImage{Index: 0}.Apply(d)
	if len(d.SupportingImages) != 1 || d.SupportingImages[0] != "https://cdn.example.com/2.png" {
		t.Fatalf("images = %v", d.SupportingImages)
	}
	d = ClearSupportingImages{}.Apply(d)
	if len(d.SupportingImages) != 0 {
		t.Errorf("images = %v, want empty", d.SupportingImages)
	}
}
