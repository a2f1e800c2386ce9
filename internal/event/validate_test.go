package event

import "testing"

// completeDraft returns a draft that passes every step.
func completeDraft() DraftEvent {
	start := TimeOfDay{18, 0}
	end := TimeOfDay{22, 0}
	return DraftEvent{
		Title:        "Jazz Night",
		Description:  "An evening of live jazz.",
		Category:     "cat-music",
		ActivityType: ActivitySingle,
		EventDates:   []Date{"2026-09-14"},
		StartTime:    &start,
		EndTime:      &end,
		Location:     Location{Address: "The Blue Room, Springfield", Latitude: 39.78, Longitude: -89.65},
		IsTicketed:   true,
		Tickets:      []Ticket{{Name: "GA", Price: 25, Quantity: 120}},
		BannerPath:   "/tmp/banner.png",
		OrganizerID:  "org-1",
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	tests := []struct {
		name    string
		step    int
		mutate  func(*DraftEvent)
		wantErr string
	}{
		{"complete basic info", StepBasicInfo, func(d *DraftEvent) {}, ""},
		{"missing title", StepBasicInfo, func(d *DraftEvent) { d.Title = "" }, "Event name is required"},
		{"whitespace title", StepBasicInfo, func(d *DraftEvent) { d.Title = "   " }, "Event name is required"},
		{"missing category", StepBasicInfo, func(d *DraftEvent) { d.Category = "" }, "Please select a category"},
		// Both missing: the title message wins, never a combined message.
		{"title and category missing", StepBasicInfo, func(d *DraftEvent) {
			d.Title = ""
			d.Category = ""
		}, "Event name is required"},

		{"complete schedule", StepSchedule, func(d *DraftEvent) {}, ""},
		{"no activity type", StepSchedule, func(d *DraftEvent) { d.ActivityType = ActivityNone }, "Please select activity type"},
		{"no dates", StepSchedule, func(d *DraftEvent) { d.EventDates = nil }, "Please select at least one date"},
		{"no start time", StepSchedule, func(d *DraftEvent) { d.StartTime = nil }, "Start time is required"},
		{"no end time", StepSchedule, func(d *DraftEvent) { d.EndTime = nil }, "End time is required"},
		{"everything missing reports type first", StepSchedule, func(d *DraftEvent) {
			d.ActivityType = ActivityNone
			d.EventDates = nil
			d.StartTime = nil
			d.EndTime = nil
		}, "Please select activity type"},

		{"complete location", StepLocation, func(d *DraftEvent) {}, ""},
		{"no location", StepLocation, func(d *DraftEvent) { d.Location = Location{} }, "Location is required"},
		{"zero coords with address pass", StepLocation, func(d *DraftEvent) {
			d.Location = Location{Address: "Null Island Pavilion"}
		}, ""},

		{"complete media", StepMedia, func(d *DraftEvent) {}, ""},
		{"no banner", StepMedia, func(d *DraftEvent) { d.BannerPath = "" }, "Please upload a banner image"},
		{"remote banner satisfies", StepMedia, func(d *DraftEvent) {
			d.BannerPath = ""
			d.BannerURL = "https://cdn.example.com/banner.png"
		}, ""},
		{"ticketed with no tiers", StepMedia, func(d *DraftEvent) { d.Tickets = nil }, "Please add at least one ticket"},
		{"free event needs no tiers", StepMedia, func(d *DraftEvent) {
			d.IsTicketed = false
			d.Tickets = nil
		}, ""},

		{"extras always pass", StepExtras, func(d *DraftEvent) { *d = DraftEvent{} }, ""},
		{"review always passes", StepReview, func(d *DraftEvent) { *d = DraftEvent{} }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDraft()
			tt.mutate(&d)
			err := Validate(tt.step, d)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate(%d) = %v, want nil", tt.step, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate(%d) = nil, want %q", tt.step, tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Validate(%d) = %q, want %q", tt.step, err.Error(), tt.wantErr)
			}
		})
	}
}

// The schedule step requires both times to be set but enforces no
// ordering between them; overnight events end "before" they start.
func TestValidateAllowsEndBeforeStart(t *testing.T) {
	d := completeDraft()
	start := TimeOfDay{22, 0}
	end := TimeOfDay{2, 0}
	d.StartTime = &start
	d.EndTime = &end
	if err := Validate(StepSchedule, d); err != nil {
		t.Errorf("Validate(StepSchedule) = %v, want nil for overnight times", err)
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	d := completeDraft()
	d.Title = ""
	first := Validate(StepBasicInfo, d)
	second := Validate(StepBasicInfo, d)
	if first == nil || second == nil || first.Error() != second.Error() {
		t.Errorf("repeat validation differed: %v vs %v", first, second)
	}
}
