package event

import (
	"slices"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "2026-09-14", false},
		{"leap day", "2024-02-29", false},
		{"not a leap year", "2026-02-29", true},
		{"wrong format", "14/09/2026", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"morning", "09:30", TimeOfDay{9, 30}, false},
		{"midnight", "00:00", TimeOfDay{0, 0}, false},
		{"late", "23:59", TimeOfDay{23, 59}, false},
		{"whitespace", " 18:00 ", TimeOfDay{18, 0}, false},
		{"out of range", "24:00", TimeOfDay{}, true},
		{"garbage", "9am", TimeOfDay{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDates(t *testing.T) {
	tests := []struct {
		name  string
		input []Date
		want  []Date
	}{
		{"already sorted", []Date{"2026-09-01", "2026-09-02"}, []Date{"2026-09-01", "2026-09-02"}},
		{"unsorted", []Date{"2026-09-05", "2026-09-01", "2026-09-03"}, []Date{"2026-09-01", "2026-09-03", "2026-09-05"}},
		{"duplicates", []Date{"2026-09-01", "2026-09-01", "2026-09-02"}, []Date{"2026-09-01", "2026-09-02"}},
		{"invalid dropped", []Date{"2026-09-01", "not-a-date"}, []Date{"2026-09-01"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeDates(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("normalizeDates(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDropsTicketsWhenNotTicketed(t *testing.T) {
	d := DraftEvent{
		IsTicketed: false,
		Tickets:    []Ticket{{Name: "GA", Price: 25, Quantity: 100}},
	}
	got := d.Normalize()
	if len(got.Tickets) != 0 {
		t.Errorf("Normalize kept %d tickets on a non-ticketed draft", len(got.Tickets))
	}
}

func TestCloneIsDeep(t *testing.T) {
	start := TimeOfDay{10, 0}
	d := DraftEvent{
		EventDates: []Date{"2026-09-01"},
		StartTime:  &start,
		Tickets:    []Ticket{{Name: "GA"}},
		Inclusions: []ListItem{{ID: "a", Text: "snacks"}},
	}
	c := d.Clone()
	c.EventDates[0] = "2030-01-01"
	c.StartTime.Hour = 23
	c.Tickets[0].Name = "VIP"
	c.Inclusions[0].Text = "drinks"

	if d.EventDates[0] != "2026-09-01" {
		t.Error("Clone shares the dates slice")
	}
	if d.StartTime.Hour != 10 {
		t.Error("Clone shares the start time pointer")
	}
	if d.Tickets[0].Name != "GA" {
		t.Error("Clone shares the tickets slice")
	}
	if d.Inclusions[0].Text != "snacks" {
		t.Error("Clone shares the inclusions slice")
	}
}

func TestHasBanner(t *testing.T) {
	tests := []struct {
		name string
		d    DraftEvent
		want bool
	}{
		{"none", DraftEvent{}, false},
		{"local file", DraftEvent{BannerPath: "/tmp/banner.png"}, true},
		{"remote only", DraftEvent{BannerURL: "https://cdn.example.com/b.png"}, true},
		{"both", DraftEvent{BannerPath: "/tmp/b.png", BannerURL: "https://cdn.example.com/b.png"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.HasBanner(); got != tt.want {
				t.Errorf("HasBanner() = %v, want %v", got, tt.want)
			}
		})
	}
}
