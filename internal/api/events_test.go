package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gatherly/organizer/internal/config"
	"github.com/gatherly/organizer/internal/event"
)

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return New(&config.Config{
		APIBaseURL:  srv.URL,
		GeocoderURL: srv.URL,
		Token:       "tok-123",
		OrganizerID: "org-1",
	})
}

func submittableDraft(t *testing.T) event.DraftEvent {
	t.Helper()
	banner := filepath.Join(t.TempDir(), "banner.png")
	require.NoError(t, os.WriteFile(banner, []byte("\x89PNG fake image bytes"), 0o644))

	start := event.TimeOfDay{Hour: 18, Minute: 0}
	end := event.TimeOfDay{Hour: 22, Minute: 30}
	d := event.DraftEvent{
		Title:        "Jazz Night",
		Description:  "An evening of live jazz.",
		Category:     "cat-music",
		ActivityType: event.ActivityRecurring,
		EventDates:   []event.Date{"2026-09-14", "2026-09-21"},
		StartTime:    &start,
		EndTime:      &end,
		Location:     event.Location{Address: "The Blue Room, Springfield", Latitude: 39.78, Longitude: -89.65},
		IsTicketed:   true,
		Tickets:      []event.Ticket{{Name: "GA", Price: 25, Quantity: 120}},
		BannerPath:   banner,
		OrganizerID:  "org-1",
	}
	d = event.AddListItem{Kind: event.Inclusions, Text: "Welcome drink"}.Apply(d)
	d = event.AddListItem{Kind: event.Exclusions, Text: "Parking"}.Apply(d)
	return d
}

func TestCreateEventMultipartFields(t *testing.T) {
	var gotForm map[string][]string
	var bannerName string
	var bannerBytes []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/events/create-event", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotForm = r.MultipartForm.Value

		files := r.MultipartForm.File["banner_Image"]
		require.Len(t, files, 1)
		bannerName = files[0].Filename
		f, err := files[0].Open()
		require.NoError(t, err)
		bannerBytes, err = io.ReadAll(f)
		require.NoError(t, err)

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"_id":"ev-42"}}`)
	}))
	defer srv.Close()

	id, err := testClient(t, srv).CreateEvent(context.Background(), submittableDraft(t))
	require.NoError(t, err)
	require.Equal(t, "ev-42", id)

	scalar := func(name string) string {
		require.Len(t, gotForm[name], 1, "field %s", name)
		return gotForm[name][0]
	}
	require.Equal(t, "Jazz Night", scalar("title"))
	require.Equal(t, "cat-music", scalar("category"))
	require.Equal(t, "Recurring", scalar("type"))
	require.Equal(t, "18:00", scalar("startTime"))
	require.Equal(t, "22:30", scalar("endTime"))
	require.Equal(t, "The Blue Room, Springfield", scalar("location[address]"))
	require.Equal(t, "39.78", scalar("location[latitude]"))
	require.Equal(t, "-89.65", scalar("location[longitude]"))
	require.Equal(t, "true", scalar("isTicketed"))
	require.Equal(t, "org-1", scalar("organizerId"))

	var dates []string
	require.NoError(t, json.Unmarshal([]byte(scalar("eventDates")), &dates))
	require.Equal(t, []string{"2026-09-14", "2026-09-21"}, dates)

	var tickets []map[string]any
	require.NoError(t, json.Unmarshal([]byte(scalar("tickets")), &tickets))
	require.Len(t, tickets, 1)
	require.Equal(t, "GA", tickets[0]["name"])

	// Inclusions and exclusions travel as {id, text} objects.
	var inclusions []map[string]string
	require.NoError(t, json.Unmarshal([]byte(scalar("inclusions")), &inclusions))
	require.Len(t, inclusions, 1)
	require.Equal(t, "Welcome drink", inclusions[0]["text"])
	require.NotEmpty(t, inclusions[0]["id"])

	var exclusions []map[string]string
	require.NoError(t, json.Unmarshal([]byte(scalar("exclusions")), &exclusions))
	require.Len(t, exclusions, 1)
	require.Equal(t, "Parking", exclusions[0]["text"])
	require.NotEmpty(t, exclusions[0]["id"])

	require.Equal(t, "banner.png", bannerName)
	require.NotEmpty(t, bannerBytes)
}

func TestCreateEventOmitsTicketsWhenFree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		_, hasTickets := r.MultipartForm.Value["tickets"]
		require.False(t, hasTickets, "free event must not carry a tickets field")
		require.Equal(t, "false", r.MultipartForm.Value["isTicketed"][0])
		io.WriteString(w, `{"data":{"_id":"ev-1"}}`)
	}))
	defer srv.Close()

	d := submittableDraft(t)
	d = event.SetTicketed{Ticketed: false}.Apply(d)
	_, err := testClient(t, srv).CreateEvent(context.Background(), d)
	require.NoError(t, err)
}

// A failed submission keeps the draft untouched, so resubmitting the
// same draft produces a byte-identical field set.
func TestCreateEventRetrySendsIdenticalPayload(t *testing.T) {
	var bodies []map[string][]string
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseMultipartForm(10<<20))
		bodies = append(bodies, r.MultipartForm.Value)
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			io.WriteString(w, `{"message":"upstream unavailable"}`)
			return
		}
		io.WriteString(w, `{"data":{"_id":"ev-2"}}`)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	d := submittableDraft(t)

	_, err := c.CreateEvent(context.Background(), d)
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, http.StatusBadGateway, subErr.StatusCode)
	require.Contains(t, subErr.Error(), "upstream unavailable")

	id, err := c.CreateEvent(context.Background(), d)
	require.NoError(t, err)
	require.Equal(t, "ev-2", id)
	require.Equal(t, bodies[0], bodies[1])
}

func TestCreateEventRejectsIncompleteDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("incomplete draft reached the server")
	}))
	defer srv.Close()

	d := submittableDraft(t)
	d.Title = ""
	_, err := testClient(t, srv).CreateEvent(context.Background(), d)
	require.Error(t, err)
}

func TestUpdateEventSkipsBannerWhenUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/events/update-event/ev-42", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))
		require.Empty(t, r.MultipartForm.File["banner_Image"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := submittableDraft(t)
	d.BannerPath = ""
	d.BannerURL = "https://cdn.example.com/existing.png"
	require.NoError(t, testClient(t, srv).UpdateEvent(context.Background(), "ev-42", d))
}

func TestGetEventHydratesAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/events/get-event/ev-42", r.URL.Path)
		io.WriteString(w, `{"data":{
			"_id":"ev-42",
			"title":"Jazz Night",
			"description":"Live jazz.",
			"category":"cat-music",
			"type":"Recurring",
			"eventDates":["2026-09-21","2026-09-14","2026-09-14"],
			"startTime":"18:00",
			"endTime":"22:30",
			"location":{"address":"The Blue Room","latitude":39.78,"longitude":-89.65},
			"isTicketed":false,
			"tickets":[{"name":"stale","price":1,"quantity":1}],
			"inclusions":[{"id":"incl-1","text":"Welcome drink"}],
			"exclusions":["Parking"],
			"banner_Image":"https://cdn.example.com/banner.png",
			"organizerId":"org-1"
		}}`)
	}))
	defer srv.Close()

	d, err := testClient(t, srv).GetEvent(context.Background(), "ev-42")
	require.NoError(t, err)

	require.Equal(t, "Jazz Night", d.Title)
	require.Equal(t, event.ActivityRecurring, d.ActivityType)
	// Server-side ordering and duplicates are repaired on hydration.
	require.Equal(t, []event.Date{"2026-09-14", "2026-09-21"}, d.EventDates)
	// Tickets on a non-ticketed event are dropped.
	require.Empty(t, d.Tickets)
	require.Equal(t, "https://cdn.example.com/banner.png", d.BannerURL)
	require.Empty(t, d.BannerPath)
	require.True(t, d.HasBanner())
	require.NotNil(t, d.StartTime)
	require.Equal(t, "18:00", d.StartTime.String())
	// Stored {id, text} items keep their id; bare-string entries from
	// older records get a fresh local one.
	require.Len(t, d.Inclusions, 1)
	require.Equal(t, "incl-1", d.Inclusions[0].ID)
	require.Equal(t, "Welcome drink", d.Inclusions[0].Text)
	require.Len(t, d.Exclusions, 1)
	require.NotEmpty(t, d.Exclusions[0].ID)
	require.Equal(t, "Parking", d.Exclusions[0].Text)

	// The hydrated draft passes every step without edits.
	for s := event.StepBasicInfo; s <= event.StepReview; s++ {
		require.NoError(t, event.Validate(s, d), "step %d", s)
	}
}
