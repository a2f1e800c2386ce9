package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoriesDropsMalformedEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/services/get-all", r.URL.Path)
		io.WriteString(w, `{"data":[
			{"_id":"cat-music","title":"Music"},
			{"_id":"","title":"No id"},
			{"_id":"cat-untitled"},
			{"_id":"cat-food","title":"Food & Drink"}
		]}`)
	}))
	defer srv.Close()

	got, err := testClient(t, srv).Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Category{
		{ID: "cat-music", DisplayName: "Music"},
		{ID: "cat-food", DisplayName: "Food & Drink"},
	}, got)
}

func TestCategoriesSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":"maintenance"}`)
	}))
	defer srv.Close()

	_, err := testClient(t, srv).Categories(context.Background())
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, http.StatusServiceUnavailable, subErr.StatusCode)
	require.Contains(t, subErr.Error(), "maintenance")
}

func TestLookupDropsUnparseableCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "blue room springfield", r.URL.Query().Get("q"))
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		io.WriteString(w, `[
			{"display_name":"The Blue Room, Springfield","lat":"39.78","lon":"-89.65"},
			{"display_name":"Broken Place","lat":"not-a-number","lon":"0"},
			{"display_name":"","lat":"1","lon":"2"}
		]`)
	}))
	defer srv.Close()

	got, err := testClient(t, srv).Lookup(context.Background(), "blue room springfield")
	require.NoError(t, err)
	require.Equal(t, []Place{{Address: "The Blue Room, Springfield", Latitude: 39.78, Longitude: -89.65}}, got)
}

func TestBookingsPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/bookings/get-organizer-booking", r.URL.Path)
		require.Equal(t, "org-1", r.URL.Query().Get("organizerId"))
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "25", r.URL.Query().Get("limit"))
		io.WriteString(w, `{"data":[
			{"_id":"bk-1","eventTitle":"Jazz Night","customerName":"Dana","ticketCount":2,"totalAmount":50,"status":"confirmed"}
		],"total":26}`)
	}))
	defer srv.Close()

	page, err := testClient(t, srv).Bookings(context.Background(), 2, 25)
	require.NoError(t, err)
	require.Equal(t, 26, page.Total)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Bookings, 1)
	require.Equal(t, "Jazz Night", page.Bookings[0].EventTitle)
}

func TestUpdateBookingStatus(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/v1/bookings/update-status-booking", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer srv.Close()

	require.NoError(t, testClient(t, srv).UpdateBookingStatus(context.Background(), "bk-7", "confirmed"))
	require.Equal(t, map[string]string{"bookingId": "bk-7", "booking_status": "confirmed"}, gotBody)
}
