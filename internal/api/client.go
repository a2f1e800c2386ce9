// Package api is the HTTP client for the event platform backend and the
// public geocoder. It translates drafts into the backend's multipart
// wire format and fetched records back into drafts.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gatherly/organizer/internal/config"
)

// validate checks outbound payload structs at the API boundary.
var validate = validator.New()

// Client talks to the backend API. All methods take a context and
// return explicit errors; nothing retries on its own.
type Client struct {
	baseURL     string
	geocoderURL string
	token       string
	organizerID string
	httpc       *http.Client
}

// New builds a client from config. The timeout covers the whole request
// including the banner upload, hence the generous value.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:     cfg.APIBaseURL,
		geocoderURL: cfg.GeocoderURL,
		token:       cfg.Token,
		organizerID: cfg.OrganizerID,
		httpc:       &http.Client{Timeout: 2 * time.Minute},
	}
}

// OrganizerID returns the configured organizer id.
func (c *Client) OrganizerID() string { return c.organizerID }

// SubmissionError is a non-2xx response from the backend. The message
// is whatever the server put in its error body, if anything.
type SubmissionError struct {
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// apply sets the headers common to every backend request.
func (c *Client) apply(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
}
