package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Booking is one attendee booking against the organizer's events.
type Booking struct {
	ID         string  `json:"_id"`
	EventTitle string  `json:"eventTitle"`
	Customer   string  `json:"customerName"`
	Tickets    int     `json:"ticketCount"`
	Total      float64 `json:"totalAmount"`
	Status     string  `json:"status"`
}

// BookingsPage is one page of bookings plus the total count for paging.
type BookingsPage struct {
	Bookings []Booking
	Total    int
	Page     int
}

// Bookings fetches one page of the organizer's bookings.
func (c *Client) Bookings(ctx context.Context, page, limit int) (BookingsPage, error) {
	q := url.Values{}
	q.Set("organizerId", c.organizerID)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/bookings/get-organizer-booking?"+q.Encode(), nil)
	if err != nil {
		return BookingsPage{}, err
	}
	c.apply(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return BookingsPage{}, fmt.Errorf("fetching bookings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BookingsPage{}, &SubmissionError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp)}
	}

	var body struct {
		Data  []Booking `json:"data"`
		Total int       `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return BookingsPage{}, fmt.Errorf("decoding bookings: %w", err)
	}
	return BookingsPage{Bookings: body.Data, Total: body.Total, Page: page}, nil
}

// UpdateBookingStatus sets the status of one booking (e.g. confirmed,
// cancelled).
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID, status string) error {
	payload, err := json.Marshal(map[string]string{
		"bookingId":      bookingID,
		"booking_status": status,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/v1/bookings/update-status-booking", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.apply(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SubmissionError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp)}
	}
	return nil
}
