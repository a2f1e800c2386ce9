package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gatherly/organizer/internal/event"
)

type ticketDTO struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// listItemDTO is the wire shape of one inclusion/exclusion entry.
type listItemDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// UnmarshalJSON also accepts a bare string: older records stored
// inclusions before items carried ids.
func (l *listItemDTO) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		l.ID, l.Text = "", s
		return nil
	}
	type plain listItemDTO
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*l = listItemDTO(p)
	return nil
}

// submission is the outbound payload checked at the API boundary before
// any bytes are written. It mirrors the backend's multipart field set.
type submission struct {
	Title        string `validate:"required"`
	Category     string `validate:"required"`
	ActivityType string `validate:"required,oneof=Single Recurring"`
	EventDates   []string
	StartTime    string `validate:"required"`
	EndTime      string `validate:"required"`
	Address      string `validate:"required"`
	OrganizerID  string `validate:"required"`
}

// CreateEvent submits a completed draft as a single multipart request
// and returns the new event's id. Building the form is a pure function
// of the draft, so retrying after a failure sends an identical payload.
func (c *Client) CreateEvent(ctx context.Context, d event.DraftEvent) (string, error) {
	body, contentType, err := c.encodeDraft(d, true)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/events/create-event", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	c.apply(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("submitting event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp)}
	}

	var created struct {
		Data struct {
			ID string `json:"_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decoding create response: %w", err)
	}
	return created.Data.ID, nil
}

// UpdateEvent rewrites an existing event from the draft. The banner
// part is attached only when a new local file was picked; otherwise the
// server keeps the existing image.
func (c *Client) UpdateEvent(ctx context.Context, id string, d event.DraftEvent) error {
	body, contentType, err := c.encodeDraft(d, d.BannerPath != "")
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/v1/events/update-event/"+url.PathEscape(id), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	c.apply(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SubmissionError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp)}
	}
	return nil
}

// encodeDraft builds the multipart body: scalars as plain fields,
// nested structures as JSON blocks, the banner as a binary part.
func (c *Client) encodeDraft(d event.DraftEvent, withBanner bool) (*bytes.Buffer, string, error) {
	d = d.Normalize()

	sub := submission{
		Title:        d.Title,
		Category:     d.Category,
		ActivityType: string(d.ActivityType),
		EventDates:   datesAsStrings(d.EventDates),
		StartTime:    timeString(d.StartTime),
		EndTime:      timeString(d.EndTime),
		Address:      d.Location.Address,
		OrganizerID:  d.OrganizerID,
	}
	if err := validate.Struct(sub); err != nil {
		return nil, "", fmt.Errorf("draft is not submittable: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"title", sub.Title},
		{"category", sub.Category},
		{"type", sub.ActivityType},
		{"startTime", sub.StartTime},
		{"endTime", sub.EndTime},
		{"location[address]", sub.Address},
		{"location[latitude]", formatCoord(d.Location.Latitude)},
		{"location[longitude]", formatCoord(d.Location.Longitude)},
		{"description", d.Description},
		{"isTicketed", strconv.FormatBool(d.IsTicketed)},
		{"organizerId", sub.OrganizerID},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := writeJSONField(w, "eventDates", sub.EventDates); err != nil {
		return nil, "", err
	}
	if d.IsTicketed {
		tickets := make([]ticketDTO, len(d.Tickets))
		for i, t := range d.Tickets {
			tickets[i] = ticketDTO{Name: t.Name, Price: t.Price, Quantity: t.Quantity}
		}
		if err := writeJSONField(w, "tickets", tickets); err != nil {
			return nil, "", err
		}
	}
	if items := listItems(d.Inclusions); len(items) > 0 {
		if err := writeJSONField(w, "inclusions", items); err != nil {
			return nil, "", err
		}
	}
	if items := listItems(d.Exclusions); len(items) > 0 {
		if err := writeJSONField(w, "exclusions", items); err != nil {
			return nil, "", err
		}
	}
	if len(d.SupportingImages) > 0 {
		if err := writeJSONField(w, "supportingImages", d.SupportingImages); err != nil {
			return nil, "", err
		}
	}

	if withBanner {
		if err := writeBanner(w, d.BannerPath); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeBanner(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening banner image: %w", err)
	}
	defer f.Close()

	part, err := w.CreateFormFile("banner_Image", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("reading banner image: %w", err)
	}
	return nil
}

func writeJSONField(w *multipart.Writer, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.WriteField(name, string(raw))
}

func datesAsStrings(dates []event.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = string(d)
	}
	return out
}

func listItems(items []event.ListItem) []listItemDTO {
	out := make([]listItemDTO, 0, len(items))
	for _, it := range items {
		if it.Text != "" {
			out = append(out, listItemDTO{ID: it.ID, Text: it.Text})
		}
	}
	return out
}

func timeString(t *event.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EventSummary is one row from the organizer's event list.
type EventSummary struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// ListEvents fetches the organizer's events.
func (c *Client) ListEvents(ctx context.Context) ([]EventSummary, error) {
	q := url.Values{}
	q.Set("organizerId", c.organizerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/events/get-all?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	c.apply(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp)}
	}

	var body struct {
		Data []EventSummary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding event list: %w", err)
	}
	return body.Data, nil
}

type eventDTO struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	EventDates  []string `json:"eventDates"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Location    struct {
		Address   string  `json:"address"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	IsTicketed       bool          `json:"isTicketed"`
	Tickets          []ticketDTO   `json:"tickets"`
	Inclusions       []listItemDTO `json:"inclusions"`
	Exclusions       []listItemDTO `json:"exclusions"`
	BannerImage      string        `json:"banner_Image"`
	SupportingImages []string      `json:"supportingImages"`
	OrganizerID      string        `json:"organizerId"`
}

// GetEvent fetches one event and hydrates it into a draft for editing.
// The draft is normalized so server-side ordering quirks never leak
// into the wizard.
func (c *Client) GetEvent(ctx context.Context, id string) (event.DraftEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/events/get-event/"+url.PathEscape(id), nil)
	if err != nil {
		return event.DraftEvent{}, err
	}
	c.apply(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return event.DraftEvent{}, fmt.Errorf("fetching event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return event.DraftEvent{}, &SubmissionError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp)}
	}

	var body struct {
		Data eventDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return event.DraftEvent{}, fmt.Errorf("decoding event: %w", err)
	}
	return hydrate(body.Data), nil
}

func hydrate(dto eventDTO) event.DraftEvent {
	d := event.DraftEvent{
		Title:            dto.Title,
		Description:      dto.Description,
		Category:         dto.Category,
		ActivityType:     event.ActivityType(dto.Type),
		BannerURL:        dto.BannerImage,
		SupportingImages: dto.SupportingImages,
		IsTicketed:       dto.IsTicketed,
		OrganizerID:      dto.OrganizerID,
		Location: event.Location{
			Address:   dto.Location.Address,
			Latitude:  dto.Location.Latitude,
			Longitude: dto.Location.Longitude,
		},
	}
	for _, s := range dto.EventDates {
		d.EventDates = append(d.EventDates, event.Date(s))
	}
	if t, err := event.ParseTimeOfDay(dto.StartTime); err == nil {
		d.StartTime = &t
	}
	if t, err := event.ParseTimeOfDay(dto.EndTime); err == nil {
		d.EndTime = &t
	}
	for _, t := range dto.Tickets {
		d.Tickets = append(d.Tickets, event.Ticket{Name: t.Name, Price: t.Price, Quantity: t.Quantity})
	}
	for _, it := range dto.Inclusions {
		d.Inclusions = appendListItem(d.Inclusions, it)
	}
	for _, it := range dto.Exclusions {
		d.Exclusions = appendListItem(d.Exclusions, it)
	}
	return d.Normalize()
}

// appendListItem keeps the stored id when present and mints a fresh one
// otherwise, so every item stays id-addressable for edit and delete.
func appendListItem(items []event.ListItem, dto listItemDTO) []event.ListItem {
	text := strings.TrimSpace(dto.Text)
	if text == "" {
		return items
	}
	id := dto.ID
	if id == "" {
		id = uuid.NewString()
	}
	return append(items, event.ListItem{ID: id, Text: text})
}

// readErrorMessage pulls the server's error string out of a failed
// response body, tolerating both {"message"} and {"error"} shapes.
func readErrorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return ""
}
