package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Place is one geocoder match. The triple travels together so the
// wizard can write it into the draft atomically.
type Place struct {
	Address   string
	Latitude  float64
	Longitude float64
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Lookup geocodes a free-text query and returns candidate places.
// Results with unparseable coordinates are dropped so a selected place
// is always a complete triple.
func (c *Client) Lookup(ctx context.Context, query string) ([]Place, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "8")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.geocoderURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", "organizer-cli")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("looking up location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding geocoder response: %w", err)
	}

	out := make([]Place, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if r.DisplayName == "" || latErr != nil || lonErr != nil {
			continue
		}
		out = append(out, Place{Address: r.DisplayName, Latitude: lat, Longitude: lon})
	}
	return out, nil
}
