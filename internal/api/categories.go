package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Category is one entry from the fetched category list. The wizard
// shows DisplayName and submits ID.
type Category struct {
	ID          string
	DisplayName string
}

type categoryDTO struct {
	ID    string `json:"_id" validate:"required"`
	Title string `json:"title" validate:"required"`
}

type categoriesResponse struct {
	Data []categoryDTO `json:"data"`
}

// Categories fetches the live category list. Entries missing an id or
// title are dropped rather than failing the whole list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/services/get-all", nil)
	if err != nil {
		return nil, err
	}
	c.apply(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp)}
	}

	var body categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}

	out := make([]Category, 0, len(body.Data))
	for _, dto := range body.Data {
		if validate.Struct(dto) != nil {
			continue
		}
		out = append(out, Category{ID: dto.ID, DisplayName: dto.Title})
	}
	return out, nil
}
