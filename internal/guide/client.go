// Package guide talks to the external exercise content service. It
// only backs the "view guide" affordance: lookups that fail degrade to
// "no guide available" and never affect a running session.
package guide

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ExerciseDetails is the content record for one exercise.
type ExerciseDetails struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	BodyPart     string   `json:"body_part"`
	Equipment    string   `json:"equipment"`
	Target       string   `json:"target"`
	YouTubeID    string   `json:"youtube_id,omitempty"`
	Instructions []string `json:"instructions"`
}

// Client queries the content service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL. An empty base URL
// yields a disabled client whose lookups report not-found.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether a content service is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Lookup fetches details for an exercise by name. Returns nil when
// the service has no match (or no service is configured).
func (c *Client) Lookup(ctx context.Context, name string) (*ExerciseDetails, error) {
	if !c.Enabled() {
		return nil, nil
	}

	results, err := c.search(ctx, url.Values{"q": []string{name}})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// Recommend fetches exercises matching a body-part or equipment
// filter.
func (c *Client) Recommend(ctx context.Context, bodyPart, equipment string) ([]ExerciseDetails, error) {
	if !c.Enabled() {
		return nil, nil
	}

	params := url.Values{}
	if bodyPart != "" {
		params.Set("body_part", bodyPart)
	}
	if equipment != "" {
		params.Set("equipment", equipment)
	}
	return c.search(ctx, params)
}

func (c *Client) search(ctx context.Context, params url.Values) ([]ExerciseDetails, error) {
	u := c.baseURL + "/exercises?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("guide: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("guide: search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("guide: search returned %d: %s", resp.StatusCode, body)
	}

	var results []ExerciseDetails
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("guide: decoding results: %w", err)
	}
	return results, nil
}
