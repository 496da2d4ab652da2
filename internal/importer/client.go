package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Record is one exported exercise log in the wire format the server's
// bulk import endpoint accepts. The id lets the server skip records it
// already holds when a batch is resent.
type Record struct {
	ID              string  `json:"id,omitempty"`
	ExerciseName    string  `json:"exercise_name"`
	Sets            int     `json:"sets"`
	Reps            int     `json:"reps"`
	Weight          float64 `json:"weight_kg"`
	DurationMinutes int     `json:"duration_minutes"`
	LoggedAt        string  `json:"logged_at,omitempty"`
}

// ImportResult is the server's response to a batch.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Client sends log batches to the IronFlow server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the IronFlow server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendBatch POSTs a batch of records to the server's import endpoint.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) SendBatch(records []Record) (*ImportResult, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshaling batch: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/import", bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			var result ImportResult
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding import result: %w", err)
			}
			return &result, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			// Auth failures won't heal on retry.
			return nil, fmt.Errorf("import rejected (status %d): %s", resp.StatusCode, body)
		default:
			lastErr = fmt.Errorf("import failed (status %d): %s", resp.StatusCode, body)
		}
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
