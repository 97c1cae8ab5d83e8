// Package persistence is the engine's gateway to the shift store: one
// submission per ended shift and a bounded read of recent history.
package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"doughjo/internal/models"
)

// Client talks to the shift store API.
type Client struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a shift store client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
	}
}

// errorBody is the failure payload shape returned by the store.
type errorBody struct {
	Error string `json:"error"`
}

// Save submits a finalized shift record via POST /shift/complete.
// A non-2xx response surfaces the server-provided error message when
// present, otherwise a generic failure reason.
func (c *Client) Save(rec models.ShiftRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode shift record: %w", err)
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/shift/complete", "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("save shift: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("save shift: %s", body.Error)
	}
	return fmt.Errorf("save shift: unexpected status %d", resp.StatusCode)
}

// historyBody is the response shape of GET /shift/history.
type historyBody struct {
	Shifts []models.ShiftRecord `json:"shifts"`
}

// Recent fetches the full shift history and keeps only the most
// recent limit entries, most recent first. The store returns shifts in
// insertion order.
func (c *Client) Recent(limit int) ([]models.ShiftRecord, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/shift/history")
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch history: unexpected status %d", resp.StatusCode)
	}

	var body historyBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	shifts := body.Shifts
	if len(shifts) > limit {
		shifts = shifts[len(shifts)-limit:]
	}

	// Most recent first.
	out := make([]models.ShiftRecord, 0, len(shifts))
	for i := len(shifts) - 1; i >= 0; i-- {
		out = append(out, shifts[i])
	}
	return out, nil
}
