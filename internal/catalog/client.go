// Package catalog reads the orderable product list from the store
// service. The engine fetches it once per shift and treats the result
// as an immutable snapshot.
package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"doughjo/internal/models"
)

// Client fetches the product catalog from the store API.
type Client struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
	}
}

// Fetch returns the current product list from GET /store.
func (c *Client) Fetch() ([]models.Product, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/store")
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return products, nil
}
