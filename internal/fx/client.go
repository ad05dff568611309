// Package fx implements the external exchange-rate provider on top of the
// exchangerate-api.com latest-rates endpoint.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single rate lookup.
const DefaultTimeout = 5 * time.Second

// rateResponse is the JSON shape of the latest-rates endpoint: a base
// currency and a map of target currency to rate.
type rateResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches currency exchange rates.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an FX client against the public exchangerate-api endpoint.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    "https://api.exchangerate-api.com/v4/latest",
	}
}

// NewClientWithBaseURL creates a client pointed at a custom endpoint.
// Used by tests to target an httptest server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
	}
}

// GetRate fetches the current rate converting one unit of from into to.
// Callers are expected to degrade a failed lookup to 1.0; this client only
// reports the failure.
func (c *Client) GetRate(ctx context.Context, from, to string) (float64, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("exchange rate API returned status %d for %s", resp.StatusCode, from)
	}

	var result rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode exchange rate response: %w", err)
	}

	rate, ok := result.Rates[to]
	if !ok {
		return 0, fmt.Errorf("no %s rate in response for base %s", to, from)
	}
	return rate, nil
}
