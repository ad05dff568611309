// Package yahoo implements the external market-price provider on top of the
// Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single quote lookup. A timed-out lookup is treated
// as unresolved by callers, not as a fatal error.
const DefaultTimeout = 5 * time.Second

// FinanceClient fetches current quotes from the Yahoo Finance chart API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a Yahoo Finance client with the default timeout.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewFinanceClientWithBaseURL creates a client pointed at a custom endpoint.
// Used by tests to target an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
	}
}

// GetQuote fetches the most recent price for a symbol along with its native
// currency.
//
// The chart API's meta block carries the regular market price; when that is
// zero the most recent non-null daily close is used instead. An unknown
// symbol, an API-level error or an empty series all yield an error, which the
// resolution policy downgrades to "unresolved".
func (c *FinanceClient) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, symbol)
	response, err := c.queryYahoo(ctx, url)
	if err != nil {
		return Quote{}, err
	}
	if len(response.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := response.Chart.Result[0]
	quote := Quote{
		Symbol:   result.Meta.Symbol,
		Price:    result.Meta.RegularMarketPrice,
		Currency: result.Meta.Currency,
	}

	if quote.Price == 0 {
		quote.Price = lastClose(response)
	}
	if quote.Price == 0 {
		return Quote{}, fmt.Errorf("no price data returned for symbol %s", symbol)
	}
	return quote, nil
}

// lastClose returns the most recent non-null close in the daily series, or 0
// when the series is empty.
func lastClose(response Response) float64 {
	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return 0
	}
	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return *closes[i]
		}
	}
	return 0
}

// queryYahoo executes a request against the chart API, parsing the JSON body
// and surfacing API-level errors. The User-Agent header mimics a browser to
// avoid API blocking.
func (c *FinanceClient) queryYahoo(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}

	return response, nil
}
