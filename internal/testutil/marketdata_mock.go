package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/yahoo"
)

// MockQuoteClient is a mock implementation of marketdata.QuoteClient for testing.
// Configure per-symbol quotes or errors before use; call counts are recorded
// so tests can assert on cache behaviour.
type MockQuoteClient struct {
	mu sync.Mutex

	// Quotes maps symbol -> quote to return.
	Quotes map[string]yahoo.Quote

	// Errors maps symbol -> error to return instead of a quote.
	Errors map[string]error

	// CallCount tracks how many times each symbol was requested.
	CallCount map[string]int
}

// NewMockQuoteClient creates a mock quote client with empty configuration.
func NewMockQuoteClient() *MockQuoteClient {
	return &MockQuoteClient{
		Quotes:    make(map[string]yahoo.Quote),
		Errors:    make(map[string]error),
		CallCount: make(map[string]int),
	}
}

// SetQuote configures the mock to return a quote for the given symbol.
func (m *MockQuoteClient) SetQuote(symbol string, price float64, currency string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Quotes[symbol] = yahoo.Quote{Symbol: symbol, Price: price, Currency: currency}
}

// SetError configures the mock to return an error for the given symbol.
func (m *MockQuoteClient) SetError(symbol string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[symbol] = err
}

// Calls returns how many times the given symbol was requested.
func (m *MockQuoteClient) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount[symbol]
}

// GetQuote implements marketdata.QuoteClient.
func (m *MockQuoteClient) GetQuote(ctx context.Context, symbol string) (yahoo.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount[symbol]++

	if err, ok := m.Errors[symbol]; ok {
		return yahoo.Quote{}, err
	}
	if quote, ok := m.Quotes[symbol]; ok {
		return quote, nil
	}
	return yahoo.Quote{}, fmt.Errorf("no quote configured for symbol %s", symbol)
}

// MockRateClient is a mock implementation of marketdata.RateClient for testing.
type MockRateClient struct {
	mu sync.Mutex

	// Rates maps "FROM/TO" -> exchange rate.
	Rates map[string]float64

	// Errors maps "FROM/TO" -> error to return instead of a rate.
	Errors map[string]error

	// CallCount tracks how many times each pair was requested.
	CallCount map[string]int
}

// NewMockRateClient creates a mock rate client with empty configuration.
func NewMockRateClient() *MockRateClient {
	return &MockRateClient{
		Rates:     make(map[string]float64),
		Errors:    make(map[string]error),
		CallCount: make(map[string]int),
	}
}

// SetRate configures the mock to return a rate for the given currency pair.
func (m *MockRateClient) SetRate(from, to string, rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rates[from+"/"+to] = rate
}

// SetError configures the mock to return an error for the given currency pair.
func (m *MockRateClient) SetError(from, to string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[from+"/"+to] = err
}

// Calls returns how many times the given currency pair was requested.
func (m *MockRateClient) Calls(from, to string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount[from+"/"+to]
}

// GetRate implements marketdata.RateClient.
func (m *MockRateClient) GetRate(ctx context.Context, from, to string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := from + "/" + to
	m.CallCount[key]++

	if err, ok := m.Errors[key]; ok {
		return 0, err
	}
	if rate, ok := m.Rates[key]; ok {
		return rate, nil
	}
	return 0, fmt.Errorf("no rate configured for %s", key)
}
