// Package marketdata implements the price and FX resolution policy: live
// lookups with bounded-time memoization, manual-price fallback for quotes and
// a deliberate 1.0 degradation for exchange rates.
package marketdata

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/yahoo"
)

const (
	// DefaultCacheExpiration is how long a lookup result is reused before a
	// fresh external call is made. Stale prices within the window are
	// acceptable; this is a cost control, not a correctness contract.
	DefaultCacheExpiration = time.Hour
	// CacheCleanupInterval is how often expired entries are purged.
	CacheCleanupInterval = 2 * time.Hour
)

// QuoteClient is the external market-price provider contract.
type QuoteClient interface {
	GetQuote(ctx context.Context, symbol string) (yahoo.Quote, error)
}

// RateClient is the external FX-rate provider contract.
type RateClient interface {
	GetRate(ctx context.Context, from, to string) (float64, error)
}

// PriceSource records which branch of the fallback chain produced a price.
type PriceSource string

const (
	SourceMarket PriceSource = "market"
	SourceManual PriceSource = "manual"
)

// PriceResolution is the explicit outcome of a price lookup. Unresolved is a
// first-class result, never an error: callers either omit the value or prompt
// for manual input. Reason describes why resolution failed.
type PriceResolution struct {
	Resolved bool
	Price    float64
	Currency string
	Source   PriceSource
	Reason   string
}

// quoteResult is the memoized outcome of one live quote lookup. Failed
// lookups are cached too so an unknown symbol does not trigger a network
// call per valuation pass.
type quoteResult struct {
	quote yahoo.Quote
	err   error
}

// Provider resolves current prices and exchange rates, memoizing each
// distinct lookup key for a bounded window and collapsing concurrent
// identical lookups into a single upstream call.
type Provider struct {
	quotes QuoteClient
	rates  RateClient
	cache  *cache.Cache
	group  singleflight.Group
}

// NewProvider creates a Provider with the default one-hour memoization
// window.
func NewProvider(quotes QuoteClient, rates RateClient) *Provider {
	return NewProviderWithExpiration(quotes, rates, DefaultCacheExpiration)
}

// NewProviderWithExpiration creates a Provider with a custom memoization
// window. Used by tests to exercise expiry.
func NewProviderWithExpiration(quotes QuoteClient, rates RateClient, expiration time.Duration) *Provider {
	return &Provider{
		quotes: quotes,
		rates:  rates,
		cache:  cache.New(expiration, CacheCleanupInterval),
	}
}

// ResolvePrice resolves a usable current price for a ticker.
//
// Order: the live market provider first; if that is unresolved, the manual
// override for the ticker; otherwise unresolved. Live data is preferred but
// the chain guarantees graceful degradation to user-supplied values and
// never raises.
func (p *Provider) ResolvePrice(ctx context.Context, ticker string, manual map[string]model.ManualPrice) PriceResolution {
	quote, err := p.stockQuote(ctx, ticker)
	if err == nil {
		return PriceResolution{
			Resolved: true,
			Price:    quote.Price,
			Currency: quote.Currency,
			Source:   SourceMarket,
		}
	}

	if override, ok := manual[ticker]; ok {
		currency := override.Currency
		if currency == "" {
			currency = "EUR"
		}
		return PriceResolution{
			Resolved: true,
			Price:    override.Price,
			Currency: currency,
			Source:   SourceManual,
		}
	}

	return PriceResolution{
		Resolved: false,
		Reason:   fmt.Sprintf("no market price and no manual override for %q: %v", ticker, err),
	}
}

// ExchangeRate resolves the rate converting from into to.
//
// Identical currencies return 1.0 without a lookup. A failed lookup also
// returns 1.0: leaving amounts in their source currency is preferred over
// failing the whole valuation. This is a documented approximation, not a
// swallowed error, so the degradation is logged.
func (p *Provider) ExchangeRate(ctx context.Context, from, to string) float64 {
	if from == to {
		return 1.0
	}

	key := "fx:" + from + "/" + to
	if cached, ok := p.cache.Get(key); ok {
		return cached.(float64)
	}

	value, err, _ := p.group.Do(key, func() (any, error) {
		rate, err := p.rates.GetRate(ctx, from, to)
		if err != nil {
			return 0.0, err
		}
		return rate, nil
	})
	if err != nil {
		log.Printf("marketdata: FX lookup %s->%s failed, defaulting to 1.0: %v", from, to, err)
		return 1.0
	}

	rate := value.(float64)
	p.cache.Set(key, rate, cache.DefaultExpiration)
	return rate
}

// stockQuote performs the memoized live lookup for a ticker. Both successful
// and failed outcomes are cached for the full window, mirroring how often a
// missing listing is genuinely absent rather than transiently unavailable.
func (p *Provider) stockQuote(ctx context.Context, ticker string) (yahoo.Quote, error) {
	key := "quote:" + ticker
	if cached, ok := p.cache.Get(key); ok {
		result := cached.(quoteResult)
		return result.quote, result.err
	}

	value, _, _ := p.group.Do(key, func() (any, error) {
		quote, err := p.quotes.GetQuote(ctx, ticker)
		return quoteResult{quote: quote, err: err}, nil
	})

	result := value.(quoteResult)
	p.cache.Set(key, result, cache.DefaultExpiration)
	return result.quote, result.err
}
