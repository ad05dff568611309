package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/marketdata"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/service"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/testutil"
)

// newValuationService wires a ValuationService onto mocked external clients.
func newValuationService(quotes *testutil.MockQuoteClient, rates *testutil.MockRateClient) *service.ValuationService {
	return service.NewValuationService(marketdata.NewProvider(quotes, rates))
}

// TestValuationService_Value tests the realized/unrealized valuation.
//
// WHY: This is the money view. Unrealized value must be exactly zero for
// closed positions, nil (never zero) when an open position has no resolvable
// price, and total/profit must stay unresolved rather than silently wrong.
func TestValuationService_Value(t *testing.T) {
	t.Run("values a partially closed position with a live price", func(t *testing.T) {
		// Setup: bought 10 at 100, sold 4 at 120, current price 110 EUR
		quotes := testutil.NewMockQuoteClient()
		quotes.SetQuote("ACME", 110, "EUR")
		svc := newValuationService(quotes, testutil.NewMockRateClient())

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("ACME Corp", "ACME", "EUR", 10, 100),
			sellWithTicker("ACME Corp", "ACME", "EUR", 4, 120),
		})

		// Execute
		positions := svc.Value(context.Background(), aggs, nil)

		// Assert
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}

		pos := positions[0]
		if pos.SharesOutstanding != 6 {
			t.Errorf("SharesOutstanding = %v, want 6", pos.SharesOutstanding)
		}
		if pos.RealizedValueEUR != 480 {
			t.Errorf("RealizedValueEUR = %v, want 480", pos.RealizedValueEUR)
		}
		if pos.UnrealizedValueEUR == nil || *pos.UnrealizedValueEUR != 660 {
			t.Errorf("UnrealizedValueEUR = %v, want 660", pos.UnrealizedValueEUR)
		}
		if pos.TotalValueEUR == nil || *pos.TotalValueEUR != 1140 {
			t.Errorf("TotalValueEUR = %v, want 1140", pos.TotalValueEUR)
		}
		if pos.ProfitEUR == nil || *pos.ProfitEUR != 140 {
			t.Errorf("ProfitEUR = %v, want 140", pos.ProfitEUR)
		}
		if pos.ProfitPct == nil || *pos.ProfitPct != 14 {
			t.Errorf("ProfitPct = %v, want 14", pos.ProfitPct)
		}
		if pos.PositionStatus != model.StatusPartiallyClosed {
			t.Errorf("PositionStatus = %q, want %q", pos.PositionStatus, model.StatusPartiallyClosed)
		}
	})

	t.Run("converts foreign prices into EUR", func(t *testing.T) {
		// Setup: USD-quoted security, 1 USD = 0.9 EUR
		quotes := testutil.NewMockQuoteClient()
		quotes.SetQuote("ACME", 100, "USD")
		rates := testutil.NewMockRateClient()
		rates.SetRate("USD", "EUR", 0.9)
		svc := newValuationService(quotes, rates)

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("ACME Corp", "ACME", "USD", 5, 80),
		})

		// Execute
		positions := svc.Value(context.Background(), aggs, nil)

		// Assert
		pos := positions[0]
		if pos.CurrentPriceEUR == nil || *pos.CurrentPriceEUR != 90 {
			t.Errorf("CurrentPriceEUR = %v, want 90", pos.CurrentPriceEUR)
		}
		if pos.UnrealizedValueEUR == nil || *pos.UnrealizedValueEUR != 450 {
			t.Errorf("UnrealizedValueEUR = %v, want 450", pos.UnrealizedValueEUR)
		}
	})

	t.Run("closed positions have exactly zero unrealized value", func(t *testing.T) {
		// Setup: fully sold, and the quote client errors so any lookup would fail
		quotes := testutil.NewMockQuoteClient()
		quotes.SetError("ACME", errors.New("symbol not found"))
		svc := newValuationService(quotes, testutil.NewMockRateClient())

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("ACME Corp", "ACME", "EUR", 10, 100),
			sellWithTicker("ACME Corp", "ACME", "EUR", 10, 120),
		})

		// Execute
		positions := svc.Value(context.Background(), aggs, nil)

		// Assert
		pos := positions[0]
		if pos.UnrealizedValueEUR == nil || *pos.UnrealizedValueEUR != 0 {
			t.Errorf("UnrealizedValueEUR = %v, want exactly 0", pos.UnrealizedValueEUR)
		}
		if pos.TotalValueEUR == nil || *pos.TotalValueEUR != 1200 {
			t.Errorf("TotalValueEUR = %v, want 1200", pos.TotalValueEUR)
		}
		if pos.PositionStatus != model.StatusClosed {
			t.Errorf("PositionStatus = %q, want %q", pos.PositionStatus, model.StatusClosed)
		}
		if quotes.Calls("ACME") != 0 {
			t.Errorf("Expected no quote lookups for a closed position, got %d", quotes.Calls("ACME"))
		}
	})

	t.Run("open positions without a resolvable price stay unresolved", func(t *testing.T) {
		// Setup: live lookup fails and there is no manual override
		quotes := testutil.NewMockQuoteClient()
		quotes.SetError("ACME", errors.New("symbol not found"))
		svc := newValuationService(quotes, testutil.NewMockRateClient())

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("ACME Corp", "ACME", "EUR", 10, 100),
		})

		// Execute
		positions := svc.Value(context.Background(), aggs, nil)

		// Assert: nil, not zero, for every dependent figure
		pos := positions[0]
		if pos.CurrentPriceEUR != nil {
			t.Errorf("CurrentPriceEUR = %v, want nil", pos.CurrentPriceEUR)
		}
		if pos.UnrealizedValueEUR != nil {
			t.Errorf("UnrealizedValueEUR = %v, want nil", pos.UnrealizedValueEUR)
		}
		if pos.TotalValueEUR != nil {
			t.Errorf("TotalValueEUR = %v, want nil", pos.TotalValueEUR)
		}
		if pos.ProfitEUR != nil || pos.ProfitPct != nil {
			t.Errorf("Profit = (%v, %v), want nil", pos.ProfitEUR, pos.ProfitPct)
		}
		if pos.PositionStatus != model.StatusOpen {
			t.Errorf("PositionStatus = %q, want %q", pos.PositionStatus, model.StatusOpen)
		}
	})

	t.Run("falls back to a manual price in its own currency", func(t *testing.T) {
		// Setup: dead listing with a USD manual override
		quotes := testutil.NewMockQuoteClient()
		quotes.SetError("OLD", errors.New("delisted"))
		rates := testutil.NewMockRateClient()
		rates.SetRate("USD", "EUR", 0.5)
		svc := newValuationService(quotes, rates)

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("Old Corp", "OLD", "EUR", 2, 10),
		})
		manual := map[string]model.ManualPrice{
			"OLD": {Ticker: "OLD", Price: 8, Currency: "USD"},
		}

		// Execute
		positions := svc.Value(context.Background(), aggs, manual)

		// Assert: 8 USD * 0.5 = 4 EUR per unit, despite the EUR aggregate currency
		pos := positions[0]
		if pos.CurrentPriceEUR == nil || *pos.CurrentPriceEUR != 4 {
			t.Errorf("CurrentPriceEUR = %v, want 4", pos.CurrentPriceEUR)
		}
		if pos.UnrealizedValueEUR == nil || *pos.UnrealizedValueEUR != 8 {
			t.Errorf("UnrealizedValueEUR = %v, want 8", pos.UnrealizedValueEUR)
		}
	})

	t.Run("failed FX lookup degrades to the source amount", func(t *testing.T) {
		// Setup: quote resolves but the rate service is down
		quotes := testutil.NewMockQuoteClient()
		quotes.SetQuote("ACME", 100, "USD")
		rates := testutil.NewMockRateClient()
		rates.SetError("USD", "EUR", errors.New("service unavailable"))
		svc := newValuationService(quotes, rates)

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("ACME Corp", "ACME", "USD", 1, 80),
		})

		// Execute
		positions := svc.Value(context.Background(), aggs, nil)

		// Assert: rate 1.0, amount carried through unconverted
		pos := positions[0]
		if pos.CurrentPriceEUR == nil || *pos.CurrentPriceEUR != 100 {
			t.Errorf("CurrentPriceEUR = %v, want 100 (rate degraded to 1.0)", pos.CurrentPriceEUR)
		}
	})

	t.Run("no profit figures without invested capital", func(t *testing.T) {
		// Setup: only sells survive filtering for this security
		quotes := testutil.NewMockQuoteClient()
		svc := newValuationService(quotes, testutil.NewMockRateClient())

		aggs := service.Aggregate([]model.CanonicalTransaction{
			sellWithTicker("Gift Corp", "GIFT", "EUR", 3, 50),
		})

		// Execute
		positions := svc.Value(context.Background(), aggs, nil)

		// Assert
		pos := positions[0]
		if pos.TotalInvestedEUR != 0 {
			t.Errorf("TotalInvestedEUR = %v, want 0", pos.TotalInvestedEUR)
		}
		if pos.ProfitEUR != nil || pos.ProfitPct != nil {
			t.Errorf("Profit = (%v, %v), want nil without invested capital", pos.ProfitEUR, pos.ProfitPct)
		}
	})

	t.Run("rounds presentation figures to two decimals", func(t *testing.T) {
		quotes := testutil.NewMockQuoteClient()
		quotes.SetQuote("ACME", 10.0/3.0, "EUR")
		svc := newValuationService(quotes, testutil.NewMockRateClient())

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("ACME Corp", "ACME", "EUR", 3, 10.0/3.0),
		})

		positions := svc.Value(context.Background(), aggs, nil)

		pos := positions[0]
		if pos.CurrentPriceEUR == nil || *pos.CurrentPriceEUR != 3.33 {
			t.Errorf("CurrentPriceEUR = %v, want 3.33", pos.CurrentPriceEUR)
		}
		if pos.WeightedAvgBuyEUR == nil || *pos.WeightedAvgBuyEUR != 3.33 {
			t.Errorf("WeightedAvgBuyEUR = %v, want 3.33", pos.WeightedAvgBuyEUR)
		}
	})
}

// TestValuationService_TickersNeedingManualInput tests the manual-input
// prompt list.
//
// WHY: The dashboard asks the user for prices exactly where the market cannot
// supply one. Listing a resolvable ticker nags the user; missing an
// unresolvable one hides a hole in the valuation.
func TestValuationService_TickersNeedingManualInput(t *testing.T) {
	t.Run("lists open positions whose live lookup fails", func(t *testing.T) {
		// Setup
		quotes := testutil.NewMockQuoteClient()
		quotes.SetQuote("LIVE", 10, "EUR")
		quotes.SetError("DEAD", errors.New("delisted"))
		quotes.SetError("GONE", errors.New("delisted"))
		svc := newValuationService(quotes, testutil.NewMockRateClient())

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("Live Corp", "LIVE", "EUR", 1, 10),
			buyWithTicker("Gone Corp", "GONE", "EUR", 1, 10),
			buyWithTicker("Dead Corp", "DEAD", "EUR", 1, 10),
		})

		// Execute
		tickers := svc.TickersNeedingManualInput(context.Background(), aggs)

		// Assert: sorted, live lookup excluded
		if len(tickers) != 2 || tickers[0] != "DEAD" || tickers[1] != "GONE" {
			t.Errorf("Tickers = %v, want [DEAD GONE]", tickers)
		}
	})

	t.Run("ignores closed positions", func(t *testing.T) {
		quotes := testutil.NewMockQuoteClient()
		quotes.SetError("DEAD", errors.New("delisted"))
		svc := newValuationService(quotes, testutil.NewMockRateClient())

		aggs := service.Aggregate([]model.CanonicalTransaction{
			buyWithTicker("Dead Corp", "DEAD", "EUR", 5, 10),
			sellWithTicker("Dead Corp", "DEAD", "EUR", 5, 12),
		})

		tickers := svc.TickersNeedingManualInput(context.Background(), aggs)

		if len(tickers) != 0 {
			t.Errorf("Tickers = %v, want empty", tickers)
		}
	})
}

func buyWithTicker(name, ticker, currency string, quantity, priceEUR float64) model.CanonicalTransaction {
	tx := testutil.BuyTransaction(name, quantity, priceEUR)
	tx.Ticker = testutil.StringPtr(ticker)
	tx.Currency = currency
	return tx
}

func sellWithTicker(name, ticker, currency string, quantity, priceEUR float64) model.CanonicalTransaction {
	tx := testutil.SellTransaction(name, quantity, priceEUR)
	tx.Ticker = testutil.StringPtr(ticker)
	tx.Currency = currency
	return tx
}
