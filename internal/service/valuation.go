package service

import (
	"context"
	"math"
	"sort"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/marketdata"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
)

// PriceResolver is the resolution policy the valuation engine consults for
// current prices and exchange rates. marketdata.Provider is the production
// implementation; tests inject fakes.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, ticker string, manual map[string]model.ManualPrice) marketdata.PriceResolution
	ExchangeRate(ctx context.Context, from, to string) float64
}

// ValuationService combines security aggregates with resolved prices into the
// per-security realized/unrealized value view.
type ValuationService struct {
	resolver PriceResolver
}

// NewValuationService creates a ValuationService with the provided resolver.
func NewValuationService(resolver PriceResolver) *ValuationService {
	return &ValuationService{resolver: resolver}
}

// Value produces one StockPosition per aggregate.
//
// Realized value is the summed sell proceeds. Unrealized value is remaining
// quantity times the resolved current EUR price; it is exactly zero for
// closed positions regardless of price availability, and nil (unresolved) for
// open positions without a resolvable price. Total value and profit stay
// unresolved whenever they would depend on an unresolved component, and
// profit is only computed against a positive invested amount so a division
// never produces infinity.
//
// Output rows are sorted by name and all currency figures are rounded to two
// decimals for presentation.
func (s *ValuationService) Value(ctx context.Context, aggs []model.SecurityAggregate, manual map[string]model.ManualPrice) []model.StockPosition {
	positions := make([]model.StockPosition, 0, len(aggs))

	for _, agg := range aggs {
		remaining := math.Max(agg.SharesOutstanding, 0)
		realized := agg.SellAmountEUR

		var currentPriceEUR, unrealized *float64

		if remaining > 0 && agg.Ticker != nil && *agg.Ticker != "" {
			if resolution := s.resolver.ResolvePrice(ctx, *agg.Ticker, manual); resolution.Resolved {
				rate := s.resolver.ExchangeRate(ctx, s.conversionCurrency(agg, resolution), "EUR")
				price := resolution.Price * rate
				value := remaining * price
				currentPriceEUR = &price
				unrealized = &value
			}
			// Unresolved stays nil: "needs manual input", distinct from zero.
		} else if remaining <= 0 {
			zero := 0.0
			unrealized = &zero
		}

		var total *float64
		if unrealized != nil {
			v := realized + *unrealized
			total = &v
		}

		var profit, profitPct *float64
		if agg.TotalInvestedEUR > 0 && total != nil {
			p := *total - agg.TotalInvestedEUR
			pct := p / agg.TotalInvestedEUR * 100
			profit = &p
			profitPct = &pct
		}

		var status model.PositionStatus
		switch {
		case remaining > 0 && agg.SellQuantity > 0:
			status = model.StatusPartiallyClosed
		case remaining > 0:
			status = model.StatusOpen
		default:
			status = model.StatusClosed
		}

		positions = append(positions, model.StockPosition{
			Name:               agg.Name,
			Ticker:             agg.Ticker,
			Currency:           agg.Currency,
			SharesOutstanding:  round2(remaining),
			TotalInvestedEUR:   round2(agg.TotalInvestedEUR),
			WeightedAvgBuyEUR:  round2Ptr(agg.WeightedAvgBuyEUR),
			WeightedAvgSellEUR: round2Ptr(agg.WeightedAvgSellEUR),
			CurrentPriceEUR:    round2Ptr(currentPriceEUR),
			RealizedValueEUR:   round2(realized),
			UnrealizedValueEUR: round2Ptr(unrealized),
			TotalValueEUR:      round2Ptr(total),
			ProfitEUR:          round2Ptr(profit),
			ProfitPct:          round2Ptr(profitPct),
			PositionStatus:     status,
		})
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].Name < positions[j].Name })
	return positions
}

// conversionCurrency picks the currency a resolved price is quoted in. A
// manual override carries its own input currency; market prices convert from
// the aggregate's currency. EUR is assumed when nothing is known.
func (s *ValuationService) conversionCurrency(agg model.SecurityAggregate, resolution marketdata.PriceResolution) string {
	if resolution.Source == marketdata.SourceManual && resolution.Currency != "" {
		return resolution.Currency
	}
	if agg.Currency != nil && *agg.Currency != "" {
		return *agg.Currency
	}
	return "EUR"
}

// TickersNeedingManualInput lists tickers of open positions whose live market
// lookup is unresolved: exactly the set the dashboard should prompt a manual
// price for. Manual overrides are deliberately not consulted, so an already
// overridden ticker still shows up for review.
func (s *ValuationService) TickersNeedingManualInput(ctx context.Context, aggs []model.SecurityAggregate) []string {
	var tickers []string
	for _, agg := range aggs {
		if agg.SharesOutstanding <= 0 || agg.Ticker == nil || *agg.Ticker == "" {
			continue
		}
		if resolution := s.resolver.ResolvePrice(ctx, *agg.Ticker, nil); !resolution.Resolved {
			tickers = append(tickers, *agg.Ticker)
		}
	}
	sort.Strings(tickers)
	return tickers
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}
