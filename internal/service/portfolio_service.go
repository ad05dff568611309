package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/apperrors"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/dataquality"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
)

// TransactionSource fetches the raw transaction table from wherever it lives
// (workbook, CSV export, API). A nil-rows-with-error result means the source
// is unavailable, which is distinct from a legitimately empty table.
type TransactionSource interface {
	Fetch(ctx context.Context) ([]dataquality.Row, error)
}

// ManualPriceStore provides the persisted manual price overrides. The store
// is owned by the boundary layer; the core only reads it per request.
type ManualPriceStore interface {
	List(ctx context.Context) ([]model.ManualPrice, error)
}

// PortfolioService orchestrates the pipeline: raw table, cleaned canonical
// transactions, per-security aggregates, valued positions. Each request runs
// the pipeline to completion; no state is kept between calls.
type PortfolioService struct {
	source       TransactionSource
	cleaningCfg  dataquality.Config
	valuation    *ValuationService
	manualPrices ManualPriceStore
}

// NewPortfolioService creates a PortfolioService with the provided
// collaborators.
func NewPortfolioService(
	source TransactionSource,
	cleaningCfg dataquality.Config,
	valuation *ValuationService,
	manualPrices ManualPriceStore,
) *PortfolioService {
	return &PortfolioService{
		source:       source,
		cleaningCfg:  cleaningCfg,
		valuation:    valuation,
		manualPrices: manualPrices,
	}
}

// LoadTransactions fetches the raw table and cleans it into canonical
// transactions. A source failure is returned as an error; an empty table is
// not an error and yields an empty canonical set.
func (s *PortfolioService) LoadTransactions(ctx context.Context) ([]model.CanonicalTransaction, dataquality.Report, error) {
	rows, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, dataquality.Report{}, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}

	txs, report := dataquality.Clean(rows, s.cleaningCfg)
	return txs, report, nil
}

// Aggregates runs load + clean + aggregate. When the source schema is missing
// columns the aggregator needs, an empty result is returned with a diagnostic
// log entry: that is a configuration problem with the source, not a runtime
// fault.
func (s *PortfolioService) Aggregates(ctx context.Context) ([]model.SecurityAggregate, error) {
	txs, report, err := s.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	if len(report.MissingColumns) > 0 {
		log.Printf(
			"portfolio: cannot aggregate, source is missing columns: %s",
			strings.Join(report.MissingColumns, ", "),
		)
		return []model.SecurityAggregate{}, nil
	}

	return Aggregate(txs), nil
}

// Summary returns the per-security portfolio overview, sorted by current
// open amount descending.
func (s *PortfolioService) Summary(ctx context.Context) ([]model.OverviewRow, error) {
	aggs, err := s.Aggregates(ctx)
	if err != nil {
		return nil, err
	}
	return Overview(aggs), nil
}

// StockView returns the valued stock-centric view. Persisted manual price
// overrides participate in the resolution fallback chain.
func (s *PortfolioService) StockView(ctx context.Context) ([]model.StockPosition, error) {
	aggs, err := s.Aggregates(ctx)
	if err != nil {
		return nil, err
	}

	manual, err := s.manualPriceMap(ctx)
	if err != nil {
		return nil, err
	}

	return s.valuation.Value(ctx, aggs, manual), nil
}

// Cashflows returns the monthly gross EUR series for one transaction type.
func (s *PortfolioService) Cashflows(ctx context.Context, txType model.TransactionType) ([]model.MonthlyCashflow, error) {
	txs, _, err := s.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyCashflows(txs, txType), nil
}

// ManualInputTickers lists open-position tickers without a resolvable live
// price, for the dashboard's manual input prompt.
func (s *PortfolioService) ManualInputTickers(ctx context.Context) ([]string, error) {
	aggs, err := s.Aggregates(ctx)
	if err != nil {
		return nil, err
	}
	return s.valuation.TickersNeedingManualInput(ctx, aggs), nil
}

func (s *PortfolioService) manualPriceMap(ctx context.Context) (map[string]model.ManualPrice, error) {
	if s.manualPrices == nil {
		return nil, nil
	}

	overrides, err := s.manualPrices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load manual prices: %w", err)
	}

	manual := make(map[string]model.ManualPrice, len(overrides))
	for _, override := range overrides {
		manual[override.Ticker] = override
	}
	return manual, nil
}
