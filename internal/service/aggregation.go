package service

import (
	"sort"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
)

// Aggregate groups canonical transactions by security name and produces one
// SecurityAggregate per security with buy/sell totals and derived weighted
// averages.
//
// Rows without a name or without a positive quantity do not represent a
// position-changing event and are skipped. Securities whose filtered rows
// contain neither buys nor sells (dividend- or interest-only activity) are
// excluded from the output: this view only tracks position-changing activity.
//
// The function is pure: calling it twice on the same input yields identical
// results. Output is sorted by name.
func Aggregate(txs []model.CanonicalTransaction) []model.SecurityAggregate {
	groups := make(map[string]*model.SecurityAggregate)

	for _, tx := range txs {
		if tx.Name == nil || tx.Quantity == nil || *tx.Quantity <= 0 {
			continue
		}

		agg, ok := groups[*tx.Name]
		if !ok {
			agg = &model.SecurityAggregate{Name: *tx.Name}
			groups[*tx.Name] = agg
		}

		// Representative metadata: first non-empty ticker and currency seen
		// for the group, in input order, across all transaction types.
		if agg.Ticker == nil && tx.Ticker != nil {
			ticker := *tx.Ticker
			agg.Ticker = &ticker
		}
		if agg.Currency == nil && tx.Currency != "" {
			currency := tx.Currency
			agg.Currency = &currency
		}

		// Prefer the converted per-unit price; rows that only report a gross
		// amount fall back to gross/quantity. A row with neither contributes
		// quantity and count but no amount.
		amount, hasAmount := rowAmountEUR(tx)

		switch tx.Type {
		case model.TypeBuy:
			agg.BuyQuantity += *tx.Quantity
			agg.BuyTransactions++
			if hasAmount {
				agg.BuyAmountEUR += amount
			}
		case model.TypeSell:
			agg.SellQuantity += *tx.Quantity
			agg.SellTransactions++
			if hasAmount {
				agg.SellAmountEUR += amount
			}
		}
	}

	out := make([]model.SecurityAggregate, 0, len(groups))
	for _, agg := range groups {
		if agg.BuyTransactions == 0 && agg.SellTransactions == 0 {
			continue
		}

		agg.SharesOutstanding = agg.BuyQuantity - agg.SellQuantity
		agg.TotalInvestedEUR = agg.BuyAmountEUR
		agg.WeightedAvgBuyEUR = weightedAverage(agg.BuyAmountEUR, agg.BuyQuantity)
		agg.WeightedAvgSellEUR = weightedAverage(agg.SellAmountEUR, agg.SellQuantity)
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// rowAmountEUR computes quantity * effective EUR price for one row. The
// effective price prefers the converted per-unit price and falls back to
// gross amount divided by quantity; when neither is known the row has no
// EUR amount.
func rowAmountEUR(tx model.CanonicalTransaction) (float64, bool) {
	quantity := *tx.Quantity
	if tx.PricePerUnitEUR != nil {
		return quantity * *tx.PricePerUnitEUR, true
	}
	if tx.GrossAmountEUR != nil && quantity != 0 {
		return quantity * (*tx.GrossAmountEUR / quantity), true
	}
	return 0, false
}

// weightedAverage divides total amount by total quantity, reporting nil when
// the quantity is zero so a division-by-zero artifact never surfaces as
// infinity.
func weightedAverage(amount, quantity float64) *float64 {
	if quantity == 0 {
		return nil
	}
	avg := amount / quantity
	return &avg
}

// Overview derives the dashboard overview rows from aggregates: purchase
// counts, current open amounts and a simple Open/Closed status, sorted by
// current open amount descending.
func Overview(aggs []model.SecurityAggregate) []model.OverviewRow {
	rows := make([]model.OverviewRow, 0, len(aggs))
	for _, agg := range aggs {
		openAmount := agg.BuyAmountEUR - agg.SellAmountEUR
		if openAmount < 0 {
			openAmount = 0
		}

		status := model.StatusClosed
		if agg.SharesOutstanding > 0 {
			status = model.StatusOpen
		}

		rows = append(rows, model.OverviewRow{
			Name:                 agg.Name,
			Ticker:               agg.Ticker,
			Currency:             agg.Currency,
			PositionStatus:       status,
			PurchasedTimes:       agg.BuyTransactions,
			SharesOutstanding:    agg.SharesOutstanding,
			TotalInvestedEUR:     agg.TotalInvestedEUR,
			WeightedAvgBuyEUR:    agg.WeightedAvgBuyEUR,
			WeightedAvgSellEUR:   agg.WeightedAvgSellEUR,
			CurrentOpenAmountEUR: openAmount,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CurrentOpenAmountEUR > rows[j].CurrentOpenAmountEUR
	})
	return rows
}
