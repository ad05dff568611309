package model

// SecurityAggregate summarizes all position-changing activity for one
// security, keyed by display name. Name is the grouping key because ticker
// may be absent for non-tradable assets (pension plans, savings products).
//
// Aggregates are derived fresh from the canonical transaction set on each
// pass and never mutated in place.
type SecurityAggregate struct {
	Name     string  `json:"name"`
	Ticker   *string `json:"ticker"`   // first non-empty ticker seen, input order
	Currency *string `json:"currency"` // first non-empty currency seen, input order

	BuyQuantity         float64 `json:"buyQuantity"`
	BuyAmountEUR        float64 `json:"buyAmountEur"`
	BuyTransactions     int     `json:"buyTransactions"`
	SellQuantity        float64 `json:"sellQuantity"`
	SellAmountEUR       float64 `json:"sellAmountEur"`
	SellTransactions    int     `json:"sellTransactions"`
	SharesOutstanding   float64 `json:"sharesOutstanding"`
	TotalInvestedEUR    float64 `json:"totalInvestedEur"`
	WeightedAvgBuyEUR   *float64 `json:"weightedAvgBuyPriceEur"`  // nil when BuyQuantity == 0
	WeightedAvgSellEUR  *float64 `json:"weightedAvgSellPriceEur"` // nil when SellQuantity == 0
}

// OverviewRow is the per-security portfolio overview entry consumed by the
// dashboard table. CurrentOpenAmountEUR is the net amount still committed to
// the position, floored at zero.
type OverviewRow struct {
	Name                string   `json:"name"`
	Ticker              *string  `json:"ticker"`
	Currency            *string  `json:"currency"`
	PositionStatus      PositionStatus `json:"positionStatus"`
	PurchasedTimes      int      `json:"purchasedTimes"`
	SharesOutstanding   float64  `json:"sharesOutstanding"`
	TotalInvestedEUR    float64  `json:"totalInvestedEur"`
	WeightedAvgBuyEUR   *float64 `json:"weightedAvgBuyPriceEur"`
	WeightedAvgSellEUR  *float64 `json:"weightedAvgSellPriceEur"`
	CurrentOpenAmountEUR float64 `json:"currentOpenAmountEur"`
}

// MonthlyCashflow is one month's summed gross EUR amount for a single
// transaction type, used for the income and contribution trend charts.
type MonthlyCashflow struct {
	Month     string  `json:"month"` // "2006-01"
	AmountEUR float64 `json:"amountEur"`
}
