package model

// PositionStatus describes how much of a position is still held.
type PositionStatus string

const (
	StatusOpen            PositionStatus = "Open"
	StatusPartiallyClosed PositionStatus = "Partially Closed"
	StatusClosed          PositionStatus = "Closed"
)

// StockPosition is the valued view of one SecurityAggregate: realized and
// unrealized EUR value plus profit against the invested amount.
//
// Nil pointer fields mean "unresolved": no live or manual price was available
// for an open position. That is a first-class outcome, distinct from zero,
// and signals that manual input is needed. Closed positions always carry an
// unrealized value of exactly zero regardless of price availability.
//
// All currency fields are rounded to two decimals for presentation; the
// computation itself runs at full float64 precision.
type StockPosition struct {
	Name               string         `json:"name"`
	Ticker             *string        `json:"ticker"`
	Currency           *string        `json:"currency"`
	SharesOutstanding  float64        `json:"sharesOutstanding"`
	TotalInvestedEUR   float64        `json:"totalInvestedEur"`
	WeightedAvgBuyEUR  *float64       `json:"weightedAvgBuyPriceEur"`
	WeightedAvgSellEUR *float64       `json:"weightedAvgSellPriceEur"`
	CurrentPriceEUR    *float64       `json:"currentPriceEur"`
	RealizedValueEUR   float64        `json:"realizedValueEur"`
	UnrealizedValueEUR *float64       `json:"unrealizedValueEur"`
	TotalValueEUR      *float64       `json:"totalValueEur"`
	ProfitEUR          *float64       `json:"profitEur"`
	ProfitPct          *float64       `json:"profitPct"`
	PositionStatus     PositionStatus `json:"positionStatus"`
}

// ManualPrice is a user-supplied price override for one ticker, used when the
// live market lookup is unresolved. The price is expressed in Currency and is
// converted to EUR at valuation time.
type ManualPrice struct {
	ID       string  `json:"id"`
	Ticker   string  `json:"ticker"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}
