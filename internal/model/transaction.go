package model

import "time"

// TransactionType is the canonical classification of a transaction row.
// Raw source values (e.g. "BUY", "DIV", "DIVIDEND-REINVESTMENT") are mapped
// onto these display values during cleaning; rows that map to none are dropped.
type TransactionType string

const (
	TypeBuy                  TransactionType = "Buy"
	TypeSell                 TransactionType = "Sell"
	TypeDividend             TransactionType = "Dividend"
	TypeDividendReinvestment TransactionType = "Dividend Reinvestment"
	TypeInterest             TransactionType = "Interest"
	TypePension              TransactionType = "Pension"
)

// CanonicalTransaction is the normalized, typed transaction record produced by
// the data quality pipeline. Optional fields are pointers: a nil value means
// the source cell was empty or unparseable, which downstream stages treat as
// missing rather than zero.
//
// A set of canonical transactions is rebuilt wholesale from each raw snapshot
// and never mutated afterwards.
type CanonicalTransaction struct {
	Ticker          *string         `json:"ticker"`
	Name            *string         `json:"name"`
	ISIN            *string         `json:"isin"`
	Date            *time.Time      `json:"date"` // calendar date, time component zeroed
	Type            TransactionType `json:"type"`
	Quantity        *float64        `json:"quantity"`
	PricePerUnit    *float64        `json:"pricePerUnit"`
	PricePerUnitEUR *float64        `json:"pricePerUnitEur"`
	Currency        string          `json:"currency"`
	GrossAmount     *float64        `json:"grossAmount"`
	GrossAmountEUR  *float64        `json:"grossAmountEur"`
	Taxes           *float64        `json:"taxes"`
	FxRate          *float64        `json:"fxRate"`
	NetBaseEUR      *float64        `json:"netBaseEur"`
	Broker          *string         `json:"broker"`
	AssetType       *string         `json:"assetType"`

	// Extra holds cells whose headers were not part of the known mapping,
	// keyed by the derived snake_case header. Kept for display and audit.
	Extra map[string]any `json:"extra,omitempty"`
}
