// Package dataquality turns raw, heterogeneous tabular transaction data into
// the typed canonical transaction table the rest of the application works on.
//
// The pipeline is deliberately forgiving: malformed cells degrade to nil,
// whole rows are only dropped for a small set of documented reasons, and a
// missing or empty input produces an empty result instead of an error.
package dataquality

import "github.com/rodrigoBaranda/PersonalPortfolio/internal/model"

// Row is one raw record from a transaction source: arbitrary column header to
// raw cell value (string, number or nil). No invariants hold here; the source
// is an external, uncontrolled spreadsheet.
type Row map[string]any

// Config controls the cleaning pipeline: the explicit header mapping, which
// canonical columns are numeric or dates, the accepted transaction types and
// the accepted currency codes.
type Config struct {
	// ColumnMapping maps known source headers to canonical column names.
	// Headers not present here fall back to a derived snake_case name.
	ColumnMapping map[string]string

	// NumericColumns are canonical columns parsed as European-formatted
	// numbers ("." thousands separator, "," decimal separator, optional "%").
	NumericColumns []string

	// DateColumns are canonical columns parsed as day-first calendar dates.
	DateColumns []string

	// AllowedTypes maps the uppercased raw transaction type to its canonical
	// display value. Rows whose type is absent from this map are dropped.
	AllowedTypes map[string]model.TransactionType

	// AllowedCurrencies is the set of accepted currency codes. Rows with any
	// other currency are dropped.
	AllowedCurrencies []string
}

// DefaultConfig mirrors the layout of the maintained transactions workbook.
// The explicit mapping keeps the transformation auditable while the
// snake_case fallback guarantees unexpected headers still land somewhere
// deterministic.
func DefaultConfig() Config {
	return Config{
		ColumnMapping: map[string]string{
			"Ticker":             "ticker",
			"Name":               "name",
			"Date":               "date",
			"ISIN":               "isin",
			"Type":               "type",
			"Quantity":           "quantity",
			"Price per Unit":     "price_per_unit",
			"Price per Unit EUR": "price_per_unit_eur",
			"Currency":           "currency",
			"Gross Amount":       "gross_amount",
			"Gross Amount EUR":   "gross_amount_eur",
			"Taxes":              "taxes",
			"FX Rate":            "fx_rate",
			"Net Base EUR":       "net_base_eur",
			"Broker":             "broker",
			"Asset Type":         "asset_type",
		},
		NumericColumns: []string{
			"quantity",
			"price_per_unit",
			"price_per_unit_eur",
			"gross_amount",
			"gross_amount_eur",
			"taxes",
			"fx_rate",
			"net_base_eur",
		},
		DateColumns: []string{"date"},
		AllowedTypes: map[string]model.TransactionType{
			"BUY":                   model.TypeBuy,
			"SELL":                  model.TypeSell,
			"DIV":                   model.TypeDividend,
			"DIVIDEND":              model.TypeDividend,
			"DIVIDEND-REINVESTMENT": model.TypeDividendReinvestment,
			"INTEREST":              model.TypeInterest,
			"PENSION":               model.TypePension,
		},
		AllowedCurrencies: []string{"CAD", "DKK", "EUR", "USD", "HKD"},
	}
}
