package dataquality

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
)

// Report summarizes what the cleaning pass did to the input. Row-level data
// problems are aggregated into counts here instead of being raised per row.
type Report struct {
	InputRows                  int `json:"inputRows"`
	OutputRows                 int `json:"outputRows"`
	DroppedUnsupportedType     int `json:"droppedUnsupportedType"`
	DroppedUnsupportedCurrency int `json:"droppedUnsupportedCurrency"`
	DroppedPlaceholder         int `json:"droppedPlaceholder"`
	UnparseableCells           int `json:"unparseableCells"`

	// MissingColumns lists canonical columns required for aggregation that
	// were structurally absent from the input header set. A non-empty list is
	// a configuration problem with the source, not a data error.
	MissingColumns []string `json:"missingColumns,omitempty"`
}

// aggregationColumns are the concepts the aggregator needs to be present in
// the source schema.
var aggregationColumns = []string{"name", "quantity", "price_per_unit_eur", "gross_amount_eur", "type"}

// Dropped is the total number of rows removed by the cleaning pass.
func (r Report) Dropped() int {
	return r.DroppedUnsupportedType + r.DroppedUnsupportedCurrency + r.DroppedPlaceholder
}

// Clean normalizes a raw transaction table into canonical transactions.
//
// Per row it renames headers (explicit mapping with a snake_case fallback),
// trims strings (empty becomes missing), parses configured numeric columns as
// European-formatted numbers, parses configured date columns day-first, maps
// the transaction type onto its canonical value, uppercases and validates the
// currency, and finally removes placeholder rows that carry no amount, ticker
// or name.
//
// Rows with an unsupported type or currency are dropped and counted; a nil or
// empty input yields an empty result, never an error. Output preserves input
// order.
func Clean(rows []Row, cfg Config) ([]model.CanonicalTransaction, Report) {
	report := Report{InputRows: len(rows)}
	if len(rows) == 0 {
		log.Printf("dataquality: no transactions to clean")
		return []model.CanonicalTransaction{}, report
	}

	// The header set is uniform across a tabular snapshot; collect it once so
	// structural checks are not confused with per-row missing cells.
	columns := make(map[string]bool)
	for _, raw := range rows {
		for header := range raw {
			columns[MapHeader(header, cfg).Canonical] = true
		}
	}
	for _, column := range aggregationColumns {
		if !columns[column] {
			report.MissingColumns = append(report.MissingColumns, column)
		}
	}
	sort.Strings(report.MissingColumns)

	// The placeholder filter needs all three of its columns to exist in the
	// schema; otherwise it cannot distinguish artifacts from sparse rows.
	placeholderApplies := columns["gross_amount"] && columns["ticker"] && columns["name"]

	out := make([]model.CanonicalTransaction, 0, len(rows))

	for _, raw := range rows {
		cells := normalizeCells(raw, cfg, &report)

		// Transaction type: unmapped or missing values drop the row.
		txType, ok := lookupType(cells["type"], cfg)
		if !ok {
			report.DroppedUnsupportedType++
			continue
		}

		// Currency: uppercased, then validated against the allowed set.
		currency, ok := lookupCurrency(cells["currency"], cfg)
		if !ok {
			report.DroppedUnsupportedCurrency++
			continue
		}

		// Placeholder rows are empty spreadsheet artifacts: no gross amount,
		// no ticker, no name.
		if placeholderApplies && isPlaceholder(cells) {
			report.DroppedPlaceholder++
			continue
		}

		out = append(out, bind(cells, txType, currency))
	}

	report.OutputRows = len(out)
	if dropped := report.Dropped(); dropped > 0 {
		log.Printf(
			"dataquality: dropped %d rows (type=%d currency=%d placeholder=%d), %d unparseable cells",
			dropped,
			report.DroppedUnsupportedType,
			report.DroppedUnsupportedCurrency,
			report.DroppedPlaceholder,
			report.UnparseableCells,
		)
	}
	log.Printf("dataquality: cleaned transactions, %d rows remaining of %d", report.OutputRows, report.InputRows)
	return out, report
}

// normalizeCells applies header renaming, string trimming and typed parsing
// to one raw row. The result maps canonical column names to one of: string,
// float64, time.Time or nil.
func normalizeCells(raw Row, cfg Config, report *Report) map[string]any {
	cells := make(map[string]any, len(raw))
	for header, value := range raw {
		canonical := MapHeader(header, cfg).Canonical

		// Trim string cells; empty after trimming means missing so numeric
		// and date parsing treat it the same as an absent cell.
		if s, isString := value.(string); isString {
			s = strings.TrimSpace(s)
			if s == "" {
				cells[canonical] = nil
				continue
			}
			value = s
		}
		cells[canonical] = value
	}

	for _, column := range cfg.NumericColumns {
		value, present := cells[column]
		if !present || value == nil {
			continue
		}
		if n, ok := numericCell(value); ok {
			cells[column] = n
		} else {
			cells[column] = nil
			report.UnparseableCells++
		}
	}

	for _, column := range cfg.DateColumns {
		value, present := cells[column]
		if !present || value == nil {
			continue
		}
		if d, ok := dateCell(value); ok {
			cells[column] = d
		} else {
			cells[column] = nil
			report.UnparseableCells++
		}
	}

	return cells
}

func lookupType(cell any, cfg Config) (model.TransactionType, bool) {
	s, ok := cell.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	txType, ok := cfg.AllowedTypes[strings.ToUpper(strings.TrimSpace(s))]
	return txType, ok
}

func lookupCurrency(cell any, cfg Config) (string, bool) {
	s, ok := cell.(string)
	if !ok {
		return "", false
	}
	currency := strings.ToUpper(strings.TrimSpace(s))
	for _, allowed := range cfg.AllowedCurrencies {
		if currency == allowed {
			return currency, true
		}
	}
	return "", false
}

func isPlaceholder(cells map[string]any) bool {
	gross, hasGross := cells["gross_amount"].(float64)
	if hasGross && gross != 0 {
		return false
	}
	if _, ok := cells["ticker"].(string); ok {
		return false
	}
	if _, ok := cells["name"].(string); ok {
		return false
	}
	return true
}

// bind maps the cleaned cell map onto the canonical struct. Cells outside the
// known field set are preserved under Extra.
func bind(cells map[string]any, txType model.TransactionType, currency string) model.CanonicalTransaction {
	tx := model.CanonicalTransaction{
		Ticker:          strField(cells, "ticker"),
		Name:            strField(cells, "name"),
		ISIN:            strField(cells, "isin"),
		Date:            dateField(cells, "date"),
		Type:            txType,
		Quantity:        numField(cells, "quantity"),
		PricePerUnit:    numField(cells, "price_per_unit"),
		PricePerUnitEUR: numField(cells, "price_per_unit_eur"),
		Currency:        currency,
		GrossAmount:     numField(cells, "gross_amount"),
		GrossAmountEUR:  numField(cells, "gross_amount_eur"),
		Taxes:           numField(cells, "taxes"),
		FxRate:          numField(cells, "fx_rate"),
		NetBaseEUR:      numField(cells, "net_base_eur"),
		Broker:          strField(cells, "broker"),
		AssetType:       strField(cells, "asset_type"),
	}

	known := map[string]bool{
		"ticker": true, "name": true, "isin": true, "date": true, "type": true,
		"quantity": true, "price_per_unit": true, "price_per_unit_eur": true,
		"currency": true, "gross_amount": true, "gross_amount_eur": true,
		"taxes": true, "fx_rate": true, "net_base_eur": true,
		"broker": true, "asset_type": true,
	}
	for column, value := range cells {
		if known[column] || value == nil {
			continue
		}
		if tx.Extra == nil {
			tx.Extra = make(map[string]any)
		}
		tx.Extra[column] = value
	}

	return tx
}

func strField(cells map[string]any, column string) *string {
	if s, ok := cells[column].(string); ok {
		return &s
	}
	return nil
}

func numField(cells map[string]any, column string) *float64 {
	if n, ok := cells[column].(float64); ok {
		return &n
	}
	return nil
}

func dateField(cells map[string]any, column string) *time.Time {
	if d, ok := cells[column].(time.Time); ok {
		return &d
	}
	return nil
}
