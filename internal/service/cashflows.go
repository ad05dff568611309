package service

import (
	"sort"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
)

// MonthlyCashflows sums the gross EUR amounts of one transaction type per
// calendar month, for the income and contribution trend charts (interest,
// pension, dividends).
//
// Rows without a date or without a gross EUR amount are excluded. Output is
// sorted by month ascending with "2006-01" keys.
func MonthlyCashflows(txs []model.CanonicalTransaction, txType model.TransactionType) []model.MonthlyCashflow {
	totals := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != txType || tx.Date == nil || tx.GrossAmountEUR == nil {
			continue
		}
		totals[tx.Date.Format("2006-01")] += *tx.GrossAmountEUR
	}

	out := make([]model.MonthlyCashflow, 0, len(totals))
	for month, amount := range totals {
		out = append(out, model.MonthlyCashflow{Month: month, AmountEUR: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
