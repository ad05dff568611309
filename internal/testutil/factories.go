package testutil

import (
	"context"
	"time"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/dataquality"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
)

// Float64Ptr returns a pointer to the given float64.
func Float64Ptr(v float64) *float64 {
	return &v
}

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string {
	return &s
}

// TimePtr returns a pointer to the given time.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// Date builds a midnight-UTC date, matching how cleaned transactions
// carry dates.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// BuyTransaction creates a buy transaction with an explicit per-unit EUR price.
func BuyTransaction(name string, quantity, priceEUR float64) model.CanonicalTransaction {
	return model.CanonicalTransaction{
		Type:            model.TypeBuy,
		Name:            StringPtr(name),
		Quantity:        Float64Ptr(quantity),
		PricePerUnitEUR: Float64Ptr(priceEUR),
	}
}

// SellTransaction creates a sell transaction with an explicit per-unit EUR price.
func SellTransaction(name string, quantity, priceEUR float64) model.CanonicalTransaction {
	return model.CanonicalTransaction{
		Type:            model.TypeSell,
		Name:            StringPtr(name),
		Quantity:        Float64Ptr(quantity),
		PricePerUnitEUR: Float64Ptr(priceEUR),
	}
}

// StaticSource is a transaction source returning a fixed set of rows,
// or a fixed error. Implements service.TransactionSource.
type StaticSource struct {
	Rows []dataquality.Row
	Err  error
}

// Fetch implements service.TransactionSource.
func (s *StaticSource) Fetch(ctx context.Context) ([]dataquality.Row, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Rows, nil
}
