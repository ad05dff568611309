package validation

import (
	"fmt"
	"strings"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/apperrors"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
)

// ValidateManualPrice checks a manual price override before it is persisted.
// The currency must come from the same allowed set the cleaning pipeline
// accepts so an override can always be converted.
func ValidateManualPrice(price model.ManualPrice, allowedCurrencies []string) error {
	if strings.TrimSpace(price.Ticker) == "" {
		return apperrors.ErrEmptyTicker
	}
	if price.Price <= 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrNonPositivePrice, price.Price)
	}

	currency := strings.ToUpper(strings.TrimSpace(price.Currency))
	for _, allowed := range allowedCurrencies {
		if currency == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, price.Currency)
}
