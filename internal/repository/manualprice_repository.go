package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/apperrors"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
)

// ManualPriceRepository provides data access methods for the manual_price
// table: the user-supplied price overrides consulted when a live market
// lookup is unresolved.
type ManualPriceRepository struct {
	db *sql.DB
}

// NewManualPriceRepository creates a new ManualPriceRepository with the
// provided database connection.
func NewManualPriceRepository(db *sql.DB) *ManualPriceRepository {
	return &ManualPriceRepository{db: db}
}

// List retrieves all manual price overrides ordered by ticker.
// Returns an empty slice if none exist.
func (r *ManualPriceRepository) List(ctx context.Context) ([]model.ManualPrice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ticker, price, currency
		FROM manual_price
		ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to query manual prices: %w", err)
	}
	defer rows.Close()

	prices := []model.ManualPrice{}
	for rows.Next() {
		var p model.ManualPrice
		if err := rows.Scan(&p.ID, &p.Ticker, &p.Price, &p.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan manual price: %w", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manual prices: %w", err)
	}

	return prices, nil
}

// GetByTicker retrieves the override for one ticker.
// Returns apperrors.ErrManualPriceNotFound when no override exists.
func (r *ManualPriceRepository) GetByTicker(ctx context.Context, ticker string) (model.ManualPrice, error) {
	var p model.ManualPrice
	err := r.db.QueryRowContext(ctx, `
		SELECT id, ticker, price, currency
		FROM manual_price
		WHERE ticker = ?`, ticker).Scan(&p.ID, &p.Ticker, &p.Price, &p.Currency)
	if err == sql.ErrNoRows {
		return model.ManualPrice{}, apperrors.ErrManualPriceNotFound
	}
	if err != nil {
		return model.ManualPrice{}, fmt.Errorf("failed to get manual price: %w", err)
	}
	return p, nil
}

// Upsert inserts or replaces the override for a ticker and returns the stored
// record. A new record gets a generated UUID; an existing ticker keeps its ID
// and gets its price, currency and updated_at refreshed.
func (r *ManualPriceRepository) Upsert(ctx context.Context, price model.ManualPrice) (model.ManualPrice, error) {
	if price.ID == "" {
		price.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO manual_price (id, ticker, price, currency)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			price = excluded.price,
			currency = excluded.currency,
			updated_at = CURRENT_TIMESTAMP`,
		price.ID, price.Ticker, price.Price, price.Currency)
	if err != nil {
		return model.ManualPrice{}, fmt.Errorf("failed to upsert manual price: %w", err)
	}

	// Re-read so an update returns the original ID rather than the discarded
	// candidate one.
	return r.GetByTicker(ctx, price.Ticker)
}

// Delete removes the override with the given ID.
// Returns apperrors.ErrManualPriceNotFound when the ID does not exist.
func (r *ManualPriceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM manual_price WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete manual price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrManualPriceNotFound
	}
	return nil
}
