// Package pgsql implements the optional Postgres-backed exchange-rate cache.
package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements ports.ExchangeRateRepository using
// pgxpool.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{db: db}
}

// SaveExchangeRate upserts the cached rate for a currency pair. The cache
// keeps only the latest observation per pair.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, from_currency_code, to_currency_code, rate, fetched_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (from_currency_code, to_currency_code)
		DO UPDATE SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at
	`
	_, err := r.db.Exec(ctx, query,
		rate.ExchangeRateID, rate.FromCurrencyCode, rate.ToCurrencyCode, rate.Rate, rate.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting exchange rate: %w", err)
	}
	return nil
}

// FindExchangeRate retrieves the cached rate for a currency pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, from, to domain.CurrencyCode) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, from_currency_code, to_currency_code, rate, fetched_at
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
	`
	rate := &domain.ExchangeRate{}
	err := r.db.QueryRow(ctx, query, from, to).Scan(
		&rate.ExchangeRateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &rate.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}
