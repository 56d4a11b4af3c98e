// Package ports declares the interfaces the core services consume, so that
// external rate sources and storage can be swapped or mocked.
package ports

import (
	"context"
	"time"

	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DomesticRateSource looks up US per-diem rates by city/state/month.
//
// Implementations must degrade, not fail: on network trouble, malformed
// responses or missing data they return the zero DomesticRate and a nil
// error, leaving the caller to apply the standard fallback cap.
type DomesticRateSource interface {
	FetchDomesticRate(ctx context.Context, city, state string, month time.Month, year int) (domain.DomesticRate, error)
}

// ForeignRateSource returns every seasonal rate-table row for a country.
// Selecting the applicable row is the caller's responsibility. Network or
// parse failure yields an empty slice and a nil error; callers treat empty as
// not found.
type ForeignRateSource interface {
	FetchForeignRates(ctx context.Context, country domain.CountryCode) ([]domain.RateRow, error)
}

// ExchangeRateSource provides a live conversion rate between two currencies.
type ExchangeRateSource interface {
	FetchRate(ctx context.Context, from, to domain.CurrencyCode) (decimal.Decimal, error)
}

// ExchangeRateRepository caches conversion rates so a conversion can survive
// a source outage. Optional; a nil repository disables caching.
type ExchangeRateRepository interface {
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
	FindExchangeRate(ctx context.Context, from, to domain.CurrencyCode) (*domain.ExchangeRate, error)
}
