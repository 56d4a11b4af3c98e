package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/Velocity-Explorations/concierge/internal/core/ports"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyService converts amounts between currencies. It reads the live
// source first and falls back to the cache repository when the source is
// down; successful live lookups are written through so the cache stays warm.
type CurrencyService struct {
	source ports.ExchangeRateSource
	cache  ports.ExchangeRateRepository // nil disables caching
	logger *slog.Logger
}

// NewCurrencyService creates a CurrencyService. cache may be nil.
func NewCurrencyService(source ports.ExchangeRateSource, cache ports.ExchangeRateRepository, logger *slog.Logger) *CurrencyService {
	return &CurrencyService{source: source, cache: cache, logger: logger}
}

// Rate returns the multiplier converting one unit of from into to. A
// same-currency rate is exactly 1 without touching any source.
func (s *CurrencyService) Rate(ctx context.Context, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.source.FetchRate(ctx, from, to)
	if err == nil {
		s.writeThrough(ctx, from, to, rate)
		return rate, nil
	}

	if s.cache != nil {
		cached, cacheErr := s.cache.FindExchangeRate(ctx, from, to)
		if cacheErr == nil {
			s.logger.Warn("live exchange rate unavailable, using cached rate",
				slog.String("from", string(from)), slog.String("to", string(to)),
				slog.Time("fetched_at", cached.FetchedAt), slog.String("error", err.Error()))
			return cached.Rate, nil
		}
	}

	return decimal.Zero, fmt.Errorf("fetching rate %s/%s: %w", from, to, err)
}

// Convert converts amount from one currency to another. Converting a
// currency to itself is the identity.
func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := s.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func (s *CurrencyService) writeThrough(ctx context.Context, from, to domain.CurrencyCode, rate decimal.Decimal) {
	if s.cache == nil {
		return
	}
	err := s.cache.SaveExchangeRate(ctx, domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		FetchedAt:        time.Now(),
	})
	if err != nil {
		// A cold cache is not worth failing a conversion over.
		s.logger.Warn("failed to cache exchange rate",
			slog.String("from", string(from)), slog.String("to", string(to)), slog.String("error", err.Error()))
	}
}
