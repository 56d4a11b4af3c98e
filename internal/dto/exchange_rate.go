package dto

import (
	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse is the body returned by GET /rates/:from/:to.
type ExchangeRateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// ToExchangeRateResponse maps a resolved rate onto the response payload.
func ToExchangeRateResponse(from, to domain.CurrencyCode, rate decimal.Decimal) ExchangeRateResponse {
	return ExchangeRateResponse{
		From: string(from),
		To:   string(to),
		Rate: rate,
	}
}
