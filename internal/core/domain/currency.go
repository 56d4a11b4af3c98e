package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyAmount pairs an amount with its currency.
type CurrencyAmount struct {
	Amount   decimal.Decimal
	Currency CurrencyCode
}

// ExchangeRate is one cached conversion rate. Rows are written through on
// every successful live lookup and read back when the source is unreachable.
type ExchangeRate struct {
	ExchangeRateID   string
	FromCurrencyCode CurrencyCode
	ToCurrencyCode   CurrencyCode
	Rate             decimal.Decimal
	FetchedAt        time.Time
}
