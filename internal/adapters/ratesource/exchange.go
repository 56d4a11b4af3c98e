package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/shopspring/decimal"
)

const defaultExchangeBaseURL = "https://open.er-api.com/v6"

// ExchangeRateClient fetches live conversion rates from the open
// exchange-rate API.
type ExchangeRateClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewExchangeRateClient creates a live exchange-rate client.
func NewExchangeRateClient(timeout time.Duration) *ExchangeRateClient {
	return &ExchangeRateClient{
		baseURL:    defaultExchangeBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewExchangeRateClientWithBaseURL is used by tests to point the client at a
// stub.
func NewExchangeRateClientWithBaseURL(baseURL string, timeout time.Duration) *ExchangeRateClient {
	c := NewExchangeRateClient(timeout)
	c.baseURL = baseURL
	return c
}

type exchangeResponse struct {
	Result string                 `json:"result"`
	Rates  map[string]json.Number `json:"rates"`
}

// FetchRate returns the multiplier that converts one unit of from into to.
// Unlike the per-diem sources this client surfaces failure: the converter
// decides whether a cached rate can stand in.
func (c *ExchangeRateClient) FetchRate(ctx context.Context, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/latest/%s", c.baseURL, from)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building exchange rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: exchange rate source returned status %d", apperrors.ErrSourceUnavailable, resp.StatusCode)
	}

	var payload exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding exchange rate response: %v", apperrors.ErrSourceUnavailable, err)
	}
	if payload.Result != "success" {
		return decimal.Zero, fmt.Errorf("%w: exchange rate source result %q", apperrors.ErrSourceUnavailable, payload.Result)
	}

	raw, ok := payload.Rates[string(to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s/%s", apperrors.ErrNotFound, from, to)
	}
	rate, err := decimal.NewFromString(raw.String())
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: unusable rate %q for %s/%s", apperrors.ErrSourceUnavailable, raw.String(), from, to)
	}
	return rate, nil
}
