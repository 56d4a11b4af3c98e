// Package ratesource implements HTTP clients for the external per-diem and
// exchange-rate sources.
package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/shopspring/decimal"
)

const defaultGSABaseURL = "https://api.gsa.gov/travel/perdiem/v2"

// GSAClient fetches US per-diem rates from the GSA travel API.
type GSAClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGSAClient creates a GSA API client. An empty apiKey sends unauthenticated
// requests, which the API throttles aggressively but accepts.
func NewGSAClient(apiKey string, timeout time.Duration, logger *slog.Logger) *GSAClient {
	return &GSAClient{
		baseURL:    defaultGSABaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// NewGSAClientWithBaseURL is used by tests to point the client at a stub.
func NewGSAClientWithBaseURL(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *GSAClient {
	c := NewGSAClient(apiKey, timeout, logger)
	c.baseURL = baseURL
	return c
}

// gsaResponse mirrors the slice of the GSA payload we read.
type gsaResponse struct {
	Rates []struct {
		Rate []struct {
			Meals  json.Number `json:"meals"`
			Months struct {
				Month []struct {
					Number int         `json:"number"`
					Value  json.Number `json:"value"`
				} `json:"month"`
			} `json:"months"`
		} `json:"rate"`
	} `json:"rates"`
}

// FetchDomesticRate looks up the M&IE total and monthly lodging cap for a
// city/state. Every failure path returns the zero rate and a nil error; the
// caller applies the standard fallback cap.
func (c *GSAClient) FetchDomesticRate(ctx context.Context, city, state string, month time.Month, year int) (domain.DomesticRate, error) {
	if state == "" {
		return domain.DomesticRate{}, nil
	}

	endpoint := fmt.Sprintf("%s/rates/city/%s/state/%s/year/%d",
		c.baseURL, url.PathEscape(city), url.PathEscape(state), year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.DomesticRate{}, nil
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("GSA rate fetch failed, degrading to default",
			slog.String("city", city), slog.String("state", state), slog.String("error", err.Error()))
		return domain.DomesticRate{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("GSA rate fetch returned non-200, degrading to default",
			slog.String("city", city), slog.String("state", state), slog.Int("status", resp.StatusCode))
		return domain.DomesticRate{}, nil
	}

	var payload gsaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("GSA response decode failed, degrading to default", slog.String("error", err.Error()))
		return domain.DomesticRate{}, nil
	}

	if len(payload.Rates) == 0 || len(payload.Rates[0].Rate) == 0 {
		return domain.DomesticRate{}, nil
	}
	entry := payload.Rates[0].Rate[0]

	rate := domain.DomesticRate{}
	if mie, err := decimal.NewFromString(entry.Meals.String()); err == nil {
		rate.MIETotal = mie
	}
	for _, m := range entry.Months.Month {
		if m.Number == int(month) {
			if lodging, err := decimal.NewFromString(m.Value.String()); err == nil {
				rate.LodgingRate = lodging
			}
			break
		}
	}
	return rate, nil
}
