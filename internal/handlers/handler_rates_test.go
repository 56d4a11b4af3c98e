package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/Velocity-Explorations/concierge/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetRate(t *testing.T) {
	exchange := new(MockExchangeRateSource)
	exchange.On("FetchRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("EUR")).
		Return(decimal.NewFromFloat(0.92), nil)
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), exchange)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/usd/eur", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ExchangeRateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "USD", resp.From)
	assert.Equal(t, "EUR", resp.To)
	assert.True(t, resp.Rate.Equal(decimal.NewFromFloat(0.92)))
}

func TestGetRate_UnknownCurrencyIsNotFound(t *testing.T) {
	exchange := new(MockExchangeRateSource)
	exchange.On("FetchRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("ZZZ")).
		Return(decimal.Zero, fmt.Errorf("%w: no rate", apperrors.ErrNotFound))
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), exchange)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/USD/ZZZ", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRate_SourceOutageIsServiceUnavailable(t *testing.T) {
	exchange := new(MockExchangeRateSource)
	exchange.On("FetchRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("EUR")).
		Return(decimal.Zero, errors.Join(apperrors.ErrSourceUnavailable, errors.New("down")))
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), exchange)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/USD/EUR", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetRate_BadCodeIsBadRequest(t *testing.T) {
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), new(MockExchangeRateSource))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/US/EURO", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
