package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/Velocity-Explorations/concierge/internal/core/services"
	"github.com/Velocity-Explorations/concierge/internal/dto"
	"github.com/Velocity-Explorations/concierge/internal/handlers"
	"github.com/Velocity-Explorations/concierge/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDomesticRateSource is a mock type for the DomesticRateSource interface
type MockDomesticRateSource struct {
	mock.Mock
}

func (m *MockDomesticRateSource) FetchDomesticRate(ctx context.Context, city, state string, month time.Month, year int) (domain.DomesticRate, error) {
	args := m.Called(ctx, city, state, month, year)
	return args.Get(0).(domain.DomesticRate), args.Error(1)
}

// MockForeignRateSource is a mock type for the ForeignRateSource interface
type MockForeignRateSource struct {
	mock.Mock
}

func (m *MockForeignRateSource) FetchForeignRates(ctx context.Context, country domain.CountryCode) ([]domain.RateRow, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateRow), args.Error(1)
}

// MockExchangeRateSource is a mock type for the ExchangeRateSource interface
type MockExchangeRateSource struct {
	mock.Mock
}

func (m *MockExchangeRateSource) FetchRate(ctx context.Context, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func setupRouter(domestic *MockDomesticRateSource, foreign *MockForeignRateSource, exchange *MockExchangeRateSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	currency := services.NewCurrencyService(exchange, nil, logger)
	container := &services.Container{
		PerDiem:     services.NewPerDiemService(domestic, foreign, currency, time.Second, logger),
		Currency:    currency,
		Translation: services.NewTranslationService(logger),
	}

	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{Port: "8080"}, container)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEstimatePerDiem_DomesticStay(t *testing.T) {
	domestic := new(MockDomesticRateSource)
	foreign := new(MockForeignRateSource)
	exchange := new(MockExchangeRateSource)
	domestic.On("FetchDomesticRate", mock.Anything, "Washington", "DC", mock.Anything, mock.Anything).
		Return(domain.DomesticRate{
			MIETotal:    decimal.NewFromInt(92),
			LodgingRate: decimal.NewFromInt(150),
		}, nil)

	r := setupRouter(domestic, foreign, exchange)
	w := postJSON(t, r, "/api/v1/estimates/per-diem", dto.PerDiemRequest{
		Stays: []dto.StayRequest{
			{Location: dto.LocationRequest{City: "Washington", State: "DC"}, Days: 3},
		},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.PerDiemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Costs, 1)
	assert.Equal(t, "Washington, DC, United States", resp.Costs[0].Location)
	assert.True(t, resp.Costs[0].MealCost.Equal(decimal.NewFromInt(240)), "got %s", resp.Costs[0].MealCost)
	assert.True(t, resp.Costs[0].LodgingCost.Equal(decimal.NewFromInt(450)))
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(690)))
	assert.Equal(t, "USD", resp.Costs[0].LocalCurrency)
}

func TestEstimatePerDiem_UnknownCountryIsBadRequest(t *testing.T) {
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), new(MockExchangeRateSource))

	w := postJSON(t, r, "/api/v1/estimates/per-diem", dto.PerDiemRequest{
		Stays: []dto.StayRequest{
			{Location: dto.LocationRequest{Country: "Atlantis"}, Days: 2},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimatePerDiem_StateForForeignCountryIsBadRequest(t *testing.T) {
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), new(MockExchangeRateSource))

	w := postJSON(t, r, "/api/v1/estimates/per-diem", dto.PerDiemRequest{
		Stays: []dto.StayRequest{
			{Location: dto.LocationRequest{Country: "Kenya", State: "TX"}, Days: 2},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimatePerDiem_MalformedBodyIsBadRequest(t *testing.T) {
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), new(MockExchangeRateSource))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/per-diem", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimatePerDiem_MissingStaysIsBadRequest(t *testing.T) {
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), new(MockExchangeRateSource))

	w := postJSON(t, r, "/api/v1/estimates/per-diem", gin.H{"stays": []any{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthRoute(t *testing.T) {
	r := setupRouter(new(MockDomesticRateSource), new(MockForeignRateSource), new(MockExchangeRateSource))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
