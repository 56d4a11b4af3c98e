package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/Velocity-Explorations/concierge/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockExchangeRateRepository is a mock type for the ExchangeRateRepository interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, from, to domain.CurrencyCode) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockSource *MockExchangeRateSource
	mockCache  *MockExchangeRateRepository
	service    *services.CurrencyService
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockExchangeRateSource)
	suite.mockCache = new(MockExchangeRateRepository)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.service = services.NewCurrencyService(suite.mockSource, suite.mockCache, logger)
}

func (suite *CurrencyServiceTestSuite) TestRate_SameCurrencyIsIdentity() {
	rate, err := suite.service.Rate(context.Background(), domain.CurrencyUSD, domain.CurrencyUSD)

	suite.Require().NoError(err)
	assert.True(suite.T(), rate.Equal(decimal.NewFromInt(1)))
	suite.mockSource.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestRate_LiveLookupWritesThroughCache() {
	live := decimal.NewFromFloat(0.92)
	suite.mockSource.On("FetchRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("EUR")).
		Return(live, nil)
	suite.mockCache.On("SaveExchangeRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == domain.CurrencyUSD && r.ToCurrencyCode == "EUR" && r.Rate.Equal(live)
	})).Return(nil)

	rate, err := suite.service.Rate(context.Background(), domain.CurrencyUSD, "EUR")

	suite.Require().NoError(err)
	assert.True(suite.T(), rate.Equal(live))
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestRate_CacheSaveFailureIsNotFatal() {
	live := decimal.NewFromFloat(0.92)
	suite.mockSource.On("FetchRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("EUR")).
		Return(live, nil)
	suite.mockCache.On("SaveExchangeRate", mock.Anything, mock.Anything).Return(errors.New("db down"))

	rate, err := suite.service.Rate(context.Background(), domain.CurrencyUSD, "EUR")

	suite.Require().NoError(err)
	assert.True(suite.T(), rate.Equal(live))
}

func (suite *CurrencyServiceTestSuite) TestRate_SourceFailureFallsBackToCache() {
	suite.mockSource.On("FetchRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("EUR")).
		Return(decimal.Zero, errors.New("source down"))
	suite.mockCache.On("FindExchangeRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("EUR")).
		Return(&domain.ExchangeRate{
			FromCurrencyCode: domain.CurrencyUSD,
			ToCurrencyCode:   "EUR",
			Rate:             decimal.NewFromFloat(0.9),
			FetchedAt:        time.Now().Add(-time.Hour),
		}, nil)

	rate, err := suite.service.Rate(context.Background(), domain.CurrencyUSD, "EUR")

	suite.Require().NoError(err)
	assert.True(suite.T(), rate.Equal(decimal.NewFromFloat(0.9)))
}

func (suite *CurrencyServiceTestSuite) TestRate_SourceAndCacheFailureIsError() {
	suite.mockSource.On("FetchRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("EUR")).
		Return(decimal.Zero, errors.New("source down"))
	suite.mockCache.On("FindExchangeRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("EUR")).
		Return(nil, errors.New("not cached"))

	_, err := suite.service.Rate(context.Background(), domain.CurrencyUSD, "EUR")

	assert.Error(suite.T(), err)
}

func (suite *CurrencyServiceTestSuite) TestConvert_MultipliesByRate() {
	suite.mockSource.On("FetchRate", mock.Anything, domain.CurrencyXAF, domain.CurrencyUSD).
		Return(decimal.NewFromFloat(0.0017), nil)
	suite.mockCache.On("SaveExchangeRate", mock.Anything, mock.Anything).Return(nil)

	amount, err := suite.service.Convert(context.Background(), decimal.NewFromInt(40000), domain.CurrencyXAF, domain.CurrencyUSD)

	suite.Require().NoError(err)
	assert.True(suite.T(), amount.Equal(decimal.NewFromInt(68)), "got %s", amount)
}

func (suite *CurrencyServiceTestSuite) TestConvert_RoundTripReturnsOriginalWithinEpsilon() {
	forward := decimal.NewFromFloat(129.53)
	suite.mockSource.On("FetchRate", mock.Anything, domain.CurrencyUSD, domain.CurrencyCode("KES")).
		Return(forward, nil)
	suite.mockSource.On("FetchRate", mock.Anything, domain.CurrencyCode("KES"), domain.CurrencyUSD).
		Return(decimal.NewFromInt(1).Div(forward), nil)
	suite.mockCache.On("SaveExchangeRate", mock.Anything, mock.Anything).Return(nil)

	original := decimal.NewFromFloat(1234.56)
	local, err := suite.service.Convert(context.Background(), original, domain.CurrencyUSD, "KES")
	suite.Require().NoError(err)
	back, err := suite.service.Convert(context.Background(), local, "KES", domain.CurrencyUSD)
	suite.Require().NoError(err)

	epsilon := decimal.NewFromFloat(0.01)
	assert.True(suite.T(), back.Sub(original).Abs().LessThan(epsilon), "got %s back from %s", back, original)
}

func (suite *CurrencyServiceTestSuite) TestConvert_SameCurrencySkipsLookup() {
	amount, err := suite.service.Convert(context.Background(), decimal.NewFromInt(42), domain.CurrencyUSD, domain.CurrencyUSD)

	suite.Require().NoError(err)
	assert.True(suite.T(), amount.Equal(decimal.NewFromInt(42)))
	suite.mockSource.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
