package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/Velocity-Explorations/concierge/internal/core/services"
	"github.com/Velocity-Explorations/concierge/internal/dto"
	"github.com/Velocity-Explorations/concierge/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ratesHandler exposes the exchange rate lookup used by the estimators.
type ratesHandler struct {
	currencyService *services.CurrencyService
}

func newRatesHandler(cs *services.CurrencyService) *ratesHandler {
	return &ratesHandler{currencyService: cs}
}

// registerRateRoutes registers exchange rate routes.
func registerRateRoutes(rg *gin.RouterGroup, currencyService *services.CurrencyService) {
	h := newRatesHandler(currencyService)

	rg.GET("/rates/:from/:to", h.getRate)
}

// getRate returns the multiplier converting one unit of :from into :to.
func (h *ratesHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from := strings.ToUpper(c.Param("from"))
	to := strings.ToUpper(c.Param("to"))
	if len(from) != 3 || len(to) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	logger = logger.With(slog.String("from", from), slog.String("to", to))
	logger.Info("Received request for exchange rate")

	rate, err := h.currencyService.Rate(c.Request.Context(), domain.CurrencyCode(from), domain.CurrencyCode(to))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Exchange rate not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		case errors.Is(err, apperrors.ErrSourceUnavailable):
			logger.Error("Exchange rate source unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate source unavailable"})
		default:
			logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate retrieved successfully")
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(domain.CurrencyCode(from), domain.CurrencyCode(to), rate))
}
