package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/Velocity-Explorations/concierge/internal/core/services"
	"github.com/Velocity-Explorations/concierge/internal/dto"
	"github.com/Velocity-Explorations/concierge/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxHistoricalCSVBytes bounds uploaded vendor-rate files.
const maxHistoricalCSVBytes = 10 << 20

// translationHandler handles HTTP requests for translation cost estimates.
type translationHandler struct {
	translationService *services.TranslationService
}

func newTranslationHandler(ts *services.TranslationService) *translationHandler {
	return &translationHandler{translationService: ts}
}

// registerTranslationRoutes registers routes related to translation
// estimation.
func registerTranslationRoutes(rg *gin.RouterGroup, translationService *services.TranslationService) {
	h := newTranslationHandler(translationService)

	rg.POST("/translations", h.estimateTranslations)
	rg.POST("/translations/historical", h.loadHistoricalRates)
}

// estimateTranslations prices every job in the request.
func (h *translationHandler) estimateTranslations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for translation estimate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received translation estimate request", slog.Int("jobs", len(req.Jobs)))

	estimates, err := h.translationService.EstimateTranslations(req.ToJobs())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error estimating translations", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to estimate translations", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to estimate translations"})
		}
		return
	}

	logger.Info("Translation estimate computed", slog.Int("estimates", len(estimates)))
	c.JSON(http.StatusOK, dto.ToTranslationResponse(estimates))
}

// loadHistoricalRates ingests a vendor-rate CSV uploaded as multipart form
// field "file".
func (h *translationHandler) loadHistoricalRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing historical rates file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a CSV upload in form field 'file'"})
		return
	}
	if fileHeader.Size > maxHistoricalCSVBytes {
		logger.Warn("Historical rates file too large", slog.Int64("size", fileHeader.Size))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "CSV file exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.translationService.LoadHistoricalRates(file)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Unusable historical rates file", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to load historical rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load historical rates"})
		}
		return
	}

	logger.Info("Historical rates loaded", slog.Int("loaded", result.Loaded), slog.Int("skipped", result.Skipped))
	c.JSON(http.StatusOK, dto.ToHistoricalLoadResponse(result))
}
