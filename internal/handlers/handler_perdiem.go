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

// perDiemHandler handles HTTP requests for travel per-diem estimates.
type perDiemHandler struct {
	perDiemService *services.PerDiemService
}

func newPerDiemHandler(ps *services.PerDiemService) *perDiemHandler {
	return &perDiemHandler{perDiemService: ps}
}

// registerPerDiemRoutes registers routes related to per-diem estimation.
func registerPerDiemRoutes(rg *gin.RouterGroup, perDiemService *services.PerDiemService) {
	h := newPerDiemHandler(perDiemService)

	rg.POST("/per-diem", h.estimatePerDiem)
}

// estimatePerDiem prices every stay in the request and returns one cost line
// per stay plus a grand total.
func (h *perDiemHandler) estimatePerDiem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PerDiemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for per-diem estimate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	stays, err := req.ToStays()
	if err != nil {
		logger.Warn("Invalid stay in per-diem request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Received per-diem estimate request", slog.Int("stays", len(stays)))

	costs, err := h.perDiemService.GetPerDiemEstimate(c.Request.Context(), stays)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error estimating per-diem", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnsupportedPolicy):
			logger.Error("Unsupported rate policy", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to estimate per-diem", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to estimate per-diem"})
		}
		return
	}

	logger.Info("Per-diem estimate computed", slog.Int("cost_lines", len(costs)))
	c.JSON(http.StatusOK, dto.ToPerDiemResponse(costs))
}
