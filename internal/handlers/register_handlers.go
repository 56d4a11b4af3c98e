package handlers

import (
	"github.com/Velocity-Explorations/concierge/internal/core/services"
	"github.com/Velocity-Explorations/concierge/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting the service
// container built in main.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	container *services.Container,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	setupAPIV1Routes(r, cfg, container)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	container *services.Container,
) {
	v1 := r.Group("/api/v1")

	estimates := v1.Group("/estimates")
	registerPerDiemRoutes(estimates, container.PerDiem)
	registerTranslationRoutes(estimates, container.Translation)

	registerRateRoutes(v1, container.Currency)
}
