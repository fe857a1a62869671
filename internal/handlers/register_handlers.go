package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/middleware"
	"github.com/katehonz/baraba-sub001/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	RegisterHomeRoutes(r)

	// Setup API v1 routes with identity middleware, passing service interfaces
	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Callers authenticate upstream; the identity header names the acting user.
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	registerExchangeRateRoutes(v1, services.ExchangeRate)

	companies := v1.Group("/companies/:company_id")
	registerAccountRoutes(companies, services.Account)
	registerJournalRoutes(companies, services.Journal)
	registerPeriodRoutes(companies, services.Period)
	registerRevaluationRoutes(companies, services.Revaluation)
}
