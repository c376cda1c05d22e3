// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/http/handlers"
	"wanderplan/internal/http/middleware"
	"wanderplan/internal/metrics"
)

func registerRoutes(r *gin.Engine, deps ServerDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	tripHandler := handlers.NewTripHandler(deps.Planner, deps.Trips)
	api.POST("/trips/generate", tripHandler.Generate)
	api.GET("/trips", tripHandler.List)
	api.GET("/trips/:id", tripHandler.Get)
	api.PUT("/trips/:id", tripHandler.Update)
	api.DELETE("/trips/:id", tripHandler.Delete)
	api.POST("/trips/:id/photos", tripHandler.RefreshPhotos)

	if deps.Usage != nil {
		quotaHandler := handlers.NewQuotaHandler(deps.Usage)
		api.GET("/quota", quotaHandler.Get)
	}
}
