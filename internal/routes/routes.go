package routes

import (
	"github.com/fencetrade/signalboard/internal/config"
	"github.com/fencetrade/signalboard/internal/handlers"
	"github.com/fencetrade/signalboard/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, cfg *config.Config, signalHandler *handlers.SignalHandler, verifyHandler *handlers.VerifyHandler) {
	api := r.Group("/api/v1")
	{
		api.POST("/signals", signalHandler.HandleSignalUpdate)
		api.GET("/signals", signalHandler.GetSignals)
		api.GET("/signals/stats", signalHandler.GetStats)

		api.POST("/verify",
			middleware.RateLimit(cfg.Verify.RatePerMinute, cfg.Verify.Burst),
			verifyHandler.HandleVerify)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "signalboard",
		})
	})

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Fence Trading Signal Board",
			"version": "1.0.0",
			"endpoints": gin.H{
				"signals": "/api/v1/signals",
				"stats":   "/api/v1/signals/stats",
				"verify":  "/api/v1/verify",
				"health":  "/health",
			},
		})
	})
}
