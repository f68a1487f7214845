package http

import (
	"github.com/gin-gonic/gin"
	"github.com/tiendafon/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerClient))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		match := v1.Group("/match")
		{
			match.POST("/best", handler.BestMatch)
			match.POST("/candidates", handler.Candidates)
			match.POST("/normalize", handler.NormalizeModel)
		}

		chat := v1.Group("/chat")
		{
			chat.POST("/resolve", handler.ResolveModel)
		}
	}

	return router
}
