package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arrxxhh/walmart/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.GetProduct)
			products.GET("/:id/qr", handler.GetProductQR)
			products.GET("/:id/safety", handler.EvaluateProduct)
			products.GET("/:id/alternatives", handler.FindAlternatives)
		}

		v1.GET("/users/:id/profile", handler.GetProfile)
		v1.POST("/scan", handler.Scan)
		v1.POST("/cart/check", handler.CheckCart)

		mcp := v1.Group("/mcp")
		{
			mcp.GET("/tools", handler.ListTools)
			mcp.POST("/tools/call", handler.CallTool)
		}
	}

	return router
}
