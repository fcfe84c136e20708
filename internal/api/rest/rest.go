package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/mento-labs/airdrop-allocator/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes (public read access)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/allocations/:address", handler.GetAllocation)
		v1.GET("/executions", handler.ListExecutions)
	}

	// Internal endpoints (requires API key authentication)
	internal := router.Group("/internal")
	{
		internal.POST("/refresh", middleware.APIKeyAuth(authCfg), handler.TriggerRefresh)
	}
}
