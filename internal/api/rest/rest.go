package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-registry/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Read endpoints (public read access)
		v1.GET("/assets/:id", handler.GetAsset)
		v1.GET("/assets/:id/provenance", handler.GetProvenance)
		v1.GET("/accounts/:address/balance", handler.GetBalance)

		// State-changing endpoints act on behalf of the authenticated caller
		authed := v1.Group("", middleware.Auth(authCfg))
		authed.POST("/assets", handler.MintAsset)
		authed.PUT("/assets/:id/listing", handler.ListAsset)
		authed.POST("/assets/:id/purchase", handler.PurchaseAsset)
		authed.POST("/assets/:id/transfer", handler.TransferAsset)
		authed.POST("/assets/:id/approve", handler.ApproveAsset)
		authed.POST("/exchanges", handler.ExchangeAssets)
	}
}
