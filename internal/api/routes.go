package api

import (
	"token-sale-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all routes
func SetupRoutes(r *gin.Engine) {
	r.Use(middleware.CORSMiddleware())

	// Token purchase routes. Static segments are registered alongside the
	// :id parameter; gin resolves fulfilled/pending/wallet/fulfill before
	// falling back to the ID match.
	purchases := r.Group("/token-purchase")
	{
		purchases.POST("", CreateTokenPurchase)
		purchases.GET("", GetAllTokenPurchases)
		purchases.GET("/wallet/:walletAddress", GetTokenPurchasesByWalletAddress)
		purchases.GET("/fulfilled", GetFulfilledTokenPurchases)
		purchases.GET("/pending", GetPendingTokenPurchases)
		purchases.GET("/:id", GetTokenPurchaseByID)

		purchases.PUT("/:id/fulfill", FulfillTokenPurchase)
		purchases.PUT("/fulfill/wallet/:walletAddress", FulfillTokenPurchasesByWalletAddress)
		purchases.PUT("/fulfill/batch/ids", FulfillTokenPurchasesByIDs)
		purchases.PUT("/fulfill/batch/wallets", FulfillTokenPurchasesByWalletAddresses)
		purchases.PUT("/fulfill/all-pending", FulfillAllPendingTokenPurchases)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "token-sale-api",
		})
	})

	// Service banner
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "token-sale-api",
			"message": "Token purchase API is running",
		})
	})
}
