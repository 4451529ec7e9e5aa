// routes/admin_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/RaspadinhaDigital/raspadinha_backend/controllers"
	"github.com/RaspadinhaDigital/raspadinha_backend/middleware"
)

// RegisterAdminRoutes registers admin routes for tier and affiliate
// commission management
func RegisterAdminRoutes(e *echo.Echo, affiliateController *controllers.AffiliateController, partnerController *controllers.PartnerController, tierConfigController *controllers.TierConfigController) {
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(middleware.JWTMiddleware())
	adminGroup.Use(middleware.RequireUserType("admin"))

	adminGroup.GET("/tier-config", tierConfigController.GetTierConfigs)
	adminGroup.PUT("/tier-config/:tier", tierConfigController.UpdateTierConfig)
	adminGroup.PUT("/affiliates/:id/commission-settings", affiliateController.UpdateCommissionSettings)
	adminGroup.POST("/affiliates/:id/earnings/approve", affiliateController.ApproveEarnings)
	adminGroup.POST("/partners/:id/commissions", partnerController.RecordPartnerCommission)
}
