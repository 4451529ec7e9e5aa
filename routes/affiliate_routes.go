// routes/affiliate_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/RaspadinhaDigital/raspadinha_backend/controllers"
	"github.com/RaspadinhaDigital/raspadinha_backend/middleware"
)

// RegisterAffiliateRoutes registers routes for the affiliate panel
func RegisterAffiliateRoutes(e *echo.Echo, affiliateController *controllers.AffiliateController, partnerController *controllers.PartnerController) {
	affiliateGroup := e.Group("/api/affiliate")
	affiliateGroup.Use(middleware.JWTMiddleware())
	affiliateGroup.Use(middleware.RequireUserType("affiliate"))

	affiliateGroup.GET("/commission", affiliateController.GetCommissionSummary)
	affiliateGroup.GET("/partners", partnerController.GetPartners)
	affiliateGroup.POST("/partners", partnerController.CreatePartner)
	affiliateGroup.GET("/partners/commission-limits", affiliateController.GetPartnerCommissionLimits)
	affiliateGroup.PUT("/partners/:id/commission", partnerController.UpdatePartnerCommission)
	affiliateGroup.DELETE("/partners/:id", partnerController.DeletePartner)
}
