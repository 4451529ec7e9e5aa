// routes/partner_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/RaspadinhaDigital/raspadinha_backend/controllers"
	"github.com/RaspadinhaDigital/raspadinha_backend/middleware"
)

// RegisterPartnerRoutes registers routes for the partner panel
func RegisterPartnerRoutes(e *echo.Echo, partnerController *controllers.PartnerController) {
	partnerGroup := e.Group("/api/partner")
	partnerGroup.Use(middleware.JWTMiddleware())
	partnerGroup.Use(middleware.RequireUserType("partner"))

	partnerGroup.GET("/commissions", partnerController.GetPartnerCommissions)
}
