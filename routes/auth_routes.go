// routes/auth_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/RaspadinhaDigital/raspadinha_backend/controllers"
)

// RegisterAuthRoutes registers login routes for affiliates and partners
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	authGroup := e.Group("/api/auth")

	authGroup.POST("/affiliate/login", authController.AffiliateLogin)
	authGroup.POST("/partner/login", authController.PartnerLogin)
	authGroup.POST("/admin/login", authController.AdminLogin)
}
