// routes/user_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/RaspadinhaDigital/raspadinha_backend/controllers"
	"github.com/RaspadinhaDigital/raspadinha_backend/middleware"
)

// RegisterUserRoutes registers progression-level routes for players
func RegisterUserRoutes(e *echo.Echo, levelController *controllers.LevelController) {
	userGroup := e.Group("/api/users")
	userGroup.Use(middleware.JWTMiddleware())

	userGroup.GET("/level", levelController.GetUserLevel)
	userGroup.GET("/level/preview", levelController.GetLevelPreview)
	userGroup.GET("/level/checkpoints", levelController.GetLevelCheckpoints)
	userGroup.POST("/wager", levelController.RecordWager)
}
