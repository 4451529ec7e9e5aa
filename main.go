package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/RaspadinhaDigital/raspadinha_backend/config"
	"github.com/RaspadinhaDigital/raspadinha_backend/controllers"
	"github.com/RaspadinhaDigital/raspadinha_backend/middleware"
	"github.com/RaspadinhaDigital/raspadinha_backend/repositories"
	"github.com/RaspadinhaDigital/raspadinha_backend/routes"
	"github.com/RaspadinhaDigital/raspadinha_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(middleware.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Raspadinha Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories and services
	affiliateRepo := repositories.NewAffiliateRepository(client)
	partnerRepo := repositories.NewPartnerRepository(client)
	userRepo := repositories.NewUserRepository(client)
	tierService := services.NewTierService(client, redisClient)

	// Initialize controllers
	authController := controllers.NewAuthController(client, affiliateRepo, partnerRepo)
	affiliateController := controllers.NewAffiliateController(client, affiliateRepo, tierService)
	partnerController := controllers.NewPartnerController(client, partnerRepo, affiliateRepo, tierService)
	levelController := controllers.NewLevelController(userRepo, redisClient)
	tierConfigController := controllers.NewTierConfigController(tierService)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterAffiliateRoutes(e, affiliateController, partnerController)
	routes.RegisterPartnerRoutes(e, partnerController)
	routes.RegisterUserRoutes(e, levelController)
	routes.RegisterAdminRoutes(e, affiliateController, partnerController, tierConfigController)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
