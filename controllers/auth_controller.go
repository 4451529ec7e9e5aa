package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/RaspadinhaDigital/raspadinha_backend/config"
	"github.com/RaspadinhaDigital/raspadinha_backend/middleware"
	"github.com/RaspadinhaDigital/raspadinha_backend/models"
	"github.com/RaspadinhaDigital/raspadinha_backend/repositories"
	"github.com/RaspadinhaDigital/raspadinha_backend/utils"
)

type AuthController struct {
	DB         *mongo.Client
	Affiliates *repositories.AffiliateRepository
	Partners   *repositories.PartnerRepository
}

func NewAuthController(db *mongo.Client, affiliates *repositories.AffiliateRepository, partners *repositories.PartnerRepository) *AuthController {
	return &AuthController{DB: db, Affiliates: affiliates, Partners: partners}
}

// AffiliateLogin authenticates an affiliate and returns a JWT token pair
func (ac *AuthController) AffiliateLogin(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	affiliate, err := ac.Affiliates.FindByEmail(email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	if !affiliate.IsActive {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Account is inactive",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(affiliate.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	accessToken, refreshToken, err := middleware.GenerateJWT(affiliate.ID.Hex(), affiliate.Email, "affiliate")
	if err != nil {
		log.Printf("Failed to generate JWT for affiliate %s: %v", affiliate.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":        accessToken,
			"refreshToken": refreshToken,
			"affiliate": map[string]interface{}{
				"id":       affiliate.ID.Hex(),
				"email":    affiliate.Email,
				"fullName": affiliate.FullName,
				"tier":     affiliate.Tier,
			},
		},
	})
}

// PartnerLogin authenticates a partner and returns a JWT token pair
func (ac *AuthController) PartnerLogin(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	partner, err := ac.Partners.FindByEmail(email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	if !partner.IsActive {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Account is inactive",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(partner.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	accessToken, refreshToken, err := middleware.GenerateJWT(partner.ID.Hex(), partner.Email, "partner")
	if err != nil {
		log.Printf("Failed to generate JWT for partner %s: %v", partner.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":        accessToken,
			"refreshToken": refreshToken,
			"partner": map[string]interface{}{
				"id":       partner.ID.Hex(),
				"email":    partner.Email,
				"fullName": partner.FullName,
				"code":     partner.Code,
			},
		},
	})
}

// AdminLogin authenticates a back-office admin and returns a JWT token pair
func (ac *AuthController) AdminLogin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	var admin models.Admin
	err = config.GetCollection(ac.DB, "admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	if !admin.IsActive {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Account is inactive",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	accessToken, refreshToken, err := middleware.GenerateJWT(admin.ID.Hex(), admin.Email, "admin")
	if err != nil {
		log.Printf("Failed to generate JWT for admin %s: %v", admin.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":        accessToken,
			"refreshToken": refreshToken,
			"admin": map[string]interface{}{
				"id":       admin.ID.Hex(),
				"email":    admin.Email,
				"fullName": admin.FullName,
			},
		},
	})
}
