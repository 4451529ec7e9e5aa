package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RaspadinhaDigital/raspadinha_backend/models"
	"github.com/RaspadinhaDigital/raspadinha_backend/repositories"
	"github.com/RaspadinhaDigital/raspadinha_backend/services"
	"github.com/RaspadinhaDigital/raspadinha_backend/utils"
)

type AffiliateController struct {
	DB         *mongo.Client
	Affiliates *repositories.AffiliateRepository
	Tiers      *services.TierService
}

func NewAffiliateController(db *mongo.Client, affiliates *repositories.AffiliateRepository, tiers *services.TierService) *AffiliateController {
	return &AffiliateController{DB: db, Affiliates: affiliates, Tiers: tiers}
}

// affiliateFromContext loads the authenticated affiliate from the JWT claims
func (ac *AffiliateController) affiliateFromContext(c echo.Context) (*models.Affiliate, error) {
	affiliateID, ok := c.Get("userId").(string)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User ID not found in context")
	}
	objID, err := primitive.ObjectIDFromHex(affiliateID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid affiliate ID format")
	}
	affiliate, err := ac.Affiliates.FindByID(objID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Affiliate not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return affiliate, nil
}

// GetCommissionSummary returns the affiliate's tier, effective commission
// and earnings totals
func (ac *AffiliateController) GetCommissionSummary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	affiliate, err := ac.affiliateFromContext(c)
	if err != nil {
		return err
	}

	if err := ac.Affiliates.EnsureCode(affiliate); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate referral code",
		})
	}

	tierTable, err := ac.Tiers.GetTierTable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Commission configuration unavailable",
			Data:    err.Error(),
		})
	}

	commission, err := utils.ResolveAffiliateCommission(*affiliate, tierTable)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to resolve commission",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission summary fetched successfully",
		Data: map[string]interface{}{
			"tier":             affiliate.Tier,
			"commission":       commission,
			"approvedEarnings": affiliate.ApprovedEarnings,
			"pendingEarnings":  affiliate.PendingEarnings,
			"totalEarnings":    affiliate.TotalEarnings,
			"code":             affiliate.Code,
			"referralLink":     "https://raspadinha.digital/register?ref=" + affiliate.Code,
		},
	})
}

// GetPartnerCommissionLimits returns the ceiling a partner of this
// affiliate may be configured with, for the requested commission type
func (ac *AffiliateController) GetPartnerCommissionLimits(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	affiliate, err := ac.affiliateFromContext(c)
	if err != nil {
		return err
	}

	partnerMode := models.CommissionMode(c.QueryParam("commissionType"))
	if partnerMode != models.CommissionPercentage && partnerMode != models.CommissionFixed {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "commissionType must be 'percentage' or 'fixed'",
		})
	}

	tierTable, err := ac.Tiers.GetTierTable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Commission configuration unavailable",
			Data:    err.Error(),
		})
	}

	commission, err := utils.ResolveAffiliateCommission(*affiliate, tierTable)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to resolve commission",
			Data:    err.Error(),
		})
	}

	limits := utils.CalculatePartnerCommissionLimits(commission, partnerMode)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission limits fetched successfully",
		Data:    limits,
	})
}

// UpdateCommissionSettings lets an admin change an affiliate's tier and
// custom commission configuration
func (ac *AffiliateController) UpdateCommissionSettings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid affiliate ID format",
		})
	}

	var req models.CommissionSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission settings",
			Data:    err.Error(),
		})
	}

	// The custom value must belong to the active mode
	if models.CommissionMode(req.CommissionMode) == models.CommissionPercentage && req.CustomFixedAmount != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Cannot set a custom fixed amount while the commission mode is percentage",
		})
	}
	if models.CommissionMode(req.CommissionMode) == models.CommissionFixed && req.CustomPercentage != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Cannot set a custom percentage while the commission mode is fixed",
		})
	}

	if err := ac.Affiliates.UpdateCommissionSettings(objID, req); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update commission settings",
		})
	}

	affiliate, err := ac.Affiliates.FindByID(objID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch updated affiliate",
		})
	}

	tierTable, err := ac.Tiers.GetTierTable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Commission configuration unavailable",
			Data:    err.Error(),
		})
	}

	commission, err := utils.ResolveAffiliateCommission(*affiliate, tierTable)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to resolve commission",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission settings updated successfully",
		Data: map[string]interface{}{
			"tier":       affiliate.Tier,
			"commission": commission,
		},
	})
}

// ApproveEarnings credits approved earnings to an affiliate and applies
// automatic tier promotion
func (ac *AffiliateController) ApproveEarnings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid affiliate ID format",
		})
	}

	var req models.ApproveEarningsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Amount must be greater than zero",
		})
	}

	tierTable, err := ac.Tiers.GetTierTable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Commission configuration unavailable",
			Data:    err.Error(),
		})
	}

	tier, err := ac.Affiliates.ApproveEarnings(objID, req.Amount, tierTable)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Affiliate not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to approve earnings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Earnings approved successfully",
		Data: map[string]interface{}{
			"approvedAmount": req.Amount,
			"tier":           tier,
		},
	})
}
