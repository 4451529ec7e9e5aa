package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/RaspadinhaDigital/raspadinha_backend/models"
	"github.com/RaspadinhaDigital/raspadinha_backend/repositories"
	"github.com/RaspadinhaDigital/raspadinha_backend/services"
	"github.com/RaspadinhaDigital/raspadinha_backend/utils"
)

type PartnerController struct {
	DB         *mongo.Client
	Partners   *repositories.PartnerRepository
	Affiliates *repositories.AffiliateRepository
	Tiers      *services.TierService
}

func NewPartnerController(db *mongo.Client, partners *repositories.PartnerRepository, affiliates *repositories.AffiliateRepository, tiers *services.TierService) *PartnerController {
	return &PartnerController{DB: db, Partners: partners, Affiliates: affiliates, Tiers: tiers}
}

// affiliateEffective resolves the authenticated affiliate and its effective
// commission, shared by the partner create/update paths
func (pc *PartnerController) affiliateEffective(ctx context.Context, c echo.Context) (*models.Affiliate, models.Commission, error) {
	affiliateID, ok := c.Get("userId").(string)
	if !ok {
		return nil, models.Commission{}, echo.NewHTTPError(http.StatusUnauthorized, "User ID not found in context")
	}
	objID, err := primitive.ObjectIDFromHex(affiliateID)
	if err != nil {
		return nil, models.Commission{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid affiliate ID format")
	}

	affiliate, err := pc.Affiliates.FindByID(objID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.Commission{}, echo.NewHTTPError(http.StatusNotFound, "Affiliate not found")
		}
		return nil, models.Commission{}, echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	tierTable, err := pc.Tiers.GetTierTable(ctx)
	if err != nil {
		return nil, models.Commission{}, echo.NewHTTPError(http.StatusInternalServerError, "Commission configuration unavailable")
	}

	commission, err := utils.ResolveAffiliateCommission(*affiliate, tierTable)
	if err != nil {
		return nil, models.Commission{}, echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve commission")
	}
	return affiliate, commission, nil
}

// CreatePartner creates a partner account owned by the authenticated
// affiliate. The submitted commission is validated against the affiliate's
// ceiling before anything is stored.
func (pc *PartnerController) CreatePartner(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreatePartnerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner data",
			Data:    err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	affiliate, commission, err := pc.affiliateEffective(ctx, c)
	if err != nil {
		return err
	}

	partnerMode := models.CommissionMode(req.CommissionMode)
	if err := utils.ValidatePartnerCommission(commission, partnerMode, req.CommissionValue); err != nil {
		limits := utils.CalculatePartnerCommissionLimits(commission, partnerMode)
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
			Data:    limits,
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	code, err := utils.GeneratePartnerCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate partner code",
		})
	}

	partner := &models.Partner{
		AffiliateID:     affiliate.ID,
		Email:           email,
		Password:        string(hashedPassword),
		FullName:        utils.SanitizeInput(req.FullName),
		Code:            code,
		CommissionMode:  partnerMode,
		CommissionValue: req.CommissionValue,
	}

	if err := pc.Partners.Create(partner); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "A partner with this email already exists",
			})
		}
		log.Printf("Failed to create partner for affiliate %s: %v", affiliate.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create partner",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Partner created successfully",
		Data:    partner,
	})
}

// GetPartners lists the authenticated affiliate's partners
func (pc *PartnerController) GetPartners(c echo.Context) error {
	affiliateID, ok := c.Get("userId").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User ID not found in context",
		})
	}
	objID, err := primitive.ObjectIDFromHex(affiliateID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid affiliate ID format",
		})
	}

	partners, err := pc.Partners.ListByAffiliate(objID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch partners",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partners fetched successfully",
		Data:    partners,
	})
}

// ownedPartner loads a partner by path param and verifies it belongs to
// the authenticated affiliate
func (pc *PartnerController) ownedPartner(c echo.Context, affiliate *models.Affiliate) (*models.Partner, error) {
	partnerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid partner ID format")
	}

	partner, err := pc.Partners.FindByID(partnerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Partner not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if partner.AffiliateID != affiliate.ID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Partner belongs to another affiliate")
	}
	return partner, nil
}

// UpdatePartnerCommission changes a partner's commission configuration,
// enforcing the affiliate's ceiling
func (pc *PartnerController) UpdatePartnerCommission(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.UpdatePartnerCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission data",
			Data:    err.Error(),
		})
	}

	affiliate, commission, err := pc.affiliateEffective(ctx, c)
	if err != nil {
		return err
	}

	partner, err := pc.ownedPartner(c, affiliate)
	if err != nil {
		return err
	}

	partnerMode := models.CommissionMode(req.CommissionMode)
	if err := utils.ValidatePartnerCommission(commission, partnerMode, req.CommissionValue); err != nil {
		limits := utils.CalculatePartnerCommissionLimits(commission, partnerMode)
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
			Data:    limits,
		})
	}

	if err := pc.Partners.UpdateCommission(partner.ID, partnerMode, req.CommissionValue); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update partner commission",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partner commission updated successfully",
		Data: map[string]interface{}{
			"partnerId":       partner.ID.Hex(),
			"commissionMode":  partnerMode,
			"commissionValue": req.CommissionValue,
		},
	})
}

// DeletePartner removes a partner. Deletion is refused while the partner
// has any recorded commissions or withdrawals.
func (pc *PartnerController) DeletePartner(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	affiliate, _, err := pc.affiliateEffective(ctx, c)
	if err != nil {
		return err
	}

	partner, err := pc.ownedPartner(c, affiliate)
	if err != nil {
		return err
	}

	if err := pc.Partners.Delete(partner.ID); err != nil {
		if errors.Is(err, utils.ErrState) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: err.Error(),
			})
		}
		log.Printf("Failed to delete partner %s: %v", partner.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete partner",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partner deleted successfully",
	})
}

// RecordPartnerCommission credits a partner for a referred user's deposit.
// The commission amount follows the partner's own configuration: a share of
// the deposit in percentage mode, a flat amount in fixed mode.
func (pc *PartnerController) RecordPartnerCommission(c echo.Context) error {
	partnerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID format",
		})
	}

	var req models.RecordPartnerCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission data",
			Data:    err.Error(),
		})
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID format",
		})
	}

	partner, err := pc.Partners.FindByID(partnerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Partner not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	amount := partner.CommissionValue
	if partner.CommissionMode == models.CommissionPercentage {
		amount = req.DepositAmount * partner.CommissionValue / 100
	}

	commission, err := pc.Partners.RecordCommission(partner, userID, req.DepositAmount, amount)
	if err != nil {
		log.Printf("Failed to record commission for partner %s: %v", partner.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record commission",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Commission recorded successfully",
		Data:    commission,
	})
}

// GetPartnerCommissions returns commission history for the authenticated partner
func (pc *PartnerController) GetPartnerCommissions(c echo.Context) error {
	partnerID, ok := c.Get("userId").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User ID not found in context",
		})
	}
	objID, err := primitive.ObjectIDFromHex(partnerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID format",
		})
	}

	page := 1
	limit := 20
	if pageStr := c.QueryParam("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	commissions, totalCount, err := pc.Partners.ListCommissions(objID, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch partner commissions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partner commissions fetched successfully",
		Data: map[string]interface{}{
			"commissions": commissions,
			"pagination": map[string]interface{}{
				"page":       page,
				"limit":      limit,
				"total":      totalCount,
				"totalPages": (totalCount + int64(limit) - 1) / int64(limit),
			},
		},
	})
}
