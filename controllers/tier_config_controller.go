package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RaspadinhaDigital/raspadinha_backend/models"
	"github.com/RaspadinhaDigital/raspadinha_backend/services"
	"github.com/RaspadinhaDigital/raspadinha_backend/utils"
)

type TierConfigController struct {
	Tiers *services.TierService
}

func NewTierConfigController(tiers *services.TierService) *TierConfigController {
	return &TierConfigController{Tiers: tiers}
}

// GetTierConfigs returns the affiliate tier table
func (tc *TierConfigController) GetTierConfigs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	configs, err := tc.Tiers.GetTierTable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Tier configuration unavailable",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tier configs fetched successfully",
		Data:    configs,
	})
}

// UpdateTierConfig lets an admin edit one tier row. Edits that would leave
// the table malformed are rejected before anything is persisted.
func (tc *TierConfigController) UpdateTierConfig(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tier := models.Tier(c.Param("tier"))

	var req models.TierConfigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid tier config values",
			Data:    err.Error(),
		})
	}
	if req.PercentageRate == nil && req.FixedAmount == nil && req.MinEarnings == nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No tier config fields to update",
		})
	}

	configs, err := tc.Tiers.UpdateTierConfig(ctx, tier, req)
	if err != nil {
		if errors.Is(err, utils.ErrConfiguration) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update tier config",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tier config updated successfully",
		Data:    configs,
	})
}
