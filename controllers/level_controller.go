package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RaspadinhaDigital/raspadinha_backend/models"
	"github.com/RaspadinhaDigital/raspadinha_backend/repositories"
	"github.com/RaspadinhaDigital/raspadinha_backend/utils"
)

const levelInfoCacheTTL = time.Minute

type LevelController struct {
	Users *repositories.UserRepository
	Redis *redis.Client
}

func NewLevelController(users *repositories.UserRepository, redisClient *redis.Client) *LevelController {
	return &LevelController{Users: users, Redis: redisClient}
}

func levelCacheKey(userID string) string {
	return "user:level:" + userID
}

// GetUserLevel returns the authenticated user's progression level, derived
// from their lifetime wagered amount
func (lc *LevelController) GetUserLevel(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := c.Get("userId").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User ID not found in context",
		})
	}

	cacheKey := levelCacheKey(userID)
	if lc.Redis != nil {
		if cached, err := lc.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var info models.LevelInfo
			if err := json.Unmarshal([]byte(cached), &info); err == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Level info fetched successfully",
					Data:    info,
				})
			}
		}
	}

	user, err := lc.Users.FindByID(userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve user information",
		})
	}

	info := utils.LevelOf(user.TotalWagered, models.DefaultRewardCheckpoints)

	if lc.Redis != nil {
		if data, err := json.Marshal(info); err == nil {
			if err := lc.Redis.Set(ctx, cacheKey, data, levelInfoCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache level info for user %s: %v", userID, err)
			}
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Level info fetched successfully",
		Data:    info,
	})
}

// RecordWager adds a settled bet amount to the user's lifetime wagered total
// and returns the recomputed level
func (lc *LevelController) RecordWager(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := c.Get("userId").(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User ID not found in context",
		})
	}

	var req models.RecordWagerRequest
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

	total, err := lc.Users.AddWagered(userID, req.Amount)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "User not found",
			})
		}
		log.Printf("Failed to record wager for user %s: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record wager",
		})
	}

	// The cached level is stale now
	if lc.Redis != nil {
		if err := lc.Redis.Del(ctx, levelCacheKey(userID)).Err(); err != nil {
			log.Printf("Failed to invalidate level cache for user %s: %v", userID, err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Wager recorded successfully",
		Data:    utils.LevelOf(total, models.DefaultRewardCheckpoints),
	})
}

// GetLevelPreview computes the level a given wagered amount would land on,
// without touching any account
func (lc *LevelController) GetLevelPreview(c echo.Context) error {
	wagered, err := utils.ParseFloat(c.QueryParam("wagered"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid wagered amount",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Level preview computed successfully",
		Data:    utils.LevelOf(wagered, models.DefaultRewardCheckpoints),
	})
}

// GetLevelCheckpoints returns the platform's level curve so clients can
// render the full progression table
func (lc *LevelController) GetLevelCheckpoints(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Level checkpoints fetched successfully",
		Data:    models.DefaultRewardCheckpoints,
	})
}
