// services/tier_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RaspadinhaDigital/raspadinha_backend/config"
	"github.com/RaspadinhaDigital/raspadinha_backend/models"
	"github.com/RaspadinhaDigital/raspadinha_backend/utils"
)

const (
	tierConfigCacheKey = "affiliate:tier_config"
	tierConfigCacheTTL = 5 * time.Minute
)

// TierService loads and edits the affiliate tier table. The table is
// validated on every load so a malformed configuration stops commission
// resolution instead of producing silently wrong promotions. Reads go
// through a Redis snapshot cache; a resolution call always works against
// one consistent snapshot.
type TierService struct {
	DB    *mongo.Client
	Redis *redis.Client
}

func NewTierService(db *mongo.Client, redisClient *redis.Client) *TierService {
	return &TierService{DB: db, Redis: redisClient}
}

// GetTierTable returns the validated tier table, served from cache when possible
func (s *TierService) GetTierTable(ctx context.Context) ([]models.TierConfig, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, tierConfigCacheKey).Result()
		if err == nil {
			var configs []models.TierConfig
			if err := json.Unmarshal([]byte(cached), &configs); err == nil {
				return configs, nil
			}
			log.Printf("Failed to decode cached tier config, falling back to database: %v", err)
		}
	}

	configs, err := s.loadFromDB(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(configs); err == nil {
			if err := s.Redis.Set(ctx, tierConfigCacheKey, data, tierConfigCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache tier config: %v", err)
			}
		}
	}
	return configs, nil
}

// UpdateTierConfig applies an admin edit to one tier row. The edit is
// applied to an in-memory copy and the whole table re-validated before
// anything is persisted, so a bad edit never reaches the database.
func (s *TierService) UpdateTierConfig(ctx context.Context, tier models.Tier, req models.TierConfigRequest) ([]models.TierConfig, error) {
	configs, err := s.loadFromDB(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range configs {
		if configs[i].Tier != tier {
			continue
		}
		found = true
		if req.PercentageRate != nil {
			configs[i].PercentageRate = *req.PercentageRate
		}
		if req.FixedAmount != nil {
			configs[i].FixedAmount = *req.FixedAmount
		}
		if req.MinEarnings != nil {
			configs[i].MinEarnings = *req.MinEarnings
		}
		configs[i].UpdatedAt = time.Now()
	}
	if !found {
		return nil, fmt.Errorf("%w: unknown tier %q", utils.ErrConfiguration, tier)
	}

	if err := utils.ValidateTierTable(configs); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"updatedAt": time.Now()}}
	if req.PercentageRate != nil {
		update["$set"].(bson.M)["percentageRate"] = *req.PercentageRate
	}
	if req.FixedAmount != nil {
		update["$set"].(bson.M)["fixedAmount"] = *req.FixedAmount
	}
	if req.MinEarnings != nil {
		update["$set"].(bson.M)["minEarnings"] = *req.MinEarnings
	}

	coll := config.GetCollection(s.DB, "affiliate_tier_config")
	if _, err := coll.UpdateOne(ctx, bson.M{"tier": tier}, update); err != nil {
		return nil, err
	}

	s.Invalidate(ctx)
	return configs, nil
}

// Invalidate drops the cached tier table snapshot
func (s *TierService) Invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, tierConfigCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate tier config cache: %v", err)
	}
}

// loadFromDB reads the tier table from MongoDB and validates it
func (s *TierService) loadFromDB(ctx context.Context) ([]models.TierConfig, error) {
	coll := config.GetCollection(s.DB, "affiliate_tier_config")
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"minEarnings": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []models.TierConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}

	if err := utils.ValidateTierTable(configs); err != nil {
		return nil, err
	}
	return configs, nil
}
