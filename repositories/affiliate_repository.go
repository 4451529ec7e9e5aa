package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RaspadinhaDigital/raspadinha_backend/config"
	"github.com/RaspadinhaDigital/raspadinha_backend/models"
	"github.com/RaspadinhaDigital/raspadinha_backend/utils"
)

type AffiliateRepository struct {
	collection *mongo.Collection
}

func NewAffiliateRepository(db *mongo.Client) *AffiliateRepository {
	return &AffiliateRepository{
		collection: config.GetCollection(db, "affiliates"),
	}
}

func (r *AffiliateRepository) FindByID(id primitive.ObjectID) (*models.Affiliate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var affiliate models.Affiliate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&affiliate)
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

func (r *AffiliateRepository) FindByEmail(email string) (*models.Affiliate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var affiliate models.Affiliate
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&affiliate)
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

// UpdateCommissionSettings applies an admin edit to an affiliate's tier and
// commission configuration. Setting a custom value for one mode clears the
// stored custom value of the other in the same update, so an account never
// carries both overrides at once.
func (r *AffiliateRepository) UpdateCommissionSettings(id primitive.ObjectID, req models.CommissionSettingsRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	set := bson.M{
		"commissionMode": req.CommissionMode,
		"updatedAt":      time.Now(),
	}
	unset := bson.M{}

	if req.Tier != "" {
		set["tier"] = req.Tier
	}

	switch models.CommissionMode(req.CommissionMode) {
	case models.CommissionFixed:
		if req.CustomFixedAmount != nil {
			set["customFixedAmount"] = *req.CustomFixedAmount
		} else {
			unset["customFixedAmount"] = ""
		}
		unset["customPercentage"] = ""
	default:
		if req.CustomPercentage != nil {
			set["customPercentage"] = *req.CustomPercentage
		} else {
			unset["customPercentage"] = ""
		}
		unset["customFixedAmount"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	_, err := r.collection.UpdateByID(ctx, id, update)
	return err
}

// ApproveEarnings credits approved earnings to an affiliate and applies
// automatic tier promotion against the supplied tier table. Returns the
// affiliate's tier after promotion.
func (r *AffiliateRepository) ApproveEarnings(id primitive.ObjectID, amount float64, tierTable []models.TierConfig) (models.Tier, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var affiliate models.Affiliate
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{
				"approvedEarnings": amount,
				"totalEarnings":    amount,
			},
			"$set": bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&affiliate)
	if err != nil {
		return "", err
	}

	promoted := utils.PromoteTier(affiliate.Tier, affiliate.ApprovedEarnings, tierTable)
	if promoted != affiliate.Tier {
		_, err = r.collection.UpdateByID(ctx, id, bson.M{
			"$set": bson.M{
				"tier":      promoted,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			return "", err
		}
	}
	return promoted, nil
}

// EnsureCode generates and stores a referral code for an affiliate that
// does not have one yet
func (r *AffiliateRepository) EnsureCode(affiliate *models.Affiliate) error {
	if affiliate.Code != "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	code, err := utils.GenerateAffiliateCode()
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateByID(ctx, affiliate.ID, bson.M{
		"$set": bson.M{
			"code":      code,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	affiliate.Code = code
	return nil
}
