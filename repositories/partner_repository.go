package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RaspadinhaDigital/raspadinha_backend/config"
	"github.com/RaspadinhaDigital/raspadinha_backend/models"
	"github.com/RaspadinhaDigital/raspadinha_backend/utils"
)

type PartnerRepository struct {
	partners    *mongo.Collection
	commissions *mongo.Collection
	withdrawals *mongo.Collection
}

func NewPartnerRepository(db *mongo.Client) *PartnerRepository {
	return &PartnerRepository{
		partners:    config.GetCollection(db, "partners"),
		commissions: config.GetCollection(db, "partner_commissions"),
		withdrawals: config.GetCollection(db, "partner_withdrawals"),
	}
}

func (r *PartnerRepository) FindByID(id primitive.ObjectID) (*models.Partner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var partner models.Partner
	err := r.partners.FindOne(ctx, bson.M{"_id": id}).Decode(&partner)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PartnerRepository) FindByEmail(email string) (*models.Partner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var partner models.Partner
	err := r.partners.FindOne(ctx, bson.M{"email": email}).Decode(&partner)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PartnerRepository) ListByAffiliate(affiliateID primitive.ObjectID) ([]models.Partner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.partners.Find(ctx, bson.M{"affiliateId": affiliateID}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var partners []models.Partner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *PartnerRepository) Create(partner *models.Partner) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	partner.ID = primitive.NewObjectID()
	partner.IsActive = true
	partner.CreatedAt = time.Now()
	partner.UpdatedAt = partner.CreatedAt

	_, err := r.partners.InsertOne(ctx, partner)
	return err
}

// UpdateCommission stores a partner's commission configuration. Callers
// must have validated the value against the owning affiliate's ceiling
// first; this is the only write path for partner commission fields.
func (r *PartnerRepository) UpdateCommission(id primitive.ObjectID, mode models.CommissionMode, value float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.partners.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"commissionMode":  mode,
			"commissionValue": value,
			"updatedAt":       time.Now(),
		},
	})
	return err
}

// Delete removes a partner, refusing when any commission or withdrawal
// records exist for it
func (r *PartnerRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commissionCount, err := r.commissions.CountDocuments(ctx, bson.M{"partnerId": id})
	if err != nil {
		return err
	}
	withdrawalCount, err := r.withdrawals.CountDocuments(ctx, bson.M{"partnerId": id})
	if err != nil {
		return err
	}

	if err := utils.CanDeletePartner(commissionCount, withdrawalCount); err != nil {
		return err
	}

	_, err = r.partners.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// RecordCommission inserts one earned commission for a partner on a deposit
func (r *PartnerRepository) RecordCommission(partner *models.Partner, userID primitive.ObjectID, depositAmount, amount float64) (*models.PartnerCommission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commission := &models.PartnerCommission{
		ID:            primitive.NewObjectID(),
		PartnerID:     partner.ID,
		AffiliateID:   partner.AffiliateID,
		UserID:        userID,
		EventID:       uuid.NewString(),
		DepositAmount: depositAmount,
		Amount:        amount,
		Status:        "earned",
		CreatedAt:     time.Now(),
	}

	_, err := r.commissions.InsertOne(ctx, commission)
	if err != nil {
		return nil, err
	}
	return commission, nil
}

// ListCommissions returns a page of a partner's commission history plus the
// total record count
func (r *PartnerRepository) ListCommissions(partnerID primitive.ObjectID, page, limit int) ([]models.PartnerCommission, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	skip := (page - 1) * limit

	cursor, err := r.commissions.Find(
		ctx,
		bson.M{"partnerId": partnerID},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(int64(skip)).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var commissions []models.PartnerCommission
	if err := cursor.All(ctx, &commissions); err != nil {
		return nil, 0, err
	}

	totalCount, err := r.commissions.CountDocuments(ctx, bson.M{"partnerId": partnerID})
	if err != nil {
		return nil, 0, err
	}
	return commissions, totalCount, nil
}
