package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partner is a sub-affiliate owned by exactly one affiliate. Its commission
// is independent of tiers but capped by the owning affiliate's effective
// commission (see utils.CalculatePartnerCommissionLimits).
type Partner struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AffiliateID     primitive.ObjectID `bson:"affiliateId" json:"affiliateId"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	FullName        string             `bson:"fullName" json:"fullName"`
	Code            string             `bson:"code" json:"code"` // referral code, e.g. PTN-K4M8Q1
	CommissionMode  CommissionMode     `bson:"commissionMode" json:"commissionMode"`
	CommissionValue float64            `bson:"commissionValue" json:"commissionValue"`
	TotalClicks     int                `bson:"totalClicks" json:"totalClicks"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PartnerCommission records one commission earned by a partner on a deposit
type PartnerCommission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PartnerID     primitive.ObjectID `bson:"partnerId" json:"partnerId"`
	AffiliateID   primitive.ObjectID `bson:"affiliateId" json:"affiliateId"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	EventID       string             `bson:"eventId" json:"eventId"` // deposit event id (uuid)
	DepositAmount float64            `bson:"depositAmount" json:"depositAmount"`
	Amount        float64            `bson:"amount" json:"amount"`
	Status        string             `bson:"status" json:"status"` // "earned", "paid", "cancelled"
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// PartnerWithdrawal records a payout request made by a partner
type PartnerWithdrawal struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PartnerID       primitive.ObjectID `bson:"partnerId" json:"partnerId"`
	Amount          float64            `bson:"amount" json:"amount"`
	PixKeyType      string             `bson:"pixKeyType,omitempty" json:"pixKeyType,omitempty"`
	PixKey          string             `bson:"pixKey,omitempty" json:"pixKey,omitempty"`
	Status          string             `bson:"status" json:"status"` // "pending", "approved", "rejected"
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	ProcessedAt     *time.Time         `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

// CreatePartnerRequest is the payload an affiliate sends to create a partner
type CreatePartnerRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	FullName        string  `json:"fullName" validate:"required"`
	CommissionMode  string  `json:"commissionMode" validate:"required,oneof=percentage fixed"`
	CommissionValue float64 `json:"commissionValue" validate:"required,gt=0"`
}

// RecordPartnerCommissionRequest credits a partner for a referred user's deposit
type RecordPartnerCommissionRequest struct {
	UserID        string  `json:"userId" validate:"required"`
	DepositAmount float64 `json:"depositAmount" validate:"required,gt=0"`
}

// UpdatePartnerCommissionRequest changes a partner's commission configuration
type UpdatePartnerCommissionRequest struct {
	CommissionMode  string  `json:"commissionMode" validate:"required,oneof=percentage fixed"`
	CommissionValue float64 `json:"commissionValue" validate:"required,gt=0"`
}
