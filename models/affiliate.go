package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tier represents an affiliate commission bracket. All tiers except
// TierSpecial are assigned automatically from lifetime approved earnings;
// TierSpecial is set manually by an admin and hosts a fully custom rate.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
	TierSpecial  Tier = "special"
)

// PromotableTiers lists the tiers reachable by earnings, in ascending order.
var PromotableTiers = []Tier{TierBronze, TierSilver, TierGold, TierPlatinum, TierDiamond}

// CommissionMode selects how an account is compensated per deposit
type CommissionMode string

const (
	CommissionPercentage CommissionMode = "percentage"
	CommissionFixed      CommissionMode = "fixed"
)

// Commission is an effective commission after resolving tier defaults
// against any custom override. Exactly one mode is active at a time.
type Commission struct {
	Mode  CommissionMode `json:"mode" bson:"mode"`
	Value float64        `json:"value" bson:"value"`
}

// TierConfig holds the admin-edited commission defaults for one tier
type TierConfig struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tier           Tier               `bson:"tier" json:"tier"`
	PercentageRate float64            `bson:"percentageRate" json:"percentageRate"` // default percentage rate for this tier
	FixedAmount    float64            `bson:"fixedAmount" json:"fixedAmount"`       // default fixed amount per deposit
	MinEarnings    float64            `bson:"minEarnings" json:"minEarnings"`       // approved earnings required to reach this tier
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultTierConfigs seeds the tier table on first startup. The special
// tier row only exists so an admin can park a custom rate on it; it is
// never reached by earnings.
var DefaultTierConfigs = []TierConfig{
	{Tier: TierBronze, PercentageRate: 40, FixedAmount: 6, MinEarnings: 0},
	{Tier: TierSilver, PercentageRate: 45, FixedAmount: 7, MinEarnings: 5000},
	{Tier: TierGold, PercentageRate: 50, FixedAmount: 8, MinEarnings: 20000},
	{Tier: TierPlatinum, PercentageRate: 60, FixedAmount: 9, MinEarnings: 50000},
	{Tier: TierDiamond, PercentageRate: 70, FixedAmount: 10, MinEarnings: 100000},
	{Tier: TierSpecial, PercentageRate: 50, FixedAmount: 10, MinEarnings: 0},
}

// Affiliate is a top-level referrer earning commission on referred users'
// deposits. CustomPercentage and CustomFixedAmount are mutually exclusive;
// the update path clears one when the other is set.
type Affiliate struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"password" json:"-"`
	FullName           string             `bson:"fullName" json:"fullName"`
	Code               string             `bson:"code" json:"code"` // referral code, e.g. AFF-X7K2P9
	PixKeyType         string             `bson:"pixKeyType,omitempty" json:"pixKeyType,omitempty"`
	PixKey             string             `bson:"pixKey,omitempty" json:"pixKey,omitempty"`
	Tier               Tier               `bson:"tier" json:"tier"`
	CommissionMode     CommissionMode     `bson:"commissionMode" json:"commissionMode"`
	CustomPercentage   *float64           `bson:"customPercentage,omitempty" json:"customPercentage,omitempty"`
	CustomFixedAmount  *float64           `bson:"customFixedAmount,omitempty" json:"customFixedAmount,omitempty"`
	ApprovedEarnings   float64            `bson:"approvedEarnings" json:"approvedEarnings"`
	PendingEarnings    float64            `bson:"pendingEarnings" json:"pendingEarnings"`
	TotalEarnings      float64            `bson:"totalEarnings" json:"totalEarnings"`
	TotalClicks        int                `bson:"totalClicks" json:"totalClicks"`
	TotalRegistrations int                `bson:"totalRegistrations" json:"totalRegistrations"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CommissionSettingsRequest is the admin payload for changing an
// affiliate's tier or commission configuration
type CommissionSettingsRequest struct {
	Tier              string   `json:"tier" validate:"omitempty,oneof=bronze silver gold platinum diamond special"`
	CommissionMode    string   `json:"commissionMode" validate:"required,oneof=percentage fixed"`
	CustomPercentage  *float64 `json:"customPercentage" validate:"omitempty,gt=0,lte=100"`
	CustomFixedAmount *float64 `json:"customFixedAmount" validate:"omitempty,gt=0"`
}

// ApproveEarningsRequest credits approved earnings to an affiliate
type ApproveEarningsRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// TierConfigRequest is the admin payload for editing one tier row
type TierConfigRequest struct {
	PercentageRate *float64 `json:"percentageRate" validate:"omitempty,gt=0,lte=100"`
	FixedAmount    *float64 `json:"fixedAmount" validate:"omitempty,gt=0"`
	MinEarnings    *float64 `json:"minEarnings" validate:"omitempty,gte=0"`
}

// CommissionLimits describes the ceiling applied to a partner's commission,
// derived from its owning affiliate's effective commission
type CommissionLimits struct {
	MaxPercentage float64 `json:"maxPercentage"`
	MaxFixed      float64 `json:"maxFixed"`
	Explanation   string  `json:"explanation"`
}
