// utils/commission.go
package utils

import (
	"errors"
	"fmt"
	"math"

	"github.com/RaspadinhaDigital/raspadinha_backend/models"
)

// MinimumDeposit is the platform's minimum deposit in BRL. It is the
// reference transaction size used to compare percentage and fixed
// commissions when deriving cross-mode ceilings, in both directions.
const MinimumDeposit = 15.0

// Error kinds returned by the commission engine. Callers distinguish them
// with errors.Is to render an accurate message.
var (
	// ErrConfiguration: the tier table is malformed; resolution must not proceed
	ErrConfiguration = errors.New("tier configuration error")
	// ErrValidation: a submitted commission value exceeds its ceiling or is invalid
	ErrValidation = errors.New("commission validation error")
	// ErrState: the requested lifecycle transition is not allowed
	ErrState = errors.New("invalid state")
)

// tierRank returns the position of a tier in the promotion order,
// -1 for special and unknown tiers
func tierRank(t models.Tier) int {
	for i, tier := range models.PromotableTiers {
		if tier == t {
			return i
		}
	}
	return -1
}

// ValidateTierTable checks the tier table at load time. A malformed table
// (missing tiers, non-ascending minEarnings, non-positive rates) would
// produce silently wrong promotions, so resolution refuses to start on it.
func ValidateTierTable(configs []models.TierConfig) error {
	byTier := make(map[models.Tier]models.TierConfig, len(configs))
	for _, cfg := range configs {
		if _, ok := byTier[cfg.Tier]; ok {
			return fmt.Errorf("%w: duplicate tier %q", ErrConfiguration, cfg.Tier)
		}
		if cfg.PercentageRate <= 0 || cfg.PercentageRate > 100 {
			return fmt.Errorf("%w: tier %q has percentage rate %.2f outside (0,100]", ErrConfiguration, cfg.Tier, cfg.PercentageRate)
		}
		if cfg.FixedAmount <= 0 {
			return fmt.Errorf("%w: tier %q has non-positive fixed amount %.2f", ErrConfiguration, cfg.Tier, cfg.FixedAmount)
		}
		if cfg.MinEarnings < 0 {
			return fmt.Errorf("%w: tier %q has negative min earnings", ErrConfiguration, cfg.Tier)
		}
		byTier[cfg.Tier] = cfg
	}

	prev := -1.0
	for _, tier := range models.PromotableTiers {
		cfg, ok := byTier[tier]
		if !ok {
			return fmt.Errorf("%w: missing tier %q", ErrConfiguration, tier)
		}
		if cfg.MinEarnings <= prev {
			return fmt.Errorf("%w: tier %q min earnings %.2f does not increase over the previous tier", ErrConfiguration, tier, cfg.MinEarnings)
		}
		prev = cfg.MinEarnings
	}
	return nil
}

// PromoteTier returns the tier an affiliate qualifies for from lifetime
// approved earnings: the highest tier whose minEarnings threshold is met.
// Promotion never demotes, and a manually assigned special tier is sticky.
func PromoteTier(current models.Tier, approvedEarnings float64, configs []models.TierConfig) models.Tier {
	if current == models.TierSpecial {
		return current
	}

	byTier := make(map[models.Tier]models.TierConfig, len(configs))
	for _, cfg := range configs {
		byTier[cfg.Tier] = cfg
	}

	promoted := models.TierBronze
	for _, tier := range models.PromotableTiers {
		cfg, ok := byTier[tier]
		if !ok {
			continue
		}
		if approvedEarnings >= cfg.MinEarnings {
			promoted = tier
		}
	}

	if tierRank(promoted) < tierRank(current) {
		return current
	}
	return promoted
}

// ResolveAffiliateCommission computes the effective commission for an
// affiliate: the custom override for the active mode when present,
// otherwise the tier's default rate.
func ResolveAffiliateCommission(affiliate models.Affiliate, configs []models.TierConfig) (models.Commission, error) {
	tier := affiliate.Tier
	if tier == "" {
		tier = models.TierBronze
	}

	var cfg *models.TierConfig
	for i := range configs {
		if configs[i].Tier == tier {
			cfg = &configs[i]
			break
		}
	}
	if cfg == nil {
		return models.Commission{}, fmt.Errorf("%w: no configuration for tier %q", ErrConfiguration, tier)
	}

	mode := affiliate.CommissionMode
	if mode == "" {
		mode = models.CommissionPercentage
	}

	switch mode {
	case models.CommissionFixed:
		if affiliate.CustomFixedAmount != nil {
			return models.Commission{Mode: models.CommissionFixed, Value: *affiliate.CustomFixedAmount}, nil
		}
		return models.Commission{Mode: models.CommissionFixed, Value: cfg.FixedAmount}, nil
	default:
		if affiliate.CustomPercentage != nil {
			return models.Commission{Mode: models.CommissionPercentage, Value: *affiliate.CustomPercentage}, nil
		}
		return models.Commission{Mode: models.CommissionPercentage, Value: cfg.PercentageRate}, nil
	}
}

// CalculatePartnerCommissionLimits derives the maximum commission a partner
// may be configured with from its owning affiliate's effective commission.
// Percentage and fixed values are compared through the minimum deposit so a
// partner cannot out-earn its affiliate by picking the other mode.
func CalculatePartnerCommissionLimits(affiliate models.Commission, partnerMode models.CommissionMode) models.CommissionLimits {
	if affiliate.Mode == models.CommissionFixed {
		fixed := affiliate.Value
		maxPercentage := math.Min(fixed/MinimumDeposit*100, 100)
		limits := models.CommissionLimits{
			MaxPercentage: maxPercentage,
			MaxFixed:      fixed,
		}
		if partnerMode == models.CommissionFixed {
			limits.Explanation = fmt.Sprintf(
				"As you earn a fixed R$ %.2f commission, a partner can have at most R$ %.2f in fixed commission.",
				fixed, fixed)
		} else {
			limits.Explanation = fmt.Sprintf(
				"As you earn a fixed R$ %.2f commission, a partner can have at most %.1f%% in percentage commission (your fixed amount over the R$ %.2f minimum deposit).",
				fixed, maxPercentage, MinimumDeposit)
		}
		return limits
	}

	percentage := affiliate.Value
	maxFixed := percentage / 100 * MinimumDeposit
	limits := models.CommissionLimits{
		MaxPercentage: percentage,
		MaxFixed:      maxFixed,
	}
	if partnerMode == models.CommissionFixed {
		limits.Explanation = fmt.Sprintf(
			"As you earn a %.1f%% commission, a partner can have at most R$ %.2f in fixed commission (%.1f%% of the R$ %.2f minimum deposit).",
			percentage, maxFixed, percentage, MinimumDeposit)
	} else {
		limits.Explanation = fmt.Sprintf(
			"As you earn a %.1f%% commission, a partner can have at most %.1f%% in percentage commission.",
			percentage, percentage)
	}
	return limits
}

// ValidatePartnerCommission rejects a submitted partner commission that
// exceeds the ceiling derived from the owning affiliate's effective
// commission. Values are rejected, never clamped.
func ValidatePartnerCommission(affiliate models.Commission, partnerMode models.CommissionMode, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%w: commission must be greater than zero", ErrValidation)
	}

	limits := CalculatePartnerCommissionLimits(affiliate, partnerMode)
	if partnerMode == models.CommissionFixed {
		if value > limits.MaxFixed {
			return fmt.Errorf("%w: fixed commission cannot exceed R$ %.2f. %s", ErrValidation, limits.MaxFixed, limits.Explanation)
		}
		return nil
	}
	if value > limits.MaxPercentage {
		return fmt.Errorf("%w: percentage commission cannot exceed %.1f%%. %s", ErrValidation, limits.MaxPercentage, limits.Explanation)
	}
	return nil
}

// CanDeletePartner enforces the partner deletion guard: a partner with any
// recorded commission or withdrawal is immutable for deletion.
func CanDeletePartner(commissionCount, withdrawalCount int64) error {
	if commissionCount > 0 {
		return fmt.Errorf("%w: partner has %d registered commission(s) and cannot be deleted", ErrState, commissionCount)
	}
	if withdrawalCount > 0 {
		return fmt.Errorf("%w: partner has %d withdrawal record(s) and cannot be deleted", ErrState, withdrawalCount)
	}
	return nil
}
