package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RaspadinhaDigital/raspadinha_backend/models"
)

func validTierTable() []models.TierConfig {
	return []models.TierConfig{
		{Tier: models.TierBronze, PercentageRate: 40, FixedAmount: 6, MinEarnings: 0},
		{Tier: models.TierSilver, PercentageRate: 45, FixedAmount: 7, MinEarnings: 5000},
		{Tier: models.TierGold, PercentageRate: 50, FixedAmount: 8, MinEarnings: 20000},
		{Tier: models.TierPlatinum, PercentageRate: 60, FixedAmount: 9, MinEarnings: 50000},
		{Tier: models.TierDiamond, PercentageRate: 70, FixedAmount: 10, MinEarnings: 100000},
		{Tier: models.TierSpecial, PercentageRate: 50, FixedAmount: 10, MinEarnings: 0},
	}
}

func TestValidateTierTable(t *testing.T) {
	require.NoError(t, ValidateTierTable(validTierTable()))
	require.NoError(t, ValidateTierTable(models.DefaultTierConfigs))
}

func TestValidateTierTableErrors(t *testing.T) {
	missing := validTierTable()
	missing = append(missing[:2], missing[3:]...) // drop gold
	require.ErrorIs(t, ValidateTierTable(missing), ErrConfiguration)

	unordered := validTierTable()
	unordered[2].MinEarnings = 4000 // gold below silver
	require.ErrorIs(t, ValidateTierTable(unordered), ErrConfiguration)

	duplicate := append(validTierTable(), models.TierConfig{Tier: models.TierGold, PercentageRate: 50, FixedAmount: 8, MinEarnings: 30000})
	require.ErrorIs(t, ValidateTierTable(duplicate), ErrConfiguration)

	badRate := validTierTable()
	badRate[0].PercentageRate = 0
	require.ErrorIs(t, ValidateTierTable(badRate), ErrConfiguration)

	badFixed := validTierTable()
	badFixed[1].FixedAmount = -1
	require.ErrorIs(t, ValidateTierTable(badFixed), ErrConfiguration)
}

func TestPromoteTier(t *testing.T) {
	table := validTierTable()

	tests := []struct {
		name     string
		current  models.Tier
		earnings float64
		expected models.Tier
	}{
		{"no earnings", models.TierBronze, 0, models.TierBronze},
		{"just below silver", models.TierBronze, 4999.99, models.TierBronze},
		{"exactly silver threshold", models.TierBronze, 5000, models.TierSilver},
		{"between silver and gold", models.TierBronze, 19999, models.TierSilver},
		{"exactly gold threshold", models.TierBronze, 20000, models.TierGold},
		{"diamond and beyond", models.TierBronze, 5000000, models.TierDiamond},
		{"never demotes", models.TierGold, 0, models.TierGold},
		{"special is sticky", models.TierSpecial, 5000000, models.TierSpecial},
	}

	for _, ts := range tests {
		ts := ts
		t.Run(ts.name, func(t *testing.T) {
			promoted := PromoteTier(ts.current, ts.earnings, table)
			require.Equal(t, ts.expected, promoted)

			// promotion is idempotent
			require.Equal(t, promoted, PromoteTier(promoted, ts.earnings, table))
		})
	}
}

func TestPromoteTierMonotonic(t *testing.T) {
	table := validTierTable()
	prevRank := -1
	tier := models.TierBronze
	for earnings := 0.0; earnings <= 150000; earnings += 777 {
		tier = PromoteTier(tier, earnings, table)
		rank := tierRank(tier)
		require.GreaterOrEqual(t, rank, prevRank, "earnings=%.0f", earnings)
		prevRank = rank
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestResolveAffiliateCommission(t *testing.T) {
	table := validTierTable()

	tests := []struct {
		name      string
		affiliate models.Affiliate
		expected  models.Commission
	}{
		{
			"tier default percentage",
			models.Affiliate{Tier: models.TierBronze, CommissionMode: models.CommissionPercentage},
			models.Commission{Mode: models.CommissionPercentage, Value: 40},
		},
		{
			"custom percentage overrides tier default",
			models.Affiliate{Tier: models.TierBronze, CommissionMode: models.CommissionPercentage, CustomPercentage: floatPtr(85)},
			models.Commission{Mode: models.CommissionPercentage, Value: 85},
		},
		{
			"tier default fixed",
			models.Affiliate{Tier: models.TierGold, CommissionMode: models.CommissionFixed},
			models.Commission{Mode: models.CommissionFixed, Value: 8},
		},
		{
			"custom fixed overrides tier default",
			models.Affiliate{Tier: models.TierGold, CommissionMode: models.CommissionFixed, CustomFixedAmount: floatPtr(12)},
			models.Commission{Mode: models.CommissionFixed, Value: 12},
		},
		{
			"empty tier defaults to bronze",
			models.Affiliate{CommissionMode: models.CommissionPercentage},
			models.Commission{Mode: models.CommissionPercentage, Value: 40},
		},
		{
			"empty mode defaults to percentage",
			models.Affiliate{Tier: models.TierSilver},
			models.Commission{Mode: models.CommissionPercentage, Value: 45},
		},
		{
			"special tier hosts a custom rate",
			models.Affiliate{Tier: models.TierSpecial, CommissionMode: models.CommissionPercentage, CustomPercentage: floatPtr(95)},
			models.Commission{Mode: models.CommissionPercentage, Value: 95},
		},
	}

	for _, ts := range tests {
		ts := ts
		t.Run(ts.name, func(t *testing.T) {
			commission, err := ResolveAffiliateCommission(ts.affiliate, table)
			require.NoError(t, err)
			require.Equal(t, ts.expected, commission)
		})
	}
}

func TestResolveAffiliateCommissionUnknownTier(t *testing.T) {
	affiliate := models.Affiliate{Tier: "mythril", CommissionMode: models.CommissionPercentage}
	_, err := ResolveAffiliateCommission(affiliate, validTierTable())
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestCalculatePartnerCommissionLimits(t *testing.T) {
	tests := []struct {
		name          string
		affiliate     models.Commission
		partnerMode   models.CommissionMode
		maxPercentage float64
		maxFixed      float64
	}{
		{
			"percentage affiliate, percentage partner",
			models.Commission{Mode: models.CommissionPercentage, Value: 40},
			models.CommissionPercentage,
			40, 6, // 40% of the R$ 15 minimum deposit
		},
		{
			"percentage affiliate, fixed partner",
			models.Commission{Mode: models.CommissionPercentage, Value: 85},
			models.CommissionFixed,
			85, 12.75,
		},
		{
			"fixed affiliate, fixed partner",
			models.Commission{Mode: models.CommissionFixed, Value: 10},
			models.CommissionFixed,
			66.6667, 10,
		},
		{
			"fixed affiliate, percentage partner capped at hundred",
			models.Commission{Mode: models.CommissionFixed, Value: 30},
			models.CommissionPercentage,
			100, 30, // 30/15 would be 200%, capped
		},
	}

	for _, ts := range tests {
		ts := ts
		t.Run(ts.name, func(t *testing.T) {
			limits := CalculatePartnerCommissionLimits(ts.affiliate, ts.partnerMode)
			require.InDelta(t, ts.maxPercentage, limits.MaxPercentage, 0.001)
			require.InDelta(t, ts.maxFixed, limits.MaxFixed, 0.001)
			require.NotEmpty(t, limits.Explanation)
		})
	}
}

func TestValidatePartnerCommission(t *testing.T) {
	tests := []struct {
		name        string
		affiliate   models.Commission
		partnerMode models.CommissionMode
		value       float64
		wantErr     bool
	}{
		{"percentage above affiliate percentage", models.Commission{Mode: models.CommissionPercentage, Value: 40}, models.CommissionPercentage, 45, true},
		{"percentage below affiliate percentage", models.Commission{Mode: models.CommissionPercentage, Value: 40}, models.CommissionPercentage, 35, false},
		{"percentage equal to affiliate percentage", models.Commission{Mode: models.CommissionPercentage, Value: 40}, models.CommissionPercentage, 40, false},
		{"fixed above affiliate fixed", models.Commission{Mode: models.CommissionFixed, Value: 10}, models.CommissionFixed, 12, true},
		{"fixed below affiliate fixed", models.Commission{Mode: models.CommissionFixed, Value: 10}, models.CommissionFixed, 8, false},
		{"fixed equal to affiliate fixed", models.Commission{Mode: models.CommissionFixed, Value: 10}, models.CommissionFixed, 10, false},
		{"fixed partner above percentage affiliate's deposit yield", models.Commission{Mode: models.CommissionPercentage, Value: 40}, models.CommissionFixed, 6.5, true},
		{"fixed partner at percentage affiliate's deposit yield", models.Commission{Mode: models.CommissionPercentage, Value: 40}, models.CommissionFixed, 6, false},
		{"percentage partner above fixed affiliate's equivalent", models.Commission{Mode: models.CommissionFixed, Value: 10}, models.CommissionPercentage, 70, true},
		{"percentage partner below fixed affiliate's equivalent", models.Commission{Mode: models.CommissionFixed, Value: 10}, models.CommissionPercentage, 60, false},
		{"zero value", models.Commission{Mode: models.CommissionPercentage, Value: 40}, models.CommissionPercentage, 0, true},
		{"negative value", models.Commission{Mode: models.CommissionFixed, Value: 10}, models.CommissionFixed, -5, true},
	}

	for _, ts := range tests {
		ts := ts
		t.Run(ts.name, func(t *testing.T) {
			err := ValidatePartnerCommission(ts.affiliate, ts.partnerMode, ts.value)
			if ts.wantErr {
				require.ErrorIs(t, err, ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// every accepted partner commission yields at most the affiliate's own
// worst-case earnings on the minimum deposit, regardless of mode pairing
func TestCeilingContainment(t *testing.T) {
	affiliates := []models.Commission{
		{Mode: models.CommissionPercentage, Value: 10},
		{Mode: models.CommissionPercentage, Value: 40},
		{Mode: models.CommissionPercentage, Value: 85},
		{Mode: models.CommissionFixed, Value: 2},
		{Mode: models.CommissionFixed, Value: 10},
		{Mode: models.CommissionFixed, Value: 14.5},
	}

	depositYield := func(mode models.CommissionMode, value float64) float64 {
		if mode == models.CommissionFixed {
			return value
		}
		return value / 100 * MinimumDeposit
	}

	for _, affiliate := range affiliates {
		affiliateYield := depositYield(affiliate.Mode, affiliate.Value)
		for _, partnerMode := range []models.CommissionMode{models.CommissionPercentage, models.CommissionFixed} {
			for value := 0.5; value <= 100; value += 0.5 {
				if err := ValidatePartnerCommission(affiliate, partnerMode, value); err != nil {
					continue
				}
				partnerYield := depositYield(partnerMode, value)
				require.LessOrEqual(t, partnerYield, affiliateYield+1e-9,
					"affiliate=%+v partnerMode=%s value=%.2f", affiliate, partnerMode, value)
			}
		}
	}
}

func TestCanDeletePartner(t *testing.T) {
	require.NoError(t, CanDeletePartner(0, 0))

	err := CanDeletePartner(3, 0)
	require.ErrorIs(t, err, ErrState)
	require.Contains(t, err.Error(), "commission")

	err = CanDeletePartner(0, 1)
	require.ErrorIs(t, err, ErrState)
	require.Contains(t, err.Error(), "withdrawal")
}
