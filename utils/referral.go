package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// ReferralType represents the type of entity for which a referral code is being generated
type ReferralType string

const (
	AffiliateType ReferralType = "AFF"
	PartnerType   ReferralType = "PTN"
)

// GenerateReferralCode generates a unique referral code for the specified entity type
// Format: {TYPE}-{RANDOM} where RANDOM is 6 alphanumeric characters
// Example: AFF-ABC123, PTN-XYZ789
func GenerateReferralCode(entityType ReferralType) (string, error) {
	// 4 random bytes give us 6 characters in base32
	randomBytes := make([]byte, 4)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	randomStr := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	randomStr = randomStr[:6]

	randomStr = strings.ToUpper(randomStr)
	randomStr = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, randomStr)

	if len(randomStr) < 6 {
		randomStr = randomStr + strings.Repeat("0", 6-len(randomStr))
	}

	return string(entityType) + "-" + randomStr, nil
}

// GenerateAffiliateCode generates a referral code for an affiliate
func GenerateAffiliateCode() (string, error) {
	return GenerateReferralCode(AffiliateType)
}

// GeneratePartnerCode generates a referral code for a partner
func GeneratePartnerCode() (string, error) {
	return GenerateReferralCode(PartnerType)
}
