package models

// RewardCheckpoint anchors a progression level to the lifetime wagered
// amount required to reach it. Levels between checkpoints are interpolated.
type RewardCheckpoint struct {
	Level           int     `bson:"level" json:"level"`
	RequiredWagered float64 `bson:"requiredWagered" json:"requiredWagered"`
}

// DefaultRewardCheckpoints is the platform's canonical level curve,
// shared by all users
var DefaultRewardCheckpoints = []RewardCheckpoint{
	{Level: 1, RequiredWagered: 100},
	{Level: 5, RequiredWagered: 1000},
	{Level: 10, RequiredWagered: 5000},
	{Level: 20, RequiredWagered: 20000},
	{Level: 30, RequiredWagered: 50000},
	{Level: 50, RequiredWagered: 150000},
	{Level: 70, RequiredWagered: 300000},
	{Level: 100, RequiredWagered: 1000000},
}

// RecordWagerRequest is the payload for adding a settled bet to a user's
// lifetime wagered total
type RecordWagerRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// LevelInfo is the computed progression state for a user
type LevelInfo struct {
	Level           int     `json:"level"`
	Progress        float64 `json:"progress"`        // percent towards the next level, 0..100
	RequiredForNext float64 `json:"requiredForNext"` // total wagered needed to reach the next level, 0 at level 100
	TotalWagered    float64 `json:"totalWagered"`
}
