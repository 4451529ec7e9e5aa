// utils/levels.go
package utils

import (
	"math"

	"github.com/RaspadinhaDigital/raspadinha_backend/models"
)

// RequiredForLevel returns the lifetime wagered amount required to reach
// level n, given the sparse checkpoint curve. Checkpoint levels return their
// stored value exactly; levels between checkpoints are linearly interpolated
// and floored to a whole currency unit. Levels below the first checkpoint
// fall back to a flat 20 per level.
func RequiredForLevel(n int, checkpoints []models.RewardCheckpoint) float64 {
	for _, cp := range checkpoints {
		if cp.Level == n {
			return cp.RequiredWagered
		}
	}

	var prev *models.RewardCheckpoint
	var next *models.RewardCheckpoint
	for i := range checkpoints {
		cp := &checkpoints[i]
		if cp.Level < n {
			prev = cp
		}
		if cp.Level > n && next == nil {
			next = cp
		}
	}

	if prev == nil {
		return float64(n) * 20
	}

	nextLevel := 100
	nextRequired := checkpoints[len(checkpoints)-1].RequiredWagered
	if next != nil {
		nextLevel = next.Level
		nextRequired = next.RequiredWagered
	}

	levelsBetween := float64(nextLevel - prev.Level)
	positionBetween := float64(n - prev.Level)
	return math.Floor(prev.RequiredWagered + (nextRequired-prev.RequiredWagered)/levelsBetween*positionBetween)
}

// LevelOf computes a user's progression level from their lifetime wagered
// amount. The level is the highest n in 1..100 whose requirement is met;
// below the first requirement the level is 0. Negative input is clamped to
// zero rather than rejected, the calculation has no side effects to protect.
func LevelOf(totalWagered float64, checkpoints []models.RewardCheckpoint) models.LevelInfo {
	if totalWagered < 0 {
		totalWagered = 0
	}

	level := 0
	for n := 1; n <= 100; n++ {
		if totalWagered >= RequiredForLevel(n, checkpoints) {
			level = n
		} else {
			break
		}
	}

	info := models.LevelInfo{
		Level:        level,
		TotalWagered: totalWagered,
	}

	if level >= 100 {
		info.Progress = 100
		return info
	}

	current := 0.0
	if level > 0 {
		current = RequiredForLevel(level, checkpoints)
	}
	next := RequiredForLevel(level+1, checkpoints)
	info.RequiredForNext = next

	if next > current {
		progress := (totalWagered - current) / (next - current) * 100
		info.Progress = math.Max(0, math.Min(progress, 100))
	}
	return info
}
