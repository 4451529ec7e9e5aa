package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RaspadinhaDigital/raspadinha_backend/models"
)

// the sparse curve used by the interpolation examples
var smallCheckpoints = []models.RewardCheckpoint{
	{Level: 1, RequiredWagered: 100},
	{Level: 5, RequiredWagered: 1000},
	{Level: 10, RequiredWagered: 5000},
}

func TestRequiredForLevelCheckpointExactness(t *testing.T) {
	for _, cp := range models.DefaultRewardCheckpoints {
		got := RequiredForLevel(cp.Level, models.DefaultRewardCheckpoints)
		require.Equal(t, cp.RequiredWagered, got, "level=%d", cp.Level)
	}
}

func TestRequiredForLevelInterpolation(t *testing.T) {
	tests := []struct {
		level    int
		expected float64
	}{
		{2, 325},  // 100 + (1000-100)/4*1
		{3, 550},  // 100 + (1000-100)/4*2
		{4, 775},  // 100 + (1000-100)/4*3
		{6, 1800}, // 1000 + (5000-1000)/5*1
		{7, 2600},
		{9, 4200},
	}

	for _, ts := range tests {
		got := RequiredForLevel(ts.level, smallCheckpoints)
		require.Equal(t, ts.expected, got, "level=%d", ts.level)
	}
}

func TestRequiredForLevelFallbackBelowFirstAnchor(t *testing.T) {
	// with no checkpoint below n the requirement is a flat 20 per level
	checkpoints := []models.RewardCheckpoint{{Level: 5, RequiredWagered: 1000}}

	require.Equal(t, float64(20), RequiredForLevel(1, checkpoints))
	require.Equal(t, float64(60), RequiredForLevel(3, checkpoints))
	require.Equal(t, float64(80), RequiredForLevel(4, checkpoints))
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		name        string
		wagered     float64
		checkpoints []models.RewardCheckpoint
		expected    int
	}{
		{"zero wagered", 0, models.DefaultRewardCheckpoints, 0},
		{"below first checkpoint", 99.99, models.DefaultRewardCheckpoints, 0},
		{"exactly first checkpoint", 100, models.DefaultRewardCheckpoints, 1},
		{"interpolated mid band", 550, smallCheckpoints, 3},
		{"exactly level five", 1000, models.DefaultRewardCheckpoints, 5},
		{"just below level hundred", 999999, models.DefaultRewardCheckpoints, 99},
		{"level hundred", 1000000, models.DefaultRewardCheckpoints, 100},
		{"beyond level hundred", 2500000, models.DefaultRewardCheckpoints, 100},
		{"negative clamps to zero", -50, models.DefaultRewardCheckpoints, 0},
	}

	for _, ts := range tests {
		ts := ts
		t.Run(ts.name, func(t *testing.T) {
			info := LevelOf(ts.wagered, ts.checkpoints)
			require.Equal(t, ts.expected, info.Level)
			require.GreaterOrEqual(t, info.Progress, 0.0)
			require.LessOrEqual(t, info.Progress, 100.0)
		})
	}
}

func TestLevelOfCheckpointBoundaries(t *testing.T) {
	// reaching a checkpoint's stored requirement lands exactly on its level,
	// and one currency unit less stays strictly below it
	for _, cp := range models.DefaultRewardCheckpoints {
		at := LevelOf(cp.RequiredWagered, models.DefaultRewardCheckpoints)
		require.Equal(t, cp.Level, at.Level, "at requirement for level %d", cp.Level)

		below := LevelOf(cp.RequiredWagered-1, models.DefaultRewardCheckpoints)
		require.Less(t, below.Level, cp.Level, "below requirement for level %d", cp.Level)
	}
}

func TestLevelOfMonotonic(t *testing.T) {
	prev := -1
	for wagered := 0.0; wagered <= 30000; wagered += 37 {
		info := LevelOf(wagered, models.DefaultRewardCheckpoints)
		require.GreaterOrEqual(t, info.Level, prev, "wagered=%.0f", wagered)
		prev = info.Level
	}
}

func TestLevelOfProgress(t *testing.T) {
	// exactly at a level's requirement the progress towards the next is zero
	info := LevelOf(550, smallCheckpoints)
	require.Equal(t, 3, info.Level)
	require.Equal(t, 0.0, info.Progress)
	require.Equal(t, float64(775), info.RequiredForNext)

	// halfway through the band
	halfway := LevelOf(662.5, smallCheckpoints)
	require.Equal(t, 3, halfway.Level)
	require.InDelta(t, 50.0, halfway.Progress, 0.01)

	// at the top there is no next requirement
	top := LevelOf(1000000, models.DefaultRewardCheckpoints)
	require.Equal(t, 100, top.Level)
	require.Equal(t, 100.0, top.Progress)
	require.Equal(t, 0.0, top.RequiredForNext)
}
