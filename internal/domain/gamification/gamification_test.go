package gamification

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("ach-%d", s.n)
}

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func TestSessionXP(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{-time.Hour, 0},
		{5 * time.Minute, 0},
		{6 * time.Minute, 1},
		{18 * time.Minute, 3},
		{90 * time.Minute, 15},
		{2 * time.Hour, 20},
		{119 * time.Minute, 19},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, SessionXP(tt.d))
		})
	}
}

func TestAddXP_NormalizesOverflow(t *testing.T) {
	p := DefaultProfile("me", now)
	p.CurrentXP = 80

	levels := p.AddXP(250)

	// 330 at level 1: -100 -> level 2 with 230, -200 -> level 3 with 30.
	assert.Equal(t, 2, levels)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 30, p.CurrentXP)
	assert.Equal(t, 250, p.TotalXP)
	assert.Less(t, p.CurrentXP, XPForNextLevel(p.Level))
}

func TestAddXP_ExactBoundary(t *testing.T) {
	p := DefaultProfile("me", now)
	assert.Equal(t, 1, p.AddXP(100))
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 0, p.CurrentXP)
}

func TestAddXP_IgnoresNonPositive(t *testing.T) {
	p := DefaultProfile("me", now)
	assert.Equal(t, 0, p.AddXP(0))
	assert.Equal(t, 0, p.AddXP(-10))
	assert.Equal(t, 0, p.TotalXP)
}

func TestProgressToNextLevel(t *testing.T) {
	p := DefaultProfile("me", now)
	p.AddXP(150)
	assert.InDelta(t, 0.25, p.ProgressToNextLevel(), 1e-9)
	assert.Equal(t, 150, p.XPToNextLevel())
}

func TestEngine_EvaluateOrderAndIdempotence(t *testing.T) {
	engine := NewEngine(&seqIDs{})
	p := DefaultProfile("me", now)
	p.Level = 10

	facts := Facts{SessionCount: 1, HobbyCount: 5}
	unlocked := engine.Evaluate(&p, facts, now)

	require.Len(t, unlocked, 3)
	assert.Equal(t, AchievementFirstSteps, unlocked[0].Key)
	assert.Equal(t, AchievementDiverseInterests, unlocked[1].Key)
	assert.Equal(t, AchievementRisingStar, unlocked[2].Key)
	assert.Equal(t, "ach-1", unlocked[0].ID)
	assert.True(t, unlocked[0].IsUnlocked)
	require.NotNil(t, unlocked[0].UnlockedDate)
	assert.Equal(t, now, *unlocked[0].UnlockedDate)

	again := engine.Evaluate(&p, facts, now.Add(time.Hour))
	assert.Empty(t, again)
	assert.Len(t, p.Achievements, 3)
}

func TestEngine_ThresholdRules(t *testing.T) {
	tests := []struct {
		name  string
		facts Facts
		key   AchievementKey
	}{
		{"dedicated", Facts{BestCurrentStreak: 7}, AchievementDedicated},
		{"century club", Facts{SessionCount: 100}, AchievementCenturyClub},
		{"time master", Facts{TotalTime: 100 * time.Hour}, AchievementTimeMaster},
		{"task crusher", Facts{CompletedTasks: 50}, AchievementTaskCrusher},
		{"project pro", Facts{CompletedProjects: 10}, AchievementProjectPro},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile("me", now)
			NewEngine(&seqIDs{}).Evaluate(&p, tt.facts, now)
			assert.True(t, p.HasAchievement(tt.key))
		})
	}
}

func TestEngine_BelowThresholdUnlocksNothing(t *testing.T) {
	p := DefaultProfile("me", now)
	facts := Facts{
		SessionCount:      0,
		HobbyCount:        4,
		TotalTime:         99 * time.Hour,
		CompletedTasks:    49,
		CompletedProjects: 9,
		BestCurrentStreak: 6,
	}
	assert.Empty(t, NewEngine(&seqIDs{}).Evaluate(&p, facts, now))
}

func TestCatalogAndBoard(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 8)
	assert.Equal(t, "First Steps", catalog[0].Title)

	p := DefaultProfile("me", now)
	NewEngine(&seqIDs{}).Evaluate(&p, Facts{SessionCount: 1}, now)

	board := Board(p)
	require.Len(t, board, len(catalog))
	assert.True(t, board[0].IsUnlocked)
	for _, a := range board[1:] {
		assert.False(t, a.IsUnlocked, a.Title)
		assert.Nil(t, a.UnlockedDate)
	}
	assert.Equal(t, 1, p.UnlockedCount())
}

func TestProfileClone(t *testing.T) {
	p := DefaultProfile("me", now)
	NewEngine(&seqIDs{}).Evaluate(&p, Facts{SessionCount: 1}, now)

	c := p.Clone()
	*c.Achievements[0].UnlockedDate = now.Add(time.Hour)
	c.Achievements[0].Title = "x"

	assert.Equal(t, now, *p.Achievements[0].UnlockedDate)
	assert.Equal(t, "First Steps", p.Achievements[0].Title)
}
