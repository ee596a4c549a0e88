package gamification

import (
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENTS
// ══════════════════════════════════════════════════════════════════════════════

// AchievementKey is the stable identity of an achievement.
type AchievementKey string

const (
	// AchievementFirstSteps - first session logged.
	AchievementFirstSteps AchievementKey = "first_steps"
	// AchievementDiverseInterests - five hobbies tracked.
	AchievementDiverseInterests AchievementKey = "diverse_interests"
	// AchievementRisingStar - level 10 reached.
	AchievementRisingStar AchievementKey = "rising_star"
	// AchievementDedicated - seven day streak on one hobby.
	AchievementDedicated AchievementKey = "dedicated"
	// AchievementCenturyClub - one hundred sessions logged.
	AchievementCenturyClub AchievementKey = "century_club"
	// AchievementTimeMaster - one hundred hours logged.
	AchievementTimeMaster AchievementKey = "time_master"
	// AchievementTaskCrusher - fifty tasks completed.
	AchievementTaskCrusher AchievementKey = "task_crusher"
	// AchievementProjectPro - ten projects completed.
	AchievementProjectPro AchievementKey = "project_pro"
)

// AchievementCategory groups achievements for display.
type AchievementCategory string

const (
	CategoryConsistency AchievementCategory = "consistency"
	CategoryMilestone   AchievementCategory = "milestone"
	CategoryVariety     AchievementCategory = "variety"
	CategoryMastery     AchievementCategory = "mastery"
)

// Achievement is an unlocked (or, on a board, pending) achievement record.
type Achievement struct {
	ID           string              `json:"id"`
	Key          AchievementKey      `json:"key"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Icon         string              `json:"icon"`
	Category     AchievementCategory `json:"category"`
	IsUnlocked   bool                `json:"isUnlocked"`
	UnlockedDate *time.Time          `json:"unlockedDate,omitempty"`
}

// Clone returns a deep copy.
func (a Achievement) Clone() Achievement {
	if a.UnlockedDate != nil {
		d := *a.UnlockedDate
		a.UnlockedDate = &d
	}
	return a
}

// AchievementDefinition describes an achievement independent of any profile.
type AchievementDefinition struct {
	Key         AchievementKey
	Title       string
	Description string
	Icon        string
	Category    AchievementCategory
}

// definitions is ordered the way rules are evaluated.
var definitions = []AchievementDefinition{
	{AchievementFirstSteps, "First Steps", "Complete your first session", "flag.fill", CategoryMilestone},
	{AchievementDiverseInterests, "Diverse Interests", "Track 5 different hobbies", "star.fill", CategoryVariety},
	{AchievementRisingStar, "Rising Star", "Reach level 10", "sparkles", CategoryMastery},
	{AchievementDedicated, "Dedicated", "Log sessions for 7 days straight", "flame.fill", CategoryConsistency},
	{AchievementCenturyClub, "Century Club", "Complete 100 sessions", "100.circle.fill", CategoryMilestone},
	{AchievementTimeMaster, "Time Master", "Log 100 hours total", "clock.fill", CategoryMastery},
	{AchievementTaskCrusher, "Task Crusher", "Complete 50 tasks", "checkmark.circle.fill", CategoryMilestone},
	{AchievementProjectPro, "Project Pro", "Complete 10 projects", "folder.badge.checkmark", CategoryMilestone},
}

// Catalog returns every achievement definition in evaluation order.
func Catalog() []AchievementDefinition {
	out := make([]AchievementDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// Definition looks up a definition by key.
func Definition(key AchievementKey) (AchievementDefinition, bool) {
	for _, def := range definitions {
		if def.Key == key {
			return def, true
		}
	}
	return AchievementDefinition{}, false
}

// Board pairs every definition with the profile's unlock state. Locked
// entries have IsUnlocked false and no ID.
func Board(p UserProfile) []Achievement {
	unlocked := make(map[AchievementKey]Achievement, len(p.Achievements))
	for _, a := range p.Achievements {
		unlocked[a.Key] = a
	}

	board := make([]Achievement, 0, len(definitions))
	for _, def := range definitions {
		if a, ok := unlocked[def.Key]; ok {
			board = append(board, a.Clone())
			continue
		}
		board = append(board, Achievement{
			Key:         def.Key,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Category:    def.Category,
		})
	}
	return board
}
