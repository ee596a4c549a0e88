// Package gamification implements experience points, leveling and
// achievements for the user profile.
package gamification

import (
	"time"
)

// Profile defaults.
const (
	DefaultName   = "Hobbyist"
	DefaultAvatar = "🎨"
	StartLevel    = 1
)

// XP awards.
const (
	// SessionXPPerHour is the XP earned per hour of logged practice.
	SessionXPPerHour = 10

	// TaskCompletionXP is awarded when a task moves to completed.
	TaskCompletionXP = 5
)

// UserProfile is the process-wide player state.
type UserProfile struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	AvatarEmoji  string        `json:"avatarEmoji"`
	Level        int           `json:"level"`
	CurrentXP    int           `json:"currentXP"`
	TotalXP      int           `json:"totalXP"`
	Achievements []Achievement `json:"achievements"`
	JoinDate     time.Time     `json:"joinDate"`
}

// DefaultProfile creates a fresh level-1 profile.
func DefaultProfile(id string, now time.Time) UserProfile {
	return UserProfile{
		ID:           id,
		Name:         DefaultName,
		AvatarEmoji:  DefaultAvatar,
		Level:        StartLevel,
		Achievements: []Achievement{},
		JoinDate:     now,
	}
}

// XPForNextLevel returns the XP needed to leave the given level.
func XPForNextLevel(level int) int {
	return level * 100
}

// SessionXP converts a session duration into XP, rounded down.
func SessionXP(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d * SessionXPPerHour / time.Hour)
}

// AddXP credits amount to both counters and normalizes overflow into level-ups.
// Returns the number of levels gained. Non-positive amounts are ignored.
func (p *UserProfile) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	if p.Level < StartLevel {
		p.Level = StartLevel
	}

	p.CurrentXP += amount
	p.TotalXP += amount

	gained := 0
	for p.CurrentXP >= XPForNextLevel(p.Level) {
		p.CurrentXP -= XPForNextLevel(p.Level)
		p.Level++
		gained++
	}
	return gained
}

// XPToNextLevel returns the XP still missing for the next level.
func (p UserProfile) XPToNextLevel() int {
	return XPForNextLevel(p.Level) - p.CurrentXP
}

// ProgressToNextLevel returns the fraction of the current level completed.
func (p UserProfile) ProgressToNextLevel() float64 {
	need := XPForNextLevel(p.Level)
	if need <= 0 {
		return 0
	}
	return float64(p.CurrentXP) / float64(need)
}

// HasAchievement reports whether the key is already unlocked.
func (p UserProfile) HasAchievement(key AchievementKey) bool {
	for _, a := range p.Achievements {
		if a.Key == key {
			return true
		}
	}
	return false
}

// UnlockedCount returns the number of unlocked achievements.
func (p UserProfile) UnlockedCount() int {
	n := 0
	for _, a := range p.Achievements {
		if a.IsUnlocked {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Achievements = make([]Achievement, len(p.Achievements))
	for i, a := range p.Achievements {
		out.Achievements[i] = a.Clone()
	}
	return out
}
