package gamification

import (
	"time"

	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

// Facts are the aggregate graph figures achievement rules depend on.
type Facts struct {
	SessionCount      int
	HobbyCount        int
	TotalTime         time.Duration
	CompletedTasks    int
	CompletedProjects int
	BestCurrentStreak int
}

// Rule thresholds.
const (
	FirstStepsSessions      = 1
	DiverseInterestsHobbies = 5
	RisingStarLevel         = 10
	DedicatedStreakDays     = 7
	CenturyClubSessions     = 100
	TimeMasterHours         = 100
	TaskCrusherTasks        = 50
	ProjectProProjects      = 10
)

type rule struct {
	key   AchievementKey
	holds func(p *UserProfile, f Facts) bool
}

var rules = []rule{
	{AchievementFirstSteps, func(_ *UserProfile, f Facts) bool { return f.SessionCount >= FirstStepsSessions }},
	{AchievementDiverseInterests, func(_ *UserProfile, f Facts) bool { return f.HobbyCount >= DiverseInterestsHobbies }},
	{AchievementRisingStar, func(p *UserProfile, _ Facts) bool { return p.Level >= RisingStarLevel }},
	{AchievementDedicated, func(_ *UserProfile, f Facts) bool { return f.BestCurrentStreak >= DedicatedStreakDays }},
	{AchievementCenturyClub, func(_ *UserProfile, f Facts) bool { return f.SessionCount >= CenturyClubSessions }},
	{AchievementTimeMaster, func(_ *UserProfile, f Facts) bool { return f.TotalTime >= TimeMasterHours*time.Hour }},
	{AchievementTaskCrusher, func(_ *UserProfile, f Facts) bool { return f.CompletedTasks >= TaskCrusherTasks }},
	{AchievementProjectPro, func(_ *UserProfile, f Facts) bool { return f.CompletedProjects >= ProjectProProjects }},
}

// Engine evaluates achievement rules against a profile.
type Engine struct {
	ids shared.IDGenerator
}

// NewEngine creates an engine that tags unlocks with IDs from ids.
func NewEngine(ids shared.IDGenerator) *Engine {
	return &Engine{ids: ids}
}

// Evaluate runs every rule in order and appends newly satisfied achievements
// to the profile. Rules already unlocked are skipped, so repeated calls with
// unchanged facts unlock nothing. Returns the new unlocks.
func (e *Engine) Evaluate(p *UserProfile, facts Facts, now time.Time) []Achievement {
	existing := make(map[AchievementKey]bool, len(p.Achievements))
	for _, a := range p.Achievements {
		existing[a.Key] = true
	}

	var unlocked []Achievement
	for _, r := range rules {
		if existing[r.key] || !r.holds(p, facts) {
			continue
		}
		def, _ := Definition(r.key)
		at := now
		a := Achievement{
			ID:           e.ids.NewID(),
			Key:          def.Key,
			Title:        def.Title,
			Description:  def.Description,
			Icon:         def.Icon,
			Category:     def.Category,
			IsUnlocked:   true,
			UnlockedDate: &at,
		}
		p.Achievements = append(p.Achievements, a)
		existing[r.key] = true
		unlocked = append(unlocked, a.Clone())
	}
	return unlocked
}
