package analytics

import (
	"sort"
	"time"

	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// CALENDAR VIEWS
// ══════════════════════════════════════════════════════════════════════════════

// HobbyWeek is one hobby's activity in the current Monday-based week.
type HobbyWeek struct {
	HobbyID  string
	Name     string
	Color    string
	Time     time.Duration
	Sessions int
}

// WeeklyStats returns every hobby's activity since Monday 00:00, in hobby
// order. Hobbies without sessions this week are included with zero values.
func (a *Aggregator) WeeklyStats() []HobbyWeek {
	now := a.clock.Now()
	start := timeutil.StartOfWeek(now)
	end := start.AddDate(0, 0, 7)
	g := a.source.Snapshot()

	out := make([]HobbyWeek, 0, g.HobbyCount())
	for _, h := range g.Hobbies() {
		week := HobbyWeek{HobbyID: h.ID, Name: h.Name, Color: h.Color}
		for _, s := range g.SessionsForHobby(h.ID) {
			if !s.Date.Before(start) && s.Date.Before(end) {
				week.Time += s.Duration
				week.Sessions++
			}
		}
		out = append(out, week)
	}
	return out
}

// DaySession is a session with its hobby's display data.
type DaySession struct {
	hobby.Session
	HobbyName  string
	HobbyColor string
}

// DaySessions lists the sessions on the calendar day containing day, newest
// first. The day is resolved in the clock's location.
func (a *Aggregator) DaySessions(day time.Time) []DaySession {
	loc := a.clock.Now().Location()
	start := timeutil.StartOfDay(day.In(loc))
	end := start.AddDate(0, 0, 1)
	g := a.source.Snapshot()

	var out []DaySession
	for _, h := range g.Hobbies() {
		for _, s := range g.SessionsForHobby(h.ID) {
			if s.Date.Before(start) || !s.Date.Before(end) {
				continue
			}
			ds := DaySession{Session: *s, HobbyName: h.Name, HobbyColor: h.Color}
			ds.Tags = append([]string(nil), s.Tags...)
			ds.MediaURLs = append([]string(nil), s.MediaURLs...)
			out = append(out, ds)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// DayActivity is one calendar cell of a month view.
type DayActivity struct {
	Date     time.Time
	Sessions int
	Time     time.Duration
}

// Active reports whether anything was logged on the day.
func (d DayActivity) Active() bool { return d.Sessions > 0 }

// MonthActivity returns one entry per day of the given month.
func (a *Aggregator) MonthActivity(year int, month time.Month) []DayActivity {
	loc := a.clock.Now().Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	n := timeutil.DaysInMonth(year, month, loc)
	g := a.source.Snapshot()

	days := make([]DayActivity, n)
	for i := range days {
		days[i].Date = first.AddDate(0, 0, i)
	}
	end := first.AddDate(0, 0, n)
	for _, h := range g.Hobbies() {
		for _, s := range g.SessionsForHobby(h.ID) {
			d := s.Date.In(loc)
			if d.Before(first) || !d.Before(end) {
				continue
			}
			idx := d.Day() - 1
			days[idx].Sessions++
			days[idx].Time += s.Duration
		}
	}
	return days
}

// ─────────────────────────────────────────────────────────────────────────────
// Profile summary
// ─────────────────────────────────────────────────────────────────────────────

// Summary is the all-time overview shown next to the user profile.
type Summary struct {
	Level                int
	TotalXP              int
	Hobbies              int
	TotalProjects        int
	CompletedTasks       int
	LongestStreak        int
	TotalTime            time.Duration // sum of the per-hobby counters
	UnlockedAchievements int
}

// ProfileSummary aggregates all-time figures.
func (a *Aggregator) ProfileSummary() Summary {
	g := a.source.Snapshot()
	p := a.source.Profile()
	return Summary{
		Level:                p.Level,
		TotalXP:              p.TotalXP,
		Hobbies:              g.HobbyCount(),
		TotalProjects:        len(g.AllProjects()),
		CompletedTasks:       g.CompletedTaskCount(),
		LongestStreak:        g.BestLongestStreak(),
		TotalTime:            g.TotalTimeSpent(),
		UnlockedAchievements: p.UnlockedCount(),
	}
}
