// Package streak computes consecutive-day practice streaks per hobby.
package streak

import (
	"sort"
	"time"

	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/pkg/timeutil"
)

// Change describes the outcome of a streak recomputation.
type Change struct {
	Old     int
	Current int
	Longest int
	Changed bool // Current differs from Old
	Record  bool // Longest grew
}

// Calculator recomputes hobby streaks from session dates.
type Calculator struct{}

// NewCalculator creates a calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Walk counts the run of sessions reachable from now by steps of at most one
// calendar day, newest first. Several sessions on the same day each count.
// Calendar days are taken in now's location.
func Walk(dates []time.Time, now time.Time) int {
	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].After(sorted[j])
	})

	loc := now.Location()
	ref := now
	count := 0
	for _, d := range sorted {
		d = d.In(loc)
		if timeutil.DaysBetween(d, ref) > 1 {
			break
		}
		count++
		ref = d
	}
	return count
}

// Update recomputes h's current streak from sessions and ratchets the longest
// streak. With no sessions the hobby is left unchanged.
func (c *Calculator) Update(h *hobby.Hobby, sessions []*hobby.Session, now time.Time) Change {
	res := Change{Old: h.CurrentStreak, Current: h.CurrentStreak, Longest: h.LongestStreak}
	if len(sessions) == 0 {
		return res
	}

	dates := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		dates = append(dates, s.Date)
	}

	count := Walk(dates, now)
	h.CurrentStreak = count
	if count > h.LongestStreak {
		h.LongestStreak = count
		res.Record = true
	}

	res.Current = h.CurrentStreak
	res.Longest = h.LongestStreak
	res.Changed = res.Current != res.Old
	return res
}

// IsBroken reports whether a streak last extended on lastActive has lapsed,
// i.e. neither today nor yesterday had activity.
func IsBroken(lastActive, now time.Time) bool {
	if lastActive.IsZero() {
		return false
	}
	return timeutil.DaysBetween(lastActive.In(now.Location()), now) > 1
}

// DaysUntilBreak returns how many calendar days remain before the streak
// lapses: 2 if active today, 1 if the user must practice today, 0 if broken.
func DaysUntilBreak(lastActive, now time.Time) int {
	if lastActive.IsZero() {
		return 0
	}

	switch timeutil.DaysBetween(lastActive.In(now.Location()), now) {
	case 0:
		return 2
	case 1:
		return 1
	default:
		return 0
	}
}

// LastActive returns the newest session date, or the zero time.
func LastActive(sessions []*hobby.Session) time.Time {
	var last time.Time
	for _, s := range sessions {
		if s.Date.After(last) {
			last = s.Date
		}
	}
	return last
}
