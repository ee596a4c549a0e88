// Package analytics computes read-only statistics over a snapshot of the
// hobby graph: range totals, time distributions and activity histograms.
package analytics

import (
	"sort"
	"time"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
	"github.com/hobbylab/hobbylab-core/pkg/timeutil"
)

// Source provides consistent copies of the graph and profile.
// *store.Store satisfies it.
type Source interface {
	Snapshot() *hobby.Graph
	Profile() gamification.UserProfile
}

// Aggregator computes reports on demand. It holds no state of its own.
type Aggregator struct {
	source Source
	clock  shared.Clock
}

// NewAggregator creates an aggregator reading from source. Calendar days are
// taken in the clock's location.
func NewAggregator(source Source, clock shared.Clock) *Aggregator {
	if clock == nil {
		clock = shared.NewSystemClock(nil)
	}
	return &Aggregator{source: source, clock: clock}
}

// ══════════════════════════════════════════════════════════════════════════════
// REPORT
// ══════════════════════════════════════════════════════════════════════════════

// Metrics are the aggregate figures of one range.
type Metrics struct {
	TotalTime        time.Duration
	SessionCount     int
	AveragePerDay    time.Duration // TotalTime / range's fixed day count
	TotalXP          int           // XP earned by sessions in range
	CompletedTasks   int           // tasks completed in range
	ActiveProjects   int           // all open projects, regardless of range
	BestStreak       int           // highest longest streak, regardless of range
	HobbiesPracticed int
}

// Share is one slice of a time distribution.
type Share struct {
	Key        string // hobby ID or category name
	Label      string
	Color      string
	Duration   time.Duration
	Percentage float64 // 0..100, 0 when the range total is zero
}

// Unit is the measure of histogram bucket values.
type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
)

// Bucket is one histogram bar covering [Start, End).
type Bucket struct {
	Start time.Time
	End   time.Time
	Label string
	Value float64
}

// Report is the full analytics view of one range.
type Report struct {
	Range        TimeRange
	Start        time.Time
	GeneratedAt  time.Time
	Metrics      Metrics
	ByHobby      []Share
	ByCategory   []Share
	Activity     []Bucket
	ActivityUnit Unit
}

// rangeSession is a filtered session with its owner resolved.
type rangeSession struct {
	session *hobby.Session
	owner   *hobby.Hobby
}

// Report computes metrics, distributions and the histogram for r.
func (a *Aggregator) Report(r TimeRange) Report {
	now := a.clock.Now()
	start := r.Start(now)
	g := a.source.Snapshot()

	sessions := sessionsSince(g, start)

	report := Report{
		Range:       r,
		Start:       start,
		GeneratedAt: now,
		Metrics:     metrics(g, sessions, start, r),
	}
	report.ByHobby = byHobby(g, sessions, report.Metrics.TotalTime)
	report.ByCategory = byCategory(sessions, report.Metrics.TotalTime)
	report.Activity, report.ActivityUnit = activity(r, now, sessions)
	return report
}

// sessionsSince returns sessions dated at or after start, in hobby order.
func sessionsSince(g *hobby.Graph, start time.Time) []rangeSession {
	var out []rangeSession
	for _, h := range g.Hobbies() {
		for _, s := range g.SessionsForHobby(h.ID) {
			if !s.Date.Before(start) {
				out = append(out, rangeSession{session: s, owner: h})
			}
		}
	}
	return out
}

func metrics(g *hobby.Graph, sessions []rangeSession, start time.Time, r TimeRange) Metrics {
	var m Metrics
	practiced := make(map[string]bool)
	for _, rs := range sessions {
		m.TotalTime += rs.session.Duration
		m.TotalXP += rs.session.XPEarned
		practiced[rs.owner.ID] = true
	}
	m.SessionCount = len(sessions)
	m.HobbiesPracticed = len(practiced)
	m.AveragePerDay = m.TotalTime / time.Duration(r.Days())

	for _, p := range g.AllProjects() {
		if !p.IsCompleted {
			m.ActiveProjects++
		}
		for _, t := range g.Tasks(p.ID) {
			if t.IsCompleted && t.CompletedDate != nil && !t.CompletedDate.Before(start) {
				m.CompletedTasks++
			}
		}
	}
	m.BestStreak = g.BestLongestStreak()
	return m
}

// percentage guards the division: an empty range yields 0.
func percentage(part, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func byHobby(g *hobby.Graph, sessions []rangeSession, total time.Duration) []Share {
	sums := make(map[string]time.Duration)
	for _, rs := range sessions {
		sums[rs.owner.ID] += rs.session.Duration
	}

	var shares []Share
	for _, h := range g.Hobbies() {
		d := sums[h.ID]
		if d <= 0 {
			continue
		}
		shares = append(shares, Share{
			Key:        h.ID,
			Label:      h.Name,
			Color:      h.Color,
			Duration:   d,
			Percentage: percentage(d, total),
		})
	}
	sortShares(shares)
	return shares
}

func byCategory(sessions []rangeSession, total time.Duration) []Share {
	sums := make(map[hobby.Category]time.Duration)
	for _, rs := range sessions {
		c := rs.owner.Category
		if !c.IsValid() {
			c = hobby.CategoryOther
		}
		sums[c] += rs.session.Duration
	}

	var shares []Share
	for _, c := range hobby.Categories() {
		d := sums[c]
		if d <= 0 {
			continue
		}
		info := c.Info()
		shares = append(shares, Share{
			Key:        info.Name,
			Label:      info.Name,
			Color:      info.Color,
			Duration:   d,
			Percentage: percentage(d, total),
		})
	}
	sortShares(shares)
	return shares
}

// sortShares orders by duration, largest first, keeping input order on ties.
func sortShares(shares []Share) {
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Duration > shares[j].Duration
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Histogram
// ─────────────────────────────────────────────────────────────────────────────

func activity(r TimeRange, now time.Time, sessions []rangeSession) ([]Bucket, Unit) {
	switch r {
	case RangeDay:
		return hourlyBuckets(now, sessions), UnitMinutes
	case RangeWeek:
		return dailyBuckets(now, 7, timeutil.FormatWeekday, sessions), UnitHours
	case RangeMonth:
		return dailyBuckets(now, 30, timeutil.FormatShortDate, sessions), UnitHours
	default:
		return monthlyBuckets(now, sessions), UnitHours
	}
}

// fill sums durations of sessions falling in each bucket's half-open interval.
func fill(buckets []Bucket, sessions []rangeSession, unit time.Duration) {
	for i := range buckets {
		var sum time.Duration
		for _, rs := range sessions {
			d := rs.session.Date
			if !d.Before(buckets[i].Start) && d.Before(buckets[i].End) {
				sum += rs.session.Duration
			}
		}
		buckets[i].Value = float64(sum) / float64(unit)
	}
}

// hourlyBuckets covers today in elapsed hours from local midnight: 24 buckets,
// or 23 and 25 on DST transition days. Buckets never overlap or leave gaps.
func hourlyBuckets(now time.Time, sessions []rangeSession) []Bucket {
	day := timeutil.StartOfDay(now)
	next := day.AddDate(0, 0, 1)

	buckets := make([]Bucket, 0, 25)
	for start := day; start.Before(next); start = start.Add(time.Hour) {
		buckets = append(buckets, Bucket{
			Start: start,
			End:   start.Add(time.Hour),
			Label: start.Format(timeutil.FormatTime),
		})
	}
	fill(buckets, sessions, time.Minute)
	return buckets
}

// dailyBuckets covers the n calendar days ending today.
func dailyBuckets(now time.Time, n int, layout string, sessions []rangeSession) []Bucket {
	today := timeutil.StartOfDay(now)
	buckets := make([]Bucket, n)
	for i := 0; i < n; i++ {
		day := today.AddDate(0, 0, -(n-1)+i)
		buckets[i] = Bucket{
			Start: day,
			End:   day.AddDate(0, 0, 1),
			Label: day.Format(layout),
		}
	}
	fill(buckets, sessions, time.Hour)
	return buckets
}

// monthlyBuckets covers the 12 calendar months ending with the current one.
func monthlyBuckets(now time.Time, sessions []rangeSession) []Bucket {
	first := timeutil.StartOfMonth(now)
	buckets := make([]Bucket, 12)
	for i := 0; i < 12; i++ {
		month := first.AddDate(0, -11+i, 0)
		buckets[i] = Bucket{
			Start: month,
			End:   month.AddDate(0, 1, 0),
			Label: month.Format(timeutil.FormatMonth),
		}
	}
	fill(buckets, sessions, time.Hour)
	return buckets
}
