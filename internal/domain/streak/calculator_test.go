package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
)

var now = time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)

func daysAgo(n int, hour int) time.Time {
	return time.Date(2026, 10, 17-n, hour, 0, 0, 0, time.UTC)
}

func sessionsOn(dates ...time.Time) []*hobby.Session {
	out := make([]*hobby.Session, 0, len(dates))
	for _, d := range dates {
		out = append(out, &hobby.Session{HobbyID: "h", Date: d, Duration: time.Hour})
	}
	return out
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"today only", []time.Time{daysAgo(0, 9)}, 1},
		{"yesterday only", []time.Time{daysAgo(1, 9)}, 1},
		{"two days ago breaks", []time.Time{daysAgo(2, 9)}, 0},
		{"gap stops the walk", []time.Time{daysAgo(0, 9), daysAgo(1, 9), daysAgo(2, 9), daysAgo(5, 9)}, 3},
		{"unsorted input", []time.Time{daysAgo(2, 9), daysAgo(0, 9), daysAgo(1, 9)}, 3},
		{"same day counts twice", []time.Time{daysAgo(0, 8), daysAgo(0, 12), daysAgo(1, 9)}, 3},
		{"late night to early morning", []time.Time{daysAgo(0, 0), daysAgo(1, 23)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Walk(tt.dates, now))
		})
	}
}

func TestCalculator_Update(t *testing.T) {
	calc := NewCalculator()
	sessions := sessionsOn(daysAgo(0, 9), daysAgo(1, 9), daysAgo(2, 9), daysAgo(5, 9))

	t.Run("ratchets longest upward", func(t *testing.T) {
		h := &hobby.Hobby{ID: "h", CurrentStreak: 1, LongestStreak: 2}
		res := calc.Update(h, sessions, now)

		assert.Equal(t, 3, h.CurrentStreak)
		assert.Equal(t, 3, h.LongestStreak)
		assert.True(t, res.Changed)
		assert.True(t, res.Record)
		assert.Equal(t, 1, res.Old)
	})

	t.Run("keeps a higher longest", func(t *testing.T) {
		h := &hobby.Hobby{ID: "h", LongestStreak: 5}
		res := calc.Update(h, sessions, now)

		assert.Equal(t, 3, h.CurrentStreak)
		assert.Equal(t, 5, h.LongestStreak)
		assert.False(t, res.Record)
	})

	t.Run("no sessions leaves fields unchanged", func(t *testing.T) {
		h := &hobby.Hobby{ID: "h", CurrentStreak: 4, LongestStreak: 6}
		res := calc.Update(h, nil, now)

		assert.Equal(t, 4, h.CurrentStreak)
		assert.Equal(t, 6, h.LongestStreak)
		assert.False(t, res.Changed)
	})

	t.Run("stale sessions reset current", func(t *testing.T) {
		h := &hobby.Hobby{ID: "h", CurrentStreak: 4, LongestStreak: 4}
		calc.Update(h, sessionsOn(daysAgo(3, 9)), now)

		assert.Equal(t, 0, h.CurrentStreak)
		assert.Equal(t, 4, h.LongestStreak)
	})
}

func TestIsBroken(t *testing.T) {
	assert.False(t, IsBroken(time.Time{}, now))
	assert.False(t, IsBroken(daysAgo(0, 1), now))
	assert.False(t, IsBroken(daysAgo(1, 23), now))
	assert.True(t, IsBroken(daysAgo(2, 23), now))
}

func TestDaysUntilBreak(t *testing.T) {
	assert.Equal(t, 2, DaysUntilBreak(daysAgo(0, 7), now))
	assert.Equal(t, 1, DaysUntilBreak(daysAgo(1, 7), now))
	assert.Equal(t, 0, DaysUntilBreak(daysAgo(4, 7), now))
	assert.Equal(t, 0, DaysUntilBreak(time.Time{}, now))
}

func TestLastActive(t *testing.T) {
	assert.True(t, LastActive(nil).IsZero())
	assert.Equal(t, daysAgo(0, 9), LastActive(sessionsOn(daysAgo(2, 9), daysAgo(0, 9), daysAgo(1, 9))))
}
