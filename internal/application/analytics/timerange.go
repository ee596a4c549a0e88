package analytics

import (
	"strings"
	"time"

	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
	"github.com/hobbylab/hobbylab-core/pkg/timeutil"
)

// TimeRange is the reporting window selected by the user.
type TimeRange int

const (
	RangeDay TimeRange = iota
	RangeWeek
	RangeMonth
	RangeYear

	rangeCount
)

var rangeTable = [rangeCount]struct {
	Name string
	Days int // fixed divisor for per-day averages
}{
	RangeDay:   {"day", 1},
	RangeWeek:  {"week", 7},
	RangeMonth: {"month", 30},
	RangeYear:  {"year", 365},
}

// Ranges lists every time range.
func Ranges() []TimeRange {
	return []TimeRange{RangeDay, RangeWeek, RangeMonth, RangeYear}
}

// IsValid reports whether r is a declared range.
func (r TimeRange) IsValid() bool {
	return r >= 0 && r < rangeCount
}

// String returns the range name.
func (r TimeRange) String() string {
	if !r.IsValid() {
		return "unknown"
	}
	return rangeTable[r].Name
}

// Days returns the fixed day count used for averages: 1, 7, 30 or 365.
// It is not the number of calendar days actually elapsed.
func (r TimeRange) Days() int {
	if !r.IsValid() {
		return 1
	}
	return rangeTable[r].Days
}

// Start returns the inclusive lower bound of the range ending at now:
// start of today, now minus 7 days, minus one month or minus one year.
// Month arithmetic clamps to the end of the target month.
func (r TimeRange) Start(now time.Time) time.Time {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return timeutil.AddMonths(now, -1)
	case RangeYear:
		return timeutil.AddMonths(now, -12)
	default:
		return timeutil.StartOfDay(now)
	}
}

// ParseTimeRange resolves a range name, case-insensitively.
func ParseTimeRange(s string) (TimeRange, error) {
	for r := TimeRange(0); r < rangeCount; r++ {
		if strings.EqualFold(rangeTable[r].Name, strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return RangeWeek, shared.ErrUnknownTimeRange
}
