package shared

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts the current time so calendar-sensitive logic can be tested.
type Clock interface {
	Now() time.Time
}

// SystemClock returns wall-clock time in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a clock reporting time in loc (time.Local if nil).
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

// Now implements Clock.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now implements Clock.
func (c FixedClock) Now() time.Time {
	return c.T
}

// IDGenerator produces opaque identities that stay stable across save/load.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUID v4 identities.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
