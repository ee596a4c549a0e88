// Package hobby holds the hobby entity graph: hobbies, projects, tasks,
// sessions and ideas, stored in a flat arena keyed by identity.
package hobby

import (
	"time"
)

// Default presentation values for new hobbies.
const (
	DefaultColor = "#55BEEB"
	DefaultIcon  = "star.fill"
)

// Hobby is a top-level tracked pursuit.
type Hobby struct {
	ID             string
	Name           string
	Category       Category
	Color          string // hex
	Icon           string // SF Symbol name
	CreatedDate    time.Time
	TotalTimeSpent time.Duration // incremented on session creation, never decremented
	CurrentStreak  int
	LongestStreak  int
}

// Project is a scoped goal within a hobby.
type Project struct {
	ID             string
	HobbyID        string
	Name           string
	Description    string
	StartDate      time.Time
	TargetEndDate  *time.Time
	CompletionDate *time.Time
	Progress       float64 // 0.0 to 1.0, derived by RecomputeProgress
	IsCompleted    bool
}

// Task is a to-do item inside a project.
type Task struct {
	ID            string
	ProjectID     string
	Title         string
	Description   string
	IsCompleted   bool
	CompletedDate *time.Time
	CreatedDate   time.Time
	Priority      Priority
}

// Session is a single logged practice interval.
type Session struct {
	ID        string
	HobbyID   string
	ProjectID string // empty when logged against the hobby only
	Date      time.Time
	Duration  time.Duration
	Notes     string
	Tags      []string
	MediaURLs []string
	XPEarned  int
}

// HasProject reports whether the session is attached to a project.
func (s Session) HasProject() bool {
	return s.ProjectID != ""
}

// Idea is a freeform note attached to a hobby.
type Idea struct {
	ID          string
	HobbyID     string
	Title       string
	Content     string
	Links       []string
	Tags        []string
	ImageURLs   []string
	CreatedDate time.Time
	IsFavorite  bool
}

// ProgressFor derives project progress from task and session counts.
func ProgressFor(taskCount, completedTasks, sessionCount int) float64 {
	if taskCount == 0 {
		if sessionCount > 0 {
			return 0.5
		}
		return 0.0
	}
	return float64(completedTasks) / float64(taskCount)
}

// cloneStrings copies a string slice, keeping nil as nil.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	p.TargetEndDate = cloneTime(p.TargetEndDate)
	p.CompletionDate = cloneTime(p.CompletionDate)
	return p
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	t.CompletedDate = cloneTime(t.CompletedDate)
	return t
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	s.Tags = cloneStrings(s.Tags)
	s.MediaURLs = cloneStrings(s.MediaURLs)
	return s
}

// Clone returns a deep copy of the idea.
func (i Idea) Clone() Idea {
	i.Links = cloneStrings(i.Links)
	i.Tags = cloneStrings(i.Tags)
	i.ImageURLs = cloneStrings(i.ImageURLs)
	return i
}
