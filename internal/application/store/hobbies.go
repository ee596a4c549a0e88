package store

import (
	"context"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// HOBBIES
// ══════════════════════════════════════════════════════════════════════════════

// AddHobby stores a new hobby with a fresh identity and zeroed counters.
// Missing color and icon fall back to the defaults.
func (s *Store) AddHobby(ctx context.Context, h hobby.Hobby) hobby.Hobby {
	var out hobby.Hobby
	s.write(ctx, func(b *batch) bool {
		h.ID = s.ids.NewID()
		if h.CreatedDate.IsZero() {
			h.CreatedDate = b.now
		}
		if h.Color == "" {
			h.Color = hobby.DefaultColor
		}
		if h.Icon == "" {
			h.Icon = hobby.DefaultIcon
		}
		if !h.Category.IsValid() {
			h.Category = hobby.CategoryOther
		}
		h.TotalTimeSpent = 0
		h.CurrentStreak = 0
		h.LongestStreak = 0

		out = *s.graph.InsertHobby(h)
		b.add(shared.NewHobbyCreatedEvent(h.ID, h.Name, h.Category.String(), b.now))
		s.logger.Debug("hobby added", "hobby_id", h.ID, "name", h.Name)

		s.evaluateAchievements(b)
		return true
	})
	return out
}

// UpdateHobby replaces name, category, color and icon of an existing hobby.
// Empty or invalid values keep the stored ones. Counters and streaks are kept.
func (s *Store) UpdateHobby(ctx context.Context, h hobby.Hobby) shared.Result[hobby.Hobby] {
	res := shared.NotFound[hobby.Hobby]()
	s.write(ctx, func(b *batch) bool {
		stored, ok := s.graph.Hobby(h.ID)
		if !ok {
			return false
		}
		if h.Name != "" {
			stored.Name = h.Name
		}
		if h.Category.IsValid() {
			stored.Category = h.Category
		}
		if h.Color != "" {
			stored.Color = h.Color
		}
		if h.Icon != "" {
			stored.Icon = h.Icon
		}
		res = shared.Found(*stored)
		return true
	})
	return res
}

// DeleteHobby removes a hobby with its projects, tasks, sessions and ideas.
func (s *Store) DeleteHobby(ctx context.Context, id string) shared.Result[hobby.Hobby] {
	res := shared.NotFound[hobby.Hobby]()
	s.write(ctx, func(b *batch) bool {
		removed, ok := s.graph.RemoveHobby(id)
		if !ok {
			return false
		}
		b.add(shared.NewHobbyDeletedEvent(removed.ID, removed.Name, b.now))
		s.logger.Debug("hobby deleted", "hobby_id", id)
		res = shared.Found(removed)
		return true
	})
	return res
}

// ══════════════════════════════════════════════════════════════════════════════
// PROJECTS
// ══════════════════════════════════════════════════════════════════════════════

// AddProject attaches a new, open project to the hobby.
func (s *Store) AddProject(ctx context.Context, hobbyID string, p hobby.Project) shared.Result[hobby.Project] {
	res := shared.NotFound[hobby.Project]()
	s.write(ctx, func(b *batch) bool {
		p.ID = s.ids.NewID()
		p.HobbyID = hobbyID
		if p.StartDate.IsZero() {
			p.StartDate = b.now
		}
		p.IsCompleted = false
		p.CompletionDate = nil
		p.Progress = 0

		stored, ok := s.graph.InsertProject(p)
		if !ok {
			return false
		}
		s.graph.RecomputeProgress(stored.ID)
		res = shared.Found(stored.Clone())
		return true
	})
	return res
}

// UpdateProject replaces name, description and target end date. Progress is
// always derived, never taken from the input.
func (s *Store) UpdateProject(ctx context.Context, hobbyID string, p hobby.Project) shared.Result[hobby.Project] {
	res := shared.NotFound[hobby.Project]()
	s.write(ctx, func(b *batch) bool {
		stored, ok := s.graph.Project(hobbyID, p.ID)
		if !ok {
			return false
		}
		stored.Name = p.Name
		stored.Description = p.Description
		stored.TargetEndDate = p.Clone().TargetEndDate
		s.graph.RecomputeProgress(stored.ID)
		res = shared.Found(stored.Clone())
		return true
	})
	return res
}

// SetProjectCompleted marks a project done or reopens it.
func (s *Store) SetProjectCompleted(ctx context.Context, hobbyID, projectID string, completed bool) shared.Result[hobby.Project] {
	res := shared.NotFound[hobby.Project]()
	s.write(ctx, func(b *batch) bool {
		stored, ok := s.graph.Project(hobbyID, projectID)
		if !ok {
			return false
		}
		wasCompleted := stored.IsCompleted
		stored.IsCompleted = completed
		if completed {
			if !wasCompleted {
				at := b.now
				stored.CompletionDate = &at
				b.add(shared.NewProjectCompletedEvent(stored.ID, hobbyID, stored.Name, b.now))
			}
		} else {
			stored.CompletionDate = nil
		}
		res = shared.Found(stored.Clone())

		s.evaluateAchievements(b)
		return true
	})
	return res
}

// DeleteProject removes a project with its tasks and sessions. The hobby's
// time counter keeps the removed sessions' durations.
func (s *Store) DeleteProject(ctx context.Context, hobbyID, projectID string) shared.Result[hobby.Project] {
	res := shared.NotFound[hobby.Project]()
	s.write(ctx, func(b *batch) bool {
		removed, ok := s.graph.RemoveProject(hobbyID, projectID)
		if !ok {
			return false
		}
		if h, ok := s.graph.Hobby(hobbyID); ok {
			s.resetOrRefreshStreak(b, h)
		}
		res = shared.Found(removed)
		return true
	})
	return res
}

// ══════════════════════════════════════════════════════════════════════════════
// TASKS
// ══════════════════════════════════════════════════════════════════════════════

// AddTask appends an open task to the project and recomputes its progress.
func (s *Store) AddTask(ctx context.Context, hobbyID, projectID string, t hobby.Task) shared.Result[hobby.Task] {
	res := shared.NotFound[hobby.Task]()
	s.write(ctx, func(b *batch) bool {
		if _, ok := s.graph.Project(hobbyID, projectID); !ok {
			return false
		}
		t.ID = s.ids.NewID()
		t.ProjectID = projectID
		if t.CreatedDate.IsZero() {
			t.CreatedDate = b.now
		}
		if !t.Priority.IsValid() {
			t.Priority = hobby.PriorityMedium
		}
		t.IsCompleted = false
		t.CompletedDate = nil

		stored, _ := s.graph.InsertTask(t)
		s.graph.RecomputeProgress(projectID)
		res = shared.Found(stored.Clone())
		return true
	})
	return res
}

// ToggleTask flips a task's completion. Completing stamps the date and awards
// TaskCompletionXP; reopening clears the date and takes no XP back.
func (s *Store) ToggleTask(ctx context.Context, hobbyID, projectID, taskID string) shared.Result[hobby.Task] {
	res := shared.NotFound[hobby.Task]()
	s.write(ctx, func(b *batch) bool {
		if _, ok := s.graph.Project(hobbyID, projectID); !ok {
			return false
		}
		t, ok := s.graph.Task(projectID, taskID)
		if !ok {
			return false
		}

		t.IsCompleted = !t.IsCompleted
		if t.IsCompleted {
			at := b.now
			t.CompletedDate = &at
			b.add(shared.NewTaskCompletedEvent(projectID, t.ID, t.Title, b.now))
			s.awardXP(b, gamification.TaskCompletionXP, "task")
		} else {
			t.CompletedDate = nil
		}
		s.graph.RecomputeProgress(projectID)
		res = shared.Found(t.Clone())

		s.evaluateAchievements(b)
		return true
	})
	return res
}

// DeleteTask removes a task and recomputes the project's progress.
func (s *Store) DeleteTask(ctx context.Context, hobbyID, projectID, taskID string) shared.Result[hobby.Task] {
	res := shared.NotFound[hobby.Task]()
	s.write(ctx, func(b *batch) bool {
		if _, ok := s.graph.Project(hobbyID, projectID); !ok {
			return false
		}
		removed, ok := s.graph.RemoveTask(projectID, taskID)
		if !ok {
			return false
		}
		s.graph.RecomputeProgress(projectID)
		res = shared.Found(removed)
		return true
	})
	return res
}
