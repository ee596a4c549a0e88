package store

import (
	"context"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSIONS
// ══════════════════════════════════════════════════════════════════════════════

// AddSession logs a practice session against the hobby, and against the
// project when projectID is not empty. The session is attached first, then
// the hobby's time counter, the project's progress and the hobby's streak are
// updated, the session XP is awarded and achievements are re-checked.
func (s *Store) AddSession(ctx context.Context, hobbyID, projectID string, sess hobby.Session) shared.Result[hobby.Session] {
	res := shared.NotFound[hobby.Session]()
	s.write(ctx, func(b *batch) bool {
		h, ok := s.graph.Hobby(hobbyID)
		if !ok {
			return false
		}
		if projectID != "" {
			if _, ok := s.graph.Project(hobbyID, projectID); !ok {
				return false
			}
		}

		sess.ID = s.ids.NewID()
		sess.HobbyID = hobbyID
		sess.ProjectID = projectID
		if sess.Date.IsZero() {
			sess.Date = b.now
		}
		if sess.Duration < 0 {
			sess.Duration = 0
		}
		sess.XPEarned = gamification.SessionXP(sess.Duration)

		stored, _ := s.graph.InsertSession(sess)
		h.TotalTimeSpent += stored.Duration
		if stored.HasProject() {
			s.graph.RecomputeProgress(projectID)
		}
		s.refreshStreak(b, h)

		b.add(shared.NewSessionLoggedEvent(hobbyID, stored.ID, projectID, stored.Duration, stored.XPEarned, b.now))
		s.awardXP(b, stored.XPEarned, "session")
		s.evaluateAchievements(b)

		s.logger.Debug("session logged",
			"hobby_id", hobbyID,
			"session_id", stored.ID,
			"duration", stored.Duration,
			"xp", stored.XPEarned,
		)
		res = shared.Found(stored.Clone())
		return true
	})
	return res
}

// DeleteSession removes a session. The hobby's time counter and the profile's
// XP keep what the session contributed; the streak is recomputed.
func (s *Store) DeleteSession(ctx context.Context, hobbyID, sessionID string) shared.Result[hobby.Session] {
	res := shared.NotFound[hobby.Session]()
	s.write(ctx, func(b *batch) bool {
		h, ok := s.graph.Hobby(hobbyID)
		if !ok {
			return false
		}
		removed, ok := s.graph.RemoveSession(hobbyID, sessionID)
		if !ok {
			return false
		}
		if removed.HasProject() {
			s.graph.RecomputeProgress(removed.ProjectID)
		}
		s.resetOrRefreshStreak(b, h)
		res = shared.Found(removed)
		return true
	})
	return res
}

// resetOrRefreshStreak recomputes the streak after sessions were removed.
// With no sessions left the current streak drops to zero; the longest stays.
func (s *Store) resetOrRefreshStreak(b *batch, h *hobby.Hobby) {
	if len(s.graph.SessionsForHobby(h.ID)) > 0 {
		s.refreshStreak(b, h)
		return
	}
	if h.CurrentStreak != 0 {
		old := h.CurrentStreak
		h.CurrentStreak = 0
		b.add(shared.NewStreakUpdatedEvent(h.ID, old, 0, h.LongestStreak, false, b.now))
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// IDEAS
// ══════════════════════════════════════════════════════════════════════════════

// AddIdea attaches a new idea to the hobby.
func (s *Store) AddIdea(ctx context.Context, hobbyID string, i hobby.Idea) shared.Result[hobby.Idea] {
	res := shared.NotFound[hobby.Idea]()
	s.write(ctx, func(b *batch) bool {
		i.ID = s.ids.NewID()
		i.HobbyID = hobbyID
		if i.CreatedDate.IsZero() {
			i.CreatedDate = b.now
		}
		stored, ok := s.graph.InsertIdea(i)
		if !ok {
			return false
		}
		res = shared.Found(stored.Clone())
		return true
	})
	return res
}

// UpdateIdea replaces title, content, links, tags and image URLs.
// The favorite flag is changed with ToggleIdeaFavorite.
func (s *Store) UpdateIdea(ctx context.Context, hobbyID string, i hobby.Idea) shared.Result[hobby.Idea] {
	res := shared.NotFound[hobby.Idea]()
	s.write(ctx, func(b *batch) bool {
		stored, ok := s.graph.Idea(hobbyID, i.ID)
		if !ok {
			return false
		}
		c := i.Clone()
		stored.Title = c.Title
		stored.Content = c.Content
		stored.Links = c.Links
		stored.Tags = c.Tags
		stored.ImageURLs = c.ImageURLs
		res = shared.Found(stored.Clone())
		return true
	})
	return res
}

// DeleteIdea removes an idea from the hobby.
func (s *Store) DeleteIdea(ctx context.Context, hobbyID, ideaID string) shared.Result[hobby.Idea] {
	res := shared.NotFound[hobby.Idea]()
	s.write(ctx, func(b *batch) bool {
		removed, ok := s.graph.RemoveIdea(hobbyID, ideaID)
		if !ok {
			return false
		}
		res = shared.Found(removed)
		return true
	})
	return res
}

// ToggleIdeaFavorite flips the idea's favorite flag.
func (s *Store) ToggleIdeaFavorite(ctx context.Context, hobbyID, ideaID string) shared.Result[hobby.Idea] {
	res := shared.NotFound[hobby.Idea]()
	s.write(ctx, func(b *batch) bool {
		stored, ok := s.graph.Idea(hobbyID, ideaID)
		if !ok {
			return false
		}
		stored.IsFavorite = !stored.IsFavorite
		res = shared.Found(stored.Clone())
		return true
	})
	return res
}
