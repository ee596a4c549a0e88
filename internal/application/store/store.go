// Package store is the single writer over the hobby graph and user profile.
// Every mutation runs under one lock, updates streaks, XP and achievements,
// saves the whole graph and profile, then announces domain events.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
	"github.com/hobbylab/hobbylab-core/internal/domain/streak"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store owns the entity graph and the user profile.
// It is safe for concurrent use; mutations never interleave.
type Store struct {
	mu      sync.RWMutex
	graph   *hobby.Graph
	profile gamification.UserProfile

	clock     shared.Clock
	ids       shared.IDGenerator
	publisher shared.EventPublisher
	logger    *slog.Logger
	policy    PersistPolicy

	persister *persister
	streaks   *streak.Calculator
	engine    *gamification.Engine
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source. Its location defines calendar days.
func WithClock(c shared.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDGenerator sets the identity source for new entities.
func WithIDGenerator(g shared.IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithPublisher sets where domain events go after each commit.
func WithPublisher(p shared.EventPublisher) Option {
	return func(s *Store) {
		s.publisher = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPersistPolicy tunes save retries and the storage breaker.
func WithPersistPolicy(p PersistPolicy) Option {
	return func(s *Store) {
		s.policy = p
	}
}

// Open loads the graph and profile from repo and returns a ready store.
// A missing profile is replaced by a fresh default one.
func Open(ctx context.Context, repo hobby.Repository, opts ...Option) (*Store, error) {
	s := &Store{
		clock:   shared.NewSystemClock(nil),
		ids:     shared.UUIDGenerator{},
		logger:  slog.Default(),
		policy:  DefaultPersistPolicy(),
		streaks: streak.NewCalculator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store")
	s.engine = gamification.NewEngine(s.ids)
	s.persister = newPersister(repo, s.policy, s.logger)

	tree, err := repo.LoadEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entities: %w", err)
	}
	profile, err := repo.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	s.graph = hobby.FromTree(tree)
	if profile == nil {
		s.profile = gamification.DefaultProfile(s.ids.NewID(), s.clock.Now())
		s.logger.Info("no stored profile, starting fresh")
	} else {
		s.profile = profile.Clone()
	}

	s.logger.Info("store opened",
		"hobbies", s.graph.HobbyCount(),
		"sessions", s.graph.SessionCount(),
		"level", s.profile.Level,
	)
	return s, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Write path
// ─────────────────────────────────────────────────────────────────────────────

// batch collects the events of one mutation for publication after commit.
type batch struct {
	now    time.Time
	events []shared.Event
}

func (b *batch) add(e shared.Event) {
	b.events = append(b.events, e)
}

// write runs fn under the write lock. Events are published after unlocking
// so subscribers may read the store.
func (s *Store) write(ctx context.Context, fn func(b *batch) bool) {
	b := &batch{now: s.clock.Now()}
	if s.commit(ctx, b, fn) {
		s.publish(b.events)
	}
}

// commit applies fn and, when it reports a change, saves the graph and
// profile before the lock is released.
func (s *Store) commit(ctx context.Context, b *batch, fn func(b *batch) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(b) {
		return false
	}
	s.persister.save(ctx, s.graph.ToTree(), s.profile.Clone())
	return true
}

func (s *Store) publish(events []shared.Event) {
	if s.publisher == nil {
		return
	}
	for _, e := range events {
		if err := s.publisher.Publish(e); err != nil {
			s.logger.Warn("failed to publish event",
				"event_type", e.EventType(),
				"aggregate_id", e.AggregateID(),
				"error", err,
			)
		}
	}
}

// awardXP credits the profile and records XP and level-up events.
// Must be called with the write lock held.
func (s *Store) awardXP(b *batch, amount int, source string) {
	if amount <= 0 {
		return
	}
	oldLevel := s.profile.Level
	gained := s.profile.AddXP(amount)
	b.add(shared.NewXPGainedEvent(s.profile.ID, amount, s.profile.TotalXP, source, b.now))

	if gained > 0 {
		s.logger.Info("level up",
			"old_level", oldLevel,
			"new_level", s.profile.Level,
		)
		b.add(shared.NewLevelUpEvent(s.profile.ID, oldLevel, s.profile.Level, b.now))
	}
}

// evaluateAchievements runs every rule against current graph facts.
// Must be called with the write lock held.
func (s *Store) evaluateAchievements(b *batch) []gamification.Achievement {
	facts := gamification.Facts{
		SessionCount:      s.graph.SessionCount(),
		HobbyCount:        s.graph.HobbyCount(),
		TotalTime:         s.graph.TotalTimeSpent(),
		CompletedTasks:    s.graph.CompletedTaskCount(),
		CompletedProjects: s.graph.CompletedProjectCount(),
		BestCurrentStreak: s.graph.BestCurrentStreak(),
	}

	unlocked := s.engine.Evaluate(&s.profile, facts, b.now)
	for _, a := range unlocked {
		s.logger.Info("achievement unlocked", "key", a.Key, "title", a.Title)
		b.add(shared.NewAchievementUnlockedEvent(s.profile.ID, string(a.Key), a.Title, b.now))
	}
	return unlocked
}

// refreshStreak recomputes the hobby's streak from its current sessions.
// Must be called with the write lock held.
func (s *Store) refreshStreak(b *batch, h *hobby.Hobby) {
	change := s.streaks.Update(h, s.graph.SessionsForHobby(h.ID), b.now)
	if change.Changed || change.Record {
		b.add(shared.NewStreakUpdatedEvent(h.ID, change.Old, change.Current, change.Longest, change.Record, b.now))
	}
}

// CheckAchievements re-evaluates every rule and returns the new unlocks.
// Calling it again with unchanged state unlocks nothing.
func (s *Store) CheckAchievements(ctx context.Context) []gamification.Achievement {
	var unlocked []gamification.Achievement
	s.write(ctx, func(b *batch) bool {
		unlocked = s.evaluateAchievements(b)
		return len(unlocked) > 0
	})
	return unlocked
}

// UpdateProfile changes the display name and avatar. Empty values keep the
// current ones.
func (s *Store) UpdateProfile(ctx context.Context, name, avatar string) gamification.UserProfile {
	var out gamification.UserProfile
	s.write(ctx, func(b *batch) bool {
		if name = strings.TrimSpace(name); name != "" {
			s.profile.Name = name
		}
		if avatar = strings.TrimSpace(avatar); avatar != "" {
			s.profile.AvatarEmoji = avatar
		}
		out = s.profile.Clone()
		return true
	})
	return out
}

// ClearPersisted wipes the stored documents. The in-memory graph is untouched.
func (s *Store) ClearPersisted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.clear(ctx); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	s.logger.Info("persisted data cleared")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// READS
// ══════════════════════════════════════════════════════════════════════════════

// Hobbies returns copies of all hobbies in creation order.
func (s *Store) Hobbies() []hobby.Hobby {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hobbies := s.graph.Hobbies()
	out := make([]hobby.Hobby, 0, len(hobbies))
	for _, h := range hobbies {
		out = append(out, *h)
	}
	return out
}

// Hobby returns a copy of one hobby.
func (s *Store) Hobby(id string) shared.Result[hobby.Hobby] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.graph.Hobby(id)
	if !ok {
		return shared.NotFound[hobby.Hobby]()
	}
	return shared.Found(*h)
}

// Projects returns copies of the hobby's projects.
func (s *Store) Projects(hobbyID string) []hobby.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := s.graph.Projects(hobbyID)
	out := make([]hobby.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Clone())
	}
	return out
}

// Project returns a copy of one project of the hobby.
func (s *Store) Project(hobbyID, id string) shared.Result[hobby.Project] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.graph.Project(hobbyID, id)
	if !ok {
		return shared.NotFound[hobby.Project]()
	}
	return shared.Found(p.Clone())
}

// Tasks returns copies of the project's tasks, or nil if the project is not
// part of the hobby.
func (s *Store) Tasks(hobbyID, projectID string) []hobby.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.graph.Project(hobbyID, projectID); !ok {
		return nil
	}
	tasks := s.graph.Tasks(projectID)
	out := make([]hobby.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

// GetAllSessions flattens the hobby's sessions: project sessions in project
// order, then sessions logged without a project.
func (s *Store) GetAllSessions(hobbyID string) []hobby.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.graph.SessionsForHobby(hobbyID)
	out := make([]hobby.Session, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.Clone())
	}
	return out
}

// Ideas returns copies of the hobby's ideas.
func (s *Store) Ideas(hobbyID string) []hobby.Idea {
	return s.FindIdeas(hobbyID, IdeaFilter{})
}

// IdeaFilter narrows FindIdeas.
type IdeaFilter struct {
	FavoritesOnly bool
	// Query matches title, content or tags, case-insensitively.
	Query string
}

func (f IdeaFilter) matches(i *hobby.Idea) bool {
	if f.FavoritesOnly && !i.IsFavorite {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(i.Title), q) || strings.Contains(strings.ToLower(i.Content), q) {
		return true
	}
	for _, tag := range i.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// FindIdeas returns the hobby's ideas matching f. An empty filter keeps
// insertion order; otherwise results are newest first.
func (s *Store) FindIdeas(hobbyID string, f IdeaFilter) []hobby.Idea {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []hobby.Idea
	for _, i := range s.graph.Ideas(hobbyID) {
		if f.matches(i) {
			out = append(out, i.Clone())
		}
	}
	if f != (IdeaFilter{}) {
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].CreatedDate.After(out[b].CreatedDate)
		})
	}
	return out
}

// Profile returns a copy of the user profile.
func (s *Store) Profile() gamification.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Achievements pairs every known achievement with its unlock state.
func (s *Store) Achievements() []gamification.Achievement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gamification.Board(s.profile)
}

// Snapshot returns a deep copy of the graph for read-only consumers.
func (s *Store) Snapshot() *hobby.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Clone()
}

// RecomputedTimeSpent sums the hobby's current session durations. Compare it
// with Hobby.TotalTimeSpent to detect drift left by deleted sessions.
func (s *Store) RecomputedTimeSpent(hobbyID string) shared.Result[time.Duration] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.graph.Hobby(hobbyID); !ok {
		return shared.NotFound[time.Duration]()
	}
	return shared.Found(s.graph.RecomputedTimeSpent(hobbyID))
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}
