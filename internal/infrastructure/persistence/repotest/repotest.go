// Package repotest holds the behaviour every hobby.Repository backend must
// share. Backend tests call Run with a factory for their adapter.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
)

// Factory returns a repository scoped to owner. Each call may return a new
// adapter; data written through one owner must never be visible to another.
type Factory func(t *testing.T, owner string) hobby.Repository

var at = time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)

// Run exercises load, save and clear against the repository built by newRepo.
// Every case uses a fresh owner so shared servers need no cleanup between runs.
func Run(t *testing.T, newRepo Factory) {
	tests := []struct {
		name string
		run  func(t *testing.T, ctx context.Context, newRepo Factory)
	}{
		{"empty owner loads nothing", emptyLoads},
		{"save then load", saveLoad},
		{"save replaces", saveReplaces},
		{"clear removes both documents", clearAll},
		{"owners are isolated", ownerIsolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, context.Background(), newRepo)
		})
	}
}

func owner() string {
	return "test-" + uuid.NewString()
}

func sample(t *testing.T) *hobby.Graph {
	t.Helper()
	g := hobby.NewGraph()
	g.InsertHobby(hobby.Hobby{ID: "guitar", Name: "Guitar", Category: hobby.CategoryMusic,
		CreatedDate: at, TotalTimeSpent: 90 * time.Minute, CurrentStreak: 1, LongestStreak: 3})
	_, ok := g.InsertProject(hobby.Project{ID: "songbook", HobbyID: "guitar", Name: "Songbook", StartDate: at})
	require.True(t, ok)
	_, ok = g.InsertTask(hobby.Task{ID: "t1", ProjectID: "songbook", Title: "Chords", CreatedDate: at, Priority: hobby.PriorityHigh})
	require.True(t, ok)
	_, ok = g.InsertSession(hobby.Session{ID: "s1", HobbyID: "guitar", ProjectID: "songbook",
		Date: at, Duration: time.Hour, Tags: []string{"warmup"}, XPEarned: 10})
	require.True(t, ok)
	_, ok = g.InsertSession(hobby.Session{ID: "s2", HobbyID: "guitar", Date: at.Add(time.Hour), Duration: 30 * time.Minute})
	require.True(t, ok)
	g.RecomputeProgress("songbook")
	return g
}

func emptyLoads(t *testing.T, ctx context.Context, newRepo Factory) {
	repo := newRepo(t, owner())

	tree, err := repo.LoadEntities(ctx)
	require.NoError(t, err)
	assert.Equal(t, hobby.TreeVersion, tree.Version)
	assert.Empty(t, tree.Hobbies)

	profile, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func saveLoad(t *testing.T, ctx context.Context, newRepo Factory) {
	repo := newRepo(t, owner())
	g := sample(t)
	p := gamification.DefaultProfile("p1", at)
	p.AddXP(130)

	require.NoError(t, repo.SaveEntities(ctx, g.ToTree()))
	require.NoError(t, repo.SaveProfile(ctx, p))

	tree, err := repo.LoadEntities(ctx)
	require.NoError(t, err)
	assert.Equal(t, g.ToTree(), hobby.FromTree(tree).ToTree())

	got, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Level, got.Level)
	assert.Equal(t, p.CurrentXP, got.CurrentXP)
	assert.Equal(t, p.TotalXP, got.TotalXP)
}

func saveReplaces(t *testing.T, ctx context.Context, newRepo Factory) {
	repo := newRepo(t, owner())
	g := sample(t)
	require.NoError(t, repo.SaveEntities(ctx, g.ToTree()))

	g.InsertHobby(hobby.Hobby{ID: "chess", Name: "Chess", Category: hobby.CategoryGaming, CreatedDate: at})
	require.NoError(t, repo.SaveEntities(ctx, g.ToTree()))

	tree, err := repo.LoadEntities(ctx)
	require.NoError(t, err)
	require.Len(t, tree.Hobbies, 2)
	assert.Equal(t, "chess", tree.Hobbies[1].ID)
}

func clearAll(t *testing.T, ctx context.Context, newRepo Factory) {
	repo := newRepo(t, owner())
	require.NoError(t, repo.ClearAll(ctx), "clearing an empty owner")

	require.NoError(t, repo.SaveEntities(ctx, sample(t).ToTree()))
	require.NoError(t, repo.SaveProfile(ctx, gamification.DefaultProfile("p1", at)))
	require.NoError(t, repo.ClearAll(ctx))

	tree, err := repo.LoadEntities(ctx)
	require.NoError(t, err)
	assert.Empty(t, tree.Hobbies)

	profile, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func ownerIsolation(t *testing.T, ctx context.Context, newRepo Factory) {
	mine := newRepo(t, owner())
	theirs := newRepo(t, owner())

	require.NoError(t, mine.SaveEntities(ctx, sample(t).ToTree()))
	require.NoError(t, theirs.SaveProfile(ctx, gamification.DefaultProfile("p2", at)))

	tree, err := theirs.LoadEntities(ctx)
	require.NoError(t, err)
	assert.Empty(t, tree.Hobbies)

	profile, err := mine.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	require.NoError(t, theirs.ClearAll(ctx))
	tree, err = mine.LoadEntities(ctx)
	require.NoError(t, err)
	assert.Len(t, tree.Hobbies, 1)
}
