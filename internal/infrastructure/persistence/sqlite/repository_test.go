package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbylab/hobbylab-core/internal/application/store"
	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/codec"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/repotest"
)

var now = time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)

func openRepo(t *testing.T, path, owner string) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), path, owner)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_Contract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hobbylab.db")
	repotest.Run(t, func(t *testing.T, owner string) hobby.Repository {
		return openRepo(t, path, owner)
	})
}

func TestRepository_EmptyDatabase(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "nested", "hobbylab.db"), "me")
	ctx := context.Background()

	tree, err := repo.LoadEntities(ctx)
	require.NoError(t, err)
	assert.Equal(t, hobby.TreeVersion, tree.Version)
	assert.Empty(t, tree.Hobbies)

	profile, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestRepository_UpsertAndOwnerIsolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hobbylab.db")
	ctx := context.Background()
	mine := openRepo(t, path, "me")

	g := hobby.NewGraph()
	g.InsertHobby(hobby.Hobby{ID: "h1", Name: "Chess", Category: hobby.CategoryGaming, TotalTimeSpent: 90 * time.Minute})
	require.NoError(t, mine.SaveEntities(ctx, g.ToTree()))

	g.InsertHobby(hobby.Hobby{ID: "h2", Name: "Baking", Category: hobby.CategoryCooking})
	require.NoError(t, mine.SaveEntities(ctx, g.ToTree()))

	tree, err := mine.LoadEntities(ctx)
	require.NoError(t, err)
	require.Len(t, tree.Hobbies, 2)
	assert.InDelta(t, 5400.0, tree.Hobbies[0].TotalTimeSpent, 1e-9)

	require.NoError(t, mine.Close())
	theirs := openRepo(t, path, "someone-else")
	tree, err = theirs.LoadEntities(ctx)
	require.NoError(t, err)
	assert.Empty(t, tree.Hobbies)
}

func TestRepository_ProfileAndClear(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "hobbylab.db"), "me")
	ctx := context.Background()

	p := gamification.DefaultProfile("p1", now)
	p.AddXP(120)
	require.NoError(t, repo.SaveProfile(ctx, p))

	got, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 20, got.CurrentXP)

	require.NoError(t, repo.ClearAll(ctx))
	got, err = repo.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_RejectsTamperedPayload(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "hobbylab.db"), "me")
	ctx := context.Background()
	require.NoError(t, repo.SaveProfile(ctx, gamification.DefaultProfile("p1", now)))

	_, err := repo.db.ExecContext(ctx, `UPDATE snapshots SET checksum = ? WHERE kind = ?`,
		codec.Checksum([]byte("something else")), string(codec.KindProfile))
	require.NoError(t, err)

	_, err = repo.LoadProfile(ctx)
	assert.ErrorIs(t, err, codec.ErrChecksumMismatch)
	assert.True(t, shared.IsStorage(err))
}

func TestRepository_BacksStoreAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hobbylab.db")
	ctx := context.Background()
	opts := []store.Option{store.WithClock(shared.FixedClock{T: now})}

	first := openRepo(t, path, "me")
	s, err := store.Open(ctx, first, opts...)
	require.NoError(t, err)
	h := s.AddHobby(ctx, hobby.Hobby{Name: "Pottery", Category: hobby.CategoryCrafts})
	s.AddSession(ctx, h.ID, "", hobby.Session{Date: now, Duration: 2 * time.Hour})
	require.NoError(t, first.Close())

	second := openRepo(t, path, "me")
	reopened, err := store.Open(ctx, second, opts...)
	require.NoError(t, err)

	got, ok := reopened.Hobby(h.ID).Get()
	require.True(t, ok)
	assert.Equal(t, 2*time.Hour, got.TotalTimeSpent)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Len(t, reopened.GetAllSessions(h.ID), 1)
	assert.Equal(t, s.Profile().TotalXP, reopened.Profile().TotalXP)
}
