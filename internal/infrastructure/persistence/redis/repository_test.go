package redis

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/codec"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/repotest"
)

// HOBBYLAB_TEST_REDIS_ADDR points the repository tests at a live server,
// e.g. localhost:6379. Database 15 is used.
func cacheForTest(t *testing.T) *Cache {
	t.Helper()
	addr := os.Getenv("HOBBYLAB_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HOBBYLAB_TEST_REDIS_ADDR not set")
	}
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Host = host
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)
	cfg.DB = 15

	cache, err := NewCache(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestRepository_Contract(t *testing.T) {
	cache := cacheForTest(t)
	repotest.Run(t, func(t *testing.T, owner string) hobby.Repository {
		repo := NewRepository(cache, owner)
		t.Cleanup(func() { _ = repo.ClearAll(context.Background()) })
		return repo
	})
}

func TestRepository_CorruptBlob(t *testing.T) {
	cache := cacheForTest(t)
	ctx := context.Background()
	repo := NewRepository(cache, "test-corrupt")
	t.Cleanup(func() { _ = repo.ClearAll(ctx) })

	require.NoError(t, cache.SetBytes(ctx, repo.key(codec.KindEntities), []byte("not an envelope")))

	_, err := repo.LoadEntities(ctx)
	assert.ErrorIs(t, err, codec.ErrMalformedBlob)
}

func TestCache_MissAndEmptyKey(t *testing.T) {
	cache := cacheForTest(t)
	ctx := context.Background()

	_, err := cache.GetBytes(ctx, DocumentKey("test-missing", "entities"))
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.ErrorIs(t, cache.SetBytes(ctx, "", nil), ErrCacheKeyEmpty)
	assert.NoError(t, cache.Delete(ctx))
}
