package redis

import (
	"context"
	"errors"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/codec"
)

// Repository implements hobby.Repository over two keys per owner. Values are
// the blobs produced by codec.Envelope.Bytes.
type Repository struct {
	cache *Cache
	owner string
}

// NewRepository creates a repository scoped to owner.
func NewRepository(cache *Cache, owner string) *Repository {
	return &Repository{cache: cache, owner: owner}
}

// LoadEntities implements hobby.Repository.
func (r *Repository) LoadEntities(ctx context.Context) (hobby.Tree, error) {
	env, ok, err := r.load(ctx, codec.KindEntities)
	if err != nil || !ok {
		return hobby.Tree{Version: hobby.TreeVersion}, err
	}
	return codec.OpenTree(env)
}

// LoadProfile implements hobby.Repository.
func (r *Repository) LoadProfile(ctx context.Context) (*gamification.UserProfile, error) {
	env, ok, err := r.load(ctx, codec.KindProfile)
	if err != nil || !ok {
		return nil, err
	}
	return codec.OpenProfile(env)
}

// SaveEntities implements hobby.Repository.
func (r *Repository) SaveEntities(ctx context.Context, tree hobby.Tree) error {
	env, err := codec.SealTree(tree)
	if err != nil {
		return err
	}
	return r.cache.SetBytes(ctx, r.key(codec.KindEntities), env.Bytes())
}

// SaveProfile implements hobby.Repository.
func (r *Repository) SaveProfile(ctx context.Context, profile gamification.UserProfile) error {
	env, err := codec.SealProfile(profile)
	if err != nil {
		return err
	}
	return r.cache.SetBytes(ctx, r.key(codec.KindProfile), env.Bytes())
}

// ClearAll implements hobby.Repository.
func (r *Repository) ClearAll(ctx context.Context) error {
	keys := make([]string, 0, len(codec.Kinds()))
	for _, k := range codec.Kinds() {
		keys = append(keys, r.key(k))
	}
	return r.cache.Delete(ctx, keys...)
}

func (r *Repository) key(kind codec.Kind) string {
	return DocumentKey(r.owner, string(kind))
}

func (r *Repository) load(ctx context.Context, kind codec.Kind) (codec.Envelope, bool, error) {
	blob, err := r.cache.GetBytes(ctx, r.key(kind))
	if errors.Is(err, ErrCacheMiss) {
		return codec.Envelope{}, false, nil
	}
	if err != nil {
		return codec.Envelope{}, false, err
	}
	env, err := codec.Parse(blob)
	if err != nil {
		return codec.Envelope{}, false, err
	}
	return env, true, nil
}
