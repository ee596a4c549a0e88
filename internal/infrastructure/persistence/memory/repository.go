// Package memory is an in-process hobby.Repository. It keeps sealed blobs so
// that loads exercise the same codec path as the durable backends.
package memory

import (
	"context"
	"sync"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/codec"
)

// Repository stores documents in a map.
type Repository struct {
	mu    sync.RWMutex
	blobs map[codec.Kind][]byte

	failWith error
	saves    int
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{blobs: make(map[codec.Kind][]byte)}
}

// LoadEntities implements hobby.Repository.
func (r *Repository) LoadEntities(ctx context.Context) (hobby.Tree, error) {
	blob, ok := r.get(codec.KindEntities)
	if !ok {
		return hobby.Tree{Version: hobby.TreeVersion}, nil
	}
	env, err := codec.Parse(blob)
	if err != nil {
		return hobby.Tree{}, err
	}
	return codec.OpenTree(env)
}

// LoadProfile implements hobby.Repository.
func (r *Repository) LoadProfile(ctx context.Context) (*gamification.UserProfile, error) {
	blob, ok := r.get(codec.KindProfile)
	if !ok {
		return nil, nil
	}
	env, err := codec.Parse(blob)
	if err != nil {
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
	return r.put(codec.KindEntities, env.Bytes())
}

// SaveProfile implements hobby.Repository.
func (r *Repository) SaveProfile(ctx context.Context, profile gamification.UserProfile) error {
	env, err := codec.SealProfile(profile)
	if err != nil {
		return err
	}
	return r.put(codec.KindProfile, env.Bytes())
}

// ClearAll implements hobby.Repository.
func (r *Repository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs = make(map[codec.Kind][]byte)
	return nil
}

// Fail makes every later save return err until called with nil.
func (r *Repository) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

// Saves returns how many save calls reached the map.
func (r *Repository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

// Raw returns the stored blob of a kind. Tests use it to corrupt data.
func (r *Repository) Raw(kind codec.Kind) ([]byte, bool) {
	return r.get(kind)
}

// SetRaw replaces the stored blob of a kind.
func (r *Repository) SetRaw(kind codec.Kind, blob []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[kind] = append([]byte(nil), blob...)
}

func (r *Repository) get(kind codec.Kind) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	blob, ok := r.blobs[kind]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), blob...), true
}

func (r *Repository) put(kind codec.Kind, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.blobs[kind] = blob
	r.saves++
	return nil
}
