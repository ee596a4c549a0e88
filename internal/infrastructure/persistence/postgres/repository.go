package postgres

import (
	"context"
	"fmt"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/codec"
)

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const (
	selectSnapshot = `SELECT payload, checksum FROM hobbylab_snapshots WHERE owner = $1 AND kind = $2`

	upsertSnapshot = `
		INSERT INTO hobbylab_snapshots (owner, kind, payload, checksum, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (owner, kind) DO UPDATE SET
			payload = EXCLUDED.payload,
			checksum = EXCLUDED.checksum,
			updated_at = EXCLUDED.updated_at
	`

	deleteSnapshots = `DELETE FROM hobbylab_snapshots WHERE owner = $1`
)

// Repository implements hobby.Repository for PostgreSQL.
type Repository struct {
	conn  *Connection
	owner string
}

// NewRepository creates a repository scoped to owner.
func NewRepository(conn *Connection, owner string) *Repository {
	return &Repository{conn: conn, owner: owner}
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
	return r.store(ctx, codec.KindEntities, env)
}

// SaveProfile implements hobby.Repository.
func (r *Repository) SaveProfile(ctx context.Context, profile gamification.UserProfile) error {
	env, err := codec.SealProfile(profile)
	if err != nil {
		return err
	}
	return r.store(ctx, codec.KindProfile, env)
}

// ClearAll implements hobby.Repository.
func (r *Repository) ClearAll(ctx context.Context) error {
	if _, err := r.conn.Exec(ctx, deleteSnapshots, r.owner); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}

func (r *Repository) load(ctx context.Context, kind codec.Kind) (codec.Envelope, bool, error) {
	var payload, checksum string
	err := r.conn.QueryRow(ctx, selectSnapshot, r.owner, string(kind)).Scan(&payload, &checksum)
	if IsNoRows(err) {
		return codec.Envelope{}, false, nil
	}
	if err != nil {
		return codec.Envelope{}, false, fmt.Errorf("failed to load %s: %w", kind, err)
	}
	return codec.Envelope{Payload: []byte(payload), Checksum: checksum}, true, nil
}

func (r *Repository) store(ctx context.Context, kind codec.Kind, env codec.Envelope) error {
	_, err := r.conn.Exec(ctx, upsertSnapshot, r.owner, string(kind), string(env.Payload), env.Checksum)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", kind, err)
	}
	return nil
}
