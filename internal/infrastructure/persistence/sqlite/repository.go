// Package sqlite is the default durable hobby.Repository: one row per
// document in a local SQLite file, schema managed by goose.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/codec"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Repository stores sealed documents for a single owner.
type Repository struct {
	db    *sql.DB
	owner string
	now   func() time.Time
}

// Open creates the database file if needed, applies migrations and returns a
// repository scoped to owner.
func Open(ctx context.Context, path, owner string) (*Repository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{db: db, owner: owner, now: time.Now}, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
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

// ClearAll implements hobby.Repository. Other owners are untouched.
func (r *Repository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE owner = ?`, r.owner); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}

func (r *Repository) load(ctx context.Context, kind codec.Kind) (codec.Envelope, bool, error) {
	const q = `SELECT payload, checksum FROM snapshots WHERE owner = ? AND kind = ?`

	var env codec.Envelope
	err := r.db.QueryRowContext(ctx, q, r.owner, string(kind)).Scan(&env.Payload, &env.Checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return codec.Envelope{}, false, nil
	}
	if err != nil {
		return codec.Envelope{}, false, fmt.Errorf("load %s: %w", kind, err)
	}
	return env, true, nil
}

func (r *Repository) store(ctx context.Context, kind codec.Kind, env codec.Envelope) error {
	const stmt = `
INSERT INTO snapshots (owner, kind, payload, checksum, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(owner, kind) DO UPDATE SET
  payload=excluded.payload,
  checksum=excluded.checksum,
  updated_at=excluded.updated_at;
`
	updatedAt := r.now().UTC().Format(time.RFC3339Nano)
	if _, err := r.db.ExecContext(ctx, stmt, r.owner, string(kind), env.Payload, env.Checksum, updatedAt); err != nil {
		return fmt.Errorf("save %s: %w", kind, err)
	}
	return nil
}
