package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hobbylab/hobbylab-core/config"
	"github.com/hobbylab/hobbylab-core/internal/application/analytics"
	"github.com/hobbylab/hobbylab-core/internal/application/store"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/messaging"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/memory"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/postgres"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/redis"
	"github.com/hobbylab/hobbylab-core/internal/infrastructure/persistence/sqlite"
)

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION WIRING
// ══════════════════════════════════════════════════════════════════════════════

// App is the fully wired core for one command invocation.
type App struct {
	Store     *store.Store
	Analytics *analytics.Aggregator
	Config    *config.Config

	bus     *messaging.InMemoryEventBus
	log     *slog.Logger
	closers []func() error
}

// openApp connects storage, builds the event bus and opens the store.
// Level-ups and unlocked achievements are announced on out.
func openApp(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) (*App, error) {
	app := &App{Config: cfg, log: log}
	opened := false
	defer func() {
		if !opened {
			_ = app.Close()
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 1. REDIS (storage backend or event mirror)
	// ─────────────────────────────────────────────────────────────────────────
	var (
		cache *redis.Cache
		err   error
	)
	if cfg.UsesRedis() {
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB

		cache, err = redis.NewCache(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.closers = append(app.closers, cache.Close)
		log.Debug("redis connection established", "addr", redisCfg.Addr())
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. REPOSITORY
	// ─────────────────────────────────────────────────────────────────────────
	repo, err := app.openRepository(ctx, cache)
	if err != nil {
		return nil, err
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 3. EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	busCfg := messaging.DefaultConfig()
	busCfg.AsyncMode = cfg.Events.Async
	busCfg.WorkerPoolSize = cfg.Events.Workers
	busCfg.Logger = log
	app.bus = messaging.NewInMemoryEventBus(busCfg)
	if cfg.App.Debug {
		app.bus.Use(messaging.LoggingMiddleware(log))
	}
	app.closers = append(app.closers, app.bus.Close)

	if err := subscribeNotifier(app.bus, out); err != nil {
		return nil, err
	}
	if cfg.Events.PublishToRedis {
		forwarder := redis.NewEventForwarder(cache, cfg.App.Owner)
		if err := app.bus.SubscribeAll(forwarder.Handle); err != nil {
			return nil, fmt.Errorf("failed to subscribe redis forwarder: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. STORE + ANALYTICS
	// ─────────────────────────────────────────────────────────────────────────
	clock := shared.NewSystemClock(cfg.App.Location)
	app.Store, err = store.Open(ctx, repo,
		store.WithClock(clock),
		store.WithLogger(log),
		store.WithPublisher(app.bus),
		store.WithPersistPolicy(store.PersistPolicy{
			Attempts:         cfg.Persistence.SaveAttempts,
			Timeout:          cfg.Persistence.SaveTimeout,
			BreakerThreshold: cfg.Persistence.BreakerThreshold,
			BreakerTimeout:   cfg.Persistence.BreakerTimeout,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	app.Analytics = analytics.NewAggregator(app.Store, clock)
	opened = true
	return app, nil
}

func (a *App) openRepository(ctx context.Context, cache *redis.Cache) (hobby.Repository, error) {
	cfg := a.Config
	log := a.log.With("backend", cfg.Storage.Backend)

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Debug("using in-memory storage, nothing will survive this process")
		return memory.NewRepository(), nil

	case config.BackendSQLite:
		repo, err := sqlite.Open(ctx, cfg.Storage.SQLitePath, cfg.App.Owner)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		log.Debug("sqlite storage ready", "path", cfg.Storage.SQLitePath)
		return repo, nil

	case config.BackendPostgres:
		opts := postgres.DefaultPoolOptions()
		opts.MaxConns = int32(cfg.Database.MaxConns)
		conn, err := postgres.Connect(ctx, cfg.Database.URL, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, func() error { conn.Close(); return nil })

		migrator := postgres.NewMigrator(conn)
		if err := migrator.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Debug("postgres storage ready")
		return postgres.NewRepository(conn, cfg.App.Owner), nil

	case config.BackendRedis:
		return redis.NewRepository(cache, cfg.App.Owner), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.bus != nil {
		stats := a.bus.Stats()
		if stats.Failed > 0 {
			a.log.Warn("some event handlers failed", "failed", stats.Failed, "published", stats.Published)
		}
	}
	return errors.Join(errs...)
}

// ══════════════════════════════════════════════════════════════════════════════
// LOGGING
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger writes to stderr so command output stays clean on stdout.
func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
