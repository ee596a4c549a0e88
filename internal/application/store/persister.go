package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/pkg/circuitbreaker"
	"github.com/hobbylab/hobbylab-core/pkg/retry"
)

// PersistPolicy tunes how hard the store tries to save after a mutation.
type PersistPolicy struct {
	// Attempts per document, including the first. Default: 3
	Attempts int

	// Timeout bounds one save of both documents. Default: 5s
	Timeout time.Duration

	// BreakerThreshold consecutive failed saves stop further attempts. Default: 5
	BreakerThreshold int

	// BreakerTimeout is how long saves are skipped once the breaker opens. Default: 30s
	BreakerTimeout time.Duration
}

// DefaultPersistPolicy returns the policy used when none is configured.
func DefaultPersistPolicy() PersistPolicy {
	return PersistPolicy{
		Attempts:         3,
		Timeout:          5 * time.Second,
		BreakerThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// persister writes snapshots after each committed mutation. Failures are
// logged and swallowed: the in-memory graph stays the source of truth.
type persister struct {
	repo    hobby.Repository
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	logger  *slog.Logger
}

func newPersister(repo hobby.Repository, policy PersistPolicy, logger *slog.Logger) *persister {
	defaults := DefaultPersistPolicy()
	if policy.Attempts <= 0 {
		policy.Attempts = defaults.Attempts
	}
	if policy.Timeout <= 0 {
		policy.Timeout = defaults.Timeout
	}
	if policy.BreakerThreshold <= 0 {
		policy.BreakerThreshold = defaults.BreakerThreshold
	}
	if policy.BreakerTimeout <= 0 {
		policy.BreakerTimeout = defaults.BreakerTimeout
	}

	p := &persister{
		repo:    repo,
		timeout: policy.Timeout,
		logger:  logger,
	}
	p.retrier = retry.StorageRetrier(policy.Attempts, func(attempt int, err error, delay time.Duration) {
		logger.Debug("retrying save",
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
	})
	p.breaker = circuitbreaker.StorageBreaker(policy.BreakerThreshold, policy.BreakerTimeout,
		func(name string, from, to circuitbreaker.State) {
			logger.Warn("storage breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		})
	return p
}

// save writes both documents. It reports whether both writes succeeded.
func (p *persister) save(ctx context.Context, tree hobby.Tree, profile gamification.UserProfile) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	entitiesOK := p.run(ctx, "entities", func(ctx context.Context) error {
		return p.repo.SaveEntities(ctx, tree)
	})
	profileOK := p.run(ctx, "profile", func(ctx context.Context) error {
		return p.repo.SaveProfile(ctx, profile)
	})
	return entitiesOK && profileOK
}

func (p *persister) run(ctx context.Context, document string, op func(context.Context) error) bool {
	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.retrier.Do(ctx, op)
	})
	if err == nil {
		return true
	}

	if circuitbreaker.IsRejection(err) {
		p.logger.Warn("save skipped, storage breaker open",
			"document", document,
		)
		return false
	}
	p.logger.Error("failed to save snapshot",
		"document", document,
		"error", err,
	)
	return false
}

func (p *persister) clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.retrier.Do(ctx, p.repo.ClearAll)
}
