package messaging

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

var at = time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInMemoryEventBus_SyncDeliveryOrder(t *testing.T) {
	bus := NewInMemoryEventBus(Config{Logger: quietLogger()})
	defer bus.Close()

	var got []string
	require.NoError(t, bus.Subscribe(shared.EventLevelUp, func(e shared.Event) error {
		got = append(got, "typed:"+string(e.EventType()))
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(e shared.Event) error {
		got = append(got, "all:"+string(e.EventType()))
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewLevelUpEvent("me", 1, 2, at)))
	require.NoError(t, bus.Publish(shared.NewHobbyDeletedEvent("h1", "Chess", at)))

	assert.Equal(t, []string{
		"typed:progress.level_up",
		"all:progress.level_up",
		"all:hobby.deleted",
	}, got)
	assert.Equal(t, int64(2), bus.Stats().Published)
}

func TestInMemoryEventBus_ErrorsAndPanicsAreContained(t *testing.T) {
	bus := NewInMemoryEventBus(Config{Logger: quietLogger()})
	defer bus.Close()

	var reached bool
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { return errors.New("boom") }))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { panic("bad handler") }))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { reached = true; return nil }))

	require.NoError(t, bus.Publish(shared.NewLevelUpEvent("me", 1, 2, at)))

	assert.True(t, reached)
	stats := bus.Stats()
	assert.Equal(t, int64(2), stats.Failed)
	assert.Equal(t, int64(1), stats.Succeeded)
	assert.InDelta(t, 1.0/3.0, stats.SuccessRate(), 1e-9)
}

func TestInMemoryEventBus_AsyncCloseWaits(t *testing.T) {
	bus := NewInMemoryEventBus(Config{AsyncMode: true, WorkerPoolSize: 2, Logger: quietLogger()})

	var count atomic.Int32
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		time.Sleep(5 * time.Millisecond)
		count.Add(1)
		return nil
	}))

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(shared.NewLevelUpEvent("me", i, i+1, at)))
	}
	require.NoError(t, bus.Close())

	assert.Equal(t, int32(5), count.Load())
	assert.ErrorIs(t, bus.Publish(shared.NewLevelUpEvent("me", 1, 2, at)), ErrEventBusClosed)
	assert.ErrorIs(t, bus.SubscribeAll(func(shared.Event) error { return nil }), ErrEventBusClosed)
}

func TestInMemoryEventBus_MiddlewareOrder(t *testing.T) {
	bus := NewInMemoryEventBus(Config{Logger: quietLogger()})
	defer bus.Close()

	var mu sync.Mutex
	var trace []string
	mark := func(name string) Middleware {
		return func(next shared.EventHandler) shared.EventHandler {
			return func(e shared.Event) error {
				mu.Lock()
				trace = append(trace, name)
				mu.Unlock()
				return next(e)
			}
		}
	}
	bus.Use(mark("outer"))
	bus.Use(mark("inner"))
	bus.Use(LoggingMiddleware(quietLogger()))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { return nil }))

	require.NoError(t, bus.Publish(shared.NewLevelUpEvent("me", 1, 2, at)))
	assert.Equal(t, []string{"outer", "inner"}, trace)
}

func TestInMemoryEventBus_RejectsNil(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	assert.Error(t, bus.Subscribe(shared.EventLevelUp, nil))
	assert.Error(t, bus.Publish(nil))
}
