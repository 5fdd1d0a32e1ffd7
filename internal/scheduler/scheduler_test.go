package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/platform/config"
	"github.com/devjsik/exchange_rate_app/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLock records acquire/release calls and answers with a fixed verdict.
type fakeLock struct {
	grant          bool
	acquired       int
	released       int
	lastKey        string
	lastHolders    []string
	releaseCtxErrs []error
}

func (f *fakeLock) TryAcquire(_ context.Context, key, holder string, _ time.Duration) bool {
	f.acquired++
	f.lastKey = key
	f.lastHolders = append(f.lastHolders, holder)
	return f.grant
}

func (f *fakeLock) Release(ctx context.Context, _, holder string) bool {
	f.released++
	f.releaseCtxErrs = append(f.releaseCtxErrs, ctx.Err())
	return true
}

func newTestScheduler(lock *fakeLock) *scheduler.Scheduler {
	cfg := &config.Config{LockTTL: 5 * time.Minute}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return scheduler.New(nil, lock, cfg, logger)
}

func TestRunExclusive_SkipsWhenLockHeld(t *testing.T) {
	lock := &fakeLock{grant: false}
	s := newTestScheduler(lock)

	ran := false
	s.RunExclusive(context.Background(), "rate_refresh", func(context.Context) error {
		ran = true
		return nil
	})

	assert.False(t, ran, "job must not run while the lock is held elsewhere")
	assert.Equal(t, 1, lock.acquired)
	assert.Zero(t, lock.released, "nothing to release when acquisition fails")
}

func TestRunExclusive_RunsAndReleases(t *testing.T) {
	lock := &fakeLock{grant: true}
	s := newTestScheduler(lock)

	ran := false
	s.RunExclusive(context.Background(), "rate_refresh", func(context.Context) error {
		ran = true
		return nil
	})

	assert.True(t, ran)
	assert.Equal(t, 1, lock.released)
	assert.Equal(t, "rate_refresh", lock.lastKey)
}

func TestRunExclusive_ReleasesOnJobError(t *testing.T) {
	lock := &fakeLock{grant: true}
	s := newTestScheduler(lock)

	s.RunExclusive(context.Background(), "retention_sweep", func(context.Context) error {
		return errors.New("job failed")
	})

	assert.Equal(t, 1, lock.released)
}

func TestRunExclusive_ReleasesOnPanic(t *testing.T) {
	lock := &fakeLock{grant: true}
	s := newTestScheduler(lock)

	assert.NotPanics(t, func() {
		s.RunExclusive(context.Background(), "rate_refresh", func(context.Context) error {
			panic("boom")
		})
	})
	assert.Equal(t, 1, lock.released)
}

func TestRunExclusive_ReleasesWithLiveContextAfterCancellation(t *testing.T) {
	lock := &fakeLock{grant: true}
	s := newTestScheduler(lock)

	ctx, cancel := context.WithCancel(context.Background())
	s.RunExclusive(ctx, "rate_refresh", func(jobCtx context.Context) error {
		// Shutdown arrives mid-job.
		cancel()
		return jobCtx.Err()
	})

	require.Equal(t, 1, lock.released)
	assert.NoError(t, lock.releaseCtxErrs[0], "release must not run on the cancelled job context")
}

func TestRunExclusive_FreshHolderPerInvocation(t *testing.T) {
	lock := &fakeLock{grant: true}
	s := newTestScheduler(lock)

	job := func(context.Context) error { return nil }
	s.RunExclusive(context.Background(), "rate_refresh", job)
	s.RunExclusive(context.Background(), "rate_refresh", job)

	require.Len(t, lock.lastHolders, 2)
	assert.NotEqual(t, lock.lastHolders[0], lock.lastHolders[1])
}

func TestNextRunIn(t *testing.T) {
	now := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)

	wait, err := scheduler.NextRunIn(now, "11:10")
	require.NoError(t, err)
	assert.Equal(t, 70*time.Minute, wait)

	// A time already past today rolls to tomorrow
	wait, err = scheduler.NextRunIn(now, "09:00")
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, wait)

	// The exact current minute counts as tomorrow
	wait, err = scheduler.NextRunIn(now, "10:00")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, wait)

	_, err = scheduler.NextRunIn(now, "25:99")
	assert.Error(t, err)
}
