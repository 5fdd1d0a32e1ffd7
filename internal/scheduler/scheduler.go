// Package scheduler runs the time-triggered jobs that keep the rate store
// current. Every instance of the service runs its own timers; the shared
// lock store guarantees that at most one instance executes a given job at a
// time. Contention is expected and benign.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/ports"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
	"github.com/devjsik/exchange_rate_app/internal/platform/config"
	"github.com/google/uuid"
)

// Lock key per job. Two triggers of the same job share a key.
const (
	lockKeyRefresh   = "rate_refresh"
	lockKeyPurge     = "retention_sweep"
	lockKeyExpand    = "history_expand"
	lockKeyInitCheck = "history_init_check"
)

// Scheduler owns the background job loops.
type Scheduler struct {
	services *portssvc.ServiceContainer
	lock     ports.LockProvider
	cfg      *config.Config
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Scheduler.
func New(services *portssvc.ServiceContainer, lock ports.LockProvider, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		services: services,
		lock:     lock,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches all job loops. They stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, at := range s.cfg.RefreshTimes {
		go s.runDailyAt(ctx, lockKeyRefresh, at, s.refreshJob)
	}
	go s.runDailyAt(ctx, lockKeyPurge, s.cfg.PurgeTime, s.purgeJob)
	go s.runDailyAt(ctx, lockKeyExpand, s.cfg.ExpandTime, s.expandJob)
	go s.runDailyAt(ctx, lockKeyInitCheck, s.cfg.InitCheckTime, s.initCheckJob)
	s.logger.Info("Scheduler started",
		slog.Any("refresh_times", s.cfg.RefreshTimes),
		slog.String("purge_time", s.cfg.PurgeTime),
	)
}

// runDailyAt sleeps until the next occurrence of the HH:MM wall-clock time,
// runs the job under the lock, and repeats.
func (s *Scheduler) runDailyAt(ctx context.Context, name, at string, job func(context.Context) error) {
	for {
		wait, err := NextRunIn(s.now(), at)
		if err != nil {
			s.logger.Error("Invalid schedule time, job disabled",
				slog.String("job", name), slog.String("at", at))
			return
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.RunExclusive(ctx, name, job)
	}
}

// RunExclusive runs job while holding the named lock. When the lock is held
// elsewhere the invocation is skipped silently: no writes happen and no error
// surfaces. The lock is released on every exit path, including panics, so a
// crash mid-job never holds the lease past its TTL.
func (s *Scheduler) RunExclusive(ctx context.Context, name string, job func(context.Context) error) {
	holder := uuid.NewString()
	if !s.lock.TryAcquire(ctx, name, holder, s.cfg.LockTTL) {
		s.logger.Debug("Job lock held elsewhere, skipping", slog.String("job", name))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Job panicked", slog.String("job", name), slog.Any("panic", r))
		}
		// The job context may already be cancelled on shutdown; release on a
		// fresh context so the lease does not linger until its TTL.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.lock.Release(releaseCtx, name, holder)
	}()

	start := s.now()
	if err := job(ctx); err != nil {
		s.logger.Error("Job failed",
			slog.String("job", name),
			slog.Duration("elapsed", s.now().Sub(start)),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Info("Job completed",
		slog.String("job", name),
		slog.Duration("elapsed", s.now().Sub(start)),
	)
}

// refreshJob pulls today's quotes and snapshots them into history.
func (s *Scheduler) refreshJob(ctx context.Context) error {
	if err := s.services.Rate.RefreshRates(ctx); err != nil {
		return err
	}
	return s.services.History.SnapshotToday(ctx)
}

// purgeJob applies the retention policies to both stores.
func (s *Scheduler) purgeJob(ctx context.Context) error {
	if _, err := s.services.History.PurgeHistoryOlderThan(ctx, s.cfg.HistoryRetentionDays); err != nil {
		return err
	}
	_, err := s.services.Rate.PurgeRatesOlderThan(ctx, s.cfg.RateRetentionDays)
	return err
}

// expandJob checks whether elapsed service time has unlocked a deeper
// backfill stage and runs at most one capped expansion.
func (s *Scheduler) expandJob(ctx context.Context) error {
	elapsed := int(s.now().Sub(s.cfg.ServiceStartDate).Hours() / 24)
	target := s.services.Backfill.ExpansionTarget(elapsed)
	if target == 0 {
		s.logger.Debug("No expansion stage due yet", slog.Int("elapsed_days", elapsed))
		return nil
	}

	result, err := s.services.Backfill.Expand(ctx, target)
	if err != nil {
		return err
	}
	if result.Capped {
		s.logger.Info("Expansion partially complete, next run continues",
			slog.Int("target_days", target),
			slog.Int("collected_days", result.CollectedDays),
			slog.Int("requested_days", result.RequestedDays),
		)
	}
	return nil
}

// initCheckJob reseeds the initial window when the ledger looks empty.
func (s *Scheduler) initCheckJob(ctx context.Context) error {
	_, err := s.services.Backfill.Initialize(ctx)
	return err
}

// NextRunIn computes how long to wait from now until the next occurrence of
// the HH:MM wall-clock time, in now's location. A time equal to now counts
// as tomorrow's occurrence.
func NextRunIn(now time.Time, at string) (time.Duration, error) {
	target, err := time.Parse("15:04", at)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule time '%s': %w", at, err)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), target.Hour(), target.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now), nil
}
