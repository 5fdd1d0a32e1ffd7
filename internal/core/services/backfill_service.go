package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/devjsik/exchange_rate_app/internal/core/ports"
	portsrepo "github.com/devjsik/exchange_rate_app/internal/core/ports/repositories"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
)

const (
	// initWindowDays is the business-day depth of the initial seeding window.
	initWindowDays = 30

	// initSanityThreshold: a ledger with at least this many rows counts as
	// already initialized. Any real 30-day seed writes an order of magnitude
	// more rows than this.
	initSanityThreshold = 10

	// expandDayCap bounds upstream load per expansion run. The auth key has
	// a daily call quota shared with the refresh jobs.
	expandDayCap = 100

	// maxConsecutiveFailures aborts a run that keeps failing day after day.
	maxConsecutiveFailures = 5
)

// BackfillService performs staged historical ingestion against the
// rate-limited upstream source.
type BackfillService struct {
	source      ports.RateSource
	historyRepo portsrepo.HistoryRepositoryFacade
	callDelay   time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewBackfillService creates a new BackfillService. callDelay is the pause
// between successive per-day upstream calls.
func NewBackfillService(
	source ports.RateSource,
	historyRepo portsrepo.HistoryRepositoryFacade,
	callDelay time.Duration,
	logger *slog.Logger,
) *BackfillService {
	return &BackfillService{
		source:      source,
		historyRepo: historyRepo,
		callDelay:   callDelay,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Test use only.
func (s *BackfillService) WithClock(now func() time.Time) *BackfillService {
	s.now = now
	return s
}

// Initialize seeds the most recent 30-day business-day window, oldest first.
// A ledger that already holds rows beyond the sanity threshold is left alone.
func (s *BackfillService) Initialize(ctx context.Context) (domain.BackfillResult, error) {
	count, err := s.historyRepo.CountEntries(ctx)
	if err != nil {
		return domain.BackfillResult{}, fmt.Errorf("failed to count history entries: %w", err)
	}
	if count >= initSanityThreshold {
		s.logger.Debug("History already initialized", slog.Int64("rows", count))
		return domain.BackfillResult{Skipped: true}, nil
	}

	today := truncateToDay(s.now())
	days := BusinessDaysBetween(today.AddDate(0, 0, -initWindowDays), today)
	s.logger.Info("Initializing history ledger", slog.Int("business_days", len(days)))

	result := domain.BackfillResult{RequestedDays: len(days)}
	return s.collectDays(ctx, days, result)
}

// Expand deepens the ledger to targetDays. It is a no-op when the oldest
// stored date already reaches today − targetDays. The collected range is
// capped at 100 business days per invocation; the returned result reports
// the cap explicitly.
func (s *BackfillService) Expand(ctx context.Context, targetDays int) (domain.BackfillResult, error) {
	if targetDays != 90 && targetDays != 180 && targetDays != 365 {
		return domain.BackfillResult{}, fmt.Errorf("%w: unsupported backfill target %d", apperrors.ErrValidation, targetDays)
	}

	today := truncateToDay(s.now())
	targetStart := today.AddDate(0, 0, -targetDays)

	oldest, err := s.historyRepo.FindOldestDate(ctx)
	if err != nil {
		return domain.BackfillResult{}, fmt.Errorf("failed to find oldest history date: %w", err)
	}
	if oldest == nil {
		// Empty ledger; expansion presumes an initialized base window.
		s.logger.Warn("Expand called on an empty ledger, running initialization instead")
		return s.Initialize(ctx)
	}
	if !oldest.After(targetStart) {
		s.logger.Debug("History already covers the target depth",
			slog.Int("target_days", targetDays),
			slog.String("oldest", oldest.Format("2006-01-02")),
		)
		return domain.BackfillResult{Skipped: true}, nil
	}

	days := BusinessDaysBetween(targetStart, oldest.AddDate(0, 0, -1))
	result := domain.BackfillResult{RequestedDays: len(days)}
	if len(days) > expandDayCap {
		// Keep the newest portion, adjacent to the stored range, so coverage
		// grows contiguously backward and the next run picks up where this
		// one stopped.
		days = days[len(days)-expandDayCap:]
		result.Capped = true
		s.logger.Info("Backfill range capped for this run",
			slog.Int("requested_days", result.RequestedDays),
			slog.Int("capped_to", expandDayCap),
		)
	}

	s.logger.Info("Expanding history ledger",
		slog.Int("target_days", targetDays),
		slog.Int("business_days", len(days)),
	)
	return s.collectDays(ctx, days, result)
}

// ForceReinitialize deletes all history rows and reseeds the initial window.
// Destructive; operator-triggered recovery only.
func (s *BackfillService) ForceReinitialize(ctx context.Context) (domain.BackfillResult, error) {
	removed, err := s.historyRepo.DeleteAllEntries(ctx)
	if err != nil {
		return domain.BackfillResult{}, fmt.Errorf("failed to wipe history: %w", err)
	}
	s.logger.Warn("History ledger wiped for reinitialization", slog.Int64("removed", removed))
	return s.Initialize(ctx)
}

// ExpansionTarget returns the backfill depth expected after elapsedDays of
// operation. The ladder bounds upstream call volume: a fresh deployment only
// ever owes the 30-day seed, and deeper history is earned over time.
func (s *BackfillService) ExpansionTarget(elapsedDays int) int {
	switch {
	case elapsedDays >= 90:
		return 365
	case elapsedDays >= 60:
		return 180
	case elapsedDays >= 30:
		return 90
	default:
		return 0
	}
}

// collectDays fetches each day independently, pausing between upstream calls.
// A single day's failure is skipped; five consecutive failures abort the run
// with a run-level error. Progress already written stays written.
func (s *BackfillService) collectDays(ctx context.Context, days []time.Time, result domain.BackfillResult) (domain.BackfillResult, error) {
	consecutiveFailures := 0
	var lastErr error

	for i, day := range days {
		if i > 0 {
			select {
			case <-ctx.Done():
				return result, fmt.Errorf("backfill cancelled: %w", ctx.Err())
			case <-time.After(s.callDelay):
			}
		}

		if err := s.collectDay(ctx, day); err != nil {
			result.FailedDays++
			consecutiveFailures++
			lastErr = err
			s.logger.Warn("Failed to collect history for day",
				slog.String("date", day.Format("2006-01-02")),
				slog.Int("consecutive_failures", consecutiveFailures),
				slog.String("error", err.Error()),
			)
			if consecutiveFailures >= maxConsecutiveFailures {
				s.logger.Error("Aborting backfill run after repeated failures",
					slog.Int("collected_days", result.CollectedDays),
					slog.Int("failed_days", result.FailedDays),
				)
				return result, fmt.Errorf("backfill aborted after %d consecutive day failures: %w",
					maxConsecutiveFailures, lastErr)
			}
			continue
		}

		consecutiveFailures = 0
		result.CollectedDays++
	}

	s.logger.Info("Backfill run finished",
		slog.Int("collected_days", result.CollectedDays),
		slog.Int("failed_days", result.FailedDays),
	)
	return result, nil
}

// collectDay fetches one day's quote set and inserts any missing history
// rows. A day with no published quotes (holiday) is not an error.
func (s *BackfillService) collectDay(ctx context.Context, day time.Time) error {
	quotes, err := s.source.Fetch(ctx, day)
	if err != nil {
		return err
	}
	if len(quotes) == 0 {
		s.logger.Debug("No quotes published for day", slog.String("date", day.Format("2006-01-02")))
		return nil
	}

	rates := normalizeQuotes(quotes, day, s.now(), s.logger)
	entries := make([]domain.RateHistoryEntry, 0, len(rates))
	for _, rate := range rates {
		entries = append(entries, domain.RateHistoryEntry{
			CurrencyCode: rate.CurrencyCode,
			CurrencyName: rate.CurrencyName,
			Rate:         rate.Rate,
			RateDate:     rate.BaseDate,
			CreatedAt:    rate.CreatedAt,
		})
	}

	if _, err := s.historyRepo.InsertEntries(ctx, entries); err != nil {
		return err
	}
	return nil
}

// BusinessDaysBetween lists the Monday–Friday dates in [start, end],
// oldest first. No public-holiday calendar is modeled.
func BusinessDaysBetween(start, end time.Time) []time.Time {
	start = truncateToDay(start)
	end = truncateToDay(end)

	var days []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, day)
	}
	return days
}

var _ portssvc.BackfillSvcFacade = (*BackfillService)(nil)
