package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	portsrepo "github.com/devjsik/exchange_rate_app/internal/core/ports/repositories"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
)

// HistoryService maintains the immutable per-day history ledger.
type HistoryService struct {
	rateRepo    portsrepo.RateRepositoryFacade
	historyRepo portsrepo.HistoryRepositoryFacade
	logger      *slog.Logger
	now         func() time.Time
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(
	rateRepo portsrepo.RateRepositoryFacade,
	historyRepo portsrepo.HistoryRepositoryFacade,
	logger *slog.Logger,
) *HistoryService {
	return &HistoryService{
		rateRepo:    rateRepo,
		historyRepo: historyRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Test use only.
func (s *HistoryService) WithClock(now func() time.Time) *HistoryService {
	s.now = now
	return s
}

// SnapshotToday copies the latest current rates into the history ledger.
// Running it twice on the same day leaves the ledger unchanged: the day-level
// existence check skips the whole write, and the per-row uniqueness constraint
// guards the remainder.
func (s *HistoryService) SnapshotToday(ctx context.Context) error {
	today := truncateToDay(s.now())

	exists, err := s.historyRepo.HasEntriesForDate(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to check history for today: %w", err)
	}
	if exists {
		s.logger.Debug("History snapshot already taken today")
		return nil
	}

	rates, err := s.rateRepo.FindLatestRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rates for snapshot: %w", err)
	}
	if len(rates) == 0 {
		s.logger.Warn("No current rates to snapshot")
		return nil
	}

	now := s.now()
	entries := make([]domain.RateHistoryEntry, 0, len(rates))
	for _, rate := range rates {
		entries = append(entries, domain.RateHistoryEntry{
			CurrencyCode: rate.CurrencyCode,
			CurrencyName: rate.CurrencyName,
			Rate:         rate.Rate,
			RateDate:     today,
			CreatedAt:    now,
		})
	}

	inserted, err := s.historyRepo.InsertEntries(ctx, entries)
	if err != nil {
		return fmt.Errorf("failed to write history snapshot: %w", err)
	}
	s.logger.Info("History snapshot written",
		slog.String("date", today.Format("2006-01-02")),
		slog.Int64("inserted", inserted),
	)
	return nil
}

// PurgeHistoryOlderThan removes history rows older than the given number of days.
func (s *HistoryService) PurgeHistoryOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := truncateToDay(s.now()).AddDate(0, 0, -days)
	removed, err := s.historyRepo.DeleteEntriesBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge old history: %w", err)
	}
	if removed > 0 {
		s.logger.Info("Purged old history entries", slog.Int64("removed", removed))
	}
	return removed, nil
}

var _ portssvc.HistorySvcFacade = (*HistoryService)(nil)
