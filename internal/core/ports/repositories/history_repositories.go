package repositories

import (
	"context"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
)

// HistoryReader defines read operations for the per-day rate history ledger
type HistoryReader interface {
	// HasEntriesForDate reports whether any history rows exist for the given date.
	HasEntriesForDate(ctx context.Context, date time.Time) (bool, error)

	// CountEntries returns the total number of history rows.
	CountEntries(ctx context.Context) (int64, error)

	// FindOldestDate returns the oldest stored history date, or nil when the
	// ledger is empty.
	FindOldestDate(ctx context.Context) (*time.Time, error)

	// FindByCurrencySince retrieves history entries for one currency with a
	// date on or after since, oldest first.
	FindByCurrencySince(ctx context.Context, currencyCode string, since time.Time) ([]domain.RateHistoryEntry, error)

	// FindLatestBefore retrieves the most recent history entry for one
	// currency strictly before the given date.
	FindLatestBefore(ctx context.Context, currencyCode string, date time.Time) (*domain.RateHistoryEntry, error)
}

// HistoryWriter defines write operations for the history ledger
type HistoryWriter interface {
	// InsertEntries inserts the given entries, silently skipping any
	// (currency, date) pair that already has a row. Returns the number of
	// rows actually inserted.
	InsertEntries(ctx context.Context, entries []domain.RateHistoryEntry) (int64, error)

	// DeleteEntriesBefore removes history rows dated before cutoff.
	// Returns the number of rows removed.
	DeleteEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteAllEntries wipes the ledger. Intended for operator-triggered
	// recovery only.
	DeleteAllEntries(ctx context.Context) (int64, error)
}

// HistoryRepositoryFacade combines all history repository interfaces
type HistoryRepositoryFacade interface {
	HistoryReader
	HistoryWriter
}
