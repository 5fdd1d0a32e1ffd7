package services

import (
	"context"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
)

// HistorySvcFacade maintains the immutable per-day rate history ledger.
type HistorySvcFacade interface {
	// SnapshotToday copies the latest current rates into the history ledger,
	// skipping entirely when today's rows already exist.
	SnapshotToday(ctx context.Context) error

	// PurgeHistoryOlderThan removes history rows older than the given number
	// of days. Returns the number of rows removed.
	PurgeHistoryOlderThan(ctx context.Context, days int) (int64, error)
}

// BackfillSvcFacade performs staged historical ingestion.
type BackfillSvcFacade interface {
	// Initialize seeds the most recent 30 business-day window when the
	// ledger looks empty; otherwise it is a no-op.
	Initialize(ctx context.Context) (domain.BackfillResult, error)

	// Expand deepens the ledger to targetDays (90, 180 or 365), capped at
	// 100 business days per invocation.
	Expand(ctx context.Context, targetDays int) (domain.BackfillResult, error)

	// ForceReinitialize wipes the ledger and runs Initialize. Destructive;
	// operator-triggered recovery only.
	ForceReinitialize(ctx context.Context) (domain.BackfillResult, error)

	// ExpansionTarget returns the backfill depth the service should have
	// reached after elapsedDays of operation (0 when only the initial
	// 30-day window is expected).
	ExpansionTarget(elapsedDays int) int
}
