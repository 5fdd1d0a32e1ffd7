package services

import (
	"context"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
)

// RateReaderSvc defines the read surface consumed by the presentation layer
// and by the alerting subsystem.
type RateReaderSvc interface {
	// GetAllExchangeRates retrieves every currency's latest rate.
	GetAllExchangeRates(ctx context.Context) ([]domain.CurrentRate, error)

	// GetRateWithChange retrieves one currency's latest rate together with
	// its day-over-day change metrics.
	GetRateWithChange(ctx context.Context, currencyCode string) (*domain.RateWithChange, error)

	// GetHistoricalRates retrieves up to days of per-day history for one
	// currency, oldest first.
	GetHistoricalRates(ctx context.Context, currencyCode string, days int) ([]domain.RateHistoryEntry, error)
}

// RateRefresherSvc defines the acquisition operations driven by the scheduler.
type RateRefresherSvc interface {
	// FetchRatesForDate fetches and normalizes the quote set for date,
	// falling back to the prior date once when the target date is empty.
	FetchRatesForDate(ctx context.Context, date time.Time) ([]domain.CurrentRate, error)

	// RefreshRates fetches today's quote set and upserts it into the
	// current-rate store.
	RefreshRates(ctx context.Context) error

	// PurgeRatesOlderThan removes current-rate rows older than the given
	// number of days. Returns the number of rows removed.
	PurgeRatesOlderThan(ctx context.Context, days int) (int64, error)
}

// RateSvcFacade combines all rate-related service interfaces
type RateSvcFacade interface {
	RateReaderSvc
	RateRefresherSvc
}
