package repositories

import (
	"context"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
)

// RateReader defines read operations for current rate data
type RateReader interface {
	// FindLatestRates retrieves every rate row belonging to the most recent base date.
	FindLatestRates(ctx context.Context) ([]domain.CurrentRate, error)

	// FindLatestRateByCurrency retrieves the most recent rate row for one currency.
	FindLatestRateByCurrency(ctx context.Context, currencyCode string) (*domain.CurrentRate, error)
}

// RateWriter defines write operations for current rate data
type RateWriter interface {
	// UpsertRates inserts the given rates, overwriting any existing row for
	// the same (currency, base date) pair.
	UpsertRates(ctx context.Context, rates []domain.CurrentRate) error

	// DeleteRatesBefore removes rate rows with a base date older than cutoff.
	// Returns the number of rows removed.
	DeleteRatesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RateRepositoryFacade combines all current-rate repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
