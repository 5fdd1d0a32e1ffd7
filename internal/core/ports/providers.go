package ports

import (
	"context"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
)

// RawQuote is one upstream quote row before normalization. DealBaseRate is
// kept as the provider's string form (comma-separated thousands) until the
// acquisition service parses it.
type RawQuote struct {
	CurrencySymbol string // provider symbol, e.g. "USD" or "JPY(100)"
	CurrencyName   string
	DealBaseRate   string
}

// RateSource fetches the official quote set for one business date.
// Implementations classify failures into the apperrors taxonomy.
type RateSource interface {
	Fetch(ctx context.Context, date time.Time) ([]RawQuote, error)
}

// LockProvider is a best-effort distributed mutual-exclusion lease backed by
// a shared key-value store. TryAcquire must be a single atomic set-if-absent
// with the TTL attached, and Release a single atomic check-and-delete that
// only succeeds while holder still owns the key. When the backing store is
// unreachable, TryAcquire fails closed and returns false.
type LockProvider interface {
	TryAcquire(ctx context.Context, key, holder string, ttl time.Duration) bool
	Release(ctx context.Context, key, holder string) bool
}

// RateCache caches the all-rates response in the shared key-value store.
// Cache failures are soft: callers fall through to the database.
type RateCache interface {
	GetRates(ctx context.Context) ([]domain.CurrentRate, bool)
	SetRates(ctx context.Context, rates []domain.CurrentRate, ttl time.Duration)
	Invalidate(ctx context.Context)
}
