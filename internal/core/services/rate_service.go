package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/devjsik/exchange_rate_app/internal/core/ports"
	portsrepo "github.com/devjsik/exchange_rate_app/internal/core/ports/repositories"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const sourceName = "koreaexim"

const maxHistoryWindowDays = 365

// RateService provides acquisition, persistence and read access for
// exchange rates.
type RateService struct {
	source      ports.RateSource
	rateRepo    portsrepo.RateRepositoryFacade
	historyRepo portsrepo.HistoryRepositoryFacade
	cache       ports.RateCache
	cacheTTL    time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewRateService creates a new RateService.
func NewRateService(
	source ports.RateSource,
	rateRepo portsrepo.RateRepositoryFacade,
	historyRepo portsrepo.HistoryRepositoryFacade,
	cache ports.RateCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *RateService {
	return &RateService{
		source:      source,
		rateRepo:    rateRepo,
		historyRepo: historyRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Test use only.
func (s *RateService) WithClock(now func() time.Time) *RateService {
	s.now = now
	return s
}

// FetchRatesForDate fetches and normalizes the quote set for date. When the
// target date has no data yet (weekend, or before the daily announcement),
// the prior date is tried once; this is the only automatic fallback on the
// current read path. Callers must not substitute zero on failure.
func (s *RateService) FetchRatesForDate(ctx context.Context, date time.Time) ([]domain.CurrentRate, error) {
	quotes, err := s.source.Fetch(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", date.Format("2006-01-02"), err)
	}

	effectiveDate := date
	if len(quotes) == 0 {
		effectiveDate = date.AddDate(0, 0, -1)
		s.logger.Info("No quotes for target date, falling back to prior day",
			slog.String("target_date", date.Format("2006-01-02")),
			slog.String("fallback_date", effectiveDate.Format("2006-01-02")),
		)
		quotes, err = s.source.Fetch(ctx, effectiveDate)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch fallback rates for %s: %w", effectiveDate.Format("2006-01-02"), err)
		}
		if len(quotes) == 0 {
			return nil, fmt.Errorf("%w: no rate data for %s or the prior day",
				apperrors.ErrNotFound, date.Format("2006-01-02"))
		}
	}

	return s.normalize(quotes, effectiveDate), nil
}

// normalize maps provider symbols to canonical codes and converts quotes to
// fixed-scale per-unit rates. Unusable entries are dropped with a warning.
func (s *RateService) normalize(quotes []ports.RawQuote, date time.Time) []domain.CurrentRate {
	return normalizeQuotes(quotes, date, s.now(), s.logger)
}

// normalizeQuotes is shared by the refresh path and the backfill engine.
func normalizeQuotes(quotes []ports.RawQuote, date, now time.Time, logger *slog.Logger) []domain.CurrentRate {
	rates := make([]domain.CurrentRate, 0, len(quotes))
	for _, quote := range quotes {
		info, ok := domain.LookupCurrencyBySymbol(quote.CurrencySymbol)
		if !ok {
			logger.Warn("Skipping unknown currency symbol", slog.String("symbol", quote.CurrencySymbol))
			continue
		}

		rate, ok := parseQuoteValue(quote, logger)
		if !ok {
			continue
		}

		perUnit := rate
		if info.UnitDivisor > 1 {
			perUnit = rate.Div(decimal.NewFromInt(int64(info.UnitDivisor)))
		}

		rates = append(rates, domain.CurrentRate{
			CurrencyCode: info.Code,
			CurrencyName: info.Name,
			Rate:         perUnit.Round(domain.RateScale),
			BaseDate:     truncateToDay(date),
			Source:       sourceName,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return rates
}

func parseQuoteValue(quote ports.RawQuote, logger *slog.Logger) (decimal.Decimal, bool) {
	raw := strings.ReplaceAll(strings.TrimSpace(quote.DealBaseRate), ",", "")
	if raw == "" {
		logger.Warn("Skipping quote with blank rate", slog.String("symbol", quote.CurrencySymbol))
		return decimal.Decimal{}, false
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		logger.Warn("Skipping quote with unparseable rate",
			slog.String("symbol", quote.CurrencySymbol), slog.String("raw", quote.DealBaseRate))
		return decimal.Decimal{}, false
	}
	if value.LessThanOrEqual(decimal.Zero) {
		logger.Warn("Skipping quote with non-positive rate",
			slog.String("symbol", quote.CurrencySymbol), slog.String("raw", quote.DealBaseRate))
		return decimal.Decimal{}, false
	}
	return value, true
}

// RefreshRates fetches today's quote set and upserts it into the
// current-rate store, then drops the cached all-rates payload.
func (s *RateService) RefreshRates(ctx context.Context) error {
	rates, err := s.FetchRatesForDate(ctx, s.now())
	if err != nil {
		return err
	}
	if err := s.rateRepo.UpsertRates(ctx, rates); err != nil {
		return fmt.Errorf("failed to persist refreshed rates: %w", err)
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("Refreshed current rates", slog.Int("count", len(rates)))
	return nil
}

// GetAllExchangeRates retrieves every currency's latest rate, serving from
// the shared cache when possible.
func (s *RateService) GetAllExchangeRates(ctx context.Context) ([]domain.CurrentRate, error) {
	if rates, ok := s.cache.GetRates(ctx); ok {
		return rates, nil
	}

	rates, err := s.rateRepo.FindLatestRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest rates: %w", err)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no rate data available", apperrors.ErrNotFound)
	}

	s.cache.SetRates(ctx, rates, s.cacheTTL)
	return rates, nil
}

// GetRateWithChange retrieves one currency's latest rate and its movement
// against the most recent prior history entry.
func (s *RateService) GetRateWithChange(ctx context.Context, currencyCode string) (*domain.RateWithChange, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if _, ok := domain.LookupCurrency(currencyCode); !ok {
		return nil, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, currencyCode)
	}

	latest, err := s.rateRepo.FindLatestRateByCurrency(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no rate stored for '%s'", apperrors.ErrNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to load rate for '%s': %w", currencyCode, err)
	}

	result := &domain.RateWithChange{CurrentRate: *latest}

	previous, err := s.historyRepo.FindLatestBefore(ctx, currencyCode, latest.BaseDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No history yet; change metrics stay zero.
			return result, nil
		}
		return nil, fmt.Errorf("failed to load prior rate for '%s': %w", currencyCode, err)
	}

	result.ChangeAmount = latest.Rate.Sub(previous.Rate)
	if !previous.Rate.IsZero() {
		result.ChangePercent = result.ChangeAmount.Div(previous.Rate).Mul(decimal.NewFromInt(100)).Round(2)
	}
	prevDate := previous.RateDate
	result.PreviousDate = &prevDate
	return result, nil
}

// GetHistoricalRates retrieves up to days of per-day history for one
// currency, oldest first.
func (s *RateService) GetHistoricalRates(ctx context.Context, currencyCode string, days int) ([]domain.RateHistoryEntry, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if _, ok := domain.LookupCurrency(currencyCode); !ok {
		return nil, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, currencyCode)
	}
	if days <= 0 || days > maxHistoryWindowDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", apperrors.ErrValidation, maxHistoryWindowDays)
	}

	since := truncateToDay(s.now()).AddDate(0, 0, -days)
	entries, err := s.historyRepo.FindByCurrencySince(ctx, currencyCode, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for '%s': %w", currencyCode, err)
	}
	return entries, nil
}

// PurgeRatesOlderThan removes current-rate rows older than the given number
// of days.
func (s *RateService) PurgeRatesOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := truncateToDay(s.now()).AddDate(0, 0, -days)
	removed, err := s.rateRepo.DeleteRatesBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge old rates: %w", err)
	}
	if removed > 0 {
		s.logger.Info("Purged old current rates", slog.Int64("removed", removed))
	}
	return removed, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var _ portssvc.RateSvcFacade = (*RateService)(nil)
