package services_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/devjsik/exchange_rate_app/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRateSource is a mock type for the ports.RateSource interface
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) Fetch(ctx context.Context, date time.Time) ([]ports.RawQuote, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.RawQuote), args.Error(1)
}

// MockRateRepository is a mock type for the RateRepositoryFacade interface
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindLatestRates(ctx context.Context) ([]domain.CurrentRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrentRate), args.Error(1)
}

func (m *MockRateRepository) FindLatestRateByCurrency(ctx context.Context, currencyCode string) (*domain.CurrentRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentRate), args.Error(1)
}

func (m *MockRateRepository) UpsertRates(ctx context.Context, rates []domain.CurrentRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockRateRepository) DeleteRatesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockHistoryRepository is a mock type for the HistoryRepositoryFacade interface
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) HasEntriesForDate(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockHistoryRepository) CountEntries(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) FindOldestDate(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockHistoryRepository) FindByCurrencySince(ctx context.Context, currencyCode string, since time.Time) ([]domain.RateHistoryEntry, error) {
	args := m.Called(ctx, currencyCode, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateHistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) FindLatestBefore(ctx context.Context, currencyCode string, date time.Time) (*domain.RateHistoryEntry, error) {
	args := m.Called(ctx, currencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateHistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) InsertEntries(ctx context.Context, entries []domain.RateHistoryEntry) (int64, error) {
	args := m.Called(ctx, entries)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) DeleteEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) DeleteAllEntries(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockBankRepository is a mock type for the BankRepositoryFacade interface
type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) FindBankByCode(ctx context.Context, code string) (*domain.BankPricingProfile, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankPricingProfile), args.Error(1)
}

func (m *MockBankRepository) ListActiveBanks(ctx context.Context) ([]domain.BankPricingProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankPricingProfile), args.Error(1)
}

func (m *MockBankRepository) SaveBank(ctx context.Context, bank domain.BankPricingProfile) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepository) UpdateBank(ctx context.Context, bank domain.BankPricingProfile) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

// MockRateCache is a mock type for the ports.RateCache interface
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) GetRates(ctx context.Context) ([]domain.CurrentRate, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]domain.CurrentRate), args.Bool(1)
}

func (m *MockRateCache) SetRates(ctx context.Context, rates []domain.CurrentRate, ttl time.Duration) {
	m.Called(ctx, rates, ttl)
}

func (m *MockRateCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

// noopCache satisfies ports.RateCache for tests that do not care about caching.
type noopCache struct{}

func (noopCache) GetRates(context.Context) ([]domain.CurrentRate, bool) { return nil, false }

func (noopCache) SetRates(context.Context, []domain.CurrentRate, time.Duration) {}

func (noopCache) Invalidate(context.Context) {}
