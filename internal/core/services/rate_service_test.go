package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/devjsik/exchange_rate_app/internal/core/ports"
	"github.com/devjsik/exchange_rate_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RateServiceTestSuite struct {
	suite.Suite
	mockSource      *MockRateSource
	mockRateRepo    *MockRateRepository
	mockHistoryRepo *MockHistoryRepository
	mockCache       *MockRateCache
	service         *services.RateService
	fixedNow        time.Time
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.mockRateRepo = new(MockRateRepository)
	suite.mockHistoryRepo = new(MockHistoryRepository)
	suite.mockCache = new(MockRateCache)
	suite.fixedNow = time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewRateService(
		suite.mockSource, suite.mockRateRepo, suite.mockHistoryRepo,
		suite.mockCache, 10*time.Minute, newTestLogger(),
	).WithClock(func() time.Time { return suite.fixedNow })
}

func (suite *RateServiceTestSuite) TestFetchRatesForDate_NormalizesQuotes() {
	ctx := context.Background()
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	suite.mockSource.On("Fetch", ctx, date).Return([]ports.RawQuote{
		{CurrencySymbol: "USD", CurrencyName: "미국 달러", DealBaseRate: "1,373.40"},
		{CurrencySymbol: "JPY(100)", CurrencyName: "일본 엔", DealBaseRate: "950.12"},
		{CurrencySymbol: "ZZZ", CurrencyName: "unknown", DealBaseRate: "1.00"},
		{CurrencySymbol: "EUR", CurrencyName: "유로", DealBaseRate: ""},
		{CurrencySymbol: "GBP", CurrencyName: "영국 파운드", DealBaseRate: "0"},
	}, nil).Once()

	rates, err := suite.service.FetchRatesForDate(ctx, date)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), rates, 2)

	assert.Equal(suite.T(), "USD", rates[0].CurrencyCode)
	assert.True(suite.T(), rates[0].Rate.Equal(dec("1373.4")))

	// Per-100 quotes come back divided to a per-unit rate
	assert.Equal(suite.T(), "JPY", rates[1].CurrencyCode)
	assert.True(suite.T(), rates[1].Rate.Equal(dec("9.5012")))

	assert.Equal(suite.T(), date, rates[0].BaseDate)
}

func (suite *RateServiceTestSuite) TestFetchRatesForDate_FallsBackOneDay() {
	ctx := context.Background()
	date := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	prior := date.AddDate(0, 0, -1)

	suite.mockSource.On("Fetch", ctx, date).Return([]ports.RawQuote{}, nil).Once()
	suite.mockSource.On("Fetch", ctx, prior).Return([]ports.RawQuote{
		{CurrencySymbol: "USD", CurrencyName: "미국 달러", DealBaseRate: "1370.00"},
	}, nil).Once()

	rates, err := suite.service.FetchRatesForDate(ctx, date)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), rates, 1)
	// The stored base date is the fallback date, not the requested one
	assert.Equal(suite.T(), prior, rates[0].BaseDate)
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestFetchRatesForDate_NoFallbackData() {
	ctx := context.Background()
	date := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	suite.mockSource.On("Fetch", ctx, mock.Anything).Return([]ports.RawQuote{}, nil).Twice()

	_, err := suite.service.FetchRatesForDate(ctx, date)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	// Exactly one fallback attempt, never more
	suite.mockSource.AssertNumberOfCalls(suite.T(), "Fetch", 2)
}

func (suite *RateServiceTestSuite) TestFetchRatesForDate_SourceErrorPropagates() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", ctx, mock.Anything).
		Return(nil, apperrors.ErrSourceUnavailable).Once()

	_, err := suite.service.FetchRatesForDate(ctx, suite.fixedNow)

	assert.ErrorIs(suite.T(), err, apperrors.ErrSourceUnavailable)
	suite.mockSource.AssertNumberOfCalls(suite.T(), "Fetch", 1)
}

func (suite *RateServiceTestSuite) TestRefreshRates_UpsertsAndInvalidatesCache() {
	ctx := context.Background()
	suite.mockSource.On("Fetch", ctx, mock.Anything).Return([]ports.RawQuote{
		{CurrencySymbol: "USD", CurrencyName: "미국 달러", DealBaseRate: "1373.40"},
	}, nil).Once()
	suite.mockRateRepo.On("UpsertRates", ctx, mock.Anything).Return(nil).Once()
	suite.mockCache.On("Invalidate", ctx).Return().Once()

	err := suite.service.RefreshRates(ctx)

	require.NoError(suite.T(), err)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetAllExchangeRates_ServesFromCache() {
	ctx := context.Background()
	cached := []domain.CurrentRate{{CurrencyCode: "USD", Rate: dec("1373.4")}}
	suite.mockCache.On("GetRates", ctx).Return(cached, true).Once()

	rates, err := suite.service.GetAllExchangeRates(ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, rates)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRates", mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetAllExchangeRates_FallsThroughToStore() {
	ctx := context.Background()
	stored := []domain.CurrentRate{{CurrencyCode: "USD", Rate: dec("1373.4")}}
	suite.mockCache.On("GetRates", ctx).Return(nil, false).Once()
	suite.mockRateRepo.On("FindLatestRates", ctx).Return(stored, nil).Once()
	suite.mockCache.On("SetRates", ctx, stored, 10*time.Minute).Return().Once()

	rates, err := suite.service.GetAllExchangeRates(ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, rates)
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetAllExchangeRates_EmptyStore() {
	ctx := context.Background()
	suite.mockCache.On("GetRates", ctx).Return(nil, false).Once()
	suite.mockRateRepo.On("FindLatestRates", ctx).Return([]domain.CurrentRate{}, nil).Once()

	_, err := suite.service.GetAllExchangeRates(ctx)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockCache.AssertNotCalled(suite.T(), "SetRates", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetRateWithChange_ComputesMovement() {
	ctx := context.Background()
	baseDate := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	prevDate := baseDate.AddDate(0, 0, -1)

	suite.mockRateRepo.On("FindLatestRateByCurrency", ctx, "USD").Return(&domain.CurrentRate{
		CurrencyCode: "USD", Rate: dec("1380"), BaseDate: baseDate,
	}, nil).Once()
	suite.mockHistoryRepo.On("FindLatestBefore", ctx, "USD", baseDate).Return(&domain.RateHistoryEntry{
		CurrencyCode: "USD", Rate: dec("1373.4"), RateDate: prevDate,
	}, nil).Once()

	result, err := suite.service.GetRateWithChange(ctx, "usd")

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.ChangeAmount.Equal(dec("6.6")), "change = %s", result.ChangeAmount)
	// 6.6 / 1373.4 * 100 = 0.4805... -> 0.48
	assert.True(suite.T(), result.ChangePercent.Equal(dec("0.48")), "percent = %s", result.ChangePercent)
	require.NotNil(suite.T(), result.PreviousDate)
	assert.Equal(suite.T(), prevDate, *result.PreviousDate)
}

func (suite *RateServiceTestSuite) TestGetRateWithChange_NoHistoryYet() {
	ctx := context.Background()
	baseDate := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	suite.mockRateRepo.On("FindLatestRateByCurrency", ctx, "USD").Return(&domain.CurrentRate{
		CurrencyCode: "USD", Rate: dec("1380"), BaseDate: baseDate,
	}, nil).Once()
	suite.mockHistoryRepo.On("FindLatestBefore", ctx, "USD", baseDate).
		Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.GetRateWithChange(ctx, "USD")

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.ChangeAmount.IsZero())
	assert.True(suite.T(), result.ChangePercent.IsZero())
	assert.Nil(suite.T(), result.PreviousDate)
}

func (suite *RateServiceTestSuite) TestGetRateWithChange_UnsupportedCurrency() {
	_, err := suite.service.GetRateWithChange(context.Background(), "XXX")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestGetHistoricalRates_ValidatesWindow() {
	ctx := context.Background()

	_, err := suite.service.GetHistoricalRates(ctx, "USD", 0)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	_, err = suite.service.GetHistoricalRates(ctx, "USD", 366)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	_, err = suite.service.GetHistoricalRates(ctx, "XXX", 30)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestGetHistoricalRates_QueriesSinceWindowStart() {
	ctx := context.Background()
	since := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	entries := []domain.RateHistoryEntry{{CurrencyCode: "USD", Rate: dec("1373.4")}}
	suite.mockHistoryRepo.On("FindByCurrencySince", ctx, "USD", since).Return(entries, nil).Once()

	got, err := suite.service.GetHistoricalRates(ctx, "usd", 30)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), entries, got)
	suite.mockHistoryRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestPurgeRatesOlderThan() {
	ctx := context.Background()
	cutoff := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	suite.mockRateRepo.On("DeleteRatesBefore", ctx, cutoff).Return(int64(44), nil).Once()

	removed, err := suite.service.PurgeRatesOlderThan(ctx, 30)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(44), removed)
}

func (suite *RateServiceTestSuite) TestPurgeRatesOlderThan_Error() {
	ctx := context.Background()
	suite.mockRateRepo.On("DeleteRatesBefore", ctx, mock.Anything).
		Return(int64(0), errors.New("db down")).Once()

	_, err := suite.service.PurgeRatesOlderThan(ctx, 30)

	assert.Error(suite.T(), err)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
