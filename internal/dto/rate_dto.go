package dto

import (
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse is one currency's current rate as returned by the API.
type RateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	CurrencyName string          `json:"currencyName"`
	Rate         decimal.Decimal `json:"rate"`
	BaseDate     string          `json:"baseDate"` // yyyy-MM-dd
	FlagPath     string          `json:"flagPath,omitempty"`
}

// RateWithChangeResponse adds day-over-day movement to a rate.
type RateWithChangeResponse struct {
	RateResponse
	ChangeAmount  decimal.Decimal `json:"changeAmount"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

// HistoryEntryResponse is one per-day history point for charting.
type HistoryEntryResponse struct {
	RateDate string          `json:"rateDate"`
	Rate     decimal.Decimal `json:"rate"`
}

// BackfillResponse reports the outcome of an admin backfill request.
type BackfillResponse struct {
	RequestedDays int  `json:"requestedDays"`
	CollectedDays int  `json:"collectedDays"`
	FailedDays    int  `json:"failedDays"`
	Capped        bool `json:"capped"`
	Skipped       bool `json:"skipped"`
}

const dateLayout = "2006-01-02"

// ToRateResponse converts a domain.CurrentRate to a RateResponse DTO.
func ToRateResponse(rate domain.CurrentRate) RateResponse {
	resp := RateResponse{
		CurrencyCode: rate.CurrencyCode,
		CurrencyName: rate.CurrencyName,
		Rate:         rate.Rate,
		BaseDate:     rate.BaseDate.Format(dateLayout),
	}
	if info, ok := domain.LookupCurrency(rate.CurrencyCode); ok {
		resp.FlagPath = info.FlagPath
	}
	return resp
}

// ToListRateResponse converts a slice of current rates to response DTOs.
func ToListRateResponse(rates []domain.CurrentRate) []RateResponse {
	responses := make([]RateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToRateResponse(rate)
	}
	return responses
}

// ToRateWithChangeResponse converts a domain.RateWithChange to its DTO.
func ToRateWithChangeResponse(rate *domain.RateWithChange) RateWithChangeResponse {
	return RateWithChangeResponse{
		RateResponse:  ToRateResponse(rate.CurrentRate),
		ChangeAmount:  rate.ChangeAmount,
		ChangePercent: rate.ChangePercent,
	}
}

// ToListHistoryResponse converts history entries to chart-friendly DTOs.
func ToListHistoryResponse(entries []domain.RateHistoryEntry) []HistoryEntryResponse {
	responses := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = HistoryEntryResponse{
			RateDate: entry.RateDate.Format(dateLayout),
			Rate:     entry.Rate,
		}
	}
	return responses
}

// ToBackfillResponse converts a domain.BackfillResult to its DTO.
func ToBackfillResponse(result domain.BackfillResult) BackfillResponse {
	return BackfillResponse(result)
}
