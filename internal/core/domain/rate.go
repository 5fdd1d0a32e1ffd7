package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateScale is the fixed fractional precision for stored exchange rates.
const RateScale = 4

// CurrentRate is the latest known base rate for a currency on a business date.
// The same (currency, date) pair is overwritten in place when re-fetched.
type CurrentRate struct {
	CurrencyCode string          `json:"currencyCode"` // canonical 3-letter code
	CurrencyName string          `json:"currencyName"`
	Rate         decimal.Decimal `json:"rate"` // per-unit, 4 fractional digits
	BaseDate     time.Time       `json:"baseDate"`
	Source       string          `json:"source"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// RateHistoryEntry is one immutable per-day snapshot of a currency's rate.
// At most one entry exists per (currency, date); writers check before insert.
type RateHistoryEntry struct {
	HistoryID    int64           `json:"historyID"`
	CurrencyCode string          `json:"currencyCode"`
	CurrencyName string          `json:"currencyName"`
	Rate         decimal.Decimal `json:"rate"`
	RateDate     time.Time       `json:"rateDate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// RateWithChange pairs a current rate with its day-over-day movement.
// Change fields are zero when no prior history entry exists.
type RateWithChange struct {
	CurrentRate
	ChangeAmount  decimal.Decimal `json:"changeAmount"`
	ChangePercent decimal.Decimal `json:"changePercent"` // 2 fractional digits
	PreviousDate  *time.Time      `json:"previousDate,omitempty"`
}
