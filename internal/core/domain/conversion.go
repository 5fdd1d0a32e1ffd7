package domain

import "github.com/shopspring/decimal"

// ConversionDirection tells which way an amount is being converted.
type ConversionDirection string

const (
	// ForeignToLocal converts a foreign-currency amount into local currency.
	ForeignToLocal ConversionDirection = "FOREIGN_TO_LOCAL"
	// LocalToForeign converts a local-currency amount into foreign currency.
	LocalToForeign ConversionDirection = "LOCAL_TO_FOREIGN"
)

// Valid reports whether d is a known direction.
func (d ConversionDirection) Valid() bool {
	return d == ForeignToLocal || d == LocalToForeign
}

// ConversionResult is the outcome of applying a bank's pricing profile to a
// base rate and an input amount.
type ConversionResult struct {
	BankCode     string              `json:"bankCode"`
	Direction    ConversionDirection `json:"direction"`
	BaseRate     decimal.Decimal     `json:"baseRate"`
	AppliedRate  decimal.Decimal     `json:"appliedRate"` // after spread and preferential discount
	SpreadAmount decimal.Decimal     `json:"spreadAmount"`
	Discount     decimal.Decimal     `json:"discount"`
	TotalFee     decimal.Decimal     `json:"totalFee"`
	FinalAmount  decimal.Decimal     `json:"finalAmount"` // never negative
	Viable       bool                `json:"viable"`
	Warning      string              `json:"warning,omitempty"`
}
