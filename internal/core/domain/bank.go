package domain

import "github.com/shopspring/decimal"

// BankPricingProfile holds one bank's fee and markup policy.
// Read-only from the calculation engine's perspective; mutated only through
// the admin surface.
type BankPricingProfile struct {
	BankID           string          `json:"bankID"`
	Name             string          `json:"name"`
	Code             string          `json:"code"` // unique short code, e.g. "KB"
	SpreadRate       decimal.Decimal `json:"spreadRate"`       // percent, <= 10
	PreferentialRate decimal.Decimal `json:"preferentialRate"` // percent of the spread amount, <= 100
	FixedFee         decimal.Decimal `json:"fixedFee"`         // local currency
	FeeRate          decimal.Decimal `json:"feeRate"`          // percent, <= 5
	MinAmount        decimal.Decimal `json:"minAmount"`
	MaxAmount        decimal.Decimal `json:"maxAmount"` // must exceed MinAmount
	IsOnline         bool            `json:"isOnline"`
	IsActive         bool            `json:"isActive"`
	DisplayOrder     int             `json:"displayOrder"`
	AuditFields
}
