package dto

import (
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateRequest asks for a bank-specific conversion of one amount.
// Direction uses the custom "direction" binding registered at startup.
type CalculateRequest struct {
	BankCode     string          `json:"bankCode" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Direction    string          `json:"direction" binding:"required,direction"`
}

// CalculateResponse is the calculation outcome returned by the API.
type CalculateResponse struct {
	BankCode     string          `json:"bankCode"`
	CurrencyCode string          `json:"currencyCode"`
	Direction    string          `json:"direction"`
	BaseRate     decimal.Decimal `json:"baseRate"`
	AppliedRate  decimal.Decimal `json:"appliedRate"`
	TotalFee     decimal.Decimal `json:"totalFee"`
	FinalAmount  decimal.Decimal `json:"finalAmount"`
	Viable       bool            `json:"viable"`
	Warning      string          `json:"warning,omitempty"`
}

// ToCalculateResponse converts a domain.ConversionResult to its DTO.
func ToCalculateResponse(currencyCode string, result *domain.ConversionResult) CalculateResponse {
	return CalculateResponse{
		BankCode:     result.BankCode,
		CurrencyCode: currencyCode,
		Direction:    string(result.Direction),
		BaseRate:     result.BaseRate,
		AppliedRate:  result.AppliedRate,
		TotalFee:     result.TotalFee,
		FinalAmount:  result.FinalAmount,
		Viable:       result.Viable,
		Warning:      result.Warning,
	}
}
