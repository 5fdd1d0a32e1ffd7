package dto

import (
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankRequest defines the structure for registering a new bank profile.
type CreateBankRequest struct {
	Name             string          `json:"name" binding:"required"`
	Code             string          `json:"code" binding:"required,alphanum,uppercase"`
	SpreadRate       decimal.Decimal `json:"spreadRate" binding:"required"`
	PreferentialRate decimal.Decimal `json:"preferentialRate"`
	FixedFee         decimal.Decimal `json:"fixedFee"`
	FeeRate          decimal.Decimal `json:"feeRate"`
	MinAmount        decimal.Decimal `json:"minAmount" binding:"required"`
	MaxAmount        decimal.Decimal `json:"maxAmount" binding:"required"`
	IsOnline         bool            `json:"isOnline"`
	DisplayOrder     int             `json:"displayOrder"`
}

// UpdateBankRequest defines the structure for editing an existing bank profile.
// Pointer fields stay nil when the caller does not want to change them.
type UpdateBankRequest struct {
	Name             *string          `json:"name"`
	SpreadRate       *decimal.Decimal `json:"spreadRate"`
	PreferentialRate *decimal.Decimal `json:"preferentialRate"`
	FixedFee         *decimal.Decimal `json:"fixedFee"`
	FeeRate          *decimal.Decimal `json:"feeRate"`
	MinAmount        *decimal.Decimal `json:"minAmount"`
	MaxAmount        *decimal.Decimal `json:"maxAmount"`
	IsOnline         *bool            `json:"isOnline"`
	IsActive         *bool            `json:"isActive"`
	DisplayOrder     *int             `json:"displayOrder"`
}

// BankResponse defines the API representation of a bank pricing profile.
type BankResponse struct {
	BankID           string          `json:"bankID"`
	Name             string          `json:"name"`
	Code             string          `json:"code"`
	SpreadRate       decimal.Decimal `json:"spreadRate"`
	PreferentialRate decimal.Decimal `json:"preferentialRate"`
	FixedFee         decimal.Decimal `json:"fixedFee"`
	FeeRate          decimal.Decimal `json:"feeRate"`
	MinAmount        decimal.Decimal `json:"minAmount"`
	MaxAmount        decimal.Decimal `json:"maxAmount"`
	IsOnline         bool            `json:"isOnline"`
	IsActive         bool            `json:"isActive"`
	DisplayOrder     int             `json:"displayOrder"`
}

// ToBankResponse converts a domain.BankPricingProfile to a BankResponse DTO.
func ToBankResponse(bank *domain.BankPricingProfile) BankResponse {
	return BankResponse{
		BankID:           bank.BankID,
		Name:             bank.Name,
		Code:             bank.Code,
		SpreadRate:       bank.SpreadRate,
		PreferentialRate: bank.PreferentialRate,
		FixedFee:         bank.FixedFee,
		FeeRate:          bank.FeeRate,
		MinAmount:        bank.MinAmount,
		MaxAmount:        bank.MaxAmount,
		IsOnline:         bank.IsOnline,
		IsActive:         bank.IsActive,
		DisplayOrder:     bank.DisplayOrder,
	}
}

// ToListBankResponse converts a slice of bank profiles to response DTOs.
func ToListBankResponse(banks []domain.BankPricingProfile) []BankResponse {
	responses := make([]BankResponse, len(banks))
	for i := range banks {
		responses[i] = ToBankResponse(&banks[i])
	}
	return responses
}
