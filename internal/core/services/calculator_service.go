package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
	"github.com/devjsik/exchange_rate_app/internal/dto"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

const amountScale = 2

// CalculatorService derives bank-specific converted amounts. It holds no
// state of its own; every result is computed from the latest current rate
// and the bank's pricing profile.
type CalculatorService struct {
	rateService portssvc.RateReaderSvc
	bankService portssvc.BankReaderSvc
}

// NewCalculatorService creates a new CalculatorService.
func NewCalculatorService(rateService portssvc.RateReaderSvc, bankService portssvc.BankReaderSvc) *CalculatorService {
	return &CalculatorService{
		rateService: rateService,
		bankService: bankService,
	}
}

// Calculate validates the request, loads the base rate and bank profile, and
// applies the bank's pricing. Out-of-range amounts are rejected before any
// calculation happens.
func (s *CalculatorService) Calculate(ctx context.Context, req dto.CalculateRequest) (*domain.ConversionResult, error) {
	direction := domain.ConversionDirection(req.Direction)
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: unknown conversion direction '%s'", apperrors.ErrValidation, req.Direction)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if _, ok := domain.LookupCurrency(req.CurrencyCode); !ok {
		return nil, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, req.CurrencyCode)
	}

	bank, err := s.bankService.GetBankByCode(ctx, req.BankCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank '%s' not found", apperrors.ErrValidation, req.BankCode)
		}
		return nil, fmt.Errorf("failed to load bank profile: %w", err)
	}
	if !bank.IsActive {
		return nil, fmt.Errorf("%w: bank '%s' is not available", apperrors.ErrValidation, req.BankCode)
	}
	if req.Amount.LessThan(bank.MinAmount) || req.Amount.GreaterThan(bank.MaxAmount) {
		return nil, fmt.Errorf("%w: amount must be between %s and %s",
			apperrors.ErrValidation, bank.MinAmount.String(), bank.MaxAmount.String())
	}

	rate, err := s.rateService.GetRateWithChange(ctx, req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load base rate: %w", err)
	}

	result := ApplyBankPricing(rate.Rate, req.Amount, direction, bank)
	return result, nil
}

// ApplyBankPricing is the pure fee/conversion policy. All intermediate values
// round half-up: rates to 4 fractional digits, amounts to 2.
//
// The preferential discount is computed against the spread amount, not the
// full rate, and always moves the rate in the customer's favor. The fee base
// differs by direction: converting local money to foreign currency pays fees
// up front in local currency before the conversion, while foreign money
// converts in full first and pays fees out of the converted result.
func ApplyBankPricing(baseRate, amount decimal.Decimal, direction domain.ConversionDirection, bank *domain.BankPricingProfile) *domain.ConversionResult {
	spreadAmount := baseRate.Mul(bank.SpreadRate).Div(oneHundred).Round(domain.RateScale)
	discount := spreadAmount.Mul(bank.PreferentialRate).Div(oneHundred).Round(domain.RateScale)

	var appliedRate decimal.Decimal
	if direction == domain.ForeignToLocal {
		appliedRate = baseRate.Sub(spreadAmount).Add(discount).Round(domain.RateScale)
	} else {
		appliedRate = baseRate.Add(spreadAmount).Sub(discount).Round(domain.RateScale)
	}

	result := &domain.ConversionResult{
		BankCode:     bank.Code,
		Direction:    direction,
		BaseRate:     baseRate,
		AppliedRate:  appliedRate,
		SpreadAmount: spreadAmount,
		Discount:     discount,
		Viable:       true,
	}

	if direction == domain.ForeignToLocal {
		exchanged := amount.Mul(appliedRate).Round(amountScale)
		fee := bank.FixedFee.Add(exchanged.Mul(bank.FeeRate).Div(oneHundred)).Round(amountScale)
		result.TotalFee = fee
		if fee.GreaterThanOrEqual(exchanged) {
			return markNonViable(result)
		}
		result.FinalAmount = exchanged.Sub(fee).Round(amountScale)
		return result
	}

	// Local to foreign: estimate the fee against the pre-fee amount, deduct
	// it, then convert what is left.
	fee := bank.FixedFee.Add(amount.Mul(bank.FeeRate).Div(oneHundred)).Round(amountScale)
	result.TotalFee = fee
	if fee.GreaterThanOrEqual(amount) {
		return markNonViable(result)
	}
	available := amount.Sub(fee)
	result.FinalAmount = available.Div(appliedRate).Round(amountScale)
	return result
}

// markNonViable zeroes the payout; a negative amount is never returned.
func markNonViable(result *domain.ConversionResult) *domain.ConversionResult {
	result.Viable = false
	result.FinalAmount = decimal.Zero
	result.Warning = "total fees exceed the amount available to convert"
	return result
}

var _ portssvc.CalculatorSvcFacade = (*CalculatorService)(nil)
