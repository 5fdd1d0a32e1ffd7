package services

import (
	"context"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/devjsik/exchange_rate_app/internal/dto"
)

// BankReaderSvc defines read operations for bank pricing profiles
type BankReaderSvc interface {
	// GetBankByCode retrieves one bank profile by its unique code.
	GetBankByCode(ctx context.Context, code string) (*domain.BankPricingProfile, error)

	// ListActiveBanks retrieves all active bank profiles in display order.
	ListActiveBanks(ctx context.Context) ([]domain.BankPricingProfile, error)
}

// BankWriterSvc defines the thin admin write surface for bank profiles
type BankWriterSvc interface {
	// CreateBank registers a new bank profile after invariant checks.
	CreateBank(ctx context.Context, req dto.CreateBankRequest, creatorUserID string) (*domain.BankPricingProfile, error)

	// UpdateBank applies a partial update to an existing bank profile.
	UpdateBank(ctx context.Context, code string, req dto.UpdateBankRequest, updaterUserID string) (*domain.BankPricingProfile, error)
}

// BankSvcFacade combines all bank-related service interfaces
type BankSvcFacade interface {
	BankReaderSvc
	BankWriterSvc
}

// CalculatorSvcFacade derives bank-specific converted amounts. It never
// persists state; output is computed on demand from the current rate and the
// bank's pricing profile.
type CalculatorSvcFacade interface {
	Calculate(ctx context.Context, req dto.CalculateRequest) (*domain.ConversionResult, error)
}
