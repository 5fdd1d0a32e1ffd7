package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	portsrepo "github.com/devjsik/exchange_rate_app/internal/core/ports/repositories"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
	"github.com/devjsik/exchange_rate_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing profile bounds. The calculation engine trusts stored profiles, so
// the writer is the only place these are enforced.
var (
	maxSpreadRate       = decimal.NewFromInt(10)
	maxPreferentialRate = decimal.NewFromInt(100)
	maxFeeRate          = decimal.NewFromInt(5)
)

// BankService provides read access and the thin admin write surface for
// bank pricing profiles.
type BankService struct {
	bankRepo portsrepo.BankRepositoryFacade
}

// NewBankService creates a new BankService.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade) *BankService {
	return &BankService{bankRepo: bankRepo}
}

// GetBankByCode retrieves one bank profile by its unique code.
func (s *BankService) GetBankByCode(ctx context.Context, code string) (*domain.BankPricingProfile, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: bank code is required", apperrors.ErrValidation)
	}
	bank, err := s.bankRepo.FindBankByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return bank, nil
}

// ListActiveBanks retrieves all active bank profiles in display order.
func (s *BankService) ListActiveBanks(ctx context.Context) ([]domain.BankPricingProfile, error) {
	banks, err := s.bankRepo.ListActiveBanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

// CreateBank registers a new bank profile after invariant checks.
func (s *BankService) CreateBank(ctx context.Context, req dto.CreateBankRequest, creatorUserID string) (*domain.BankPricingProfile, error) {
	bank := domain.BankPricingProfile{
		BankID:           uuid.NewString(),
		Name:             req.Name,
		Code:             strings.ToUpper(req.Code),
		SpreadRate:       req.SpreadRate,
		PreferentialRate: req.PreferentialRate,
		FixedFee:         req.FixedFee,
		FeeRate:          req.FeeRate,
		MinAmount:        req.MinAmount,
		MaxAmount:        req.MaxAmount,
		IsOnline:         req.IsOnline,
		IsActive:         true,
		DisplayOrder:     req.DisplayOrder,
	}
	if err := validateBankProfile(&bank); err != nil {
		return nil, err
	}

	now := time.Now()
	bank.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	if err := s.bankRepo.SaveBank(ctx, bank); err != nil {
		return nil, err
	}
	return &bank, nil
}

// UpdateBank applies a partial update to an existing bank profile.
func (s *BankService) UpdateBank(ctx context.Context, code string, req dto.UpdateBankRequest, updaterUserID string) (*domain.BankPricingProfile, error) {
	bank, err := s.GetBankByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bank.Name = *req.Name
	}
	if req.SpreadRate != nil {
		bank.SpreadRate = *req.SpreadRate
	}
	if req.PreferentialRate != nil {
		bank.PreferentialRate = *req.PreferentialRate
	}
	if req.FixedFee != nil {
		bank.FixedFee = *req.FixedFee
	}
	if req.FeeRate != nil {
		bank.FeeRate = *req.FeeRate
	}
	if req.MinAmount != nil {
		bank.MinAmount = *req.MinAmount
	}
	if req.MaxAmount != nil {
		bank.MaxAmount = *req.MaxAmount
	}
	if req.IsOnline != nil {
		bank.IsOnline = *req.IsOnline
	}
	if req.IsActive != nil {
		bank.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		bank.DisplayOrder = *req.DisplayOrder
	}

	if err := validateBankProfile(bank); err != nil {
		return nil, err
	}

	bank.LastUpdatedAt = time.Now()
	bank.LastUpdatedBy = updaterUserID

	if err := s.bankRepo.UpdateBank(ctx, *bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// validateBankProfile enforces the pricing profile invariants.
func validateBankProfile(bank *domain.BankPricingProfile) error {
	switch {
	case bank.SpreadRate.IsNegative() || bank.SpreadRate.GreaterThan(maxSpreadRate):
		return fmt.Errorf("%w: spread rate must be between 0 and %s", apperrors.ErrValidation, maxSpreadRate)
	case bank.PreferentialRate.IsNegative() || bank.PreferentialRate.GreaterThan(maxPreferentialRate):
		return fmt.Errorf("%w: preferential rate must be between 0 and %s", apperrors.ErrValidation, maxPreferentialRate)
	case bank.FeeRate.IsNegative() || bank.FeeRate.GreaterThan(maxFeeRate):
		return fmt.Errorf("%w: fee rate must be between 0 and %s", apperrors.ErrValidation, maxFeeRate)
	case bank.FixedFee.IsNegative():
		return fmt.Errorf("%w: fixed fee must not be negative", apperrors.ErrValidation)
	case bank.MinAmount.IsNegative():
		return fmt.Errorf("%w: minimum amount must not be negative", apperrors.ErrValidation)
	case bank.MaxAmount.LessThanOrEqual(bank.MinAmount):
		return fmt.Errorf("%w: maximum amount must exceed minimum amount", apperrors.ErrValidation)
	}
	return nil
}

var _ portssvc.BankSvcFacade = (*BankService)(nil)
