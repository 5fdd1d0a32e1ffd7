package repositories

import (
	"context"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
)

// BankReader defines read operations for bank pricing profiles
type BankReader interface {
	// FindBankByCode retrieves one bank profile by its unique code.
	FindBankByCode(ctx context.Context, code string) (*domain.BankPricingProfile, error)

	// ListActiveBanks retrieves all active bank profiles ordered by display order.
	ListActiveBanks(ctx context.Context) ([]domain.BankPricingProfile, error)
}

// BankWriter defines write operations for bank pricing profiles
type BankWriter interface {
	// SaveBank persists a new bank profile.
	SaveBank(ctx context.Context, bank domain.BankPricingProfile) error

	// UpdateBank overwrites an existing bank profile identified by its code.
	UpdateBank(ctx context.Context, bank domain.BankPricingProfile) error
}

// BankRepositoryFacade combines all bank repository interfaces
type BankRepositoryFacade interface {
	BankReader
	BankWriter
}
