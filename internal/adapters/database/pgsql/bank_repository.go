package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBankRepository implements the bank repository facade using pgxpool.
type PgxBankRepository struct {
	db *pgxpool.Pool
}

// NewBankRepository creates a new PgxBankRepository.
func NewBankRepository(db *pgxpool.Pool) *PgxBankRepository {
	return &PgxBankRepository{db: db}
}

const bankColumns = `
	bank_id, name, code, spread_rate, preferential_rate, fixed_fee, fee_rate,
	min_amount, max_amount, is_online, is_active, display_order,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveBank persists a new bank profile.
func (r *PgxBankRepository) SaveBank(ctx context.Context, bank domain.BankPricingProfile) error {
	query := `
		INSERT INTO banks (` + bankColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.Exec(ctx, query,
		bank.BankID, bank.Name, bank.Code, bank.SpreadRate, bank.PreferentialRate,
		bank.FixedFee, bank.FeeRate, bank.MinAmount, bank.MaxAmount,
		bank.IsOnline, bank.IsActive, bank.DisplayOrder,
		bank.CreatedAt, bank.CreatedBy, bank.LastUpdatedAt, bank.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("error inserting bank: %w", err)
	}
	return nil
}

// UpdateBank overwrites an existing bank profile identified by its code.
func (r *PgxBankRepository) UpdateBank(ctx context.Context, bank domain.BankPricingProfile) error {
	query := `
		UPDATE banks SET
			name = $2, spread_rate = $3, preferential_rate = $4, fixed_fee = $5,
			fee_rate = $6, min_amount = $7, max_amount = $8, is_online = $9,
			is_active = $10, display_order = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE code = $1
	`
	tag, err := r.db.Exec(ctx, query,
		bank.Code, bank.Name, bank.SpreadRate, bank.PreferentialRate, bank.FixedFee,
		bank.FeeRate, bank.MinAmount, bank.MaxAmount, bank.IsOnline,
		bank.IsActive, bank.DisplayOrder,
		bank.LastUpdatedAt, bank.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error updating bank %s: %w", bank.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBankByCode retrieves one bank profile by its unique code.
func (r *PgxBankRepository) FindBankByCode(ctx context.Context, code string) (*domain.BankPricingProfile, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE code = $1`
	bank := &domain.BankPricingProfile{}
	err := r.db.QueryRow(ctx, query, code).Scan(
		&bank.BankID, &bank.Name, &bank.Code, &bank.SpreadRate, &bank.PreferentialRate,
		&bank.FixedFee, &bank.FeeRate, &bank.MinAmount, &bank.MaxAmount,
		&bank.IsOnline, &bank.IsActive, &bank.DisplayOrder,
		&bank.CreatedAt, &bank.CreatedBy, &bank.LastUpdatedAt, &bank.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding bank %s: %w", code, err)
	}
	return bank, nil
}

// ListActiveBanks retrieves all active bank profiles ordered by display order.
func (r *PgxBankRepository) ListActiveBanks(ctx context.Context) ([]domain.BankPricingProfile, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE is_active ORDER BY display_order, code`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying banks: %w", err)
	}
	defer rows.Close()

	var banks []domain.BankPricingProfile
	for rows.Next() {
		var bank domain.BankPricingProfile
		if err := rows.Scan(
			&bank.BankID, &bank.Name, &bank.Code, &bank.SpreadRate, &bank.PreferentialRate,
			&bank.FixedFee, &bank.FeeRate, &bank.MinAmount, &bank.MaxAmount,
			&bank.IsOnline, &bank.IsActive, &bank.DisplayOrder,
			&bank.CreatedAt, &bank.CreatedBy, &bank.LastUpdatedAt, &bank.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning bank row: %w", err)
		}
		banks = append(banks, bank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank rows: %w", err)
	}
	return banks, nil
}
