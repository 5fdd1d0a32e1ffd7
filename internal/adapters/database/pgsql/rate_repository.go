package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository implements the current-rate repository facade using pgxpool.
type PgxRateRepository struct {
	db *pgxpool.Pool
}

// NewRateRepository creates a new PgxRateRepository.
func NewRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{db: db}
}

// UpsertRates inserts the given rates, overwriting any existing row for the
// same (currency, base date) pair. Re-fetching the same day is expected and
// must stay idempotent.
func (r *PgxRateRepository) UpsertRates(ctx context.Context, rates []domain.CurrentRate) error {
	if len(rates) == 0 {
		return nil
	}

	query := `
		INSERT INTO current_rates (
			currency_code, currency_name, rate, base_date, source, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (currency_code, base_date) DO UPDATE SET
			currency_name = EXCLUDED.currency_name,
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at
	`

	batch := &pgx.Batch{}
	for _, rate := range rates {
		batch.Queue(query,
			rate.CurrencyCode, rate.CurrencyName, rate.Rate, rate.BaseDate,
			rate.Source, rate.CreatedAt, rate.UpdatedAt,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range rates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error upserting current rate: %w", err)
		}
	}
	return nil
}

// FindLatestRates retrieves every rate row belonging to the most recent base date.
func (r *PgxRateRepository) FindLatestRates(ctx context.Context) ([]domain.CurrentRate, error) {
	query := `
		SELECT currency_code, currency_name, rate, base_date, source, created_at, updated_at
		FROM current_rates
		WHERE base_date = (SELECT MAX(base_date) FROM current_rates)
		ORDER BY currency_code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying latest rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.CurrentRate
	for rows.Next() {
		var rate domain.CurrentRate
		if err := rows.Scan(
			&rate.CurrencyCode, &rate.CurrencyName, &rate.Rate, &rate.BaseDate,
			&rate.Source, &rate.CreatedAt, &rate.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate rows: %w", err)
	}
	return rates, nil
}

// FindLatestRateByCurrency retrieves the most recent rate row for one currency.
func (r *PgxRateRepository) FindLatestRateByCurrency(ctx context.Context, currencyCode string) (*domain.CurrentRate, error) {
	query := `
		SELECT currency_code, currency_name, rate, base_date, source, created_at, updated_at
		FROM current_rates
		WHERE currency_code = $1
		ORDER BY base_date DESC
		LIMIT 1
	`
	rate := &domain.CurrentRate{}
	err := r.db.QueryRow(ctx, query, currencyCode).Scan(
		&rate.CurrencyCode, &rate.CurrencyName, &rate.Rate, &rate.BaseDate,
		&rate.Source, &rate.CreatedAt, &rate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding rate for %s: %w", currencyCode, err)
	}
	return rate, nil
}

// DeleteRatesBefore removes rate rows with a base date older than cutoff.
func (r *PgxRateRepository) DeleteRatesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM current_rates WHERE base_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error deleting old rates: %w", err)
	}
	return tag.RowsAffected(), nil
}
