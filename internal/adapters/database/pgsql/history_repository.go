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

// PgxHistoryRepository implements the history repository facade using pgxpool.
type PgxHistoryRepository struct {
	db *pgxpool.Pool
}

// NewHistoryRepository creates a new PgxHistoryRepository.
func NewHistoryRepository(db *pgxpool.Pool) *PgxHistoryRepository {
	return &PgxHistoryRepository{db: db}
}

// InsertEntries inserts history rows, skipping any (currency, date) pair that
// already exists. The unique index backs the writer-side existence check.
func (r *PgxHistoryRepository) InsertEntries(ctx context.Context, entries []domain.RateHistoryEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO exchange_rate_history (
			currency_code, currency_name, rate, rate_date, created_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (currency_code, rate_date) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(query,
			entry.CurrencyCode, entry.CurrencyName, entry.Rate, entry.RateDate, entry.CreatedAt,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range entries {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("error inserting history entry: %w", err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// HasEntriesForDate reports whether any history rows exist for the given date.
func (r *PgxHistoryRepository) HasEntriesForDate(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM exchange_rate_history WHERE rate_date = $1)`, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking history for date: %w", err)
	}
	return exists, nil
}

// CountEntries returns the total number of history rows.
func (r *PgxHistoryRepository) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exchange_rate_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting history entries: %w", err)
	}
	return count, nil
}

// FindOldestDate returns the oldest stored history date, or nil when empty.
func (r *PgxHistoryRepository) FindOldestDate(ctx context.Context) (*time.Time, error) {
	var oldest *time.Time
	err := r.db.QueryRow(ctx, `SELECT MIN(rate_date) FROM exchange_rate_history`).Scan(&oldest)
	if err != nil {
		return nil, fmt.Errorf("error finding oldest history date: %w", err)
	}
	return oldest, nil
}

// FindByCurrencySince retrieves history entries for one currency on or after
// since, oldest first.
func (r *PgxHistoryRepository) FindByCurrencySince(ctx context.Context, currencyCode string, since time.Time) ([]domain.RateHistoryEntry, error) {
	query := `
		SELECT history_id, currency_code, currency_name, rate, rate_date, created_at
		FROM exchange_rate_history
		WHERE currency_code = $1 AND rate_date >= $2
		ORDER BY rate_date ASC
	`
	rows, err := r.db.Query(ctx, query, currencyCode, since)
	if err != nil {
		return nil, fmt.Errorf("error querying history for %s: %w", currencyCode, err)
	}
	defer rows.Close()

	var entries []domain.RateHistoryEntry
	for rows.Next() {
		var entry domain.RateHistoryEntry
		if err := rows.Scan(
			&entry.HistoryID, &entry.CurrencyCode, &entry.CurrencyName,
			&entry.Rate, &entry.RateDate, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return entries, nil
}

// FindLatestBefore retrieves the most recent history entry for one currency
// strictly before the given date.
func (r *PgxHistoryRepository) FindLatestBefore(ctx context.Context, currencyCode string, date time.Time) (*domain.RateHistoryEntry, error) {
	query := `
		SELECT history_id, currency_code, currency_name, rate, rate_date, created_at
		FROM exchange_rate_history
		WHERE currency_code = $1 AND rate_date < $2
		ORDER BY rate_date DESC
		LIMIT 1
	`
	entry := &domain.RateHistoryEntry{}
	err := r.db.QueryRow(ctx, query, currencyCode, date).Scan(
		&entry.HistoryID, &entry.CurrencyCode, &entry.CurrencyName,
		&entry.Rate, &entry.RateDate, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding prior history entry for %s: %w", currencyCode, err)
	}
	return entry, nil
}

// DeleteEntriesBefore removes history rows dated before cutoff.
func (r *PgxHistoryRepository) DeleteEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM exchange_rate_history WHERE rate_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error deleting old history entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteAllEntries wipes the ledger. Operator-triggered recovery only.
func (r *PgxHistoryRepository) DeleteAllEntries(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM exchange_rate_history`)
	if err != nil {
		return 0, fmt.Errorf("error deleting history entries: %w", err)
	}
	return tag.RowsAffected(), nil
}
