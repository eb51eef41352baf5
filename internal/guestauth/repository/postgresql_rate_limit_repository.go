package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/logbarron/guestgate/internal/database"
	apperrors "github.com/logbarron/guestgate/internal/errors"
)

// PostgreSQLRateLimitRepository implements fixed-window counters for PostgreSQL.
// All mutation happens in a single upsert so concurrent increments from any
// number of processes sharing the store never lose updates.
type PostgreSQLRateLimitRepository struct {
	db *sql.DB
}

// Increment advances the counter for key within its current window and
// returns the post-increment count. A bucket whose window started at or
// before windowCutoff is reset to count=1 with a fresh window_start.
func (p *PostgreSQLRateLimitRepository) Increment(
	ctx context.Context,
	key string,
	now, windowCutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO rate_limit_buckets (bucket_key, window_start, count)
			  VALUES ($1, $2, 1)
			  ON CONFLICT (bucket_key) DO UPDATE SET
			      count = CASE
			          WHEN rate_limit_buckets.window_start <= $3 THEN 1
			          ELSE rate_limit_buckets.count + 1
			      END,
			      window_start = CASE
			          WHEN rate_limit_buckets.window_start <= $3 THEN EXCLUDED.window_start
			          ELSE rate_limit_buckets.window_start
			      END
			  RETURNING count`

	var count int64
	err := querier.QueryRowContext(ctx, query, key, now, windowCutoff).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to increment rate limit bucket")
	}

	return count, nil
}

// DeleteStale removes buckets whose window started before the given time.
func (p *PostgreSQLRateLimitRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM rate_limit_buckets WHERE window_start < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete stale rate limit buckets")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}

	return affected, nil
}

// NewPostgreSQLRateLimitRepository creates a new PostgreSQL rate limit repository.
func NewPostgreSQLRateLimitRepository(db *sql.DB) *PostgreSQLRateLimitRepository {
	return &PostgreSQLRateLimitRepository{db: db}
}
