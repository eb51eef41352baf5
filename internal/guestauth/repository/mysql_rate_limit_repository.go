package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/logbarron/guestgate/internal/database"
	apperrors "github.com/logbarron/guestgate/internal/errors"
)

// MySQLRateLimitRepository implements fixed-window counters for MySQL.
// All mutation happens in a single upsert so concurrent increments from any
// number of processes sharing the store never lose updates.
type MySQLRateLimitRepository struct {
	db *sql.DB
}

// Increment advances the counter for key within its current window and
// returns the post-increment count. A bucket whose window started at or
// before windowCutoff is reset to count=1 with a fresh window_start.
//
// MySQL has no RETURNING, so the new count is routed through
// LAST_INSERT_ID(expr) and read back from the statement's own result,
// which keeps the read on the same connection as the upsert.
func (m *MySQLRateLimitRepository) Increment(
	ctx context.Context,
	key string,
	now, windowCutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO rate_limit_buckets (bucket_key, window_start, count)
			  VALUES (?, ?, LAST_INSERT_ID(1))
			  ON DUPLICATE KEY UPDATE
			      count = LAST_INSERT_ID(IF(window_start <= ?, 1, count + 1)),
			      window_start = IF(window_start <= ?, VALUES(window_start), window_start)`

	result, err := querier.ExecContext(ctx, query, key, now, windowCutoff, windowCutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to increment rate limit bucket")
	}

	count, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read rate limit count")
	}

	return count, nil
}

// DeleteStale removes buckets whose window started before the given time.
func (m *MySQLRateLimitRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM rate_limit_buckets WHERE window_start < ?`

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

// NewMySQLRateLimitRepository creates a new MySQL rate limit repository.
func NewMySQLRateLimitRepository(db *sql.DB) *MySQLRateLimitRepository {
	return &MySQLRateLimitRepository{db: db}
}
