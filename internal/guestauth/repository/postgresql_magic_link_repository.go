// Package repository implements PostgreSQL and MySQL persistence for the
// guest access lifecycle.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/logbarron/guestgate/internal/database"
	apperrors "github.com/logbarron/guestgate/internal/errors"
	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

// PostgreSQLMagicLinkRepository implements MagicLink persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLMagicLinkRepository struct {
	db *sql.DB
}

// Create inserts a new MagicLink into the PostgreSQL database.
func (p *PostgreSQLMagicLinkRepository) Create(ctx context.Context, link *guestauthDomain.MagicLink) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO magic_links (id, guest_id, token_hash, issued_at, expires_at, used_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		link.ID,
		link.GuestID,
		link.TokenHash,
		link.IssuedAt,
		link.ExpiresAt,
		link.UsedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create magic link")
	}
	return nil
}

// GetByTokenHash retrieves a MagicLink by its token hash. Returns
// ErrMagicLinkNotFound if no link matches.
func (p *PostgreSQLMagicLinkRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*guestauthDomain.MagicLink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, guest_id, token_hash, issued_at, expires_at, used_at
			  FROM magic_links WHERE token_hash = $1`

	var link guestauthDomain.MagicLink

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&link.ID,
		&link.GuestID,
		&link.TokenHash,
		&link.IssuedAt,
		&link.ExpiresAt,
		&link.UsedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, guestauthDomain.ErrMagicLinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get magic link")
	}

	return &link, nil
}

// MarkUsed sets used_at on the link if it has not been used yet.
// The WHERE clause on used_at IS NULL makes redemption single-use even under
// concurrent attempts: exactly one caller sees rows-affected of one.
func (p *PostgreSQLMagicLinkRepository) MarkUsed(
	ctx context.Context,
	linkID uuid.UUID,
	usedAt time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE magic_links SET used_at = $1 WHERE id = $2 AND used_at IS NULL`

	result, err := querier.ExecContext(ctx, query, usedAt, linkID)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to mark magic link used")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get affected rows")
	}

	return affected == 1, nil
}

// DeleteExpired removes magic links whose expiry passed before the given time.
func (p *PostgreSQLMagicLinkRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM magic_links WHERE expires_at < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired magic links")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}

	return affected, nil
}

// NewPostgreSQLMagicLinkRepository creates a new PostgreSQL MagicLink repository.
func NewPostgreSQLMagicLinkRepository(db *sql.DB) *PostgreSQLMagicLinkRepository {
	return &PostgreSQLMagicLinkRepository{db: db}
}
