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

// MySQLMagicLinkRepository implements MagicLink persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLMagicLinkRepository struct {
	db *sql.DB
}

// Create inserts a new MagicLink into the MySQL database.
func (m *MySQLMagicLinkRepository) Create(ctx context.Context, link *guestauthDomain.MagicLink) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO magic_links (id, guest_id, token_hash, issued_at, expires_at, used_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := link.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal magic link id")
	}

	guestID, err := link.GuestID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal magic link guest_id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		guestID,
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
func (m *MySQLMagicLinkRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*guestauthDomain.MagicLink, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, guest_id, token_hash, issued_at, expires_at, used_at
			  FROM magic_links WHERE token_hash = ?`

	var link guestauthDomain.MagicLink
	var idBinary, guestIDBinary []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&idBinary,
		&guestIDBinary,
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

	if err := link.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal magic link id")
	}
	if err := link.GuestID.UnmarshalBinary(guestIDBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal magic link guest_id")
	}

	return &link, nil
}

// MarkUsed sets used_at on the link if it has not been used yet.
// The WHERE clause on used_at IS NULL makes redemption single-use even under
// concurrent attempts: exactly one caller sees rows-affected of one.
func (m *MySQLMagicLinkRepository) MarkUsed(
	ctx context.Context,
	linkID uuid.UUID,
	usedAt time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE magic_links SET used_at = ? WHERE id = ? AND used_at IS NULL`

	id, err := linkID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal magic link id")
	}

	result, err := querier.ExecContext(ctx, query, usedAt, id)
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
func (m *MySQLMagicLinkRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM magic_links WHERE expires_at < ?`

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

// NewMySQLMagicLinkRepository creates a new MySQL MagicLink repository.
func NewMySQLMagicLinkRepository(db *sql.DB) *MySQLMagicLinkRepository {
	return &MySQLMagicLinkRepository{db: db}
}
