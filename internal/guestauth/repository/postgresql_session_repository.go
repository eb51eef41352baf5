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

// PostgreSQLSessionRepository implements Session persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new Session into the PostgreSQL database.
func (p *PostgreSQLSessionRepository) Create(ctx context.Context, session *guestauthDomain.Session) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO sessions (id, guest_id, session_id_hash, created_at, expires_at, last_seen_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		session.ID,
		session.GuestID,
		session.SessionIDHash,
		session.CreatedAt,
		session.ExpiresAt,
		session.LastSeenAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create session")
	}
	return nil
}

// GetActiveByHash retrieves a session by its session id hash, excluding
// sessions past their absolute expiry. Returns ErrSessionNotFound if no
// active session matches.
func (p *PostgreSQLSessionRepository) GetActiveByHash(
	ctx context.Context,
	sessionIDHash string,
	now time.Time,
) (*guestauthDomain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, guest_id, session_id_hash, created_at, expires_at, last_seen_at
			  FROM sessions WHERE session_id_hash = $1 AND expires_at > $2`

	var session guestauthDomain.Session

	err := querier.QueryRowContext(ctx, query, sessionIDHash, now).Scan(
		&session.ID,
		&session.GuestID,
		&session.SessionIDHash,
		&session.CreatedAt,
		&session.ExpiresAt,
		&session.LastSeenAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, guestauthDomain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}

	return &session, nil
}

// Touch refreshes last_seen_at on the session.
func (p *PostgreSQLSessionRepository) Touch(
	ctx context.Context,
	sessionID uuid.UUID,
	lastSeenAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE sessions SET last_seen_at = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, lastSeenAt, sessionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to touch session")
	}
	return nil
}

// Delete removes the session.
func (p *PostgreSQLSessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM sessions WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, sessionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete session")
	}
	return nil
}

// DeleteExpired removes sessions whose absolute expiry passed before the given time.
func (p *PostgreSQLSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM sessions WHERE expires_at < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired sessions")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}

	return affected, nil
}

// NewPostgreSQLSessionRepository creates a new PostgreSQL Session repository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}
