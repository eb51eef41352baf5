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

// MySQLSessionRepository implements Session persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new Session into the MySQL database.
func (m *MySQLSessionRepository) Create(ctx context.Context, session *guestauthDomain.Session) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO sessions (id, guest_id, session_id_hash, created_at, expires_at, last_seen_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := session.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	guestID, err := session.GuestID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session guest_id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		guestID,
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
func (m *MySQLSessionRepository) GetActiveByHash(
	ctx context.Context,
	sessionIDHash string,
	now time.Time,
) (*guestauthDomain.Session, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, guest_id, session_id_hash, created_at, expires_at, last_seen_at
			  FROM sessions WHERE session_id_hash = ? AND expires_at > ?`

	var session guestauthDomain.Session
	var idBinary, guestIDBinary []byte

	err := querier.QueryRowContext(ctx, query, sessionIDHash, now).Scan(
		&idBinary,
		&guestIDBinary,
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

	if err := session.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal session id")
	}
	if err := session.GuestID.UnmarshalBinary(guestIDBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal session guest_id")
	}

	return &session, nil
}

// Touch refreshes last_seen_at on the session.
func (m *MySQLSessionRepository) Touch(
	ctx context.Context,
	sessionID uuid.UUID,
	lastSeenAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE sessions SET last_seen_at = ? WHERE id = ?`

	id, err := sessionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	_, err = querier.ExecContext(ctx, query, lastSeenAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to touch session")
	}
	return nil
}

// Delete removes the session.
func (m *MySQLSessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM sessions WHERE id = ?`

	id, err := sessionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	_, err = querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete session")
	}
	return nil
}

// DeleteExpired removes sessions whose absolute expiry passed before the given time.
func (m *MySQLSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM sessions WHERE expires_at < ?`

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

// NewMySQLSessionRepository creates a new MySQL Session repository.
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}
