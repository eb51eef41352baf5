package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/logbarron/guestgate/internal/database"
	apperrors "github.com/logbarron/guestgate/internal/errors"
	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

// PostgreSQLAuditEventRepository implements AuditEvent persistence for PostgreSQL.
type PostgreSQLAuditEventRepository struct {
	db *sql.DB
}

// Create inserts a new AuditEvent into the PostgreSQL database.
func (p *PostgreSQLAuditEventRepository) Create(ctx context.Context, event *guestauthDomain.AuditEvent) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO audit_events (id, guest_id, event_type, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.GuestID,
		event.Type,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}
	return nil
}

// List retrieves audit events ordered by ID descending (newest first, UUIDv7
// ids are time-ordered) with pagination and optional inclusive time filters.
// Returns an empty slice when nothing matches.
func (p *PostgreSQLAuditEventRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*guestauthDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, guest_id, event_type, created_at
			  FROM audit_events
			  WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			    AND ($2::timestamptz IS NULL OR created_at <= $2)
			  ORDER BY id DESC
			  OFFSET $3 LIMIT $4`

	rows, err := querier.QueryContext(ctx, query, createdAtFrom, createdAtTo, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() { _ = rows.Close() }()

	events := []*guestauthDomain.AuditEvent{}
	for rows.Next() {
		var event guestauthDomain.AuditEvent
		var guestID uuid.NullUUID

		if err := rows.Scan(&event.ID, &guestID, &event.Type, &event.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}
		if guestID.Valid {
			id := guestID.UUID
			event.GuestID = &id
		}

		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}

// DeleteBefore removes audit events created before the given time.
func (p *PostgreSQLAuditEventRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM audit_events WHERE created_at < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit events")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}

	return affected, nil
}

// NewPostgreSQLAuditEventRepository creates a new PostgreSQL AuditEvent repository.
func NewPostgreSQLAuditEventRepository(db *sql.DB) *PostgreSQLAuditEventRepository {
	return &PostgreSQLAuditEventRepository{db: db}
}
