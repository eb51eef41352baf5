package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/logbarron/guestgate/internal/database"
	apperrors "github.com/logbarron/guestgate/internal/errors"
	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

// MySQLAuditEventRepository implements AuditEvent persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAuditEventRepository struct {
	db *sql.DB
}

// Create inserts a new AuditEvent into the MySQL database.
// A nil GuestID is stored as NULL.
func (m *MySQLAuditEventRepository) Create(ctx context.Context, event *guestauthDomain.AuditEvent) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO audit_events (id, guest_id, event_type, created_at)
			  VALUES (?, ?, ?, ?)`

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event id")
	}

	var guestID []byte
	if event.GuestID != nil {
		guestID, err = event.GuestID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit event guest_id")
		}
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		guestID,
		string(event.Type),
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
func (m *MySQLAuditEventRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*guestauthDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, m.db)

	var conditions []string
	var args []interface{}

	if createdAtFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *createdAtFrom)
	}
	if createdAtTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *createdAtTo)
	}

	query := `SELECT id, guest_id, event_type, created_at FROM audit_events`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() { _ = rows.Close() }()

	events := []*guestauthDomain.AuditEvent{}
	for rows.Next() {
		var event guestauthDomain.AuditEvent
		var idBinary, guestIDBinary []byte

		if err := rows.Scan(&idBinary, &guestIDBinary, &event.Type, &event.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}

		if err := event.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit event id")
		}
		if guestIDBinary != nil {
			var guestID uuid.UUID
			if err := guestID.UnmarshalBinary(guestIDBinary); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit event guest_id")
			}
			event.GuestID = &guestID
		}

		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}

// DeleteBefore removes audit events created before the given time.
func (m *MySQLAuditEventRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM audit_events WHERE created_at < ?`

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

// NewMySQLAuditEventRepository creates a new MySQL AuditEvent repository.
func NewMySQLAuditEventRepository(db *sql.DB) *MySQLAuditEventRepository {
	return &MySQLAuditEventRepository{db: db}
}
