package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/logbarron/guestgate/internal/errors"
	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

// auditUseCase implements AuditUseCase for the guest access audit trail.
type auditUseCase struct {
	auditEventRepo AuditEventRepository
}

// Record appends an audit event with a UUIDv7 identifier and UTC timestamp.
// guestID may be nil for unattributable events.
func (a *auditUseCase) Record(
	ctx context.Context,
	guestID *uuid.UUID,
	eventType guestauthDomain.AuditEventType,
) error {
	event := &guestauthDomain.AuditEvent{
		ID:        uuid.Must(uuid.NewV7()),
		GuestID:   guestID,
		Type:      eventType,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.auditEventRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to record audit event")
	}

	return nil
}

// List retrieves audit events ordered newest first with pagination and
// optional inclusive time filters (nil means no bound). Returns an empty
// slice when nothing matches.
func (a *auditUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*guestauthDomain.AuditEvent, error) {
	events, err := a.auditEventRepo.List(ctx, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}

	return events, nil
}

// NewAuditUseCase creates a new AuditUseCase with the provided repository.
func NewAuditUseCase(auditEventRepo AuditEventRepository) AuditUseCase {
	return &auditUseCase{auditEventRepo: auditEventRepo}
}
