package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is an append-only record of a guest access event.
// GuestID is nil for events that could not be attributed to a guest, such
// as redemption attempts with unknown tokens; those are still recorded to
// support abuse detection. The core never reads events back; retention is
// handled by the cleanup command.
type AuditEvent struct {
	ID        uuid.UUID
	GuestID   *uuid.UUID
	Type      AuditEventType
	CreatedAt time.Time
}
