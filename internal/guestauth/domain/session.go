package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated browser session.
//
// A session is active while now < expires_at (absolute cap) AND
// now - last_seen_at < idle_window. Each successful validation refreshes
// last_seen_at; crossing either boundary expires the session and the row
// is deleted.
type Session struct {
	ID            uuid.UUID
	GuestID       uuid.UUID
	SessionIDHash string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	LastSeenAt    time.Time
}

// IsActive reports whether the session is within both its absolute lifetime
// and its idle window at the given instant.
func (s *Session) IsActive(now time.Time, idleWindow time.Duration) bool {
	if !now.Before(s.ExpiresAt) {
		return false
	}
	return now.Sub(s.LastSeenAt) < idleWindow
}

// CreateSessionOutput contains the result of establishing a session.
// PlainSessionID goes into the cookie; only its keyed hash is stored.
type CreateSessionOutput struct {
	Session        *Session
	PlainSessionID string
}
