package dto

import (
	"time"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

// MagicLinkResponse is returned after minting a magic link.
// The verify URL embeds the plain token and is shown exactly once.
type MagicLinkResponse struct {
	ID        string    `json:"id"`
	VerifyURL string    `json:"verify_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStatusResponse tells the SPA whether the browser holds a live session.
// An absent or expired session is not an error; logged_in is simply false.
type SessionStatusResponse struct {
	LoggedIn  bool       `json:"logged_in"`
	GuestID   string     `json:"guest_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// AuditEventResponse is a single audit trail entry.
type AuditEventResponse struct {
	ID        string    `json:"id"`
	GuestID   *string   `json:"guest_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditEventListResponse wraps a page of audit events.
type AuditEventListResponse struct {
	AuditEvents []AuditEventResponse `json:"audit_events"`
	Offset      int                  `json:"offset"`
	Limit       int                  `json:"limit"`
}

// NewAuditEventResponse converts a domain audit event into its response form.
func NewAuditEventResponse(event *guestauthDomain.AuditEvent) AuditEventResponse {
	resp := AuditEventResponse{
		ID:        event.ID.String(),
		Type:      string(event.Type),
		CreatedAt: event.CreatedAt,
	}
	if event.GuestID != nil {
		id := event.GuestID.String()
		resp.GuestID = &id
	}
	return resp
}
