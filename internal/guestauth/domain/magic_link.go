package domain

import (
	"time"

	"github.com/google/uuid"
)

// MagicLink is a single-use login link issued to a guest.
//
// Lifecycle: issued → used (terminal, used_at set) or expired (terminal,
// now > expires_at, detected lazily on the verify attempt). used_at is
// write-once; the update that sets it must be conditioned on used_at being
// NULL so two concurrent redemptions cannot both succeed.
type MagicLink struct {
	ID        uuid.UUID
	GuestID   uuid.UUID
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// IsUsed reports whether the link has already been redeemed.
func (m *MagicLink) IsUsed() bool {
	return m.UsedAt != nil
}

// IsExpired reports whether the link has passed its expiry.
func (m *MagicLink) IsExpired(now time.Time) bool {
	return now.After(m.ExpiresAt)
}

// IssueMagicLinkInput contains the parameters for issuing a magic link.
type IssueMagicLinkInput struct {
	GuestID uuid.UUID
	Email   string
}

// IssueMagicLinkOutput contains the result of issuing a magic link.
// PlainToken is only returned once; the store holds the keyed hash.
type IssueMagicLinkOutput struct {
	LinkID     uuid.UUID
	PlainToken string
	VerifyURL  string
	ExpiresAt  time.Time
}
