// Package usecase defines business logic interfaces for the guest access
// lifecycle: magic links, sessions, audit events, and rate limiting.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

// MagicLinkRepository defines persistence operations for magic links.
// Implementations must support transaction-aware operations via context propagation.
type MagicLinkRepository interface {
	// Create stores a new magic link in the repository.
	Create(ctx context.Context, link *guestauthDomain.MagicLink) error

	// GetByTokenHash retrieves a magic link by its token hash.
	// Returns ErrMagicLinkNotFound if no link matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*guestauthDomain.MagicLink, error)

	// MarkUsed sets used_at on the link, conditioned on used_at being NULL.
	// Returns false when the link was already used; this closes the race
	// where two concurrent redemptions of the same link could both succeed.
	MarkUsed(ctx context.Context, linkID uuid.UUID, usedAt time.Time) (bool, error)

	// DeleteExpired removes links whose expiry passed before the given time.
	// Returns the number of rows deleted.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SessionRepository defines persistence operations for sessions.
// Implementations must support transaction-aware operations via context propagation.
type SessionRepository interface {
	// Create stores a new session in the repository.
	Create(ctx context.Context, session *guestauthDomain.Session) error

	// GetActiveByHash retrieves a session by its session id hash, excluding
	// sessions past their absolute expiry. Returns ErrSessionNotFound if no
	// active session matches. Idle-window checks are the use case's job.
	GetActiveByHash(ctx context.Context, sessionIDHash string, now time.Time) (*guestauthDomain.Session, error)

	// Touch refreshes last_seen_at on the session.
	Touch(ctx context.Context, sessionID uuid.UUID, lastSeenAt time.Time) error

	// Delete removes the session.
	Delete(ctx context.Context, sessionID uuid.UUID) error

	// DeleteExpired removes sessions whose absolute expiry passed before the
	// given time. Returns the number of rows deleted.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// AuditEventRepository defines persistence operations for audit events.
// Events are append-only; the lifecycle core never reads them back.
type AuditEventRepository interface {
	// Create stores a new audit event.
	Create(ctx context.Context, event *guestauthDomain.AuditEvent) error

	// List retrieves events ordered newest first with pagination and
	// optional inclusive time filters (nil means no bound).
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*guestauthDomain.AuditEvent, error)

	// DeleteBefore removes events created before the given time.
	// Returns the number of rows deleted.
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// RateLimitRepository defines persistence for fixed-window request counters.
// Increment must be atomic across processes sharing the store.
type RateLimitRepository interface {
	// Increment advances the counter for key within its current window and
	// returns the post-increment count. A window older than windowCutoff is
	// reset to count=1 with a new window_start of now.
	Increment(ctx context.Context, key string, now, windowCutoff time.Time) (int64, error)

	// DeleteStale removes buckets whose window started before the given
	// time. Returns the number of rows deleted.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// MagicLinkUseCase defines business logic for issuing and redeeming
// single-use login links.
type MagicLinkUseCase interface {
	// Issue creates a magic link for a guest and returns the plain token
	// and verification URL. The plain token is only returned once; the
	// store holds its keyed hash. Records a link_issued audit event.
	Issue(
		ctx context.Context,
		input *guestauthDomain.IssueMagicLinkInput,
	) (*guestauthDomain.IssueMagicLinkOutput, error)

	// Redeem consumes a magic link and establishes a session.
	//
	// Redemption is rate-limited by the caller's network address and,
	// separately, by the hashed token itself; exceeding either window
	// denies without revealing which. Every attempt records a link_clicked
	// audit event, including attempts with unknown tokens (nil guest).
	// Unknown, already-used, and expired links deny with verify_fail
	// audited; success marks the link used atomically, creates a session,
	// and audits verify_ok.
	Redeem(ctx context.Context, rawToken, clientIP string) (*guestauthDomain.CreateSessionOutput, error)
}

// SessionUseCase defines business logic for browser sessions.
type SessionUseCase interface {
	// Create establishes a new session for a guest and returns the plain
	// session id for cookie issuance. Records a session_created audit event.
	Create(ctx context.Context, guestID uuid.UUID) (*guestauthDomain.CreateSessionOutput, error)

	// Validate checks a presented session id against the store. An active
	// session has its last_seen_at refreshed; an expired or idle session is
	// deleted and ErrSessionInvalid returned. Unknown ids also return
	// ErrSessionInvalid.
	Validate(ctx context.Context, plainSessionID string) (*guestauthDomain.Session, error)

	// Logout deletes the session for the presented session id.
	// Unknown ids are a no-op.
	Logout(ctx context.Context, plainSessionID string) error
}

// AuditUseCase defines business logic for the guest access audit trail.
type AuditUseCase interface {
	// Record appends an audit event. guestID is nil for unattributable
	// events such as redemption attempts with unknown tokens.
	Record(ctx context.Context, guestID *uuid.UUID, eventType guestauthDomain.AuditEventType) error

	// List retrieves events newest first with pagination and optional
	// inclusive time filters.
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*guestauthDomain.AuditEvent, error)
}

// RateLimitUseCase defines fixed-window rate limiting over the shared store.
type RateLimitUseCase interface {
	// Allow reports whether one more request under key fits within limit
	// requests per window. Denied attempts still advance the counter, so a
	// client hammering past the limit keeps its window full.
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)

	// Cleanup removes buckets stale for longer than olderThan.
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// CleanupUseCase removes expired rows across the guest access tables.
// Wired to the clean-expired command, not the request path.
type CleanupUseCase interface {
	// Run deletes expired magic links and sessions, rate limit buckets
	// stale beyond staleWindow, and audit events older than retention.
	// Returns per-table deletion counts.
	Run(ctx context.Context, staleWindow, retention time.Duration) (*CleanupResult, error)
}

// CleanupResult reports how many rows each cleanup step removed.
type CleanupResult struct {
	MagicLinks       int64
	Sessions         int64
	RateLimitBuckets int64
	AuditEvents      int64
}
