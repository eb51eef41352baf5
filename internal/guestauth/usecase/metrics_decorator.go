package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
	"github.com/logbarron/guestgate/internal/metrics"
)

// magicLinkUseCaseWithMetrics decorates MagicLinkUseCase with metrics instrumentation.
type magicLinkUseCaseWithMetrics struct {
	next    MagicLinkUseCase
	metrics metrics.BusinessMetrics
}

// NewMagicLinkUseCaseWithMetrics wraps a MagicLinkUseCase with metrics recording.
func NewMagicLinkUseCaseWithMetrics(useCase MagicLinkUseCase, m metrics.BusinessMetrics) MagicLinkUseCase {
	return &magicLinkUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for magic link issuance operations.
func (u *magicLinkUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *guestauthDomain.IssueMagicLinkInput,
) (*guestauthDomain.IssueMagicLinkOutput, error) {
	start := time.Now()
	output, err := u.next.Issue(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "guestauth", "link_issue", status)
	u.metrics.RecordDuration(ctx, "guestauth", "link_issue", time.Since(start), status)

	return output, err
}

// Redeem records metrics for magic link redemption operations.
// Denied redemptions count as errors, so dashboards can watch the failure rate.
func (u *magicLinkUseCaseWithMetrics) Redeem(
	ctx context.Context,
	rawToken, clientIP string,
) (*guestauthDomain.CreateSessionOutput, error) {
	start := time.Now()
	output, err := u.next.Redeem(ctx, rawToken, clientIP)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "guestauth", "link_redeem", status)
	u.metrics.RecordDuration(ctx, "guestauth", "link_redeem", time.Since(start), status)

	return output, err
}

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for session creation operations.
func (u *sessionUseCaseWithMetrics) Create(
	ctx context.Context,
	guestID uuid.UUID,
) (*guestauthDomain.CreateSessionOutput, error) {
	start := time.Now()
	output, err := u.next.Create(ctx, guestID)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "guestauth", "session_create", status)
	u.metrics.RecordDuration(ctx, "guestauth", "session_create", time.Since(start), status)

	return output, err
}

// Validate records metrics for session validation operations.
func (u *sessionUseCaseWithMetrics) Validate(
	ctx context.Context,
	plainSessionID string,
) (*guestauthDomain.Session, error) {
	start := time.Now()
	session, err := u.next.Validate(ctx, plainSessionID)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "guestauth", "session_validate", status)
	u.metrics.RecordDuration(ctx, "guestauth", "session_validate", time.Since(start), status)

	return session, err
}

// Logout records metrics for logout operations.
func (u *sessionUseCaseWithMetrics) Logout(ctx context.Context, plainSessionID string) error {
	start := time.Now()
	err := u.next.Logout(ctx, plainSessionID)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "guestauth", "session_logout", status)
	u.metrics.RecordDuration(ctx, "guestauth", "session_logout", time.Since(start), status)

	return err
}
