package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/logbarron/guestgate/internal/errors"
)

// cleanupUseCase implements CleanupUseCase over the guest access tables.
type cleanupUseCase struct {
	magicLinkRepo  MagicLinkRepository
	sessionRepo    SessionRepository
	auditEventRepo AuditEventRepository
	rateLimitRepo  RateLimitRepository
}

// Run deletes expired magic links and sessions, rate limit buckets stale
// beyond staleWindow, and audit events older than retention. A retention of
// zero keeps audit events forever.
//
// The four tables are independent, so the deletes run concurrently; the
// first failure cancels the rest.
func (c *cleanupUseCase) Run(
	ctx context.Context,
	staleWindow, retention time.Duration,
) (*CleanupResult, error) {
	now := time.Now().UTC()
	result := &CleanupResult{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := c.magicLinkRepo.DeleteExpired(ctx, now)
		if err != nil {
			return apperrors.Wrap(err, "failed to delete expired magic links")
		}
		result.MagicLinks = count
		return nil
	})

	g.Go(func() error {
		count, err := c.sessionRepo.DeleteExpired(ctx, now)
		if err != nil {
			return apperrors.Wrap(err, "failed to delete expired sessions")
		}
		result.Sessions = count
		return nil
	})

	g.Go(func() error {
		count, err := c.rateLimitRepo.DeleteStale(ctx, now.Add(-staleWindow))
		if err != nil {
			return apperrors.Wrap(err, "failed to delete stale rate limit buckets")
		}
		result.RateLimitBuckets = count
		return nil
	})

	if retention > 0 {
		g.Go(func() error {
			count, err := c.auditEventRepo.DeleteBefore(ctx, now.Add(-retention))
			if err != nil {
				return apperrors.Wrap(err, "failed to delete old audit events")
			}
			result.AuditEvents = count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// NewCleanupUseCase creates a new CleanupUseCase with the provided repositories.
func NewCleanupUseCase(
	magicLinkRepo MagicLinkRepository,
	sessionRepo SessionRepository,
	auditEventRepo AuditEventRepository,
	rateLimitRepo RateLimitRepository,
) CleanupUseCase {
	return &cleanupUseCase{
		magicLinkRepo:  magicLinkRepo,
		sessionRepo:    sessionRepo,
		auditEventRepo: auditEventRepo,
		rateLimitRepo:  rateLimitRepo,
	}
}
