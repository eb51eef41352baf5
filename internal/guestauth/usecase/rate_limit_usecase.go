// Package usecase implements business logic orchestration for the guest
// access lifecycle.
package usecase

import (
	"context"
	"time"

	apperrors "github.com/logbarron/guestgate/internal/errors"
)

// rateLimitUseCase implements RateLimitUseCase over the shared store.
type rateLimitUseCase struct {
	rateLimitRepo RateLimitRepository
}

// Allow advances the fixed-window counter for key and reports whether the
// request fits within limit per window.
//
// Denied attempts still advance the counter: a client hammering past the
// limit keeps its window full instead of sneaking through the moment it
// expires. The counter lives in the shared store, so the decision holds
// across processes; a restart of the store may reset limits, which is an
// accepted limitation of fixed windows over ephemeral rows.
func (r *rateLimitUseCase) Allow(
	ctx context.Context,
	key string,
	limit int64,
	window time.Duration,
) (bool, error) {
	now := time.Now().UTC()
	windowCutoff := now.Add(-window)

	count, err := r.rateLimitRepo.Increment(ctx, key, now, windowCutoff)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to advance rate limit window")
	}

	return count <= limit, nil
}

// Cleanup removes buckets whose window started more than olderThan ago.
func (r *rateLimitUseCase) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	before := time.Now().UTC().Add(-olderThan)

	deleted, err := r.rateLimitRepo.DeleteStale(ctx, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to clean up rate limit buckets")
	}

	return deleted, nil
}

// NewRateLimitUseCase creates a new RateLimitUseCase with the provided repository.
func NewRateLimitUseCase(rateLimitRepo RateLimitRepository) RateLimitUseCase {
	return &rateLimitUseCase{rateLimitRepo: rateLimitRepo}
}
