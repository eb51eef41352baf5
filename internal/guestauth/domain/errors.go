package domain

import (
	"github.com/logbarron/guestgate/internal/errors"
)

// Guest access errors.
var (
	// ErrMagicLinkNotFound indicates no magic link matched the token hash.
	ErrMagicLinkNotFound = errors.Wrap(errors.ErrNotFound, "magic link not found")

	// ErrLinkInvalid indicates the presented link token is unknown.
	ErrLinkInvalid = errors.Wrap(errors.ErrInvalidInput, "verification failed")

	// ErrLinkAlreadyUsed indicates the link was already redeemed.
	ErrLinkAlreadyUsed = errors.Wrap(errors.ErrInvalidInput, "link already used")

	// ErrLinkExpired indicates the link passed its expiry before redemption.
	ErrLinkExpired = errors.Wrap(errors.ErrInvalidInput, "link expired")

	// ErrSessionNotFound indicates no session matched the session id hash.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrSessionInvalid indicates the session is unknown, expired, or idle
	// past its window. Collapsed to a single error so callers cannot probe
	// which boundary was crossed.
	ErrSessionInvalid = errors.Wrap(errors.ErrUnauthorized, "session invalid")
)
