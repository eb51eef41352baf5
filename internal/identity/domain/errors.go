package domain

import (
	"github.com/logbarron/guestgate/internal/errors"
)

// Assertion verification errors.
//
// Every verification failure collapses to ErrAssertionInvalid so callers
// cannot distinguish a bad signature from an expired token or a wrong
// audience. The underlying cause is logged at debug level only.
var (
	// ErrAssertionInvalid indicates the access assertion could not be verified.
	ErrAssertionInvalid = errors.Wrap(errors.ErrUnauthorized, "access assertion invalid")

	// ErrSigningKeyNotFound indicates no signing key matched the assertion's key id.
	ErrSigningKeyNotFound = errors.Wrap(errors.ErrUnauthorized, "signing key not found")
)
