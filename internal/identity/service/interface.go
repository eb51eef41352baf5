// Package service implements access-assertion verification against the
// identity provider's published signing keys.
package service

import (
	"context"
	"crypto/rsa"

	identityDomain "github.com/logbarron/guestgate/internal/identity/domain"
)

// JWKSCache is a process-wide cache of the identity provider's signing keys,
// keyed by key id. Implementations refetch the provider's key set endpoint on
// an unknown key id or when the cached set is older than its TTL, so provider
// key rotation is tolerated without restarts.
type JWKSCache interface {
	// Lookup returns the RSA public key for the given key id.
	// Returns domain.ErrSigningKeyNotFound when the key id is unknown even
	// after a refresh attempt.
	Lookup(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Verifier validates externally-issued signed identity assertions.
type Verifier interface {
	// Verify parses and validates a compact JWT and returns the identity it
	// asserts. Every failure path returns an error wrapping ErrUnauthorized;
	// the cause is logged at debug level only.
	Verify(ctx context.Context, rawToken string) (*identityDomain.Claims, error)
}
