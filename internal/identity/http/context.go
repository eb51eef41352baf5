// Package http provides HTTP middleware for access-assertion verification.
package http

import (
	"context"

	identityDomain "github.com/logbarron/guestgate/internal/identity/domain"
)

// claimsKey is a context key type for storing verified assertion claims.
type claimsKey struct{}

// WithClaims stores verified assertion claims in the context.
// This is called by the assertion middleware after successful verification.
func WithClaims(ctx context.Context, claims *identityDomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified assertion claims from the context.
// Returns (claims, true) if claims are present, or (nil, false) otherwise.
func GetClaims(ctx context.Context) (*identityDomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*identityDomain.Claims)
	return claims, ok
}
