// Package domain contains the core types for externally-issued identity assertions.
package domain

import "time"

// Claims holds the identity extracted from a verified access assertion.
//
// Claims are never persisted; validity is evaluated per-request and the struct
// only travels through the request context for downstream use such as audit
// logging. The verifier establishes identity, not authorization.
type Claims struct {
	// Subject is the provider-assigned stable identifier for the principal.
	Subject string
	// Email is the principal's email address, when the provider includes it.
	Email string
	// Issuer is the assertion's iss claim, already checked for exact equality.
	Issuer string
	// Audience is the assertion's aud claim, flattened to a list.
	Audience []string
	// ExpiresAt is the assertion's exp claim.
	ExpiresAt time.Time
	// NotBefore is the assertion's nbf claim, zero when absent.
	NotBefore time.Time
}
