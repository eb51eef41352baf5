// Package service provides the keyed hashing and token generation primitives
// used by the guest access lifecycle.
package service

// HashService computes keyed digests over lookup keys so the store never
// holds raw emails, link tokens, or session ids. The secret must carry
// 256 bits of strength; losing it invalidates every stored digest.
type HashService interface {
	// HashEmail hashes an email address. The input is lower-cased and
	// trimmed first because emails are case-insensitive lookup keys.
	HashEmail(email string) string

	// HashToken hashes an opaque token exactly as given. Tokens are case-
	// and whitespace-sensitive random strings; any normalization would
	// create ambiguity, so raw bytes are hashed.
	HashToken(plainToken string) string
}

// TokenService generates the opaque random tokens used for magic links and
// session ids.
type TokenService interface {
	// GenerateToken creates 256 bits of cryptographically secure randomness.
	// Returns the plain token (shared with the guest exactly once) and its
	// keyed hash (the only form the store ever sees).
	GenerateToken() (plainToken string, tokenHash string, err error)
}
