package service

import (
	"crypto/rand"
	"encoding/base64"

	apperrors "github.com/logbarron/guestgate/internal/errors"
)

// tokenBytes is the raw entropy per token (256 bits).
const tokenBytes = 32

// tokenService implements TokenService on top of the keyed hash service.
type tokenService struct {
	hashService HashService
}

// NewTokenService creates a TokenService that hashes generated tokens with
// the given HashService.
func NewTokenService(hashService HashService) TokenService {
	return &tokenService{hashService: hashService}
}

// GenerateToken creates a new cryptographically secure 32-byte random token.
// The token is base64 URL-encoded for use in links and cookies. Returns the
// plain token and its keyed hash.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	randomBytes := make([]byte, tokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken = base64.RawURLEncoding.EncodeToString(randomBytes)
	tokenHash = t.hashService.HashToken(plainToken)

	return plainToken, tokenHash, nil
}
