package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	apperrors "github.com/logbarron/guestgate/internal/errors"
)

// minHashSecretLength is the minimum secret length in bytes (256 bits).
const minHashSecretLength = 32

// hashService implements HashService using HMAC-SHA256 with URL-safe
// base64 digests.
type hashService struct {
	secret []byte
}

// NewHashService creates a HashService keyed by secret.
// Returns a configuration error when the secret is shorter than 32 bytes.
func NewHashService(secret string) (HashService, error) {
	if len(secret) < minHashSecretLength {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration,
			"HASH_SECRET must be at least 32 bytes")
	}
	return &hashService{secret: []byte(secret)}, nil
}

// HashEmail hashes a normalized email address.
func (h *hashService) HashEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return h.digest(normalized)
}

// HashToken hashes a token without normalization.
func (h *hashService) HashToken(plainToken string) string {
	return h.digest(plainToken)
}

func (h *hashService) digest(value string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
