package service

import (
	"context"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/logbarron/guestgate/internal/errors"
)

const (
	testAudience = "https://rsvp.example.com"
	testIssuer   = "https://idp.example.com"
)

// signAssertion builds a compact RS256 JWT with the given claims and kid.
func signAssertion(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	raw, err := token.SignedString(key)
	require.NoError(t, err)
	return raw
}

func validClaims() jwt.MapClaims {
	now := time.Now().UTC()
	return jwt.MapClaims{
		"aud":   testAudience,
		"iss":   testIssuer,
		"sub":   "idp|guest-42",
		"email": "guest@example.com",
		"exp":   now.Add(time.Hour).Unix(),
		"nbf":   now.Add(-time.Minute).Unix(),
		"iat":   now.Unix(),
	}
}

func newTestVerifier(t *testing.T, key *rsa.PrivateKey, kid string) Verifier {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(jwksJSON(t, map[string]*rsa.PublicKey{kid: &key.PublicKey}))
	}))
	t.Cleanup(server.Close)

	cache := NewHTTPJWKSCache(server.URL, time.Hour, 0, testLogger())
	verifier, err := NewVerifier(cache, testAudience, testIssuer, testLogger())
	require.NoError(t, err)
	return verifier
}

func TestNewVerifier_Configuration(t *testing.T) {
	cache := NewHTTPJWKSCache("http://localhost", time.Hour, 0, testLogger())

	_, err := NewVerifier(cache, "", testIssuer, testLogger())
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = NewVerifier(cache, testAudience, "", testLogger())
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	key := generateRSAKey(t)
	verifier := newTestVerifier(t, key, "key-1")

	t.Run("valid assertion", func(t *testing.T) {
		raw := signAssertion(t, key, "key-1", validClaims())

		claims, err := verifier.Verify(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, "idp|guest-42", claims.Subject)
		assert.Equal(t, "guest@example.com", claims.Email)
		assert.Equal(t, testIssuer, claims.Issuer)
		assert.Contains(t, claims.Audience, testAudience)
		assert.False(t, claims.ExpiresAt.IsZero())
	})

	t.Run("audience as list containing the expected value", func(t *testing.T) {
		c := validClaims()
		c["aud"] = []string{"https://other.example.com", testAudience}
		raw := signAssertion(t, key, "key-1", c)

		claims, err := verifier.Verify(ctx, raw)
		require.NoError(t, err)
		assert.Len(t, claims.Audience, 2)
	})

	t.Run("missing email claim is allowed", func(t *testing.T) {
		c := validClaims()
		delete(c, "email")
		raw := signAssertion(t, key, "key-1", c)

		claims, err := verifier.Verify(ctx, raw)
		require.NoError(t, err)
		assert.Empty(t, claims.Email)
	})

	rejections := []struct {
		name   string
		mutate func(jwt.MapClaims)
	}{
		{"expired", func(c jwt.MapClaims) { c["exp"] = time.Now().UTC().Add(-time.Hour).Unix() }},
		{"not yet valid", func(c jwt.MapClaims) { c["nbf"] = time.Now().UTC().Add(time.Hour).Unix() }},
		{"missing exp", func(c jwt.MapClaims) { delete(c, "exp") }},
		{"wrong audience", func(c jwt.MapClaims) { c["aud"] = "https://other.example.com" }},
		{"audience list without expected value", func(c jwt.MapClaims) {
			c["aud"] = []string{"https://other.example.com"}
		}},
		{"wrong issuer", func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" }},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			c := validClaims()
			tt.mutate(c)
			raw := signAssertion(t, key, "key-1", c)

			_, err := verifier.Verify(ctx, raw)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}

	t.Run("leeway tolerates small clock skew", func(t *testing.T) {
		c := validClaims()
		c["exp"] = time.Now().UTC().Add(-10 * time.Second).Unix()
		raw := signAssertion(t, key, "key-1", c)

		_, err := verifier.Verify(ctx, raw)
		assert.NoError(t, err)
	})

	t.Run("unknown key id", func(t *testing.T) {
		raw := signAssertion(t, key, "rogue-kid", validClaims())

		_, err := verifier.Verify(ctx, raw)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("missing key id header", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims())
		raw, err := token.SignedString(key)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, raw)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("signature from a different key", func(t *testing.T) {
		impostor := generateRSAKey(t)
		raw := signAssertion(t, impostor, "key-1", validClaims())

		_, err := verifier.Verify(ctx, raw)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("hmac algorithm rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
		token.Header["kid"] = "key-1"
		raw, err := token.SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, raw)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
		token.Header["kid"] = "key-1"
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, raw)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("malformed structure rejected", func(t *testing.T) {
		for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "not.a.jwt"} {
			_, err := verifier.Verify(ctx, raw)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "token %q", raw)
		}
	})

	t.Run("tampered payload rejected", func(t *testing.T) {
		raw := signAssertion(t, key, "key-1", validClaims())
		parts := []byte(raw)
		// flip a character in the payload segment
		mid := len(parts) / 2
		if parts[mid] == 'A' {
			parts[mid] = 'B'
		} else {
			parts[mid] = 'A'
		}

		_, err := verifier.Verify(ctx, string(parts))
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
