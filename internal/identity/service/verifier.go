package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/logbarron/guestgate/internal/errors"
	identityDomain "github.com/logbarron/guestgate/internal/identity/domain"
)

// assertionClaims is the JWT payload shape accepted by the verifier.
type assertionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// assertionVerifier validates RS256 access assertions against the JWKS cache.
type assertionVerifier struct {
	cache    JWKSCache
	parser   *jwt.Parser
	audience string
	issuer   string
	logger   *slog.Logger
}

// NewVerifier creates a Verifier that accepts only RS256 assertions issued for
// the given audience by the given issuer. Signing keys are resolved through
// the cache by the token header's key id.
//
// Returns a configuration error when audience or issuer is empty: running
// without them would accept assertions minted for any other service.
func NewVerifier(
	cache JWKSCache,
	audience string,
	issuer string,
	logger *slog.Logger,
) (Verifier, error) {
	if audience == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "AUTH_AUDIENCE must be set")
	}
	if issuer == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "AUTH_ISSUER must be set")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)

	return &assertionVerifier{
		cache:    cache,
		parser:   parser,
		audience: audience,
		issuer:   issuer,
		logger:   logger,
	}, nil
}

// Verify parses and validates rawToken and returns the asserted identity.
//
// Malformed structure, unsupported algorithms (including "none"), unknown key
// ids, bad signatures, expired or not-yet-valid tokens, and audience or issuer
// mismatches all collapse to the same ErrAssertionInvalid so callers gain no
// oracle over which check tripped.
func (v *assertionVerifier) Verify(ctx context.Context, rawToken string) (*identityDomain.Claims, error) {
	claims := &assertionClaims{}

	token, err := v.parser.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, identityDomain.ErrSigningKeyNotFound
		}
		return v.cache.Lookup(ctx, kid)
	})
	if err != nil || !token.Valid {
		v.logger.Debug("assertion verification failed",
			slog.String("error", errString(err)))
		return nil, identityDomain.ErrAssertionInvalid
	}

	out := &identityDomain.Claims{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Issuer:   claims.Issuer,
		Audience: claims.Audience,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.NotBefore != nil {
		out.NotBefore = claims.NotBefore.Time
	}

	return out, nil
}

func errString(err error) string {
	if err == nil {
		return "token not valid"
	}
	return err.Error()
}
