package service

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/logbarron/guestgate/internal/errors"
	identityDomain "github.com/logbarron/guestgate/internal/identity/domain"
)

// maxJWKSResponseSize bounds how much of the provider response is read.
const maxJWKSResponseSize = 1 << 20 // 1 MiB

// jwksDocument is the provider's published key set.
type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

// jwksKey is a single JSON Web Key. Only RSA signing keys are considered;
// everything else in the document is skipped.
type jwksKey struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// httpJWKSCache fetches and caches the provider key set over HTTP.
//
// The cache is a process-wide singleton. A cached set is trusted for ttl;
// an unknown key id triggers a refetch, but refetches are themselves spaced
// at least minRefreshInterval apart so a flood of assertions with bogus key
// ids cannot hammer the provider endpoint. Concurrent redundant fetches are
// tolerated; the last writer wins.
type httpJWKSCache struct {
	url                string
	ttl                time.Duration
	minRefreshInterval time.Duration
	client             *http.Client
	logger             *slog.Logger

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	fetchedAt   time.Time
	lastAttempt time.Time
}

// NewHTTPJWKSCache creates a JWKS cache backed by the given provider endpoint.
func NewHTTPJWKSCache(
	url string,
	ttl time.Duration,
	minRefreshInterval time.Duration,
	logger *slog.Logger,
) JWKSCache {
	return &httpJWKSCache{
		url:                url,
		ttl:                ttl,
		minRefreshInterval: minRefreshInterval,
		client:             &http.Client{Timeout: 10 * time.Second},
		logger:             logger,
	}
}

// Lookup returns the public key for kid, refetching the provider key set when
// the cached copy is stale or does not contain kid.
func (c *httpJWKSCache) Lookup(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	now := time.Now().UTC()

	c.mu.RLock()
	key, ok := c.keys[kid]
	fresh := now.Sub(c.fetchedAt) < c.ttl
	c.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := c.refresh(ctx, now); err != nil {
		// A stale cached key is still better than an outage during a
		// transient provider failure.
		if ok {
			c.logger.Warn("jwks refresh failed, serving cached key",
				slog.String("kid", kid),
				slog.String("error", err.Error()))
			return key, nil
		}
		return nil, err
	}

	c.mu.RLock()
	key, ok = c.keys[kid]
	c.mu.RUnlock()
	if !ok {
		return nil, identityDomain.ErrSigningKeyNotFound
	}
	return key, nil
}

// refresh fetches the provider key set and replaces the cached copy.
// Attempts closer together than minRefreshInterval are skipped.
func (c *httpJWKSCache) refresh(ctx context.Context, now time.Time) error {
	c.mu.Lock()
	if now.Sub(c.lastAttempt) < c.minRefreshInterval {
		c.mu.Unlock()
		return nil
	}
	c.lastAttempt = now
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "failed to build jwks request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "failed to fetch jwks: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "jwks endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSResponseSize))
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "failed to read jwks response: %v", err)
	}

	var doc jwksDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "failed to parse jwks response: %v", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, jwk := range doc.Keys {
		if jwk.Kty != "RSA" || jwk.Kid == "" {
			continue
		}
		if jwk.Use != "" && jwk.Use != "sig" {
			continue
		}
		pub, err := parseRSAPublicKey(jwk)
		if err != nil {
			c.logger.Debug("skipping unparsable jwk",
				slog.String("kid", jwk.Kid),
				slog.String("error", err.Error()))
			continue
		}
		keys[jwk.Kid] = pub
	}

	c.mu.Lock()
	c.keys = keys
	c.fetchedAt = now
	c.mu.Unlock()

	c.logger.Debug("jwks cache refreshed", slog.Int("keys", len(keys)))

	return nil
}

// parseRSAPublicKey builds an rsa.PublicKey from the JWK's n and e members.
func parseRSAPublicKey(jwk jwksKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}
	if len(nBytes) == 0 || len(eBytes) == 0 {
		return nil, fmt.Errorf("empty modulus or exponent")
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e <= 1 {
		return nil, fmt.Errorf("invalid public exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
