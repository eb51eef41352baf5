package app

import (
	"fmt"

	identityService "github.com/logbarron/guestgate/internal/identity/service"
)

// JWKSCache returns the identity provider signing key cache.
func (c *Container) JWKSCache() identityService.JWKSCache {
	c.jwksCacheInit.Do(func() {
		c.jwksCache = identityService.NewHTTPJWKSCache(
			c.config.AuthJWKSURL,
			c.config.JWKSCacheTTL,
			c.config.JWKSMinRefreshInterval,
			c.Logger(),
		)
	})
	return c.jwksCache
}

// Verifier returns the access assertion verifier.
func (c *Container) Verifier() (identityService.Verifier, error) {
	var err error
	c.verifierInit.Do(func() {
		c.verifier, err = identityService.NewVerifier(
			c.JWKSCache(),
			c.config.AuthAudience,
			c.config.AuthIssuer,
			c.Logger(),
		)
		if err != nil {
			err = fmt.Errorf("failed to create verifier: %w", err)
			c.initErrors["verifier"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["verifier"]; exists {
		return nil, storedErr
	}
	return c.verifier, nil
}
