package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/logbarron/guestgate/internal/errors"
	"github.com/logbarron/guestgate/internal/httputil"
	identityService "github.com/logbarron/guestgate/internal/identity/service"
)

// AssertionMiddleware verifies the access assertion carried in headerName.
//
// The middleware:
// 1. Reads the configured header (a "Bearer " prefix is stripped case-insensitively)
// 2. Verifies the assertion via the Verifier
// 3. Stores the verified claims in the request context for downstream handlers
//
// Absence of the header or any verification failure yields 401 with the
// generic unauthorized body; the cause is logged at debug level only.
func AssertionMiddleware(
	verifier identityService.Verifier,
	headerName string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(headerName)
		if raw == "" {
			logger.Debug("assertion missing",
				slog.String("header", headerName))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(raw) >= len(bearerPrefix) &&
			strings.EqualFold(raw[:len(bearerPrefix)], bearerPrefix) {
			raw = raw[len(bearerPrefix):]
		}

		claims, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("assertion verified",
			slog.String("subject", claims.Subject))

		c.Next()
	}
}
