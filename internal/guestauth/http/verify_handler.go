// Package http provides HTTP handlers for guest login links and sessions.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/logbarron/guestgate/internal/config"
	apperrors "github.com/logbarron/guestgate/internal/errors"
	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
	guestauthUseCase "github.com/logbarron/guestgate/internal/guestauth/usecase"
)

// VerifyHandler consumes magic links from guests' email clients.
type VerifyHandler struct {
	config           *config.Config
	magicLinkUseCase guestauthUseCase.MagicLinkUseCase
	logger           *slog.Logger
}

// NewVerifyHandler creates a new verify handler with required dependencies.
func NewVerifyHandler(
	cfg *config.Config,
	magicLinkUseCase guestauthUseCase.MagicLinkUseCase,
	logger *slog.Logger,
) *VerifyHandler {
	return &VerifyHandler{
		config:           cfg,
		magicLinkUseCase: magicLinkUseCase,
		logger:           logger,
	}
}

// VerifyHandler redeems a magic link and establishes a session.
// GET /auth/verify?token=<raw-token> - No authentication required.
//
// Success responds 303 See Other to the configured landing URL with the
// session cookie set. Failures render a plain denial page: 429 when rate
// limited, 400 otherwise with only the user-facing message distinguishing
// unknown, already-used, and expired links. Every response carries
// Cache-Control: no-store so intermediaries never replay a consumed link.
func (h *VerifyHandler) VerifyHandler(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	rawToken := c.Query("token")
	if rawToken == "" {
		c.String(http.StatusBadRequest, "verification failed")
		return
	}

	output, err := h.magicLinkUseCase.Redeem(c.Request.Context(), rawToken, c.ClientIP())
	if err != nil {
		h.logger.Debug("magic link redemption denied",
			slog.String("client_ip", c.ClientIP()),
			slog.String("error", err.Error()))

		switch {
		case errors.Is(err, apperrors.ErrRateLimited):
			c.String(http.StatusTooManyRequests, "too many attempts, try again later")
		case errors.Is(err, guestauthDomain.ErrLinkAlreadyUsed):
			c.String(http.StatusBadRequest, "this link has already been used")
		case errors.Is(err, guestauthDomain.ErrLinkExpired):
			c.String(http.StatusBadRequest, "this link has expired")
		case errors.Is(err, guestauthDomain.ErrLinkInvalid):
			c.String(http.StatusBadRequest, "verification failed")
		default:
			c.String(http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	h.setSessionCookie(c, output.PlainSessionID)
	c.Redirect(http.StatusSeeOther, h.config.VerifySuccessURL)
}

// setSessionCookie issues the session cookie: Secure, HttpOnly, SameSite=Lax,
// Path=/, max age matching the absolute session lifetime.
func (h *VerifyHandler) setSessionCookie(c *gin.Context, plainSessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.config.SessionCookieName,
		plainSessionID,
		int(h.config.SessionAbsoluteLifetime.Seconds()),
		"/",
		"",
		true,
		true,
	)
}
