package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/logbarron/guestgate/internal/config"
	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
	"github.com/logbarron/guestgate/internal/guestauth/http/dto"
	guestauthUseCase "github.com/logbarron/guestgate/internal/guestauth/usecase"
	"github.com/logbarron/guestgate/internal/httputil"
)

// SessionHandler handles HTTP requests for session status and logout.
type SessionHandler struct {
	config         *config.Config
	sessionUseCase guestauthUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	cfg *config.Config,
	sessionUseCase guestauthUseCase.SessionUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		config:         cfg,
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// StatusHandler reports whether the browser holds a live session.
// GET /auth/session - No authentication required.
//
// A missing, expired, or idle session is a normal answer for the SPA, not an
// error: the response is 200 with a logged_in flag, and a dead cookie is
// cleared on the way out. A store failure must not clear the cookie, since
// the session row is still live and a guest can only get a new cookie
// through a fresh magic link.
func (h *SessionHandler) StatusHandler(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	plainSessionID, err := c.Cookie(h.config.SessionCookieName)
	if err != nil || plainSessionID == "" {
		c.JSON(http.StatusOK, dto.SessionStatusResponse{LoggedIn: false})
		return
	}

	session, err := h.sessionUseCase.Validate(c.Request.Context(), plainSessionID)
	if err != nil {
		if errors.Is(err, guestauthDomain.ErrSessionInvalid) {
			h.clearSessionCookie(c)
			c.JSON(http.StatusOK, dto.SessionStatusResponse{LoggedIn: false})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SessionStatusResponse{
		LoggedIn:  true,
		GuestID:   session.GuestID.String(),
		ExpiresAt: &session.ExpiresAt,
	})
}

// LogoutHandler ends the session.
// POST /auth/logout - No authentication required.
//
// Deletes the session row when one exists and clears the cookie either way.
// Always responds 204.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	plainSessionID, err := c.Cookie(h.config.SessionCookieName)
	if err == nil && plainSessionID != "" {
		if err := h.sessionUseCase.Logout(c.Request.Context(), plainSessionID); err != nil {
			h.logger.Error("failed to delete session on logout",
				slog.String("error", err.Error()))
		}
	}

	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.SessionCookieName, "", -1, "/", "", true, true)
}
