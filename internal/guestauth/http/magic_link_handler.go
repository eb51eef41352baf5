package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
	"github.com/logbarron/guestgate/internal/guestauth/http/dto"
	guestauthUseCase "github.com/logbarron/guestgate/internal/guestauth/usecase"
	"github.com/logbarron/guestgate/internal/httputil"
	customValidation "github.com/logbarron/guestgate/internal/validation"
)

// MagicLinkHandler handles operator requests for minting magic links.
type MagicLinkHandler struct {
	magicLinkUseCase guestauthUseCase.MagicLinkUseCase
	logger           *slog.Logger
}

// NewMagicLinkHandler creates a new magic link handler with required dependencies.
func NewMagicLinkHandler(
	magicLinkUseCase guestauthUseCase.MagicLinkUseCase,
	logger *slog.Logger,
) *MagicLinkHandler {
	return &MagicLinkHandler{
		magicLinkUseCase: magicLinkUseCase,
		logger:           logger,
	}
}

// IssueHandler mints a magic link for a guest.
// POST /v1/magic-links - Requires a verified access assertion.
// Returns 201 Created with the verify URL; the URL embeds the plain token
// and is shown exactly once.
func (h *MagicLinkHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueMagicLinkRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &guestauthDomain.IssueMagicLinkInput{
		GuestID: guestID,
		Email:   req.Email,
	}

	output, err := h.magicLinkUseCase.Issue(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MagicLinkResponse{
		ID:        output.LinkID.String(),
		VerifyURL: output.VerifyURL,
		ExpiresAt: output.ExpiresAt,
	})
}
