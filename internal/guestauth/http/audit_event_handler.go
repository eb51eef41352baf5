package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logbarron/guestgate/internal/guestauth/http/dto"
	guestauthUseCase "github.com/logbarron/guestgate/internal/guestauth/usecase"
	"github.com/logbarron/guestgate/internal/httputil"
)

// AuditEventHandler handles operator requests for reading the audit trail.
// The lifecycle core only ever appends events; this read path exists for
// operators investigating abuse.
type AuditEventHandler struct {
	auditUseCase guestauthUseCase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditEventHandler creates a new audit event handler with required dependencies.
func NewAuditEventHandler(
	auditUseCase guestauthUseCase.AuditUseCase,
	logger *slog.Logger,
) *AuditEventHandler {
	return &AuditEventHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// ListHandler lists audit events newest first.
// GET /v1/audit-events?offset=&limit=&created_at_from=&created_at_to=
// Requires a verified access assertion. Time filters are RFC 3339 and inclusive.
func (h *AuditEventHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	createdAtFrom, err := parseTimeFilter(c.Query("created_at_from"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	createdAtTo, err := parseTimeFilter(c.Query("created_at_to"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	events, err := h.auditUseCase.List(c.Request.Context(), offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.AuditEventListResponse{
		AuditEvents: make([]dto.AuditEventResponse, 0, len(events)),
		Offset:      offset,
		Limit:       limit,
	}
	for _, event := range events {
		response.AuditEvents = append(response.AuditEvents, dto.NewAuditEventResponse(event))
	}

	c.JSON(http.StatusOK, response)
}

// parseTimeFilter parses an optional RFC 3339 query value.
func parseTimeFilter(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
