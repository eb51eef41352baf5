package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

func setupMagicLinkRouter(uc *mockMagicLinkUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewMagicLinkHandler(uc, testLogger())
	router := gin.New()
	router.POST("/v1/magic-links", handler.IssueHandler)
	return router
}

func TestMagicLinkHandler_Issue(t *testing.T) {
	guestID := uuid.Must(uuid.NewV7())

	t.Run("issues a link", func(t *testing.T) {
		linkID := uuid.Must(uuid.NewV7())
		expiresAt := time.Now().UTC().Add(15 * time.Minute)
		uc := &mockMagicLinkUseCase{}
		uc.On("Issue", mock.Anything, mock.MatchedBy(func(input *guestauthDomain.IssueMagicLinkInput) bool {
			return input.GuestID == guestID && input.Email == "guest@example.com"
		})).Return(&guestauthDomain.IssueMagicLinkOutput{
			LinkID:     linkID,
			PlainToken: "plain-token",
			VerifyURL:  "https://rsvp.example.com/auth/verify?token=plain-token",
			ExpiresAt:  expiresAt,
		}, nil)
		router := setupMagicLinkRouter(uc)

		body := `{"guest_id": "` + guestID.String() + `", "email": "guest@example.com"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/magic-links", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), linkID.String())
		assert.Contains(t, w.Body.String(), "verify?token=plain-token")
		uc.AssertExpectations(t)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"invalid json", `{`},
			{"missing guest_id", `{"email": "guest@example.com"}`},
			{"malformed guest_id", `{"guest_id": "not-a-uuid", "email": "guest@example.com"}`},
			{"missing email", `{"guest_id": "` + guestID.String() + `"}`},
			{"invalid email", `{"guest_id": "` + guestID.String() + `", "email": "not-an-email"}`},
			{"blank email", `{"guest_id": "` + guestID.String() + `", "email": "   "}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := &mockMagicLinkUseCase{}
				router := setupMagicLinkRouter(uc)

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodPost, "/v1/magic-links", strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
				router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
				uc.AssertNotCalled(t, "Issue")
			})
		}
	})

	t.Run("usecase failure", func(t *testing.T) {
		uc := &mockMagicLinkUseCase{}
		uc.On("Issue", mock.Anything, mock.Anything).Return(nil, assert.AnError)
		router := setupMagicLinkRouter(uc)

		body := `{"guest_id": "` + guestID.String() + `", "email": "guest@example.com"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/magic-links", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
