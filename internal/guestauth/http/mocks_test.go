package http

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockMagicLinkUseCase is a mock implementation of usecase.MagicLinkUseCase for testing.
type mockMagicLinkUseCase struct {
	mock.Mock
}

func (m *mockMagicLinkUseCase) Issue(
	ctx context.Context,
	input *guestauthDomain.IssueMagicLinkInput,
) (*guestauthDomain.IssueMagicLinkOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guestauthDomain.IssueMagicLinkOutput), args.Error(1)
}

func (m *mockMagicLinkUseCase) Redeem(
	ctx context.Context,
	rawToken, clientIP string,
) (*guestauthDomain.CreateSessionOutput, error) {
	args := m.Called(ctx, rawToken, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guestauthDomain.CreateSessionOutput), args.Error(1)
}

// mockSessionUseCase is a mock implementation of usecase.SessionUseCase for testing.
type mockSessionUseCase struct {
	mock.Mock
}

func (m *mockSessionUseCase) Create(
	ctx context.Context,
	guestID uuid.UUID,
) (*guestauthDomain.CreateSessionOutput, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guestauthDomain.CreateSessionOutput), args.Error(1)
}

func (m *mockSessionUseCase) Validate(
	ctx context.Context,
	plainSessionID string,
) (*guestauthDomain.Session, error) {
	args := m.Called(ctx, plainSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guestauthDomain.Session), args.Error(1)
}

func (m *mockSessionUseCase) Logout(ctx context.Context, plainSessionID string) error {
	args := m.Called(ctx, plainSessionID)
	return args.Error(0)
}

// mockAuditUseCase is a mock implementation of usecase.AuditUseCase for testing.
type mockAuditUseCase struct {
	mock.Mock
}

func (m *mockAuditUseCase) Record(
	ctx context.Context,
	guestID *uuid.UUID,
	eventType guestauthDomain.AuditEventType,
) error {
	args := m.Called(ctx, guestID, eventType)
	return args.Error(0)
}

func (m *mockAuditUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*guestauthDomain.AuditEvent, error) {
	args := m.Called(ctx, offset, limit, createdAtFrom, createdAtTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*guestauthDomain.AuditEvent), args.Error(1)
}
