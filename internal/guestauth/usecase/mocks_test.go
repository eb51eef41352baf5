package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

// mockMagicLinkRepository is a mock implementation of MagicLinkRepository for testing.
type mockMagicLinkRepository struct {
	mock.Mock
}

func (m *mockMagicLinkRepository) Create(ctx context.Context, link *guestauthDomain.MagicLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *mockMagicLinkRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*guestauthDomain.MagicLink, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guestauthDomain.MagicLink), args.Error(1)
}

func (m *mockMagicLinkRepository) MarkUsed(
	ctx context.Context,
	linkID uuid.UUID,
	usedAt time.Time,
) (bool, error) {
	args := m.Called(ctx, linkID, usedAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockMagicLinkRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// mockSessionRepository is a mock implementation of SessionRepository for testing.
type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *guestauthDomain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetActiveByHash(
	ctx context.Context,
	sessionIDHash string,
	now time.Time,
) (*guestauthDomain.Session, error) {
	args := m.Called(ctx, sessionIDHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guestauthDomain.Session), args.Error(1)
}

func (m *mockSessionRepository) Touch(ctx context.Context, sessionID uuid.UUID, lastSeenAt time.Time) error {
	args := m.Called(ctx, sessionID, lastSeenAt)
	return args.Error(0)
}

func (m *mockSessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// mockAuditEventRepository is a mock implementation of AuditEventRepository for testing.
type mockAuditEventRepository struct {
	mock.Mock
}

func (m *mockAuditEventRepository) Create(ctx context.Context, event *guestauthDomain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockAuditEventRepository) List(
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

func (m *mockAuditEventRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// mockRateLimitRepository is a mock implementation of RateLimitRepository for testing.
type mockRateLimitRepository struct {
	mock.Mock
}

func (m *mockRateLimitRepository) Increment(
	ctx context.Context,
	key string,
	now, windowCutoff time.Time,
) (int64, error) {
	args := m.Called(ctx, key, now, windowCutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRateLimitRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// mockRateLimitUseCase is a mock implementation of RateLimitUseCase for testing.
type mockRateLimitUseCase struct {
	mock.Mock
}

func (m *mockRateLimitUseCase) Allow(
	ctx context.Context,
	key string,
	limit int64,
	window time.Duration,
) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *mockRateLimitUseCase) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// mockSessionUseCase is a mock implementation of SessionUseCase for testing.
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

// mockHashService is a mock implementation of service.HashService for testing.
type mockHashService struct {
	mock.Mock
}

func (m *mockHashService) HashEmail(email string) string {
	args := m.Called(email)
	return args.String(0)
}

func (m *mockHashService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

// mockTokenService is a mock implementation of service.TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}
