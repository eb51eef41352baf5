package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	guestauthUseCase "github.com/logbarron/guestgate/internal/guestauth/usecase"
)

type mockCleanupUseCase struct {
	mock.Mock
}

func (m *mockCleanupUseCase) Run(
	ctx context.Context,
	staleWindow, retention time.Duration,
) (*guestauthUseCase.CleanupResult, error) {
	args := m.Called(ctx, staleWindow, retention)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guestauthUseCase.CleanupResult), args.Error(1)
}

func TestRunCleanExpired(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &mockCleanupUseCase{}
		mockUseCase.On("Run", ctx, 24*time.Hour, 90*24*time.Hour).Return(&guestauthUseCase.CleanupResult{
			MagicLinks:       3,
			Sessions:         2,
			RateLimitBuckets: 10,
			AuditEvents:      100,
		}, nil)

		var out bytes.Buffer
		err := RunCleanExpired(ctx, mockUseCase, logger, &out, 24, 90, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Deleted 3 expired magic link(s)")
		require.Contains(t, out.String(), "Deleted 2 expired session(s)")
		require.Contains(t, out.String(), "Deleted 10 stale rate limit bucket(s)")
		require.Contains(t, out.String(), "Deleted 100 old audit event(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &mockCleanupUseCase{}
		mockUseCase.On("Run", ctx, 24*time.Hour, 90*24*time.Hour).Return(&guestauthUseCase.CleanupResult{
			MagicLinks:  1,
			AuditEvents: 7,
		}, nil)

		var out bytes.Buffer
		err := RunCleanExpired(ctx, mockUseCase, logger, &out, 24, 90, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"magic_links": 1`)
		require.Contains(t, out.String(), `"audit_events": 7`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-stale-hours", func(t *testing.T) {
		mockUseCase := &mockCleanupUseCase{}

		err := RunCleanExpired(ctx, mockUseCase, logger, &bytes.Buffer{}, 0, 90, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "stale-hours must be a positive number")
		mockUseCase.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid-retention-days", func(t *testing.T) {
		mockUseCase := &mockCleanupUseCase{}

		err := RunCleanExpired(ctx, mockUseCase, logger, &bytes.Buffer{}, 24, -1, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "retention-days must be a positive number")
	})

	t.Run("cleanup-failure", func(t *testing.T) {
		mockUseCase := &mockCleanupUseCase{}
		mockUseCase.On("Run", ctx, 24*time.Hour, 90*24*time.Hour).Return(nil, context.DeadlineExceeded)

		err := RunCleanExpired(ctx, mockUseCase, logger, &bytes.Buffer{}, 24, 90, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to clean expired rows")
		mockUseCase.AssertExpectations(t)
	})
}
