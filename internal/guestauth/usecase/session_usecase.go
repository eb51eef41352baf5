package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/logbarron/guestgate/internal/config"
	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
	guestauthService "github.com/logbarron/guestgate/internal/guestauth/service"
)

// sessionUseCase implements SessionUseCase for browser sessions.
type sessionUseCase struct {
	config       *config.Config
	sessionRepo  SessionRepository
	auditUseCase AuditUseCase
	hashService  guestauthService.HashService
	tokenService guestauthService.TokenService
}

// Create establishes a new session for a guest.
//
// The plain session id is 256 bits of fresh randomness, returned once for
// cookie issuance; the store only ever holds its keyed hash, so a leaked
// database snapshot cannot be replayed as cookies. The absolute expiry is
// fixed at creation and never extended.
func (s *sessionUseCase) Create(
	ctx context.Context,
	guestID uuid.UUID,
) (*guestauthDomain.CreateSessionOutput, error) {
	plainSessionID, sessionIDHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &guestauthDomain.Session{
		ID:            uuid.Must(uuid.NewV7()),
		GuestID:       guestID,
		SessionIDHash: sessionIDHash,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.config.SessionAbsoluteLifetime),
		LastSeenAt:    now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.auditUseCase.Record(ctx, &guestID, guestauthDomain.AuditSessionCreated); err != nil {
		return nil, err
	}

	return &guestauthDomain.CreateSessionOutput{
		Session:        session,
		PlainSessionID: plainSessionID,
	}, nil
}

// Validate checks a presented session id.
//
// An active session has last_seen_at refreshed (sliding idle window under
// the absolute cap). A session past either boundary is deleted and the call
// fails with ErrSessionInvalid, the same error an unknown id gets.
func (s *sessionUseCase) Validate(
	ctx context.Context,
	plainSessionID string,
) (*guestauthDomain.Session, error) {
	sessionIDHash := s.hashService.HashToken(plainSessionID)
	now := time.Now().UTC()

	session, err := s.sessionRepo.GetActiveByHash(ctx, sessionIDHash, now)
	if err != nil {
		if errors.Is(err, guestauthDomain.ErrSessionNotFound) {
			return nil, guestauthDomain.ErrSessionInvalid
		}
		return nil, err
	}

	if !session.IsActive(now, s.config.SessionIdleWindow) {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			return nil, err
		}
		return nil, guestauthDomain.ErrSessionInvalid
	}

	if err := s.sessionRepo.Touch(ctx, session.ID, now); err != nil {
		return nil, err
	}
	session.LastSeenAt = now

	return session, nil
}

// Logout deletes the session for the presented session id.
// Unknown or already-expired ids are a no-op.
func (s *sessionUseCase) Logout(ctx context.Context, plainSessionID string) error {
	sessionIDHash := s.hashService.HashToken(plainSessionID)
	now := time.Now().UTC()

	session, err := s.sessionRepo.GetActiveByHash(ctx, sessionIDHash, now)
	if err != nil {
		if errors.Is(err, guestauthDomain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	return s.sessionRepo.Delete(ctx, session.ID)
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(
	cfg *config.Config,
	sessionRepo SessionRepository,
	auditUseCase AuditUseCase,
	hashService guestauthService.HashService,
	tokenService guestauthService.TokenService,
) SessionUseCase {
	return &sessionUseCase{
		config:       cfg,
		sessionRepo:  sessionRepo,
		auditUseCase: auditUseCase,
		hashService:  hashService,
		tokenService: tokenService,
	}
}
