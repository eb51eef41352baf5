package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/logbarron/guestgate/internal/config"
	"github.com/logbarron/guestgate/internal/database"
	apperrors "github.com/logbarron/guestgate/internal/errors"
	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
	guestauthService "github.com/logbarron/guestgate/internal/guestauth/service"
)

// magicLinkUseCase implements MagicLinkUseCase for single-use login links.
type magicLinkUseCase struct {
	config           *config.Config
	txManager        database.TxManager
	magicLinkRepo    MagicLinkRepository
	sessionUseCase   SessionUseCase
	auditUseCase     AuditUseCase
	rateLimitUseCase RateLimitUseCase
	hashService      guestauthService.HashService
	tokenService     guestauthService.TokenService
}

// Issue creates a magic link for a guest.
//
// The plain token is returned once for delivery; the store holds only its
// keyed hash, so a leaked database snapshot yields no redeemable links.
func (m *magicLinkUseCase) Issue(
	ctx context.Context,
	input *guestauthDomain.IssueMagicLinkInput,
) (*guestauthDomain.IssueMagicLinkOutput, error) {
	plainToken, tokenHash, err := m.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	link := &guestauthDomain.MagicLink{
		ID:        uuid.Must(uuid.NewV7()),
		GuestID:   input.GuestID,
		TokenHash: tokenHash,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.config.MagicLinkTTL),
	}

	if err := m.magicLinkRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	if err := m.auditUseCase.Record(ctx, &link.GuestID, guestauthDomain.AuditLinkIssued); err != nil {
		return nil, err
	}

	return &guestauthDomain.IssueMagicLinkOutput{
		LinkID:     link.ID,
		PlainToken: plainToken,
		VerifyURL:  fmt.Sprintf("%s/auth/verify?token=%s", m.config.VerifyBaseURL, plainToken),
		ExpiresAt:  link.ExpiresAt,
	}, nil
}

// Redeem consumes a magic link and establishes a session.
//
// The order of checks is deliberate:
//  1. Two independent rate limit windows, one on the source address and one
//     on the hashed token. Exceeding either denies with the same error, so
//     a caller cannot tell which window it tripped.
//  2. The token hash is looked up and a link_clicked event recorded for
//     every attempt, including unknown tokens (nil guest), to support abuse
//     detection.
//  3. Unknown, already-used, and expired links deny with verify_fail
//     audited. The user-facing messages differ; the audit trail does not.
//  4. used_at is set through a conditional update. Losing that race is
//     treated exactly like presenting an already-used link.
//  5. Marking the link used, creating the session, and auditing the success
//     run in one transaction: a failed session create must not burn the link.
func (m *magicLinkUseCase) Redeem(
	ctx context.Context,
	rawToken, clientIP string,
) (*guestauthDomain.CreateSessionOutput, error) {
	tokenHash := m.hashService.HashToken(rawToken)

	ipAllowed, err := m.rateLimitUseCase.Allow(
		ctx,
		"verify:ip:"+clientIP,
		int64(m.config.RateLimitVerifyIPLimit),
		m.config.RateLimitVerifyIPWindow,
	)
	if err != nil {
		return nil, err
	}

	tokenAllowed, err := m.rateLimitUseCase.Allow(
		ctx,
		"verify:token:"+tokenHash,
		int64(m.config.RateLimitVerifyTokenLimit),
		m.config.RateLimitVerifyTokenWindow,
	)
	if err != nil {
		return nil, err
	}

	if !ipAllowed || !tokenAllowed {
		return nil, apperrors.ErrRateLimited
	}

	link, err := m.magicLinkRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, guestauthDomain.ErrMagicLinkNotFound) {
			if err := m.recordAttempt(ctx, nil, false); err != nil {
				return nil, err
			}
			return nil, guestauthDomain.ErrLinkInvalid
		}
		return nil, err
	}

	if link.IsUsed() {
		if err := m.recordAttempt(ctx, &link.GuestID, false); err != nil {
			return nil, err
		}
		return nil, guestauthDomain.ErrLinkAlreadyUsed
	}

	now := time.Now().UTC()
	if link.IsExpired(now) {
		if err := m.recordAttempt(ctx, &link.GuestID, false); err != nil {
			return nil, err
		}
		return nil, guestauthDomain.ErrLinkExpired
	}

	var output *guestauthDomain.CreateSessionOutput
	err = m.txManager.WithTx(ctx, func(txCtx context.Context) error {
		ok, err := m.magicLinkRepo.MarkUsed(txCtx, link.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			// A concurrent redemption got here first.
			return guestauthDomain.ErrLinkAlreadyUsed
		}

		output, err = m.sessionUseCase.Create(txCtx, link.GuestID)
		if err != nil {
			return err
		}

		return m.recordAttempt(txCtx, &link.GuestID, true)
	})
	if err != nil {
		if errors.Is(err, guestauthDomain.ErrLinkAlreadyUsed) {
			if auditErr := m.recordAttempt(ctx, &link.GuestID, false); auditErr != nil {
				return nil, auditErr
			}
			return nil, guestauthDomain.ErrLinkAlreadyUsed
		}
		return nil, err
	}

	return output, nil
}

// recordAttempt audits a link_clicked event plus the verification outcome.
func (m *magicLinkUseCase) recordAttempt(ctx context.Context, guestID *uuid.UUID, ok bool) error {
	if err := m.auditUseCase.Record(ctx, guestID, guestauthDomain.AuditLinkClicked); err != nil {
		return err
	}
	outcome := guestauthDomain.AuditVerifyFail
	if ok {
		outcome = guestauthDomain.AuditVerifyOK
	}
	return m.auditUseCase.Record(ctx, guestID, outcome)
}

// NewMagicLinkUseCase creates a new MagicLinkUseCase with the provided dependencies.
func NewMagicLinkUseCase(
	cfg *config.Config,
	txManager database.TxManager,
	magicLinkRepo MagicLinkRepository,
	sessionUseCase SessionUseCase,
	auditUseCase AuditUseCase,
	rateLimitUseCase RateLimitUseCase,
	hashService guestauthService.HashService,
	tokenService guestauthService.TokenService,
) MagicLinkUseCase {
	return &magicLinkUseCase{
		config:           cfg,
		txManager:        txManager,
		magicLinkRepo:    magicLinkRepo,
		sessionUseCase:   sessionUseCase,
		auditUseCase:     auditUseCase,
		rateLimitUseCase: rateLimitUseCase,
		hashService:      hashService,
		tokenService:     tokenService,
	}
}
