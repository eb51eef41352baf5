package app

import (
	"fmt"

	guestauthHTTP "github.com/logbarron/guestgate/internal/guestauth/http"
	guestauthRepository "github.com/logbarron/guestgate/internal/guestauth/repository"
	guestauthService "github.com/logbarron/guestgate/internal/guestauth/service"
	guestauthUseCase "github.com/logbarron/guestgate/internal/guestauth/usecase"
	"github.com/logbarron/guestgate/internal/http"
	identityHTTP "github.com/logbarron/guestgate/internal/identity/http"
)

// HashService returns the keyed hash service for emails and tokens.
func (c *Container) HashService() (guestauthService.HashService, error) {
	var err error
	c.hashServiceInit.Do(func() {
		c.hashService, err = guestauthService.NewHashService(c.config.HashSecret)
		if err != nil {
			c.initErrors["hashService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["hashService"]; exists {
		return nil, storedErr
	}
	return c.hashService, nil
}

// TokenService returns the token generation service.
func (c *Container) TokenService() (guestauthService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		hashService, hashErr := c.HashService()
		if hashErr != nil {
			err = hashErr
			c.initErrors["tokenService"] = hashErr
			return
		}
		c.tokenService = guestauthService.NewTokenService(hashService)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// MagicLinkRepository returns the magic link repository based on database driver.
func (c *Container) MagicLinkRepository() (guestauthUseCase.MagicLinkRepository, error) {
	var err error
	c.magicLinkRepoInit.Do(func() {
		db, dbErr := c.DB()
		if dbErr != nil {
			err = dbErr
			c.initErrors["magicLinkRepo"] = dbErr
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.magicLinkRepo = guestauthRepository.NewMySQLMagicLinkRepository(db)
		default:
			c.magicLinkRepo = guestauthRepository.NewPostgreSQLMagicLinkRepository(db)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["magicLinkRepo"]; exists {
		return nil, storedErr
	}
	return c.magicLinkRepo, nil
}

// SessionRepository returns the session repository based on database driver.
func (c *Container) SessionRepository() (guestauthUseCase.SessionRepository, error) {
	var err error
	c.sessionRepoInit.Do(func() {
		db, dbErr := c.DB()
		if dbErr != nil {
			err = dbErr
			c.initErrors["sessionRepo"] = dbErr
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.sessionRepo = guestauthRepository.NewMySQLSessionRepository(db)
		default:
			c.sessionRepo = guestauthRepository.NewPostgreSQLSessionRepository(db)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionRepo"]; exists {
		return nil, storedErr
	}
	return c.sessionRepo, nil
}

// AuditEventRepository returns the audit event repository based on database driver.
func (c *Container) AuditEventRepository() (guestauthUseCase.AuditEventRepository, error) {
	var err error
	c.auditEventRepoInit.Do(func() {
		db, dbErr := c.DB()
		if dbErr != nil {
			err = dbErr
			c.initErrors["auditEventRepo"] = dbErr
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.auditEventRepo = guestauthRepository.NewMySQLAuditEventRepository(db)
		default:
			c.auditEventRepo = guestauthRepository.NewPostgreSQLAuditEventRepository(db)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditEventRepo"]; exists {
		return nil, storedErr
	}
	return c.auditEventRepo, nil
}

// RateLimitRepository returns the rate limit bucket repository based on database driver.
func (c *Container) RateLimitRepository() (guestauthUseCase.RateLimitRepository, error) {
	var err error
	c.rateLimitRepoInit.Do(func() {
		db, dbErr := c.DB()
		if dbErr != nil {
			err = dbErr
			c.initErrors["rateLimitRepo"] = dbErr
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.rateLimitRepo = guestauthRepository.NewMySQLRateLimitRepository(db)
		default:
			c.rateLimitRepo = guestauthRepository.NewPostgreSQLRateLimitRepository(db)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rateLimitRepo"]; exists {
		return nil, storedErr
	}
	return c.rateLimitRepo, nil
}

// AuditUseCase returns the audit trail use case.
func (c *Container) AuditUseCase() (guestauthUseCase.AuditUseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		repo, repoErr := c.AuditEventRepository()
		if repoErr != nil {
			err = repoErr
			c.initErrors["auditUseCase"] = repoErr
			return
		}
		c.auditUseCase = guestauthUseCase.NewAuditUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

// RateLimitUseCase returns the shared-store rate limiting use case.
func (c *Container) RateLimitUseCase() (guestauthUseCase.RateLimitUseCase, error) {
	var err error
	c.rateLimitUseCaseInit.Do(func() {
		repo, repoErr := c.RateLimitRepository()
		if repoErr != nil {
			err = repoErr
			c.initErrors["rateLimitUseCase"] = repoErr
			return
		}
		c.rateLimitUseCase = guestauthUseCase.NewRateLimitUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rateLimitUseCase"]; exists {
		return nil, storedErr
	}
	return c.rateLimitUseCase, nil
}

// SessionUseCase returns the session use case wrapped with metrics.
func (c *Container) SessionUseCase() (guestauthUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// MagicLinkUseCase returns the magic link use case wrapped with metrics.
func (c *Container) MagicLinkUseCase() (guestauthUseCase.MagicLinkUseCase, error) {
	var err error
	c.magicLinkUseCaseInit.Do(func() {
		c.magicLinkUseCase, err = c.initMagicLinkUseCase()
		if err != nil {
			c.initErrors["magicLinkUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["magicLinkUseCase"]; exists {
		return nil, storedErr
	}
	return c.magicLinkUseCase, nil
}

// CleanupUseCase returns the expired-row cleanup use case.
func (c *Container) CleanupUseCase() (guestauthUseCase.CleanupUseCase, error) {
	var err error
	c.cleanupUseCaseInit.Do(func() {
		c.cleanupUseCase, err = c.initCleanupUseCase()
		if err != nil {
			c.initErrors["cleanupUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cleanupUseCase"]; exists {
		return nil, storedErr
	}
	return c.cleanupUseCase, nil
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (guestauthUseCase.SessionUseCase, error) {
	sessionRepo, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository: %w", err)
	}
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case: %w", err)
	}
	hashService, err := c.HashService()
	if err != nil {
		return nil, err
	}
	tokenService, err := c.TokenService()
	if err != nil {
		return nil, err
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := guestauthUseCase.NewSessionUseCase(
		c.config,
		sessionRepo,
		auditUseCase,
		hashService,
		tokenService,
	)

	return guestauthUseCase.NewSessionUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initMagicLinkUseCase creates the magic link use case with all its dependencies.
func (c *Container) initMagicLinkUseCase() (guestauthUseCase.MagicLinkUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager: %w", err)
	}
	magicLinkRepo, err := c.MagicLinkRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get magic link repository: %w", err)
	}
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, err
	}
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, err
	}
	rateLimitUseCase, err := c.RateLimitUseCase()
	if err != nil {
		return nil, err
	}
	hashService, err := c.HashService()
	if err != nil {
		return nil, err
	}
	tokenService, err := c.TokenService()
	if err != nil {
		return nil, err
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := guestauthUseCase.NewMagicLinkUseCase(
		c.config,
		txManager,
		magicLinkRepo,
		sessionUseCase,
		auditUseCase,
		rateLimitUseCase,
		hashService,
		tokenService,
	)

	return guestauthUseCase.NewMagicLinkUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initCleanupUseCase creates the cleanup use case with all its repositories.
func (c *Container) initCleanupUseCase() (guestauthUseCase.CleanupUseCase, error) {
	magicLinkRepo, err := c.MagicLinkRepository()
	if err != nil {
		return nil, err
	}
	sessionRepo, err := c.SessionRepository()
	if err != nil {
		return nil, err
	}
	auditEventRepo, err := c.AuditEventRepository()
	if err != nil {
		return nil, err
	}
	rateLimitRepo, err := c.RateLimitRepository()
	if err != nil {
		return nil, err
	}

	return guestauthUseCase.NewCleanupUseCase(
		magicLinkRepo,
		sessionRepo,
		auditEventRepo,
		rateLimitRepo,
	), nil
}

// initHTTPServer creates the API server with all its handlers and middleware.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}
	magicLinkUseCase, err := c.MagicLinkUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get magic link use case for http server: %w", err)
	}
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for http server: %w", err)
	}
	verifier, err := c.Verifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get verifier for http server: %w", err)
	}

	handlers := http.Handlers{
		Verify:     guestauthHTTP.NewVerifyHandler(c.config, magicLinkUseCase, logger),
		Session:    guestauthHTTP.NewSessionHandler(c.config, sessionUseCase, logger),
		MagicLink:  guestauthHTTP.NewMagicLinkHandler(magicLinkUseCase, logger),
		AuditEvent: guestauthHTTP.NewAuditEventHandler(auditUseCase, logger),
		Assertion:  identityHTTP.AssertionMiddleware(verifier, c.config.AuthHeader, logger),
	}

	if c.config.RateLimitAdminEnabled {
		handlers.AdminRateLimit = guestauthHTTP.AdminRateLimitMiddleware(
			c.config.RateLimitAdminRequestsPerSec,
			c.config.RateLimitAdminBurst,
			logger,
		)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	if provider != nil {
		return http.NewServer(c.config, db, logger, handlers, provider.MeterProvider()), nil
	}
	return http.NewServer(c.config, db, logger, handlers, nil), nil
}
