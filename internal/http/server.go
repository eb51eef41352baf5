package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/logbarron/guestgate/internal/config"
	guestauthHTTP "github.com/logbarron/guestgate/internal/guestauth/http"
	"github.com/logbarron/guestgate/internal/metrics"
)

// Handlers groups the request handlers and route-level middleware the API
// server mounts. Assertion must be set; AdminRateLimit may be nil when admin
// rate limiting is disabled.
type Handlers struct {
	Verify         *guestauthHTTP.VerifyHandler
	Session        *guestauthHTTP.SessionHandler
	MagicLink      *guestauthHTTP.MagicLinkHandler
	AuditEvent     *guestauthHTTP.AuditEventHandler
	Assertion      gin.HandlerFunc
	AdminRateLimit gin.HandlerFunc
}

// Server is the public guest API server.
type Server struct {
	config *config.Config
	db     *sql.DB
	logger *slog.Logger
	server *http.Server
}

// NewServer creates the API server and mounts all routes.
// meterProvider may be nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
	handlers Handlers,
	meterProvider otelmetric.MeterProvider,
) *Server {
	s := &Server{
		config: cfg,
		db:     db,
		logger: logger,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.setupRouter(handlers, meterProvider),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRouter builds the Gin engine with middleware and routes.
func (s *Server) setupRouter(handlers Handlers, meterProvider otelmetric.MeterProvider) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.config.CORSEnabled,
		s.config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, s.config.MetricsNamespace))
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Guest-facing endpoints: no access assertion, the magic link or the
	// session cookie is the credential.
	router.GET("/auth/verify", handlers.Verify.VerifyHandler)
	router.GET("/auth/session", handlers.Session.StatusHandler)
	router.POST("/auth/logout", handlers.Session.LogoutHandler)

	// Admin endpoints require a verified access assertion.
	v1 := router.Group("/v1")
	v1.Use(handlers.Assertion)
	if handlers.AdminRateLimit != nil {
		v1.Use(handlers.AdminRateLimit)
	}
	v1.POST("/magic-links", handlers.MagicLink.IssueHandler)
	v1.GET("/audit-events", handlers.AuditEvent.ListHandler)

	return router
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness, including database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.String("error", err.Error()))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server. Blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
