package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "aes-gcm", cfg.RecordAlgorithm)
	assert.Equal(t, "Authorization", cfg.AuthHeader)
	assert.Equal(t, "guestgate_session", cfg.SessionCookieName)
	assert.Equal(t, 15*time.Minute, cfg.MagicLinkTTL)
	assert.Equal(t, 720*time.Hour, cfg.SessionAbsoluteLifetime)
	assert.Equal(t, 1440*time.Minute, cfg.SessionIdleWindow)
	assert.Equal(t, 10, cfg.RateLimitVerifyIPLimit)
	assert.Equal(t, 600*time.Second, cfg.RateLimitVerifyIPWindow)
	assert.Equal(t, 5, cfg.RateLimitVerifyTokenLimit)
	assert.Equal(t, 600*time.Second, cfg.RateLimitVerifyTokenWindow)
	assert.Equal(t, 60*time.Minute, cfg.JWKSCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.JWKSMinRefreshInterval)
	assert.Equal(t, "guestgate", cfg.MetricsNamespace)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("AUTH_AUDIENCE", "guestgate-admin")
	t.Setenv("AUTH_ISSUER", "https://idp.example.com/")
	t.Setenv("MAGIC_LINK_TTL_MINUTES", "10")
	t.Setenv("RATE_LIMIT_VERIFY_TOKEN_LIMIT", "3")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "guestgate-admin", cfg.AuthAudience)
	assert.Equal(t, "https://idp.example.com/", cfg.AuthIssuer)
	assert.Equal(t, 10*time.Minute, cfg.MagicLinkTTL)
	assert.Equal(t, 3, cfg.RateLimitVerifyTokenLimit)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}
