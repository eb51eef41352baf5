package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMagicLink_IsUsed(t *testing.T) {
	link := &MagicLink{ID: uuid.Must(uuid.NewV7())}
	assert.False(t, link.IsUsed())

	usedAt := time.Now().UTC()
	link.UsedAt = &usedAt
	assert.True(t, link.IsUsed())
}

func TestMagicLink_IsExpired(t *testing.T) {
	now := time.Now().UTC()
	link := &MagicLink{ExpiresAt: now.Add(15 * time.Minute)}

	assert.False(t, link.IsExpired(now))
	assert.False(t, link.IsExpired(now.Add(15*time.Minute)))
	assert.True(t, link.IsExpired(now.Add(15*time.Minute+time.Second)))
}

func TestSession_IsActive(t *testing.T) {
	now := time.Now().UTC()
	idleWindow := 24 * time.Hour
	session := &Session{
		CreatedAt:  now,
		ExpiresAt:  now.Add(720 * time.Hour),
		LastSeenAt: now,
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"fresh session", now, true},
		{"within idle window", now.Add(idleWindow - time.Second), true},
		{"idle window crossed", now.Add(idleWindow), false},
		{"at absolute expiry", now.Add(720 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.IsActive(tt.at, idleWindow))
		})
	}

	t.Run("absolute cap wins over recent activity", func(t *testing.T) {
		s := &Session{
			ExpiresAt:  now.Add(time.Minute),
			LastSeenAt: now.Add(time.Minute),
		}
		assert.False(t, s.IsActive(now.Add(2*time.Minute), idleWindow))
	})
}

func TestAuditEventType_IsValid(t *testing.T) {
	for _, typ := range []AuditEventType{
		AuditLinkIssued, AuditLinkClicked, AuditVerifyOK, AuditVerifyFail, AuditSessionCreated,
	} {
		assert.True(t, typ.IsValid(), string(typ))
	}
	assert.False(t, AuditEventType("password_reset").IsValid())
	assert.False(t, AuditEventType("").IsValid())
}
