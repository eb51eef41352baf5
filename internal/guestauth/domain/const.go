// Package domain contains the core types for guest login links, sessions,
// and the audit trail around them.
package domain

// AuditEventType classifies an audit event.
type AuditEventType string

// Audit event types recorded by the lifecycle manager.
const (
	// AuditLinkIssued records that a magic link was created for a guest.
	AuditLinkIssued AuditEventType = "link_issued"
	// AuditLinkClicked records every redemption attempt, successful or not.
	AuditLinkClicked AuditEventType = "link_clicked"
	// AuditVerifyOK records a successful link redemption.
	AuditVerifyOK AuditEventType = "verify_ok"
	// AuditVerifyFail records a failed link redemption.
	AuditVerifyFail AuditEventType = "verify_fail"
	// AuditSessionCreated records that a browser session was established.
	AuditSessionCreated AuditEventType = "session_created"
)

// IsValid reports whether t is a known audit event type.
func (t AuditEventType) IsValid() bool {
	switch t {
	case AuditLinkIssued, AuditLinkClicked, AuditVerifyOK, AuditVerifyFail, AuditSessionCreated:
		return true
	}
	return false
}
