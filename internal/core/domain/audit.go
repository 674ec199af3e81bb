package domain

import "time"

// AuditAction identifies the kind of auth event being recorded.
type AuditAction string

const (
	AuditSignup       AuditAction = "signup"
	AuditLogin        AuditAction = "login"
	AuditDelete       AuditAction = "delete"
	AuditAccessDenied AuditAction = "access_denied"
)

// AuditEvent is a single entry in the auth audit trail.
type AuditEvent struct {
	Subject string      `json:"subject"`
	Action  AuditAction `json:"action"`
	Success bool        `json:"success"`
	Reason  string      `json:"reason,omitempty"`
	At      time.Time   `json:"at"`
}
