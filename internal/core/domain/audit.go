package domain

import "time"

// AuditAction identifies the kind of authentication event being recorded.
type AuditAction string

const (
	AuditLogin   AuditAction = "login"
	AuditRefresh AuditAction = "refresh"
	AuditSignUp  AuditAction = "sign_up"
)

// AuditEvent records a high-level authentication event. Token contents are
// never stored, only the outcome.
type AuditEvent struct {
	ID        string      `bson:"_id,omitempty"`
	Email     string      `bson:"email"`
	Action    AuditAction `bson:"action"`
	Success   bool        `bson:"success"`
	Timestamp time.Time   `bson:"timestamp"`
}
