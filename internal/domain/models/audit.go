package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is a single immutable entry in the request audit trail.
// Written once after the response is produced, never updated, retained indefinitely.
type AuditEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Actor     *string   `gorm:"size:255;index" json:"actor,omitempty"` // nil for anonymous requests
	Method    string    `gorm:"size:10;not null" json:"method"`
	Path      string    `gorm:"size:512;not null" json:"path"`
	Status    int       `gorm:"not null" json:"status"`
	ClientIP  string    `gorm:"size:64" json:"clientIp"`
	UserAgent string    `gorm:"size:512" json:"userAgent"`
	CreatedAt time.Time `gorm:"not null;index;<-:create" json:"createdAt"`
}

// TableName maps the event onto the audit_events table.
func (AuditEvent) TableName() string { return "audit_events" }

// NewAuditEvent builds an audit entry for a completed request.
func NewAuditEvent(method, path string, status int) *AuditEvent {
	return &AuditEvent{
		ID:        uuid.New(),
		Method:    method,
		Path:      path,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

// WithActor attributes the event to an authenticated principal.
func (e *AuditEvent) WithActor(actor string) *AuditEvent {
	if actor != "" {
		e.Actor = &actor
	}
	return e
}

// WithClientInfo records the resolved client IP and user agent.
func (e *AuditEvent) WithClientInfo(ip, userAgent string) *AuditEvent {
	e.ClientIP = ip
	e.UserAgent = userAgent
	return e
}
