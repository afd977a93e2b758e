package repository

import (
	"context"

	"github.com/finsmart/finsmart/internal/domain/models"
)

// AuditRepository persists audit events. Append-only; events are never read
// back on the request path.
type AuditRepository interface {
	Create(ctx context.Context, event *models.AuditEvent) error
}
