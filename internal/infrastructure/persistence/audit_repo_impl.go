package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/domain/repository"
)

// auditRepository is the GORM implementation of repository.AuditRepository.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates the append-only audit store.
func NewAuditRepository(db *gorm.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, event *models.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
