package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/domain/repository"
	"github.com/finsmart/finsmart/pkg/errors"
)

// feedbackRepository is the GORM implementation of repository.FeedbackRepository.
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates the durable feedback store.
func NewFeedbackRepository(db *gorm.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, record *models.FeedbackRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.ErrStorageFailure(err)
	}
	return nil
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.FeedbackRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.FeedbackRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, errors.ErrStorageFailure(err)
	}

	var records []models.FeedbackRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, errors.ErrStorageFailure(err)
	}
	return records, total, nil
}

func (r *feedbackRepository) ListByUserAndKind(ctx context.Context, userID uuid.UUID, kind models.FeedbackKind) ([]models.FeedbackRecord, error) {
	var records []models.FeedbackRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.ErrStorageFailure(err)
	}
	return records, nil
}

func (r *feedbackRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]models.FeedbackRecord, error) {
	var records []models.FeedbackRecord
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.ErrStorageFailure(err)
	}
	return records, nil
}

func (r *feedbackRepository) CountByUserAndKind(ctx context.Context, userID uuid.UUID, kind models.FeedbackKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FeedbackRecord{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Count(&count).Error
	if err != nil {
		return 0, errors.ErrStorageFailure(err)
	}
	return count, nil
}

func (r *feedbackRepository) ListSince(ctx context.Context, since time.Time) ([]models.FeedbackRecord, error) {
	var records []models.FeedbackRecord
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.ErrStorageFailure(err)
	}
	return records, nil
}

func (r *feedbackRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.FeedbackRecord{})
	if result.Error != nil {
		return 0, errors.ErrStorageFailure(result.Error)
	}
	return result.RowsAffected, nil
}
