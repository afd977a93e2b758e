// Package service contains the application services orchestrating the core
// components: feedback capture, AI prediction orchestration, and the
// retraining export job.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/domain/repository"
	"github.com/finsmart/finsmart/internal/infrastructure/monitoring"
	"github.com/finsmart/finsmart/pkg/logger"
)

// FeedbackAppService validates and persists user corrections to AI
// predictions. Writes are synchronous: a correction is durably recorded
// before the caller is acknowledged.
type FeedbackAppService struct {
	repo    repository.FeedbackRepository
	log     logger.Logger
	metrics *monitoring.Metrics
}

// NewFeedbackAppService creates the feedback service.
func NewFeedbackAppService(repo repository.FeedbackRepository, log logger.Logger, metrics *monitoring.Metrics) *FeedbackAppService {
	return &FeedbackAppService{
		repo:    repo,
		log:     log.WithComponent("feedback"),
		metrics: metrics,
	}
}

// Submit validates the payload against its kind's schema, stamps identity and
// creation time, and appends the record. Returns the stored record.
func (s *FeedbackAppService) Submit(ctx context.Context, userID uuid.UUID, payload models.FeedbackPayload, transactionID *uuid.UUID) (*models.FeedbackRecord, error) {
	record, err := models.NewFeedbackRecord(userID, payload, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error(ctx, "failed to store feedback", err,
			logger.String("kind", string(record.Kind)),
			logger.String("user_id", userID.String()),
		)
		return nil, err
	}

	s.metrics.FeedbackSubmissions.WithLabelValues(string(record.Kind)).Inc()
	s.log.Info(ctx, "stored feedback",
		logger.String("id", record.ID.String()),
		logger.String("kind", string(record.Kind)),
		logger.String("user_id", userID.String()),
	)
	return record, nil
}

// ListByUser returns one page of the user's records, newest first.
func (s *FeedbackAppService) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.FeedbackRecord, int64, error) {
	return s.repo.ListByUser(ctx, userID, page, pageSize)
}

// ListByUserAndKind returns the user's records of one kind, newest first.
func (s *FeedbackAppService) ListByUserAndKind(ctx context.Context, userID uuid.UUID, kind models.FeedbackKind) ([]models.FeedbackRecord, error) {
	return s.repo.ListByUserAndKind(ctx, userID, kind)
}

// ListByTransaction returns records referencing a transaction, newest first.
func (s *FeedbackAppService) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]models.FeedbackRecord, error) {
	return s.repo.ListByTransaction(ctx, transactionID)
}

// Stats counts the user's records per kind.
func (s *FeedbackAppService) Stats(ctx context.Context, userID uuid.UUID) (map[models.FeedbackKind]int64, error) {
	stats := make(map[models.FeedbackKind]int64, 3)
	for _, kind := range []models.FeedbackKind{
		models.FeedbackCategoryOverride,
		models.FeedbackMerchantConfirm,
		models.FeedbackAnomalyLabel,
	} {
		count, err := s.repo.CountByUserAndKind(ctx, userID, kind)
		if err != nil {
			return nil, err
		}
		stats[kind] = count
	}
	return stats, nil
}

// DeleteAllForUser irreversibly erases the user's feedback history.
func (s *FeedbackAppService) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	deleted, err := s.repo.DeleteAllForUser(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "failed to erase feedback", err,
			logger.String("user_id", userID.String()),
		)
		return 0, err
	}
	s.log.Info(ctx, "erased feedback for user",
		logger.String("user_id", userID.String()),
		logger.Int64("deleted", deleted),
	)
	return deleted, nil
}
