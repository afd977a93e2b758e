// Package repository defines the persistence contracts of the finsmart core.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/domain/models"
)

// FeedbackRepository is the durable, append-only store of user corrections.
// There is deliberately no update operation; corrections are new records.
type FeedbackRepository interface {
	// Create appends a feedback record. The write is durable before returning.
	Create(ctx context.Context, record *models.FeedbackRecord) error

	// ListByUser returns the user's records newest-first, paged. Also returns
	// the total count for the user.
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.FeedbackRecord, int64, error)

	// ListByUserAndKind returns the user's records of one kind, newest-first.
	ListByUserAndKind(ctx context.Context, userID uuid.UUID, kind models.FeedbackKind) ([]models.FeedbackRecord, error)

	// ListByTransaction returns records referencing a transaction, newest-first.
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]models.FeedbackRecord, error)

	// CountByUserAndKind counts the user's records of one kind.
	CountByUserAndKind(ctx context.Context, userID uuid.UUID, kind models.FeedbackKind) (int64, error)

	// ListSince returns all records created at or after the given time,
	// newest-first. Used by the export/retraining feed.
	ListSince(ctx context.Context, since time.Time) ([]models.FeedbackRecord, error)

	// DeleteAllForUser irreversibly removes every record owned by the user
	// and returns the number deleted. Used by account-erasure flows.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
