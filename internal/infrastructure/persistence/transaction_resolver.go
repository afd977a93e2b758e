package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/domain/service"
	"github.com/finsmart/finsmart/pkg/errors"
)

// transactionRow is a read-only projection of the transactions table, which
// is owned by the ledger service. Only the columns the prediction gateway
// needs are mapped.
type transactionRow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;column:user_id"`
	Merchant    string    `gorm:"column:merchant"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category"`
	Amount      float64   `gorm:"column:amount"`
	Direction   string    `gorm:"column:direction"`
	Date        time.Time `gorm:"column:booked_at"`
}

func (transactionRow) TableName() string {
	return "transactions"
}

// GormTransactionResolver resolves stored transaction ids against the shared
// transactions table. Lookups are scoped to the requesting user.
type GormTransactionResolver struct {
	db *gorm.DB
}

// NewGormTransactionResolver creates the resolver.
func NewGormTransactionResolver(db *gorm.DB) service.TransactionResolver {
	return &GormTransactionResolver{db: db}
}

// Resolve returns the tuples for the given ids. Ids that do not exist or
// belong to another user are silently absent from the result; the caller
// decides whether a short result is an error.
func (r *GormTransactionResolver) Resolve(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.TransactionTuple, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []transactionRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, errors.ErrStorageFailure(err)
	}

	tuples := make([]models.TransactionTuple, 0, len(rows))
	for _, row := range rows {
		tuples = append(tuples, models.TransactionTuple{
			ID:          row.ID.String(),
			Merchant:    row.Merchant,
			Description: row.Description,
			Category:    row.Category,
			Amount:      row.Amount,
			Direction:   row.Direction,
			Date:        row.Date.Format("2006-01-02"),
		})
	}
	return tuples, nil
}
