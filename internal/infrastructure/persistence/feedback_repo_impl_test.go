// Package persistence_test provides tests for the GORM-backed stores.
package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/domain/repository"
	"github.com/finsmart/finsmart/internal/infrastructure/persistence"
	"github.com/finsmart/finsmart/pkg/logger"
)

func testRepo(t *testing.T) repository.FeedbackRepository {
	t.Helper()
	db, err := persistence.Open(context.Background(), &config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    ":memory:",
	}, logger.NewNoopLogger())
	require.NoError(t, err)
	return persistence.NewFeedbackRepository(db)
}

func storedRecord(t *testing.T, repo repository.FeedbackRepository, userID uuid.UUID, payload models.FeedbackPayload, createdAt time.Time) *models.FeedbackRecord {
	t.Helper()
	record, err := models.NewFeedbackRecord(userID, payload, nil)
	require.NoError(t, err)
	record.CreatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), record))
	return record
}

func categoryPayload() models.CategoryOverridePayload {
	return models.CategoryOverridePayload{
		TransactionID: uuid.NewString(),
		NewCategoryID: "groceries",
	}
}

func TestFeedbackRepository_CreateAndListNewestFirst(t *testing.T) {
	repo := testRepo(t)
	userID := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	oldest := storedRecord(t, repo, userID, categoryPayload(), base)
	middle := storedRecord(t, repo, userID, categoryPayload(), base.Add(time.Hour))
	newest := storedRecord(t, repo, userID, categoryPayload(), base.Add(2*time.Hour))

	records, total, err := repo.ListByUser(context.Background(), userID, 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, records, 3)
	assert.Equal(t, newest.ID, records[0].ID)
	assert.Equal(t, middle.ID, records[1].ID)
	assert.Equal(t, oldest.ID, records[2].ID)
}

func TestFeedbackRepository_ListByUserPaginates(t *testing.T) {
	repo := testRepo(t)
	userID := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		storedRecord(t, repo, userID, categoryPayload(), base.Add(time.Duration(i)*time.Minute))
	}

	page1, total, err := repo.ListByUser(context.Background(), userID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page1, 2)

	page3, _, err := repo.ListByUser(context.Background(), userID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestFeedbackRepository_ScopesByUser(t *testing.T) {
	repo := testRepo(t)
	alice := uuid.New()
	bob := uuid.New()
	now := time.Now().UTC()

	storedRecord(t, repo, alice, categoryPayload(), now)
	storedRecord(t, repo, bob, categoryPayload(), now)

	records, total, err := repo.ListByUser(context.Background(), alice, 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, alice, records[0].UserID)
}

func TestFeedbackRepository_FiltersByKind(t *testing.T) {
	repo := testRepo(t)
	userID := uuid.New()
	now := time.Now().UTC()

	storedRecord(t, repo, userID, categoryPayload(), now)
	storedRecord(t, repo, userID, models.MerchantConfirmPayload{
		RawMerchantText:     "AMZN MKTP US*1A2B3",
		ChosenCanonicalName: "Amazon",
	}, now)

	confirms, err := repo.ListByUserAndKind(context.Background(), userID, models.FeedbackMerchantConfirm)
	require.NoError(t, err)
	require.Len(t, confirms, 1)
	assert.Equal(t, models.FeedbackMerchantConfirm, confirms[0].Kind)

	count, err := repo.CountByUserAndKind(context.Background(), userID, models.FeedbackCategoryOverride)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFeedbackRepository_ListByTransaction(t *testing.T) {
	repo := testRepo(t)
	userID := uuid.New()
	txID := uuid.New()

	record, err := models.NewFeedbackRecord(userID, models.AnomalyLabelPayload{
		TransactionID: txID.String(),
		Disposition:   models.DispositionConfirm,
	}, &txID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), record))
	storedRecord(t, repo, userID, categoryPayload(), time.Now().UTC())

	records, err := repo.ListByTransaction(context.Background(), txID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}

func TestFeedbackRepository_ListSince(t *testing.T) {
	repo := testRepo(t)
	userID := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	storedRecord(t, repo, userID, categoryPayload(), base)
	recent := storedRecord(t, repo, userID, categoryPayload(), base.Add(time.Hour))

	records, err := repo.ListSince(context.Background(), base.Add(30*time.Minute))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, recent.ID, records[0].ID)
}

func TestFeedbackRepository_DeleteAllForUser(t *testing.T) {
	repo := testRepo(t)
	alice := uuid.New()
	bob := uuid.New()
	now := time.Now().UTC()

	storedRecord(t, repo, alice, categoryPayload(), now)
	storedRecord(t, repo, alice, categoryPayload(), now.Add(time.Second))
	storedRecord(t, repo, bob, categoryPayload(), now)

	deleted, err := repo.DeleteAllForUser(context.Background(), alice)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	_, total, err := repo.ListByUser(context.Background(), alice, 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	_, bobTotal, err := repo.ListByUser(context.Background(), bob, 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 1, bobTotal)
}
