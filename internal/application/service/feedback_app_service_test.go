package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finsmart/finsmart/internal/application/service"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/infrastructure/monitoring"
	"github.com/finsmart/finsmart/pkg/constants"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, record *models.FeedbackRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.FeedbackRecord, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]models.FeedbackRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeedbackRepository) ListByUserAndKind(ctx context.Context, userID uuid.UUID, kind models.FeedbackKind) ([]models.FeedbackRecord, error) {
	args := m.Called(ctx, userID, kind)
	return args.Get(0).([]models.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]models.FeedbackRecord, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).([]models.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackRepository) CountByUserAndKind(ctx context.Context, userID uuid.UUID, kind models.FeedbackKind) (int64, error) {
	args := m.Called(ctx, userID, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedbackRepository) ListSince(ctx context.Context, since time.Time) ([]models.FeedbackRecord, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]models.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestFeedbackAppService_SubmitPersistsValidPayload(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := service.NewFeedbackAppService(repo, logger.NewNoopLogger(), monitoring.NewTestMetrics())
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(record *models.FeedbackRecord) bool {
		return record.UserID == userID && record.Kind == models.FeedbackMerchantConfirm
	})).Return(nil)

	record, err := svc.Submit(context.Background(), userID, models.MerchantConfirmPayload{
		RawMerchantText:     "AMZN MKTP US*1A2B3",
		ChosenCanonicalName: "Amazon",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackMerchantConfirm, record.Kind)
	repo.AssertExpectations(t)
}

func TestFeedbackAppService_SubmitRejectsInvalidPayloadBeforeStorage(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := service.NewFeedbackAppService(repo, logger.NewNoopLogger(), monitoring.NewTestMetrics())

	_, err := svc.Submit(context.Background(), uuid.New(), models.CategoryOverridePayload{
		TransactionID: uuid.NewString(),
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, constants.ErrCodeValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFeedbackAppService_SubmitPropagatesStorageFailure(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := service.NewFeedbackAppService(repo, logger.NewNoopLogger(), monitoring.NewTestMetrics())

	repo.On("Create", mock.Anything, mock.Anything).
		Return(errors.ErrStorageFailure(context.DeadlineExceeded))

	_, err := svc.Submit(context.Background(), uuid.New(), models.AnomalyLabelPayload{
		TransactionID: uuid.NewString(),
		Disposition:   models.DispositionIgnore,
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, constants.ErrCodeStorageFailure))
}

func TestFeedbackAppService_StatsCountsEveryKind(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := service.NewFeedbackAppService(repo, logger.NewNoopLogger(), monitoring.NewTestMetrics())
	userID := uuid.New()

	repo.On("CountByUserAndKind", mock.Anything, userID, models.FeedbackCategoryOverride).Return(int64(3), nil)
	repo.On("CountByUserAndKind", mock.Anything, userID, models.FeedbackMerchantConfirm).Return(int64(1), nil)
	repo.On("CountByUserAndKind", mock.Anything, userID, models.FeedbackAnomalyLabel).Return(int64(0), nil)

	stats, err := svc.Stats(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats[models.FeedbackCategoryOverride])
	assert.EqualValues(t, 1, stats[models.FeedbackMerchantConfirm])
	assert.EqualValues(t, 0, stats[models.FeedbackAnomalyLabel])
}

func TestFeedbackAppService_DeleteAllForUser(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := service.NewFeedbackAppService(repo, logger.NewNoopLogger(), monitoring.NewTestMetrics())
	userID := uuid.New()

	repo.On("DeleteAllForUser", mock.Anything, userID).Return(int64(7), nil)

	deleted, err := svc.DeleteAllForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, deleted)
}
