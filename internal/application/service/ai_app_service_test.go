// Package service_test provides tests for the application services.
package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finsmart/finsmart/internal/application/dto"
	"github.com/finsmart/finsmart/internal/application/service"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/pkg/constants"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) Health(ctx context.Context) (*models.AIHealth, error) {
	args := m.Called(ctx)
	return args.Get(0).(*models.AIHealth), args.Error(1)
}

func (m *MockPredictionService) PredictCategories(ctx context.Context, items []models.TransactionTuple) ([]models.CategoryPrediction, error) {
	args := m.Called(ctx, items)
	return args.Get(0).([]models.CategoryPrediction), args.Error(1)
}

func (m *MockPredictionService) NormalizeMerchants(ctx context.Context, items []models.MerchantQuery) ([]models.MerchantMatch, error) {
	args := m.Called(ctx, items)
	return args.Get(0).([]models.MerchantMatch), args.Error(1)
}

func (m *MockPredictionService) ScoreAnomalies(ctx context.Context, items []models.TransactionTuple, ignoreIDs []string) ([]models.AnomalyScore, error) {
	args := m.Called(ctx, items, ignoreIDs)
	return args.Get(0).([]models.AnomalyScore), args.Error(1)
}

type MockTransactionResolver struct {
	mock.Mock
}

func (m *MockTransactionResolver) Resolve(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.TransactionTuple, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).([]models.TransactionTuple), args.Error(1)
}

func newAIService(gateway *MockPredictionService, resolver *MockTransactionResolver) *service.AIAppService {
	return service.NewAIAppService(gateway, resolver,
		models.AnomalyThresholds{NormalMax: 0.5, SuspiciousMax: 0.8},
		logger.NewNoopLogger())
}

func TestAIAppService_RejectsBothIDsAndItems(t *testing.T) {
	svc := newAIService(new(MockPredictionService), new(MockTransactionResolver))

	_, err := svc.PredictCategories(context.Background(), uuid.New(), &dto.PredictCategoriesRequest{
		TransactionIDs: []uuid.UUID{uuid.New()},
		Items:          []models.TransactionTuple{{Merchant: "TESCO"}},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, constants.ErrCodeValidation))
}

func TestAIAppService_RejectsNeitherIDsNorItems(t *testing.T) {
	svc := newAIService(new(MockPredictionService), new(MockTransactionResolver))

	_, err := svc.ScoreAnomalies(context.Background(), uuid.New(), &dto.ScoreAnomaliesRequest{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, constants.ErrCodeValidation))
}

func TestAIAppService_ResolvesStoredTransactions(t *testing.T) {
	gateway := new(MockPredictionService)
	resolver := new(MockTransactionResolver)
	svc := newAIService(gateway, resolver)

	userID := uuid.New()
	txID := uuid.New()
	resolved := []models.TransactionTuple{{ID: txID.String(), Merchant: "TESCO", Amount: 12.0}}

	resolver.On("Resolve", mock.Anything, userID, []uuid.UUID{txID}).Return(resolved, nil)
	gateway.On("PredictCategories", mock.Anything, resolved).
		Return([]models.CategoryPrediction{{TopCategory: "groceries", Confidence: 0.9}}, nil)

	resp, err := svc.PredictCategories(context.Background(), userID, &dto.PredictCategoriesRequest{
		TransactionIDs: []uuid.UUID{txID},
	})
	require.NoError(t, err)
	require.Len(t, resp.Predictions, 1)
	assert.Equal(t, "groceries", resp.Predictions[0].TopCategory)
	resolver.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestAIAppService_MissingStoredTransactionIsNotFound(t *testing.T) {
	gateway := new(MockPredictionService)
	resolver := new(MockTransactionResolver)
	svc := newAIService(gateway, resolver)

	userID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	resolver.On("Resolve", mock.Anything, userID, ids).
		Return([]models.TransactionTuple{{ID: ids[0].String()}}, nil)

	_, err := svc.PredictCategories(context.Background(), userID, &dto.PredictCategoriesRequest{
		TransactionIDs: ids,
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, constants.ErrCodeNotFound))
	gateway.AssertNotCalled(t, "PredictCategories", mock.Anything, mock.Anything)
}

func TestAIAppService_LabelsScoresLocally(t *testing.T) {
	gateway := new(MockPredictionService)
	resolver := new(MockTransactionResolver)
	svc := newAIService(gateway, resolver)

	items := []models.TransactionTuple{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	gateway.On("ScoreAnomalies", mock.Anything, items, []string(nil)).
		Return([]models.AnomalyScore{
			{ID: "a", Score: 0.2},
			{ID: "b", Score: 0.8},
			{ID: "c", Score: 0.95},
		}, nil)

	resp, err := svc.ScoreAnomalies(context.Background(), uuid.New(), &dto.ScoreAnomaliesRequest{Items: items})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, models.LabelNormal, resp.Results[0].Label)
	assert.Equal(t, models.LabelSuspicious, resp.Results[1].Label)
	assert.Equal(t, models.LabelSevere, resp.Results[2].Label)
	assert.InDelta(t, 0.5, resp.Thresholds.NormalMax, 1e-9)
}

func TestAIAppService_ForwardsIgnoreList(t *testing.T) {
	gateway := new(MockPredictionService)
	svc := newAIService(gateway, new(MockTransactionResolver))

	items := []models.TransactionTuple{{ID: "a"}}
	gateway.On("ScoreAnomalies", mock.Anything, items, []string{"tx-9"}).
		Return([]models.AnomalyScore{}, nil)

	_, err := svc.ScoreAnomalies(context.Background(), uuid.New(), &dto.ScoreAnomaliesRequest{
		Items:     items,
		IgnoreIDs: []string{"tx-9"},
	})
	require.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestAIAppService_NormalizeValidatesItems(t *testing.T) {
	svc := newAIService(new(MockPredictionService), new(MockTransactionResolver))

	_, err := svc.NormalizeMerchants(context.Background(), &dto.NormalizeMerchantsRequest{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, constants.ErrCodeValidation))

	_, err = svc.NormalizeMerchants(context.Background(), &dto.NormalizeMerchantsRequest{
		Items: []models.MerchantQuery{{Raw: ""}},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, constants.ErrCodeValidation))
}

func TestAIAppService_PropagatesUpstreamFailure(t *testing.T) {
	gateway := new(MockPredictionService)
	svc := newAIService(gateway, new(MockTransactionResolver))

	items := []models.MerchantQuery{{Raw: "AMZN MKTP US*1A2B3"}}
	gateway.On("NormalizeMerchants", mock.Anything, items).
		Return([]models.MerchantMatch(nil), errors.ErrUpstreamUnavailable("AI service unavailable"))

	_, err := svc.NormalizeMerchants(context.Background(), &dto.NormalizeMerchantsRequest{Items: items})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, constants.ErrCodeUpstreamUnavailable))
}
