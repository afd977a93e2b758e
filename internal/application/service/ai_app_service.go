package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/application/dto"
	"github.com/finsmart/finsmart/internal/domain/models"
	domainservice "github.com/finsmart/finsmart/internal/domain/service"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// AIAppService orchestrates calls to the prediction gateway: it resolves
// stored transaction references, enforces the ids-XOR-items request shape,
// and applies the local anomaly labeling policy to gateway scores.
type AIAppService struct {
	gateway    domainservice.PredictionService
	resolver   domainservice.TransactionResolver
	thresholds models.AnomalyThresholds
	log        logger.Logger
}

// NewAIAppService creates the orchestration service.
func NewAIAppService(
	gateway domainservice.PredictionService,
	resolver domainservice.TransactionResolver,
	thresholds models.AnomalyThresholds,
	log logger.Logger,
) *AIAppService {
	return &AIAppService{
		gateway:    gateway,
		resolver:   resolver,
		thresholds: thresholds,
		log:        log.WithComponent("ai"),
	}
}

// Thresholds returns the configured anomaly cut points.
func (s *AIAppService) Thresholds() models.AnomalyThresholds {
	return s.thresholds
}

// Health proxies the gateway's health probe.
func (s *AIAppService) Health(ctx context.Context) (*models.AIHealth, error) {
	return s.gateway.Health(ctx)
}

// PredictCategories scores the given transactions, resolving stored ids first
// when the request carries them.
func (s *AIAppService) PredictCategories(ctx context.Context, userID uuid.UUID, req *dto.PredictCategoriesRequest) (*dto.PredictCategoriesResponse, error) {
	items, err := s.resolveItems(ctx, userID, req.TransactionIDs, req.Items)
	if err != nil {
		return nil, err
	}

	predictions, err := s.gateway.PredictCategories(ctx, items)
	if err != nil {
		return nil, err
	}
	return &dto.PredictCategoriesResponse{Predictions: predictions}, nil
}

// NormalizeMerchants canonicalizes raw merchant strings.
func (s *AIAppService) NormalizeMerchants(ctx context.Context, req *dto.NormalizeMerchantsRequest) (*dto.NormalizeMerchantsResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.ErrMissingField("items")
	}
	for _, item := range req.Items {
		if item.Raw == "" {
			return nil, errors.ErrMissingField("items.raw")
		}
	}

	matches, err := s.gateway.NormalizeMerchants(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	return &dto.NormalizeMerchantsResponse{Items: matches}, nil
}

// ScoreAnomalies scores the given transactions and labels each result against
// the configured thresholds. The gateway returns raw scores only; the
// NORMAL/SUSPICIOUS/SEVERE decision is made here.
func (s *AIAppService) ScoreAnomalies(ctx context.Context, userID uuid.UUID, req *dto.ScoreAnomaliesRequest) (*dto.ScoreAnomaliesResponse, error) {
	items, err := s.resolveItems(ctx, userID, req.TransactionIDs, req.Items)
	if err != nil {
		return nil, err
	}

	scores, err := s.gateway.ScoreAnomalies(ctx, items, req.IgnoreIDs)
	if err != nil {
		return nil, err
	}

	results := make([]dto.AnomalyResult, 0, len(scores))
	for _, score := range scores {
		results = append(results, dto.AnomalyResult{
			ID:       score.ID,
			Score:    score.Score,
			Label:    models.LabelFor(score.Score, s.thresholds),
			Baseline: score.Baseline,
			Residual: score.Residual,
			Reasons:  score.Reasons,
		})
	}

	return &dto.ScoreAnomaliesResponse{
		Results:    results,
		Thresholds: s.thresholds,
	}, nil
}

// resolveItems enforces that exactly one of ids/items is supplied and resolves
// ids through the transaction store when needed.
func (s *AIAppService) resolveItems(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, items []models.TransactionTuple) ([]models.TransactionTuple, error) {
	hasIDs := len(ids) > 0
	hasItems := len(items) > 0

	switch {
	case hasIDs && hasItems:
		return nil, errors.ErrValidation("provide either transactionIds or items, not both")
	case !hasIDs && !hasItems:
		return nil, errors.ErrValidation("provide transactionIds or items")
	case hasItems:
		return items, nil
	}

	resolved, err := s.resolver.Resolve(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(resolved) != len(ids) {
		return nil, errors.ErrNotFound("transaction")
	}
	return resolved, nil
}
