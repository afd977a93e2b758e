// Package ai implements the HTTP gateway to the external prediction service.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/domain/service"
	"github.com/finsmart/finsmart/internal/infrastructure/monitoring"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// HTTPGateway talks JSON over HTTP to the AI service's v1 endpoints. Every
// call is bounded by the configured timeout; timeouts, transport failures,
// non-2xx statuses and undecodable bodies all surface as upstream_unavailable.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
	metrics *monitoring.Metrics
}

// NewHTTPGateway creates the gateway from config.
func NewHTTPGateway(cfg *config.AIConfig, log logger.Logger, metrics *monitoring.Metrics) service.PredictionService {
	return &HTTPGateway{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout()},
		log:     log.WithComponent("ai_gateway"),
		metrics: metrics,
	}
}

// ================================================================================
// Upstream wire types
// ================================================================================

type categoryPredictRequest struct {
	Items []models.TransactionTuple `json:"items"`
}

type categoryPredictResponse struct {
	Items []struct {
		Top []struct {
			Category string  `json:"category"`
			Prob     float64 `json:"prob"`
		} `json:"top"`
		Chosen     string  `json:"chosen"`
		Confidence float64 `json:"confidence"`
		Why        struct {
			Notes string `json:"notes"`
		} `json:"why"`
	} `json:"items"`
}

type merchantNormaliseRequest struct {
	Items []models.MerchantQuery `json:"items"`
}

type merchantNormaliseResponse struct {
	Items []struct {
		Raw string `json:"raw"`
		Top []struct {
			Canonical string  `json:"canonical"`
			Score     float64 `json:"score"`
		} `json:"top"`
		Chosen string  `json:"chosen"`
		Score  float64 `json:"score"`
		Why    struct {
			Notes string `json:"notes"`
		} `json:"why"`
	} `json:"items"`
}

type anomalyScoreRequest struct {
	Items     []models.TransactionTuple `json:"items"`
	IgnoreIDs []string                  `json:"ignoreIds,omitempty"`
}

type anomalyScoreResponse struct {
	Items []struct {
		ID    string  `json:"id"`
		Score float64 `json:"score"`
		Why   struct {
			Baseline float64 `json:"baseline"`
			Residual float64 `json:"residual"`
			Notes    string  `json:"notes"`
		} `json:"why"`
	} `json:"items"`
}

// ================================================================================
// PredictionService implementation
// ================================================================================

func (g *HTTPGateway) Health(ctx context.Context) (*models.AIHealth, error) {
	var health models.AIHealth
	if err := g.call(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (g *HTTPGateway) PredictCategories(ctx context.Context, items []models.TransactionTuple) ([]models.CategoryPrediction, error) {
	var resp categoryPredictResponse
	if err := g.call(ctx, http.MethodPost, "/v1/categories/predict", categoryPredictRequest{Items: items}, &resp); err != nil {
		return nil, err
	}

	predictions := make([]models.CategoryPrediction, 0, len(resp.Items))
	for _, item := range resp.Items {
		top3 := make([]models.CategoryScore, 0, len(item.Top))
		for _, c := range item.Top {
			top3 = append(top3, models.CategoryScore{Category: c.Category, Probability: c.Prob})
		}
		predictions = append(predictions, models.CategoryPrediction{
			TopCategory: item.Chosen,
			Confidence:  item.Confidence,
			Top3:        top3,
			Rationale:   item.Why.Notes,
		})
	}
	return predictions, nil
}

func (g *HTTPGateway) NormalizeMerchants(ctx context.Context, items []models.MerchantQuery) ([]models.MerchantMatch, error) {
	var resp merchantNormaliseResponse
	if err := g.call(ctx, http.MethodPost, "/v1/merchants/normalise", merchantNormaliseRequest{Items: items}, &resp); err != nil {
		return nil, err
	}

	matches := make([]models.MerchantMatch, 0, len(resp.Items))
	for _, item := range resp.Items {
		alts := make([]models.MerchantAlternative, 0, len(item.Top))
		for _, c := range item.Top {
			alts = append(alts, models.MerchantAlternative{Name: c.Canonical, Score: c.Score})
		}
		matches = append(matches, models.MerchantMatch{
			Raw:          item.Raw,
			Canonical:    item.Chosen,
			Score:        item.Score,
			Alternatives: alts,
			Rationale:    item.Why.Notes,
		})
	}
	return matches, nil
}

func (g *HTTPGateway) ScoreAnomalies(ctx context.Context, items []models.TransactionTuple, ignoreIDs []string) ([]models.AnomalyScore, error) {
	var resp anomalyScoreResponse
	if err := g.call(ctx, http.MethodPost, "/v1/anomalies/score", anomalyScoreRequest{Items: items, IgnoreIDs: ignoreIDs}, &resp); err != nil {
		return nil, err
	}

	scores := make([]models.AnomalyScore, 0, len(resp.Items))
	for _, item := range resp.Items {
		var reasons []string
		if item.Why.Notes != "" {
			reasons = []string{item.Why.Notes}
		}
		scores = append(scores, models.AnomalyScore{
			ID:       item.ID,
			Score:    item.Score,
			Baseline: item.Why.Baseline,
			Residual: item.Why.Residual,
			Reasons:  reasons,
		})
	}
	return scores, nil
}

// call performs one round trip and decodes the response into out.
func (g *HTTPGateway) call(ctx context.Context, method, path string, body, out interface{}) error {
	operation := path
	start := time.Now()
	err := g.doCall(ctx, method, path, body, out)
	g.metrics.GatewayRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		g.metrics.GatewayErrors.WithLabelValues(operation).Inc()
		g.log.Warn(ctx, "ai service call failed",
			logger.String("operation", operation),
			logger.String("error", err.Error()),
		)
	}
	return err
}

func (g *HTTPGateway) doCall(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.ErrInternal(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return errors.ErrInternal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.ErrUpstreamUnavailable("AI service unavailable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.ErrUpstreamUnavailable(
			fmt.Sprintf("AI service returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.ErrUpstreamUnavailable("malformed AI service response").WithCause(err)
	}
	return nil
}
