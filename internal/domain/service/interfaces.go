// Package service defines the domain-level contracts between the core and its
// collaborators: the external AI prediction service, the transaction store,
// and the principal directory.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/domain/models"
)

// PredictionService is the gateway contract to the external AI service.
// Calls block up to the gateway's configured timeout; on timeout or malformed
// upstream responses they fail with an upstream_unavailable error. The gateway
// never fabricates scores.
type PredictionService interface {
	// Health reports whether the AI service is reachable and its models loaded.
	Health(ctx context.Context) (*models.AIHealth, error)

	// PredictCategories returns per-item top category, confidence, a ranked
	// top-3 distribution and a short rationale.
	PredictCategories(ctx context.Context, items []models.TransactionTuple) ([]models.CategoryPrediction, error)

	// NormalizeMerchants returns per-item canonical merchant names with match
	// scores, ranked alternatives and a rationale.
	NormalizeMerchants(ctx context.Context, items []models.MerchantQuery) ([]models.MerchantMatch, error)

	// ScoreAnomalies returns per-item raw anomaly scores with baseline,
	// residual and reasons. Items in ignoreIDs (snoozed/confirmed) are
	// excluded upstream. Labeling is not the gateway's job.
	ScoreAnomalies(ctx context.Context, items []models.TransactionTuple, ignoreIDs []string) ([]models.AnomalyScore, error)
}

// TransactionResolver resolves stored transaction identifiers to the raw
// tuples the prediction service scores. Implemented by the CRUD layer, which
// is outside this core.
type TransactionResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.TransactionTuple, error)
}

// UserDirectory is the authenticated-principal lookup collaborator.
type UserDirectory interface {
	// Authenticate verifies credentials and returns the principal's id.
	Authenticate(ctx context.Context, email, password string) (uuid.UUID, error)
}
