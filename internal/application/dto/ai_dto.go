package dto

import (
	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/domain/models"
)

// PredictCategoriesRequest accepts either stored transaction ids or raw items;
// exactly one of the two forms is expected per call.
type PredictCategoriesRequest struct {
	TransactionIDs []uuid.UUID               `json:"transactionIds"`
	Items          []models.TransactionTuple `json:"items"`
}

// PredictCategoriesResponse carries per-item predictions aligned with the input.
type PredictCategoriesResponse struct {
	Predictions []models.CategoryPrediction `json:"predictions"`
}

// NormalizeMerchantsRequest carries raw merchant strings plus optional hints.
type NormalizeMerchantsRequest struct {
	Items []models.MerchantQuery `json:"items"`
}

// NormalizeMerchantsResponse carries per-item canonical matches.
type NormalizeMerchantsResponse struct {
	Items []models.MerchantMatch `json:"items"`
}

// ScoreAnomaliesRequest accepts stored ids or raw items, plus an ignore list
// of snoozed/confirmed transaction identifiers.
type ScoreAnomaliesRequest struct {
	TransactionIDs []uuid.UUID               `json:"transactionIds"`
	Items          []models.TransactionTuple `json:"items"`
	IgnoreIDs      []string                  `json:"ignoreIds"`
}

// AnomalyResult is one scored item with its locally assigned label.
type AnomalyResult struct {
	ID       string              `json:"id"`
	Score    float64             `json:"score"`
	Label    models.AnomalyLabel `json:"label"`
	Baseline float64             `json:"baseline"`
	Residual float64             `json:"residual"`
	Reasons  []string            `json:"reasons"`
}

// ScoreAnomaliesResponse carries results plus the thresholds used to label
// them, so a consumer can render a scale.
type ScoreAnomaliesResponse struct {
	Results    []AnomalyResult          `json:"results"`
	Thresholds models.AnomalyThresholds `json:"thresholds"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}
