package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/domain/models"
)

// CategoryFeedbackRequest is the body of POST /feedback/category.
type CategoryFeedbackRequest struct {
	TransactionID      string   `json:"transactionId"`
	PreviousCategoryID *string  `json:"previousCategoryId"`
	NewCategoryID      string   `json:"newCategoryId"`
	AIConfidence       *float64 `json:"aiConfidence"`
	AIExplanation      *string  `json:"aiExplanation"`
}

// Payload converts the request into its union member.
func (r *CategoryFeedbackRequest) Payload() models.CategoryOverridePayload {
	return models.CategoryOverridePayload{
		TransactionID:      r.TransactionID,
		PreviousCategoryID: r.PreviousCategoryID,
		NewCategoryID:      r.NewCategoryID,
		AIConfidence:       r.AIConfidence,
		AIExplanation:      r.AIExplanation,
	}
}

// MerchantFeedbackRequest is the body of POST /feedback/merchant.
type MerchantFeedbackRequest struct {
	RawMerchantText        string   `json:"rawMerchantText"`
	SuggestedCanonicalName *string  `json:"suggestedCanonicalName"`
	ChosenCanonicalName    string   `json:"chosenCanonicalName"`
	MatchScore             *float64 `json:"matchScore"`
}

// Payload converts the request into its union member.
func (r *MerchantFeedbackRequest) Payload() models.MerchantConfirmPayload {
	return models.MerchantConfirmPayload{
		RawMerchantText:        r.RawMerchantText,
		SuggestedCanonicalName: r.SuggestedCanonicalName,
		ChosenCanonicalName:    r.ChosenCanonicalName,
		MatchScore:             r.MatchScore,
	}
}

// AnomalyFeedbackRequest is the body of POST /feedback/anomaly.
type AnomalyFeedbackRequest struct {
	TransactionID string   `json:"transactionId"`
	Disposition   string   `json:"disposition"`
	Note          *string  `json:"note"`
	OriginalScore *float64 `json:"originalScore"`
	OriginalLabel *string  `json:"originalLabel"`
}

// Payload converts the request into its union member.
func (r *AnomalyFeedbackRequest) Payload() models.AnomalyLabelPayload {
	return models.AnomalyLabelPayload{
		TransactionID: r.TransactionID,
		Disposition:   models.AnomalyDisposition(r.Disposition),
		Note:          r.Note,
		OriginalScore: r.OriginalScore,
		OriginalLabel: r.OriginalLabel,
	}
}

// FeedbackResponse echoes a stored feedback record back to the client.
type FeedbackResponse struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"createdAt"`
	Payload   json.RawMessage `json:"payload"`
	Message   string          `json:"message"`
}

// NewFeedbackResponse builds the creation response with its confirmation message.
func NewFeedbackResponse(record *models.FeedbackRecord, message string) FeedbackResponse {
	return FeedbackResponse{
		ID:        record.ID,
		Kind:      string(record.Kind),
		CreatedAt: record.CreatedAt,
		Payload:   record.Payload,
		Message:   message,
	}
}

// FeedbackListResponse is a page of feedback records, newest first.
type FeedbackListResponse struct {
	Items    []models.FeedbackRecord `json:"items"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
	Total    int64                   `json:"total"`
}

// FeedbackStatsResponse reports per-kind counts for one user.
type FeedbackStatsResponse struct {
	CategoryOverrides int64 `json:"categoryOverrides"`
	MerchantConfirms  int64 `json:"merchantConfirms"`
	AnomalyLabels     int64 `json:"anomalyLabels"`
}

// FeedbackDeleteResponse reports how many records an erasure removed.
type FeedbackDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
