package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finsmart/finsmart/pkg/errors"
)

// FeedbackKind discriminates the payload schema of a feedback record.
type FeedbackKind string

const (
	// FeedbackCategoryOverride records a user changing an AI-suggested category.
	FeedbackCategoryOverride FeedbackKind = "CATEGORY_OVERRIDE"

	// FeedbackMerchantConfirm records a user confirming or correcting a
	// merchant normalization.
	FeedbackMerchantConfirm FeedbackKind = "MERCHANT_CONFIRM"

	// FeedbackAnomalyLabel records a user's disposition of a flagged anomaly.
	FeedbackAnomalyLabel FeedbackKind = "ANOMALY_LABEL"
)

// Valid reports whether k is one of the three known kinds.
func (k FeedbackKind) Valid() bool {
	switch k {
	case FeedbackCategoryOverride, FeedbackMerchantConfirm, FeedbackAnomalyLabel:
		return true
	}
	return false
}

// AnomalyDisposition is the user's chosen response to a flagged anomaly.
type AnomalyDisposition string

const (
	DispositionConfirm AnomalyDisposition = "CONFIRM"
	DispositionSnooze  AnomalyDisposition = "SNOOZE"
	DispositionIgnore  AnomalyDisposition = "IGNORE"
)

// Valid reports whether d is a known disposition.
func (d AnomalyDisposition) Valid() bool {
	switch d {
	case DispositionConfirm, DispositionSnooze, DispositionIgnore:
		return true
	}
	return false
}

// FeedbackPayload is the closed union over the three feedback schemas.
// Exactly one concrete type exists per FeedbackKind; validation happens at the
// boundary before a record is ever constructed.
type FeedbackPayload interface {
	Kind() FeedbackKind
	Validate() error
}

// CategoryOverridePayload captures a category correction.
type CategoryOverridePayload struct {
	TransactionID      string   `json:"transactionId"`
	PreviousCategoryID *string  `json:"previousCategoryId,omitempty"`
	NewCategoryID      string   `json:"newCategoryId"`
	AIConfidence       *float64 `json:"aiConfidence,omitempty"`
	AIExplanation      *string  `json:"aiExplanation,omitempty"`
}

func (CategoryOverridePayload) Kind() FeedbackKind { return FeedbackCategoryOverride }

func (p CategoryOverridePayload) Validate() error {
	if p.TransactionID == "" {
		return errors.ErrMissingField("transactionId")
	}
	if p.NewCategoryID == "" {
		return errors.ErrMissingField("newCategoryId")
	}
	return nil
}

// MerchantConfirmPayload captures a merchant-name confirmation.
type MerchantConfirmPayload struct {
	RawMerchantText        string   `json:"rawMerchantText"`
	SuggestedCanonicalName *string  `json:"suggestedCanonicalName,omitempty"`
	ChosenCanonicalName    string   `json:"chosenCanonicalName"`
	MatchScore             *float64 `json:"matchScore,omitempty"`
}

func (MerchantConfirmPayload) Kind() FeedbackKind { return FeedbackMerchantConfirm }

func (p MerchantConfirmPayload) Validate() error {
	if p.RawMerchantText == "" {
		return errors.ErrMissingField("rawMerchantText")
	}
	if p.ChosenCanonicalName == "" {
		return errors.ErrMissingField("chosenCanonicalName")
	}
	return nil
}

// AnomalyLabelPayload captures an anomaly disposition.
type AnomalyLabelPayload struct {
	TransactionID string             `json:"transactionId"`
	Disposition   AnomalyDisposition `json:"disposition"`
	Note          *string            `json:"note,omitempty"`
	OriginalScore *float64           `json:"originalScore,omitempty"`
	OriginalLabel *string            `json:"originalLabel,omitempty"`
}

func (AnomalyLabelPayload) Kind() FeedbackKind { return FeedbackAnomalyLabel }

func (p AnomalyLabelPayload) Validate() error {
	if p.TransactionID == "" {
		return errors.ErrMissingField("transactionId")
	}
	if p.Disposition == "" {
		return errors.ErrMissingField("disposition")
	}
	if !p.Disposition.Valid() {
		return errors.ErrValidation(fmt.Sprintf("unknown disposition: %q", p.Disposition)).
			WithDetail("disposition", "must be CONFIRM, SNOOZE or IGNORE")
	}
	return nil
}

// UnmarshalPayload decodes raw JSON into the concrete payload type for kind.
func UnmarshalPayload(kind FeedbackKind, raw json.RawMessage) (FeedbackPayload, error) {
	switch kind {
	case FeedbackCategoryOverride:
		var p CategoryOverridePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, errors.ErrValidation("malformed category override payload").WithCause(err)
		}
		return p, nil
	case FeedbackMerchantConfirm:
		var p MerchantConfirmPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, errors.ErrValidation("malformed merchant confirm payload").WithCause(err)
		}
		return p, nil
	case FeedbackAnomalyLabel:
		var p AnomalyLabelPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, errors.ErrValidation("malformed anomaly label payload").WithCause(err)
		}
		return p, nil
	default:
		return nil, errors.ErrValidation(fmt.Sprintf("unknown feedback kind: %q", kind))
	}
}

// FeedbackRecord is an append-only user correction to an AI prediction.
// Records are never updated; corrections are modeled as new records.
type FeedbackRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt     time.Time       `gorm:"not null;index;<-:create" json:"createdAt"`
	Kind          FeedbackKind    `gorm:"size:30;not null;index" json:"kind"`
	Payload       json.RawMessage `gorm:"not null" json:"payload"`
	TransactionID *uuid.UUID      `gorm:"type:uuid;index" json:"transactionId,omitempty"`
}

// TableName maps the record onto the ai_feedback table.
func (FeedbackRecord) TableName() string { return "ai_feedback" }

// NewFeedbackRecord validates the payload against its kind's schema and builds
// an immutable record with a fresh identity and creation timestamp.
func NewFeedbackRecord(userID uuid.UUID, payload FeedbackPayload, transactionID *uuid.UUID) (*FeedbackRecord, error) {
	if userID == uuid.Nil {
		return nil, errors.ErrMissingField("userId")
	}
	if payload == nil {
		return nil, errors.ErrMissingField("payload")
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	return &FeedbackRecord{
		ID:            uuid.New(),
		UserID:        userID,
		CreatedAt:     time.Now().UTC(),
		Kind:          payload.Kind(),
		Payload:       raw,
		TransactionID: transactionID,
	}, nil
}

// DecodedPayload returns the record's payload as its concrete union member.
func (r *FeedbackRecord) DecodedPayload() (FeedbackPayload, error) {
	return UnmarshalPayload(r.Kind, r.Payload)
}
