package models

// TransactionTuple is the raw transaction shape the prediction service scores.
// Either resolved from stored transactions or supplied directly by the caller.
type TransactionTuple struct {
	ID          string  `json:"id,omitempty"`
	Merchant    string  `json:"merchant"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount"`
	Direction   string  `json:"direction"` // "DEBIT" or "CREDIT"
	Date        string  `json:"date"`      // ISO date YYYY-MM-DD
}

// CategoryScore is one entry of a ranked category distribution.
type CategoryScore struct {
	Category    string  `json:"category"`
	Probability float64 `json:"probability"`
}

// CategoryPrediction is the per-item result of category prediction.
type CategoryPrediction struct {
	TopCategory string          `json:"topCategory"`
	Confidence  float64         `json:"confidence"` // in [0,1]
	Top3        []CategoryScore `json:"top3"`
	Rationale   string          `json:"rationale"`
}

// MerchantQuery is one merchant-normalization input.
type MerchantQuery struct {
	Raw             string `json:"raw"`
	HintMerchant    string `json:"hintMerchant,omitempty"`
	HintDescription string `json:"hintDescription,omitempty"`
}

// MerchantAlternative is a ranked alternative canonical name.
type MerchantAlternative struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// MerchantMatch is the per-item result of merchant normalization.
type MerchantMatch struct {
	Raw          string                `json:"raw"`
	Canonical    string                `json:"canonical"`
	Score        float64               `json:"score"` // in [0,1]
	Alternatives []MerchantAlternative `json:"alternatives"`
	Rationale    string                `json:"rationale"`
}

// AnomalyScore is the per-item result of anomaly scoring. The gateway returns
// raw scores only; labeling against thresholds happens locally.
type AnomalyScore struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"`
	Baseline float64  `json:"baseline"`
	Residual float64  `json:"residual"` // score minus baseline
	Reasons  []string `json:"reasons"`
}

// AIHealth reports the external prediction service's status.
type AIHealth struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Loaded  bool   `json:"loaded"`
}
