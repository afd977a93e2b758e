package models

// AnomalyLabel is the policy-layer classification of an anomaly score.
type AnomalyLabel string

const (
	LabelNormal     AnomalyLabel = "NORMAL"
	LabelSuspicious AnomalyLabel = "SUSPICIOUS"
	LabelSevere     AnomalyLabel = "SEVERE"
)

// AnomalyThresholds are the two cut points dividing the score axis.
// Configuration, not derived per request; exposed alongside results so a
// consumer can render a scale.
type AnomalyThresholds struct {
	NormalMax     float64 `json:"normalMax"`
	SuspiciousMax float64 `json:"suspiciousMax"`
}

// LabelFor classifies a raw anomaly score. Boundaries are inclusive on the
// lower side: score == NormalMax is NORMAL, score == SuspiciousMax is SUSPICIOUS.
func LabelFor(score float64, t AnomalyThresholds) AnomalyLabel {
	switch {
	case score <= t.NormalMax:
		return LabelNormal
	case score <= t.SuspiciousMax:
		return LabelSuspicious
	default:
		return LabelSevere
	}
}
