package risk

import "ChurnSentinel/internal/model"

// Default bucket boundaries. Each lower bound is inclusive.
const (
	MediumThreshold = 0.30
	HighThreshold   = 0.60
)

// buckets maps a churn probability to a risk level, highest first.
var buckets = [...]struct {
	MinProbability float64
	Level          model.RiskLevel
}{
	{HighThreshold, model.RiskHigh},
	{MediumThreshold, model.RiskMedium},
}

// DefaultLevel applies to probabilities below every threshold.
const DefaultLevel = model.RiskLow

// Bucket maps a probability in [0,1] to Low, Medium or High.
func Bucket(p float64) model.RiskLevel {
	for _, b := range buckets {
		if p >= b.MinProbability {
			return b.Level
		}
	}
	return DefaultLevel
}
