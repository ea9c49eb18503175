// Package classifier loads pre-trained churn models from artifact files and
// scores augmented customer records with them.
//
// An artifact carries its own input schema: the ordered feature names it
// was fitted on, how each categorical column is encoded, and an optional
// standard scaler. Callers never encode Geography or Gender themselves.
package classifier

import "ChurnSentinel/internal/model"

// Supported artifact kinds.
const (
	KindLogistic     = "logistic"
	KindRandomForest = "random_forest"
)

// Classifier predicts class probabilities for a single record.
type Classifier interface {
	Name() string
	// PredictProba returns [p(stay), p(churn)].
	PredictProba(rec model.AugmentedRecord) ([2]float64, error)
}

// Explainer breaks a score down into per-feature contributions.
type Explainer interface {
	Explain(rec model.AugmentedRecord) (*model.Explanation, error)
}

// Info describes a loaded artifact.
type Info struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	Features    int    `json:"features"`
}

// Model is a loaded, immutable classifier.
type Model interface {
	Classifier
	Info() Info
}
