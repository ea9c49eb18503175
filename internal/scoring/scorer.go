// Package scoring runs one evaluation pass: derive features, score both
// models, bucket the logistic probability, and answer what-if questions.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"ChurnSentinel/internal/classifier"
	"ChurnSentinel/internal/features"
	"ChurnSentinel/internal/model"
	"ChurnSentinel/internal/risk"
)

// Observer receives scoring telemetry. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveScore(modelName string, elapsed time.Duration, err error)
	ObserveRisk(level model.RiskLevel)
	ObserveSimulation()
}

type noopObserver struct{}

func (noopObserver) ObserveScore(string, time.Duration, error) {}
func (noopObserver) ObserveRisk(model.RiskLevel)               {}
func (noopObserver) ObserveSimulation()                        {}

// Scorer wraps the two churn classifiers. Both are loaded once at startup
// and never mutated, so a Scorer can serve concurrent requests.
type Scorer struct {
	Logistic classifier.Classifier
	Forest   classifier.Classifier
	obs      Observer
}

// NewScorer creates a Scorer. obs may be nil.
func NewScorer(logistic, forest classifier.Classifier, obs Observer) (*Scorer, error) {
	if logistic == nil || forest == nil {
		return nil, errors.New("both logistic and random forest models are required")
	}
	if obs == nil {
		obs = noopObserver{}
	}
	return &Scorer{Logistic: logistic, Forest: forest, obs: obs}, nil
}

// Evaluate produces the base prediction view for raw. Only the logistic
// probability is bucketed.
func (s *Scorer) Evaluate(raw model.CustomerRecord) (*model.Assessment, error) {
	rec := features.Derive(raw)

	logP, err := s.score(s.Logistic, rec)
	if err != nil {
		return nil, err
	}
	rfP, err := s.score(s.Forest, rec)
	if err != nil {
		return nil, err
	}

	level := risk.Bucket(logP)
	s.obs.ObserveRisk(level)

	a := &model.Assessment{
		Record:              rec,
		LogisticProbability: logP,
		ForestProbability:   rfP,
		Risk:                level,
		RiskLabel:           level.Label(),
	}
	if ex, ok := s.Logistic.(classifier.Explainer); ok {
		exp, err := ex.Explain(rec)
		if err != nil {
			return nil, fmt.Errorf("explain %s: %w", s.Logistic.Name(), err)
		}
		a.Explanation = exp
	}
	return a, nil
}

// Simulate re-scores raw with the what-if override using the logistic model.
// Only EngagementScore is recomputed; the ratios, density and zero-balance
// flag keep the base record's values even though NumOfProducts changes.
func (s *Scorer) Simulate(raw model.CustomerRecord, o model.Override) (*model.Simulation, error) {
	base := features.Derive(raw)

	sim := base
	sim.NumOfProducts = o.NumOfProducts
	sim.IsActiveMember = o.IsActiveMember
	sim.EngagementScore = features.EngagementScore(o.IsActiveMember, o.NumOfProducts)

	p, err := s.score(s.Logistic, sim)
	if err != nil {
		return nil, err
	}
	s.obs.ObserveSimulation()

	return &model.Simulation{
		Base:        base,
		Simulated:   sim,
		Override:    o,
		Probability: p,
	}, nil
}

func (s *Scorer) score(c classifier.Classifier, rec model.AugmentedRecord) (float64, error) {
	start := time.Now()
	proba, err := c.PredictProba(rec)
	if err == nil {
		err = checkProbability(proba)
	}
	s.obs.ObserveScore(c.Name(), time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("score %s: %w", c.Name(), err)
	}
	return proba[1], nil
}

func checkProbability(p [2]float64) error {
	for _, v := range p {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("invalid probability %v", p)
		}
	}
	return nil
}
