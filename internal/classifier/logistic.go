package classifier

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"ChurnSentinel/internal/model"
)

// Logistic is a binary logistic-regression model: p = sigmoid(w.x + b).
type Logistic struct {
	info         Info
	enc          *encoder
	coefficients []float64
	intercept    float64
}

func newLogistic(info Info, enc *encoder, coefficients []float64, intercept float64) (*Logistic, error) {
	if len(coefficients) != enc.width() {
		return nil, fmt.Errorf("logistic model has %d coefficients for %d encoded features",
			len(coefficients), enc.width())
	}
	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("coefficient %d is not finite", i)
		}
	}
	info.Kind = KindLogistic
	info.Features = enc.width()
	return &Logistic{info: info, enc: enc, coefficients: coefficients, intercept: intercept}, nil
}

func (l *Logistic) Name() string { return l.info.Name }

func (l *Logistic) Info() Info { return l.info }

func (l *Logistic) PredictProba(rec model.AugmentedRecord) ([2]float64, error) {
	x, err := l.enc.encode(rec)
	if err != nil {
		return [2]float64{}, &ScoringError{Model: l.info.Name, Err: err}
	}
	z := l.intercept
	for i, w := range l.coefficients {
		z += w * x[i]
	}
	p := sigmoid(z)
	if math.IsNaN(p) {
		return [2]float64{}, &ScoringError{Model: l.info.Name, Err: errors.New("decision function is not finite")}
	}
	return [2]float64{1 - p, p}, nil
}

// Explain returns coef*x for every encoded feature, largest magnitude first.
func (l *Logistic) Explain(rec model.AugmentedRecord) (*model.Explanation, error) {
	x, err := l.enc.encode(rec)
	if err != nil {
		return nil, &ScoringError{Model: l.info.Name, Err: err}
	}
	contribs := make([]model.Contribution, len(x))
	for i, w := range l.coefficients {
		contribs[i] = model.Contribution{
			Feature: l.enc.names[i],
			Value:   x[i],
			Weight:  w,
			Impact:  w * x[i],
		}
	}
	sort.SliceStable(contribs, func(i, j int) bool {
		return math.Abs(contribs[i].Impact) > math.Abs(contribs[j].Impact)
	})
	return &model.Explanation{Intercept: l.intercept, Contributions: contribs}, nil
}

// sigmoid is the logistic function, split by sign to avoid overflow in exp.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
