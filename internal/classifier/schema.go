package classifier

import (
	"errors"
	"fmt"
	"math"

	"ChurnSentinel/internal/model"
)

// Column encodings understood by the input schema.
const (
	EncodingPassthrough = "passthrough"
	EncodingOneHot      = "onehot"
	EncodingOrdinal     = "ordinal"
)

// InputSpec describes how one record column becomes model features.
type InputSpec struct {
	Column        string   `json:"column" yaml:"column"`
	Encoding      string   `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Categories    []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	DropFirst     bool     `json:"drop_first,omitempty" yaml:"drop_first,omitempty"`
	IgnoreUnknown bool     `json:"ignore_unknown,omitempty" yaml:"ignore_unknown,omitempty"`
}

// Scaler standardizes encoded features as (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// encoder turns an AugmentedRecord into the numeric vector an artifact expects.
type encoder struct {
	featureNames []string // columns the artifact was fitted on, in order
	inputs       []InputSpec
	scaler       *Scaler
	names        []string // encoded feature names
}

func newEncoder(featureNames []string, inputs []InputSpec, scaler *Scaler) (*encoder, error) {
	if len(inputs) == 0 {
		return nil, errors.New("artifact declares no inputs")
	}
	e := &encoder{featureNames: featureNames, inputs: inputs, scaler: scaler}
	for i := range e.inputs {
		in := &e.inputs[i]
		if in.Column == "" {
			return nil, fmt.Errorf("input %d has no column", i)
		}
		switch in.Encoding {
		case "", EncodingPassthrough:
			in.Encoding = EncodingPassthrough
			e.names = append(e.names, in.Column)
		case EncodingOneHot:
			if len(in.Categories) == 0 {
				return nil, fmt.Errorf("input %s: onehot encoding needs categories", in.Column)
			}
			cats := in.Categories
			if in.DropFirst {
				if len(cats) < 2 {
					return nil, fmt.Errorf("input %s: drop_first needs at least two categories", in.Column)
				}
				cats = cats[1:]
			}
			for _, c := range cats {
				e.names = append(e.names, in.Column+"_"+c)
			}
		case EncodingOrdinal:
			if len(in.Categories) == 0 {
				return nil, fmt.Errorf("input %s: ordinal encoding needs categories", in.Column)
			}
			e.names = append(e.names, in.Column)
		default:
			return nil, fmt.Errorf("input %s: unknown encoding %q", in.Column, in.Encoding)
		}
	}
	if scaler != nil {
		if len(scaler.Mean) != len(e.names) || len(scaler.Scale) != len(e.names) {
			return nil, fmt.Errorf("scaler has %d/%d entries, expected %d",
				len(scaler.Mean), len(scaler.Scale), len(e.names))
		}
		for i, s := range scaler.Scale {
			if s == 0 {
				return nil, fmt.Errorf("scaler scale[%d] is zero", i)
			}
		}
	}
	return e, nil
}

// width is the number of encoded features.
func (e *encoder) width() int { return len(e.names) }

// checkColumns mirrors the fitted-feature-name check: the record must
// present exactly the columns the artifact was fitted on, in order.
func (e *encoder) checkColumns(columns []string) error {
	if len(e.featureNames) == 0 {
		return nil
	}
	if len(columns) != len(e.featureNames) {
		return fmt.Errorf("record has %d columns, model was fitted on %d", len(columns), len(e.featureNames))
	}
	for i, c := range columns {
		if c != e.featureNames[i] {
			return fmt.Errorf("column %d is %q, model expects %q", i, c, e.featureNames[i])
		}
	}
	return nil
}

func (e *encoder) encode(rec model.AugmentedRecord) ([]float64, error) {
	if err := e.checkColumns(model.Columns); err != nil {
		return nil, err
	}
	x := make([]float64, 0, e.width())
	for _, in := range e.inputs {
		switch in.Encoding {
		case EncodingPassthrough:
			v, ok := rec.Numeric(in.Column)
			if !ok {
				return nil, fmt.Errorf("column %q is not a numeric record column", in.Column)
			}
			x = append(x, v)
		case EncodingOneHot:
			v, ok := rec.Categorical(in.Column)
			if !ok {
				return nil, fmt.Errorf("column %q is not a categorical record column", in.Column)
			}
			idx := indexOf(in.Categories, v)
			if idx < 0 && !in.IgnoreUnknown {
				return nil, fmt.Errorf("column %q: unknown category %q", in.Column, v)
			}
			for i := range in.Categories {
				if in.DropFirst && i == 0 {
					continue
				}
				if i == idx {
					x = append(x, 1)
				} else {
					x = append(x, 0)
				}
			}
		case EncodingOrdinal:
			v, ok := rec.Categorical(in.Column)
			if !ok {
				return nil, fmt.Errorf("column %q is not a categorical record column", in.Column)
			}
			idx := indexOf(in.Categories, v)
			if idx < 0 {
				if !in.IgnoreUnknown {
					return nil, fmt.Errorf("column %q: unknown category %q", in.Column, v)
				}
				x = append(x, math.NaN())
				continue
			}
			x = append(x, float64(idx))
		}
	}
	if e.scaler != nil {
		for i := range x {
			x[i] = (x[i] - e.scaler.Mean[i]) / e.scaler.Scale[i]
		}
	}
	return x, nil
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}
