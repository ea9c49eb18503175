package classifier

import (
	"errors"
	"fmt"
	"math"

	"ChurnSentinel/internal/model"
)

// leaf marks a node without children.
const leaf = -1

// Node is one entry of an array-encoded decision tree. Internal nodes send
// x[Feature] <= Threshold to Left, everything else to Right. Leaves have
// Left == Right == -1 and carry the class distribution in Value.
type Node struct {
	Feature   int       `json:"feature" yaml:"feature"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Left      int       `json:"left" yaml:"left"`
	Right     int       `json:"right" yaml:"right"`
	Value     []float64 `json:"value,omitempty" yaml:"value,omitempty"`
}

// Tree is a single decision tree; Nodes[0] is the root.
type Tree struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Forest averages the leaf class distributions of its trees.
type Forest struct {
	info  Info
	enc   *encoder
	trees []Tree
}

func newForest(info Info, enc *encoder, trees []Tree) (*Forest, error) {
	if len(trees) == 0 {
		return nil, errors.New("random forest has no trees")
	}
	for ti, t := range trees {
		if err := validateTree(t, enc.width()); err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
	}
	info.Kind = KindRandomForest
	info.Features = enc.width()
	return &Forest{info: info, enc: enc, trees: trees}, nil
}

func validateTree(t Tree, width int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Left == leaf && n.Right == leaf {
			if len(n.Value) != 2 {
				return fmt.Errorf("leaf %d has %d class values, expected 2", i, len(n.Value))
			}
			if !finite(n.Value[0]) || !finite(n.Value[1]) ||
				n.Value[0] < 0 || n.Value[1] < 0 || n.Value[0]+n.Value[1] == 0 {
				return fmt.Errorf("leaf %d has an invalid class distribution", i)
			}
			continue
		}
		if math.IsNaN(n.Threshold) {
			return fmt.Errorf("node %d has a NaN threshold", i)
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d splits on feature %d of %d", i, n.Feature, width)
		}
		// Children must come after their parent, which also rules out cycles.
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has children out of range", i)
		}
	}
	return nil
}

func (f *Forest) Name() string { return f.info.Name }

func (f *Forest) Info() Info { return f.info }

func (f *Forest) PredictProba(rec model.AugmentedRecord) ([2]float64, error) {
	x, err := f.enc.encode(rec)
	if err != nil {
		return [2]float64{}, &ScoringError{Model: f.info.Name, Err: err}
	}
	var churn float64
	for _, t := range f.trees {
		v := t.predict(x)
		churn += v[1] / (v[0] + v[1])
	}
	p := churn / float64(len(f.trees))
	if !finite(p) {
		return [2]float64{}, &ScoringError{Model: f.info.Name, Err: errors.New("averaged leaf distribution is not finite")}
	}
	return [2]float64{1 - p, p}, nil
}

func (t Tree) predict(x []float64) []float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Left == leaf && n.Right == leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
