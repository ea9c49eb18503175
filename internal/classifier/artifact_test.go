package classifier

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_JSONLogistic(t *testing.T) {
	path := writeArtifact(t, "logistic.json", logisticJSON)

	m, err := Load(path)
	require.NoError(t, err)

	info := m.Info()
	assert.Equal(t, "logistic_churn_model", info.Name)
	assert.Equal(t, KindLogistic, info.Kind)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, 6, info.Features)
	assert.Len(t, info.Fingerprint, 64)

	sum, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, sum, info.Fingerprint)
}

func TestLoad_YAMLForest(t *testing.T) {
	path := writeArtifact(t, "rf.yaml", forestYAML)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, KindRandomForest, m.Info().Kind)
	assert.Equal(t, "rf_churn_model", m.Name())
}

func TestLoad_NameDefaultsToFileStem(t *testing.T) {
	body := `{"kind":"logistic","inputs":[{"column":"Age"}],"coefficients":[0.1],"intercept":0}`
	m, err := Load(writeArtifact(t, "my_model.json", body))
	require.NoError(t, err)
	assert.Equal(t, "my_model", m.Name())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		kind LoadErrorKind
	}{
		{"corrupt json", "m.json", `{"kind": "logistic",`, LoadCorrupt},
		{"unknown field", "m.json", `{"kind": "logistic", "weights": [1]}`, LoadCorrupt},
		{"corrupt yaml", "m.yaml", "kind: [logistic\n", LoadCorrupt},
		{"no kind", "m.json", `{"inputs":[{"column":"Age"}],"coefficients":[1]}`, LoadIncompatible},
		{"unknown kind", "m.json", `{"kind":"svm","inputs":[{"column":"Age"}]}`, LoadIncompatible},
		{"no inputs", "m.json", `{"kind":"logistic","coefficients":[1]}`, LoadIncompatible},
		{"coefficient count", "m.json", `{"kind":"logistic","inputs":[{"column":"Age"}],"coefficients":[1,2]}`, LoadIncompatible},
		{"unknown encoding", "m.json", `{"kind":"logistic","inputs":[{"column":"Gender","encoding":"hash"}],"coefficients":[1]}`, LoadIncompatible},
		{"scaler width", "m.json", `{"kind":"logistic","inputs":[{"column":"Age"}],"coefficients":[1],"scaler":{"mean":[1,2],"scale":[1,1]}}`, LoadIncompatible},
		{"empty forest", "m.json", `{"kind":"random_forest","inputs":[{"column":"Age"}],"trees":[]}`, LoadIncompatible},
		{"bad split feature", "m.json", `{"kind":"random_forest","inputs":[{"column":"Age"}],"trees":[{"nodes":[{"feature":3,"threshold":1,"left":1,"right":2},{"left":-1,"right":-1,"value":[1,0]},{"left":-1,"right":-1,"value":[0,1]}]}]}`, LoadIncompatible},
		{"cyclic tree", "m.json", `{"kind":"random_forest","inputs":[{"column":"Age"}],"trees":[{"nodes":[{"feature":0,"threshold":1,"left":0,"right":0}]}]}`, LoadIncompatible},
		{"unknown yaml field", "m.yaml", "kind: logistic\nweights: [1]\n", LoadCorrupt},
		{"nan leaf", "m.yaml", "kind: random_forest\ninputs: [{column: Age}]\ntrees:\n  - nodes:\n      - {left: -1, right: -1, value: [.nan, 1]}\n", LoadIncompatible},
		{"inf leaf", "m.yaml", "kind: random_forest\ninputs: [{column: Age}]\ntrees:\n  - nodes:\n      - {left: -1, right: -1, value: [1, .inf]}\n", LoadIncompatible},
		{"nan threshold", "m.yaml", "kind: random_forest\ninputs: [{column: Age}]\ntrees:\n  - nodes:\n      - {feature: 0, threshold: .nan, left: 1, right: 2}\n      - {left: -1, right: -1, value: [1, 0]}\n      - {left: -1, right: -1, value: [0, 1]}\n", LoadIncompatible},
		{"leaf width", "m.json", `{"kind":"random_forest","inputs":[{"column":"Age"}],"trees":[{"nodes":[{"left":-1,"right":-1,"value":[1,2,3]}]}]}`, LoadIncompatible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, tt.file, tt.body)
			_, err := Load(path)
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le), "expected *LoadError, got %T", err)
			assert.Equal(t, tt.kind, le.Kind)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	_, err := Load(path)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, LoadMissing, le.Kind)
	assert.Contains(t, err.Error(), "missing")
	assert.Contains(t, err.Error(), path)
}
