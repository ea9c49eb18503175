package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"ChurnSentinel/internal/model"
)

const logisticJSON = `{
  "kind": "logistic",
  "name": "logistic_churn_model",
  "feature_names_in": ["CreditScore", "Geography", "Gender", "Age", "Tenure", "Balance",
    "NumOfProducts", "IsActiveMember", "EstimatedSalary", "BalanceSalaryRatio",
    "ProductDensity", "EngagementScore", "AgeTenureRatio", "ZeroBalanceFlag"],
  "inputs": [
    {"column": "Geography", "encoding": "onehot", "categories": ["France", "Germany", "Spain"], "drop_first": true},
    {"column": "Gender", "encoding": "onehot", "categories": ["Female", "Male"], "drop_first": true},
    {"column": "Age"},
    {"column": "IsActiveMember"},
    {"column": "EngagementScore"}
  ],
  "coefficients": [0.8, 0.1, -0.5, 0.05, -1.0, -0.2],
  "intercept": -2.0
}`

const forestYAML = `kind: random_forest
name: rf_churn_model
inputs:
  - column: Age
  - column: NumOfProducts
  - column: Geography
    encoding: ordinal
    categories: [France, Germany, Spain]
trees:
  - nodes:
      - {feature: 0, threshold: 45, left: 1, right: 2}
      - {left: -1, right: -1, value: [80, 20]}
      - {left: -1, right: -1, value: [30, 70]}
  - nodes:
      - {feature: 1, threshold: 2.5, left: 1, right: 2}
      - {left: -1, right: -1, value: [0.9, 0.1]}
      - {left: -1, right: -1, value: [0.2, 0.8]}
`

func writeArtifact(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func sampleRecord() model.AugmentedRecord {
	return model.AugmentedRecord{
		CustomerRecord: model.CustomerRecord{
			CreditScore:     650,
			Geography:       model.GeographyFrance,
			Gender:          model.GenderMale,
			Age:             40,
			Tenure:          3,
			Balance:         50000,
			NumOfProducts:   2,
			IsActiveMember:  1,
			EstimatedSalary: 60000,
		},
		BalanceSalaryRatio: 50000.0 / 60001.0,
		ProductDensity:     0.5,
		EngagementScore:    2,
		AgeTenureRatio:     10,
		ZeroBalanceFlag:    0,
	}
}
