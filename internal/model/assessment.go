package model

import "fmt"

// RiskLevel is one of the three ordered churn-risk buckets.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Label returns the dashboard label for the level.
func (l RiskLevel) Label() string {
	switch l {
	case RiskLow:
		return "🟢 Low Risk"
	case RiskMedium:
		return "🟡 Medium Risk"
	case RiskHigh:
		return "🔴 High Risk"
	}
	return string(l)
}

// Contribution is one encoded feature's share of the logistic score.
type Contribution struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
	Weight  float64 `json:"weight"`
	Impact  float64 `json:"impact"`
}

// Explanation breaks a logistic score down into per-feature terms.
type Explanation struct {
	Intercept     float64        `json:"intercept"`
	Contributions []Contribution `json:"contributions"`
}

// Assessment is the base prediction view for one customer.
type Assessment struct {
	Record              AugmentedRecord `json:"record"`
	LogisticProbability float64         `json:"logistic_probability"`
	ForestProbability   float64         `json:"forest_probability"`
	Risk                RiskLevel       `json:"risk"`
	RiskLabel           string          `json:"risk_label"`
	Explanation         *Explanation    `json:"explanation,omitempty"`
}

// Override holds the what-if candidate values.
type Override struct {
	NumOfProducts  int `json:"num_of_products"`
	IsActiveMember int `json:"is_active_member"`
}

// Simulation is the result of a what-if re-scoring.
type Simulation struct {
	Base        AugmentedRecord `json:"base"`
	Simulated   AugmentedRecord `json:"simulated"`
	Override    Override        `json:"override"`
	Probability float64         `json:"probability"`
}

// Percent formats a probability with two decimals, e.g. 0.1234 -> "12.34%".
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
