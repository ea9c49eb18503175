package model

import "fmt"

// Geography is the customer's country of residence.
type Geography string

const (
	GeographyFrance  Geography = "France"
	GeographyGermany Geography = "Germany"
	GeographySpain   Geography = "Spain"
)

// Geographies lists the accepted values in display order.
var Geographies = []Geography{GeographyFrance, GeographyGermany, GeographySpain}

// Gender of the customer.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists the accepted values in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// Column names in the order the feature deriver produces them.
const (
	ColCreditScore        = "CreditScore"
	ColGeography          = "Geography"
	ColGender             = "Gender"
	ColAge                = "Age"
	ColTenure             = "Tenure"
	ColBalance            = "Balance"
	ColNumOfProducts      = "NumOfProducts"
	ColIsActiveMember     = "IsActiveMember"
	ColEstimatedSalary    = "EstimatedSalary"
	ColBalanceSalaryRatio = "BalanceSalaryRatio"
	ColProductDensity     = "ProductDensity"
	ColEngagementScore    = "EngagementScore"
	ColAgeTenureRatio     = "AgeTenureRatio"
	ColZeroBalanceFlag    = "ZeroBalanceFlag"
)

// Columns is the exact column order every model receives.
var Columns = []string{
	ColCreditScore, ColGeography, ColGender, ColAge, ColTenure, ColBalance,
	ColNumOfProducts, ColIsActiveMember, ColEstimatedSalary,
	ColBalanceSalaryRatio, ColProductDensity, ColEngagementScore, ColAgeTenureRatio, ColZeroBalanceFlag,
}

// CustomerRecord holds the raw attributes entered for a single customer.
type CustomerRecord struct {
	CreditScore     int       `json:"credit_score"`
	Geography       Geography `json:"geography"`
	Gender          Gender    `json:"gender"`
	Age             int       `json:"age"`
	Tenure          int       `json:"tenure"`
	Balance         float64   `json:"balance"`
	NumOfProducts   int       `json:"num_of_products"`
	IsActiveMember  int       `json:"is_active_member"`
	EstimatedSalary float64   `json:"estimated_salary"`
}

// Validate checks the record against the documented attribute domain.
func (c CustomerRecord) Validate() error {
	switch {
	case c.CreditScore < 300 || c.CreditScore > 900:
		return fmt.Errorf("credit_score %d out of range [300, 900]", c.CreditScore)
	case !validGeography(c.Geography):
		return fmt.Errorf("unknown geography %q", c.Geography)
	case !validGender(c.Gender):
		return fmt.Errorf("unknown gender %q", c.Gender)
	case c.Age < 18 || c.Age > 90:
		return fmt.Errorf("age %d out of range [18, 90]", c.Age)
	case c.Tenure < 0 || c.Tenure > 10:
		return fmt.Errorf("tenure %d out of range [0, 10]", c.Tenure)
	case c.Balance < 0:
		return fmt.Errorf("balance must be non-negative, got %.2f", c.Balance)
	case c.NumOfProducts < 1 || c.NumOfProducts > 4:
		return fmt.Errorf("num_of_products %d out of range [1, 4]", c.NumOfProducts)
	case c.IsActiveMember != 0 && c.IsActiveMember != 1:
		return fmt.Errorf("is_active_member must be 0 or 1, got %d", c.IsActiveMember)
	case c.EstimatedSalary <= 0:
		return fmt.Errorf("estimated_salary must be positive, got %.2f", c.EstimatedSalary)
	}
	return nil
}

func validGeography(g Geography) bool {
	for _, v := range Geographies {
		if v == g {
			return true
		}
	}
	return false
}

func validGender(g Gender) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// AugmentedRecord is a CustomerRecord plus the five derived features.
type AugmentedRecord struct {
	CustomerRecord
	BalanceSalaryRatio float64 `json:"balance_salary_ratio"`
	ProductDensity     float64 `json:"product_density"`
	EngagementScore    float64 `json:"engagement_score"`
	AgeTenureRatio     float64 `json:"age_tenure_ratio"`
	ZeroBalanceFlag    int     `json:"zero_balance_flag"`
}

// Numeric returns the value of a numeric column. ok is false for
// categorical or unknown columns.
func (a AugmentedRecord) Numeric(column string) (v float64, ok bool) {
	switch column {
	case ColCreditScore:
		return float64(a.CreditScore), true
	case ColAge:
		return float64(a.Age), true
	case ColTenure:
		return float64(a.Tenure), true
	case ColBalance:
		return a.Balance, true
	case ColNumOfProducts:
		return float64(a.NumOfProducts), true
	case ColIsActiveMember:
		return float64(a.IsActiveMember), true
	case ColEstimatedSalary:
		return a.EstimatedSalary, true
	case ColBalanceSalaryRatio:
		return a.BalanceSalaryRatio, true
	case ColProductDensity:
		return a.ProductDensity, true
	case ColEngagementScore:
		return a.EngagementScore, true
	case ColAgeTenureRatio:
		return a.AgeTenureRatio, true
	case ColZeroBalanceFlag:
		return float64(a.ZeroBalanceFlag), true
	}
	return 0, false
}

// Categorical returns the value of a categorical column.
func (a AugmentedRecord) Categorical(column string) (v string, ok bool) {
	switch column {
	case ColGeography:
		return string(a.Geography), true
	case ColGender:
		return string(a.Gender), true
	}
	return "", false
}
