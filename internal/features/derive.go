package features

import "ChurnSentinel/internal/model"

// Derive computes the five engineered features from the raw attributes.
// The +1 offsets are smoothing constants the trained models expect; they
// must not be replaced with an epsilon.
func Derive(raw model.CustomerRecord) model.AugmentedRecord {
	return model.AugmentedRecord{
		CustomerRecord:     raw,
		BalanceSalaryRatio: BalanceSalaryRatio(raw.Balance, raw.EstimatedSalary),
		ProductDensity:     ProductDensity(raw.NumOfProducts, raw.Tenure),
		EngagementScore:    EngagementScore(raw.IsActiveMember, raw.NumOfProducts),
		AgeTenureRatio:     AgeTenureRatio(raw.Age, raw.Tenure),
		ZeroBalanceFlag:    ZeroBalanceFlag(raw.Balance),
	}
}

// BalanceSalaryRatio returns balance / (salary + 1).
func BalanceSalaryRatio(balance, salary float64) float64 {
	return balance / (salary + 1)
}

// ProductDensity returns products / (tenure + 1).
func ProductDensity(products, tenure int) float64 {
	return float64(products) / float64(tenure+1)
}

// EngagementScore returns active * products.
func EngagementScore(active, products int) float64 {
	return float64(active * products)
}

// AgeTenureRatio returns age / (tenure + 1).
func AgeTenureRatio(age, tenure int) float64 {
	return float64(age) / float64(tenure+1)
}

// ZeroBalanceFlag is 1 only when the balance is exactly zero.
func ZeroBalanceFlag(balance float64) int {
	if balance == 0 {
		return 1
	}
	return 0
}
