// Package input describes the dashboard widgets and turns submitted field
// values into a customer record and what-if override.
package input

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"ChurnSentinel/internal/model"
)

// Field names shared by the HTML form, query strings and bot commands.
const (
	FieldAge         = "age"
	FieldCreditScore = "credit_score"
	FieldGeography   = "geography"
	FieldGender      = "gender"
	FieldTenure      = "tenure"
	FieldBalance     = "balance"
	FieldProducts    = "num_products"
	FieldActive      = "is_active"
	FieldSalary      = "salary"
	FieldSimProducts = "sim_products"
	FieldSimActive   = "sim_active"

	// Base values the what-if widgets were seeded from on the previous render.
	FieldBaseProducts = "base_products"
	FieldBaseActive   = "base_active"
)

// Range is a numeric widget: a slider or a bounded number input.
type Range struct {
	Field   string
	Label   string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

// Clamp pins v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Choice is a dropdown.
type Choice struct {
	Field   string
	Label   string
	Options []string
	Default string
}

// Widgets mirror the original dashboard sidebar.
var (
	Age         = Range{Field: FieldAge, Label: "Age", Min: 18, Max: 90, Default: 40, Step: 1}
	CreditScore = Range{Field: FieldCreditScore, Label: "Credit Score", Min: 300, Max: 900, Default: 650, Step: 1}
	Geography   = Choice{Field: FieldGeography, Label: "Geography", Options: []string{"France", "Germany", "Spain"}, Default: "France"}
	Gender      = Choice{Field: FieldGender, Label: "Gender", Options: []string{"Male", "Female"}, Default: "Male"}
	Tenure      = Range{Field: FieldTenure, Label: "Tenure (years)", Min: 0, Max: 10, Default: 3, Step: 1}
	Balance     = Range{Field: FieldBalance, Label: "Account Balance", Min: 0, Max: 300000, Default: 50000, Step: 0.01}
	Products    = Range{Field: FieldProducts, Label: "Number of Products", Min: 1, Max: 4, Default: 2, Step: 1}
	Active      = Choice{Field: FieldActive, Label: "Is Active Member", Options: []string{"0", "1"}, Default: "0"}
	Salary      = Range{Field: FieldSalary, Label: "Estimated Salary", Min: 10000, Max: 200000, Default: 60000, Step: 0.01}

	SimProducts = Range{Field: FieldSimProducts, Label: "Increase Number of Products", Min: 1, Max: 4, Step: 1}
	SimActive   = Choice{Field: FieldSimActive, Label: "Make Customer Active?", Options: []string{"0", "1"}}
)

// Form is one submitted set of widget values.
type Form struct {
	Customer model.CustomerRecord
	Override model.Override
}

// Defaults returns the form as first rendered.
func Defaults() Form {
	f, _ := Parse(url.Values{})
	return f
}

// Parse reads widget values. Missing fields take their defaults, numbers
// are clamped to the widget range, and the what-if pair defaults to the
// customer's current values. A what-if value whose submitted base no longer
// matches the customer restarts from the new base.
func Parse(v url.Values) (Form, error) {
	var f Form
	var err error

	c := &f.Customer
	if c.Age, err = intField(v, Age); err != nil {
		return f, err
	}
	if c.CreditScore, err = intField(v, CreditScore); err != nil {
		return f, err
	}
	geo, err := choiceField(v, Geography, Geography.Default)
	if err != nil {
		return f, err
	}
	c.Geography = model.Geography(geo)
	gender, err := choiceField(v, Gender, Gender.Default)
	if err != nil {
		return f, err
	}
	c.Gender = model.Gender(gender)
	if c.Tenure, err = intField(v, Tenure); err != nil {
		return f, err
	}
	if c.Balance, err = floatField(v, Balance, Balance.Default); err != nil {
		return f, err
	}
	if c.NumOfProducts, err = intField(v, Products); err != nil {
		return f, err
	}
	active, err := choiceField(v, Active, Active.Default)
	if err != nil {
		return f, err
	}
	c.IsActiveMember, _ = strconv.Atoi(active)
	if c.EstimatedSalary, err = floatField(v, Salary, Salary.Default); err != nil {
		return f, err
	}

	sp, err := floatField(reseed(v, FieldSimProducts, FieldBaseProducts, c.NumOfProducts), SimProducts, float64(c.NumOfProducts))
	if err != nil {
		return f, err
	}
	f.Override.NumOfProducts = int(sp + 0.5)
	sa, err := choiceField(reseed(v, FieldSimActive, FieldBaseActive, c.IsActiveMember), SimActive, strconv.Itoa(c.IsActiveMember))
	if err != nil {
		return f, err
	}
	f.Override.IsActiveMember, _ = strconv.Atoi(sa)

	return f, nil
}

// Values encodes the form back into field values.
func (f Form) Values() url.Values {
	c := f.Customer
	return url.Values{
		FieldAge:         {strconv.Itoa(c.Age)},
		FieldCreditScore: {strconv.Itoa(c.CreditScore)},
		FieldGeography:   {string(c.Geography)},
		FieldGender:      {string(c.Gender)},
		FieldTenure:      {strconv.Itoa(c.Tenure)},
		FieldBalance:     {strconv.FormatFloat(c.Balance, 'f', -1, 64)},
		FieldProducts:    {strconv.Itoa(c.NumOfProducts)},
		FieldActive:      {strconv.Itoa(c.IsActiveMember)},
		FieldSalary:      {strconv.FormatFloat(c.EstimatedSalary, 'f', -1, 64)},
		FieldSimProducts: {strconv.Itoa(f.Override.NumOfProducts)},
		FieldSimActive:   {strconv.Itoa(f.Override.IsActiveMember)},

		FieldBaseProducts: {strconv.Itoa(c.NumOfProducts)},
		FieldBaseActive:   {strconv.Itoa(c.IsActiveMember)},
	}
}

func floatField(v url.Values, r Range, def float64) (float64, error) {
	s := strings.TrimSpace(v.Get(r.Field))
	if s == "" {
		return r.Clamp(def), nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%s: %q is not a number", r.Field, s)
	}
	return r.Clamp(x), nil
}

// intField rounds to the nearest whole step, as a slider would.
func intField(v url.Values, r Range) (int, error) {
	x, err := floatField(v, r, r.Default)
	if err != nil {
		return 0, err
	}
	if x < 0 {
		return int(x - 0.5), nil
	}
	return int(x + 0.5), nil
}

func choiceField(v url.Values, c Choice, def string) (string, error) {
	s := strings.TrimSpace(v.Get(c.Field))
	if s == "" {
		return def, nil
	}
	for _, o := range c.Options {
		if strings.EqualFold(o, s) {
			return o, nil
		}
	}
	return "", fmt.Errorf("%s: %q is not one of %s", c.Field, s, strings.Join(c.Options, ", "))
}

// reseed drops simField when the base it was seeded from has changed.
func reseed(v url.Values, simField, baseField string, current int) url.Values {
	base := strings.TrimSpace(v.Get(baseField))
	if base == "" || base == strconv.Itoa(current) {
		return v
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = vals
	}
	out.Del(simField)
	return out
}
