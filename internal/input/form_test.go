package input

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ChurnSentinel/internal/model"
)

func TestDefaults(t *testing.T) {
	f := Defaults()
	want := model.CustomerRecord{
		CreditScore:     650,
		Geography:       model.GeographyFrance,
		Gender:          model.GenderMale,
		Age:             40,
		Tenure:          3,
		Balance:         50000,
		NumOfProducts:   2,
		IsActiveMember:  0,
		EstimatedSalary: 60000,
	}
	assert.Equal(t, want, f.Customer)
	assert.Equal(t, model.Override{NumOfProducts: 2, IsActiveMember: 0}, f.Override)
	assert.NoError(t, f.Customer.Validate())
}

func TestParse_Values(t *testing.T) {
	f, err := Parse(url.Values{
		FieldAge:         {"55"},
		FieldCreditScore: {"720"},
		FieldGeography:   {"germany"},
		FieldGender:      {"Female"},
		FieldTenure:      {"0"},
		FieldBalance:     {"0"},
		FieldProducts:    {"3"},
		FieldActive:      {"1"},
		FieldSalary:      {"125000.50"},
	})
	require.NoError(t, err)

	c := f.Customer
	assert.Equal(t, 55, c.Age)
	assert.Equal(t, 720, c.CreditScore)
	assert.Equal(t, model.GeographyGermany, c.Geography)
	assert.Equal(t, model.GenderFemale, c.Gender)
	assert.Equal(t, 0, c.Tenure)
	assert.Equal(t, 0.0, c.Balance)
	assert.Equal(t, 3, c.NumOfProducts)
	assert.Equal(t, 1, c.IsActiveMember)
	assert.Equal(t, 125000.50, c.EstimatedSalary)

	// What-if pair follows the customer when not submitted.
	assert.Equal(t, model.Override{NumOfProducts: 3, IsActiveMember: 1}, f.Override)
}

func TestParse_ClampsToWidgetRange(t *testing.T) {
	f, err := Parse(url.Values{
		FieldAge:         {"12"},
		FieldCreditScore: {"1000"},
		FieldTenure:      {"-4"},
		FieldBalance:     {"-10"},
		FieldProducts:    {"9"},
		FieldSalary:      {"5"},
		FieldSimProducts: {"0"},
	})
	require.NoError(t, err)

	c := f.Customer
	assert.Equal(t, 18, c.Age)
	assert.Equal(t, 900, c.CreditScore)
	assert.Equal(t, 0, c.Tenure)
	assert.Equal(t, 0.0, c.Balance)
	assert.Equal(t, 4, c.NumOfProducts)
	assert.Equal(t, 10000.0, c.EstimatedSalary)
	assert.Equal(t, 1, f.Override.NumOfProducts)
	assert.NoError(t, c.Validate())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"non numeric age", FieldAge, "forty"},
		{"nan balance", FieldBalance, "NaN"},
		{"infinite salary", FieldSalary, "Inf"},
		{"unknown geography", FieldGeography, "Italy"},
		{"unknown gender", FieldGender, "Other"},
		{"active out of options", FieldActive, "2"},
		{"sim active out of options", FieldSimActive, "yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(url.Values{tt.field: {tt.value}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestForm_ValuesRoundTrip(t *testing.T) {
	f, err := Parse(url.Values{
		FieldAge:         {"33"},
		FieldBalance:     {"1234.56"},
		FieldSimProducts: {"4"},
		FieldSimActive:   {"1"},
	})
	require.NoError(t, err)

	again, err := Parse(f.Values())
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestParse_WhatIfFollowsBaseChanges(t *testing.T) {
	tests := []struct {
		name string
		v    url.Values
		want model.Override
	}{
		{
			name: "sidebar change restarts both widgets",
			v: url.Values{
				FieldProducts: {"4"}, FieldActive: {"1"},
				FieldSimProducts: {"2"}, FieldSimActive: {"0"},
				FieldBaseProducts: {"2"}, FieldBaseActive: {"0"},
			},
			want: model.Override{NumOfProducts: 4, IsActiveMember: 1},
		},
		{
			name: "only products changed",
			v: url.Values{
				FieldProducts: {"3"}, FieldActive: {"0"},
				FieldSimProducts: {"1"}, FieldSimActive: {"1"},
				FieldBaseProducts: {"2"}, FieldBaseActive: {"0"},
			},
			want: model.Override{NumOfProducts: 3, IsActiveMember: 1},
		},
		{
			name: "unchanged base keeps what-if choice",
			v: url.Values{
				FieldProducts: {"2"}, FieldActive: {"0"},
				FieldSimProducts: {"4"}, FieldSimActive: {"1"},
				FieldBaseProducts: {"2"}, FieldBaseActive: {"0"},
			},
			want: model.Override{NumOfProducts: 4, IsActiveMember: 1},
		},
		{
			name: "no base submitted keeps what-if choice",
			v: url.Values{
				FieldProducts: {"1"}, FieldActive: {"0"},
				FieldSimProducts: {"4"}, FieldSimActive: {"1"},
			},
			want: model.Override{NumOfProducts: 4, IsActiveMember: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Override)
		})
	}
}
