package dashboard

import (
	"fmt"
	"html/template"
	"strconv"

	"ChurnSentinel/internal/input"
	"ChurnSentinel/internal/model"
)

const pageTitle = "Bank Customer Churn Risk Dashboard"

// maxContributions limits the explanation rows on the page.
const maxContributions = 8

type option struct {
	Value    string
	Selected bool
}

// widget is one rendered form control.
type widget struct {
	Field   string
	Label   string
	Kind    string // slider, number, select or hidden
	Min     string
	Max     string
	Step    string
	Value   string
	Options []option
}

type pageData struct {
	Title         string
	Sidebar       []widget
	WhatIf        []widget
	InputError    string
	PredictError  string
	SimulateError string
	Assessment    *model.Assessment
	Simulation    *model.Simulation
}

func (d *pageData) setForm(f input.Form) {
	c := f.Customer
	d.Sidebar = []widget{
		rangeWidget(input.Age, "slider", float64(c.Age)),
		rangeWidget(input.CreditScore, "slider", float64(c.CreditScore)),
		choiceWidget(input.Geography, string(c.Geography)),
		choiceWidget(input.Gender, string(c.Gender)),
		rangeWidget(input.Tenure, "slider", float64(c.Tenure)),
		rangeWidget(input.Balance, "number", c.Balance),
		rangeWidget(input.Products, "slider", float64(c.NumOfProducts)),
		choiceWidget(input.Active, strconv.Itoa(c.IsActiveMember)),
		rangeWidget(input.Salary, "number", c.EstimatedSalary),
	}
	d.WhatIf = []widget{
		rangeWidget(input.SimProducts, "slider", float64(f.Override.NumOfProducts)),
		choiceWidget(input.SimActive, strconv.Itoa(f.Override.IsActiveMember)),
		hiddenWidget(input.FieldBaseProducts, strconv.Itoa(c.NumOfProducts)),
		hiddenWidget(input.FieldBaseActive, strconv.Itoa(c.IsActiveMember)),
	}
}

// hiddenWidget carries the base value a what-if widget was seeded from.
func hiddenWidget(field, value string) widget {
	return widget{Field: field, Kind: "hidden", Value: value}
}

func rangeWidget(r input.Range, kind string, v float64) widget {
	return widget{
		Field: r.Field,
		Label: r.Label,
		Kind:  kind,
		Min:   formatNumber(r.Min),
		Max:   formatNumber(r.Max),
		Step:  formatNumber(r.Step),
		Value: formatNumber(v),
	}
}

func choiceWidget(c input.Choice, selected string) widget {
	w := widget{Field: c.Field, Label: c.Label, Kind: "select", Value: selected}
	for _, o := range c.Options {
		w.Options = append(w.Options, option{Value: o, Selected: o == selected})
	}
	return w
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func topContributions(e *model.Explanation) []model.Contribution {
	if e == nil {
		return nil
	}
	if len(e.Contributions) > maxContributions {
		return e.Contributions[:maxContributions]
	}
	return e.Contributions
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"percent": model.Percent,
	"top":     topContributions,
	"signed":  func(v float64) string { return fmt.Sprintf("%+.3f", v) },
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: sans-serif; color: #262730; display: flex; }
aside { width: 300px; min-height: 100vh; padding: 1.5rem; background: #f0f2f6; box-sizing: border-box; }
main { flex: 1; padding: 2rem 3rem; }
label { display: block; margin-top: 1rem; font-size: 0.9rem; }
input, select { width: 100%; box-sizing: border-box; }
output { font-weight: bold; }
.metrics { display: flex; gap: 2rem; }
.metric { flex: 1; }
.metric .label { font-size: 0.9rem; color: #555; }
.metric .value { font-size: 2rem; }
.error { padding: 0.75rem 1rem; background: #ffe0e0; color: #7d0000; border-radius: 4px; }
.whatif { margin-top: 1rem; padding: 0.75rem 1rem; background: #e8f4fd; border-radius: 4px; }
table { border-collapse: collapse; margin-top: 0.5rem; }
td, th { padding: 0.2rem 0.8rem; text-align: left; font-size: 0.9rem; }
</style>
</head>
<body>
<aside>
<form id="customer" method="get" action="/"></form>
<h2>Customer Details</h2>
{{range .Sidebar}}{{template "widget" .}}{{end}}
</aside>
<main>
<h1>🏦 {{.Title}}</h1>
{{if .InputError}}<p class="error">{{.InputError}}</p>{{end}}

<h2>Churn Risk Prediction</h2>
{{if .PredictError}}
<p class="error">{{.PredictError}}</p>
{{else}}{{with .Assessment}}
<div class="metrics">
<div class="metric"><div class="label">Logistic Churn Probability</div><div class="value">{{percent .LogisticProbability}}</div></div>
<div class="metric"><div class="label">Random Forest Probability</div><div class="value">{{percent .ForestProbability}}</div></div>
<div class="metric"><div class="label">Risk Category</div><div class="value">{{.RiskLabel}}</div></div>
</div>
{{with top .Explanation}}
<h3>Top logistic contributions</h3>
<table>
<tr><th>Feature</th><th>Value</th><th>Impact</th></tr>
{{range .}}<tr><td>{{.Feature}}</td><td>{{signed .Value}}</td><td>{{signed .Impact}}</td></tr>
{{end}}</table>
{{end}}
{{end}}{{end}}

<h2>What-if Simulator</h2>
{{range .WhatIf}}{{template "widget" .}}{{end}}
{{if .SimulateError}}
<p class="error">{{.SimulateError}}</p>
{{else}}{{with .Simulation}}
<p class="whatif">New churn probability after changes: <b>{{percent .Probability}}</b></p>
{{end}}{{end}}
</main>
</body>
</html>
{{define "widget"}}{{if eq .Kind "hidden"}}<input type="hidden" name="{{.Field}}" form="customer" value="{{.Value}}">
{{else}}<label for="{{.Field}}">{{.Label}}{{if eq .Kind "slider"}}: <output>{{.Value}}</output>{{end}}</label>
{{if eq .Kind "select"}}<select id="{{.Field}}" name="{{.Field}}" form="customer" onchange="this.form.submit()">
{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>
{{else if eq .Kind "slider"}}<input type="range" id="{{.Field}}" name="{{.Field}}" form="customer" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}" onchange="this.form.submit()">
{{else}}<input type="number" id="{{.Field}}" name="{{.Field}}" form="customer" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}" onchange="this.form.submit()">
{{end}}{{end}}{{end}}`
