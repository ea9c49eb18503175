package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"ChurnSentinel/internal/classifier"
	"ChurnSentinel/internal/model"
)

// maxContributions limits the explanation lines in a chat report.
const maxContributions = 5

// FormatAssessment formats the base prediction view into a Telegram message.
func FormatAssessment(a *model.Assessment) string {
	var b strings.Builder
	c := a.Record.CustomerRecord

	b.WriteString(fmt.Sprintf("🏦 <b>Churn Risk Prediction</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Age %d | Credit %d | %s | %s\n", c.Age, c.CreditScore, c.Geography, c.Gender))
	b.WriteString(fmt.Sprintf("Tenure %dy | Balance %.2f | Salary %.2f\n", c.Tenure, c.Balance, c.EstimatedSalary))
	b.WriteString(fmt.Sprintf("Products %d | Active %d\n\n", c.NumOfProducts, c.IsActiveMember))

	b.WriteString(fmt.Sprintf("Logistic Churn Probability: <b>%s</b>\n", model.Percent(a.LogisticProbability)))
	b.WriteString(fmt.Sprintf("Random Forest Probability: <b>%s</b>\n", model.Percent(a.ForestProbability)))
	b.WriteString(fmt.Sprintf("Risk Category: %s\n", a.RiskLabel))

	if a.Explanation != nil && len(a.Explanation.Contributions) > 0 {
		b.WriteString("\n📈 <b>Top logistic contributions:</b>\n")
		for i, ct := range a.Explanation.Contributions {
			if i == maxContributions {
				break
			}
			b.WriteString(fmt.Sprintf("  %s: %+.3f\n", html.EscapeString(ct.Feature), ct.Impact))
		}
	}
	return b.String()
}

// FormatSimulation formats a what-if result.
func FormatSimulation(s *model.Simulation) string {
	return fmt.Sprintf("🔁 <b>What-if Simulator</b>\nProducts %d → %d | Active %d → %d\n📉 New churn probability after changes: <b>%s</b>",
		s.Base.NumOfProducts, s.Override.NumOfProducts,
		s.Base.IsActiveMember, s.Override.IsActiveMember,
		model.Percent(s.Probability))
}

// FormatModels lists the loaded artifacts.
func FormatModels(infos []classifier.Info) string {
	var b strings.Builder
	b.WriteString("📦 <b>Loaded models</b>\n\n")
	for _, in := range infos {
		b.WriteString(fmt.Sprintf("%s (%s, %d features)\n", html.EscapeString(in.Name), in.Kind, in.Features))
		b.WriteString(fmt.Sprintf("  %s\n  sha256 %s\n", html.EscapeString(in.Path), shortSum(in.Fingerprint)))
	}
	return b.String()
}

// FormatArtifactAlert reports an artifact file that no longer matches the
// loaded model.
func FormatArtifactAlert(role, path, result, detail string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚠️ <b>Model artifact %s</b>\n\n", strings.ToLower(result)))
	b.WriteString(fmt.Sprintf("Model: %s\nFile: %s\n", role, html.EscapeString(path)))
	if detail != "" {
		b.WriteString(html.EscapeString(detail) + "\n")
	}
	b.WriteString("The running service keeps scoring with the model loaded at startup.")
	return b.String()
}

func shortSum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
