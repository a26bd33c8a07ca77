package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/finmate/internal/extract"
	"github.com/Veraticus/finmate/internal/model"
)

// FormatAmount renders a rupee amount with two decimals.
func FormatAmount(amount float64) string {
	return "₹" + decimal.NewFromFloat(amount).StringFixed(2)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), ValueStyle.Render(value))
}

// RenderAllocation shows the monthly budget for role.
func RenderAllocation(role model.Role, income float64, alloc model.Allocation) string {
	if role == model.RoleUnset {
		role = model.RoleProfessional
	}

	rows := []string{
		row("Income", FormatAmount(income)),
		row("Needs", FormatAmount(alloc.MonthlyNeeds)),
		row("Wants", FormatAmount(alloc.MonthlyWants)),
		row("Savings", FormatAmount(alloc.MonthlySavings)),
		row("Daily limit", FormatAmount(alloc.DailyLimit)),
	}

	content := strings.Join(rows, "\n")
	if alloc.MonthlyNeeds > income && income > 0 {
		content += "\n\n" + FormatWarning("Fixed expenses exceed income")
	}
	return RenderBox(fmt.Sprintf("%s Monthly budget (%s)", WalletIcon, role), content)
}

// RenderMetric shows a success metric and its interpretation.
func RenderMetric(m model.SuccessMetric) string {
	rows := []string{
		row("Value", fmt.Sprintf("%.0f", m.MetricValue)),
		row("Target", fmt.Sprintf("%.0f", m.MetricTarget)),
		row("Success rate", fmt.Sprintf("%.0f%%", m.SuccessRate)),
	}

	var verdict string
	switch {
	case m.SuccessRate >= 80:
		verdict = FormatSuccess(m.Interpretation)
	case m.SuccessRate >= 50:
		verdict = FormatInfo(m.Interpretation)
	default:
		verdict = FormatWarning(m.Interpretation)
	}

	return RenderBox(ChartIcon+" "+m.MetricName, strings.Join(rows, "\n")+"\n\n"+verdict)
}

// RenderExtractionNotice summarizes how an extraction result was produced.
func RenderExtractionNotice(result *extract.Result) string {
	if result.Degraded() {
		status := 0
		if result.Status != nil {
			status = *result.Status
		}
		return FormatWarning(fmt.Sprintf("%s (status %d); fields were recovered heuristically", result.Error, status))
	}

	source, _ := result.Parsed[extract.FieldAmountSource].(string)
	switch extract.AmountSource(source) {
	case extract.SourceFallback:
		return FormatInfo("Amount recovered from text")
	case extract.SourceNone:
		return FormatWarning("No amount found")
	default:
		return FormatSuccess("Fields extracted")
	}
}
