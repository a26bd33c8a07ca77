package budget

import (
	"math"

	"github.com/Veraticus/finmate/internal/model"
)

// MetricInput carries everything the success metrics can look at.
type MetricInput struct {
	Role                 model.Role `json:"role"`
	Income               float64    `json:"income"`
	ActualSavings        float64    `json:"actualSavings"`
	DailySpendingLimit   float64    `json:"dailySpendingLimit"`
	AverageDailySpending float64    `json:"averageDailySpending"`
	MonthlyVariance      float64    `json:"monthlyVariance"`
}

type evaluator func(in MetricInput) model.SuccessMetric

// evaluators must cover every model.Roles entry; RoleUnset has its own entry.
var evaluators = map[model.Role]evaluator{
	model.RoleStudent:      evaluateStudent,
	model.RoleProfessional: evaluateProfessional,
	model.RoleHousewife:    evaluateHousewife,
	model.RoleUnset:        evaluateDefault,
}

// Evaluate scores in against the success criteria of its role. Unknown roles
// are scored like Professionals.
func Evaluate(in MetricInput) model.SuccessMetric {
	eval, ok := evaluators[in.Role]
	if !ok {
		eval = evaluateDefault
	}
	m := eval(in)
	m.MetricValue = finiteOrZero(m.MetricValue)
	return m
}

// Students are scored on staying under their daily limit.
func evaluateStudent(in MetricInput) model.SuccessMetric {
	overspend := math.Max(0, in.AverageDailySpending-in.DailySpendingLimit)

	var rate float64
	if in.DailySpendingLimit > 0 {
		rate = 100 - overspend/in.DailySpendingLimit*100
	}
	rate = clampRate(rate)

	var interpretation string
	switch {
	case rate > 80:
		interpretation = "Excellent! Staying within daily limits."
	case rate > 50:
		interpretation = "Good progress. Minor overspending detected."
	default:
		interpretation = "Focus on reducing daily overspend for better financial health."
	}

	return model.SuccessMetric{
		MetricName:     "Daily Discipline Score",
		MetricValue:    math.Round(overspend),
		MetricTarget:   0,
		SuccessRate:    math.Round(rate),
		Interpretation: interpretation,
	}
}

// Professionals are scored on savings rate against a 20% target.
func evaluateProfessional(in MetricInput) model.SuccessMetric {
	m := savingsRateMetric(in)
	m.MetricName = "Savings Growth Rate"

	savingsRate := savingsRate(in)
	switch {
	case savingsRate >= professionalTarget:
		m.Interpretation = "Outstanding! You're building wealth effectively."
	case savingsRate >= professionalTarget/2:
		m.Interpretation = "On track. Consider increasing savings contributions."
	default:
		m.Interpretation = "Room for improvement. Review discretionary spending."
	}
	return m
}

// Housewives are scored on how little monthly spending varies.
func evaluateHousewife(in MetricInput) model.SuccessMetric {
	stability := 100.0
	if in.MonthlyVariance > 0 {
		stability = 0
		if in.Income > 0 {
			stability = math.Max(0, 100-in.MonthlyVariance/in.Income*100)
		}
	}
	stability = clampRate(stability)

	var interpretation string
	switch {
	case stability >= 90:
		interpretation = "Excellent! Your household budget is very consistent."
	case stability >= 70:
		interpretation = "Good stability. Minor fluctuations detected."
	default:
		interpretation = "Consider planning ahead to reduce monthly variance."
	}

	return model.SuccessMetric{
		MetricName:     "Budget Consistency Score",
		MetricValue:    math.Round(stability),
		MetricTarget:   90,
		SuccessRate:    math.Round(stability),
		Interpretation: interpretation,
	}
}

func evaluateDefault(in MetricInput) model.SuccessMetric {
	m := savingsRateMetric(in)
	m.MetricName = "Financial Health Score"
	m.Interpretation = "Track your progress to improve financial health."
	return m
}

const professionalTarget = 20.0

func savingsRate(in MetricInput) float64 {
	if in.Income <= 0 {
		return 0
	}
	return finiteOrZero(in.ActualSavings / in.Income * 100)
}

func savingsRateMetric(in MetricInput) model.SuccessMetric {
	rate := savingsRate(in)
	return model.SuccessMetric{
		MetricValue:  math.Round(rate),
		MetricTarget: professionalTarget,
		SuccessRate:  math.Round(clampRate(rate / professionalTarget * 100)),
	}
}

// finiteOrZero maps NaN and the infinities to 0 so results stay encodable.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// clampRate bounds a success rate to [0, 100]. NaN becomes 0.
func clampRate(rate float64) float64 {
	if math.IsNaN(rate) {
		return 0
	}
	return math.Min(100, math.Max(0, rate))
}
