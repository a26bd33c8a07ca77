package model

// BudgetSplit holds the needs/wants/savings fractions for a role. The three
// fractions always sum to 1.
type BudgetSplit struct {
	NeedsPercent   float64 `json:"needsPercent"`
	WantsPercent   float64 `json:"wantsPercent"`
	SavingsPercent float64 `json:"savingsPercent"`
}

// Allocation is the monthly budget derived from income, fixed expenses and role.
type Allocation struct {
	MonthlyNeeds   float64 `json:"monthlyNeeds"`
	MonthlyWants   float64 `json:"monthlyWants"`
	MonthlySavings float64 `json:"monthlySavings"`
	DailyLimit     float64 `json:"dailyLimit"`
}

// SuccessMetric is a role-specific score with a human-readable interpretation.
type SuccessMetric struct {
	MetricName     string  `json:"metricName"`
	Interpretation string  `json:"interpretation"`
	MetricValue    float64 `json:"metricValue"`
	MetricTarget   float64 `json:"metricTarget"`
	SuccessRate    float64 `json:"successRate"`
}

// PortfolioMetrics summarizes a set of investments.
type PortfolioMetrics struct {
	TotalInvested float64 `json:"totalInvested"`
	CurrentValue  float64 `json:"currentValue"`
	Gain          float64 `json:"gain"`
	GainPercent   float64 `json:"gainPercent"`
}
