package model

// FixedExpense is a recurring monthly obligation such as rent or an EMI.
type FixedExpense struct {
	ID             string  `json:"id" bson:"id"`
	Name           string  `json:"name" bson:"name"`
	Category       string  `json:"category" bson:"category"`
	StartDate      string  `json:"startDate,omitempty" bson:"start_date,omitempty"`
	Amount         float64 `json:"amount" bson:"amount"`
	TimelineMonths int     `json:"timelineMonths,omitempty" bson:"timeline_months,omitempty"`
}

// Contribution is a dated payment towards a goal.
type Contribution struct {
	Date   string  `json:"date" bson:"date"`
	Amount float64 `json:"amount" bson:"amount"`
}

// Goal is a savings target the user contributes to monthly.
type Goal struct {
	ID                  string         `json:"id" bson:"id"`
	Name                string         `json:"name" bson:"name"`
	StartDate           string         `json:"startDate,omitempty" bson:"start_date,omitempty"`
	Contributions       []Contribution `json:"contributions" bson:"contributions"`
	TargetAmount        float64        `json:"targetAmount" bson:"target_amount"`
	CurrentAmount       float64        `json:"currentAmount" bson:"current_amount"`
	MonthlyContribution float64        `json:"monthlyContribution" bson:"monthly_contribution"`
	TimelineMonths      int            `json:"timelineMonths" bson:"timeline_months"`
}

// Investment is a holding in the user's portfolio.
type Investment struct {
	ID             string  `json:"id" bson:"id"`
	Name           string  `json:"name" bson:"name"`
	Type           string  `json:"type,omitempty" bson:"type,omitempty"`
	PurchaseDate   string  `json:"purchaseDate,omitempty" bson:"purchase_date,omitempty"`
	PurchaseAmount float64 `json:"purchaseAmount" bson:"purchase_amount"`
	CurrentValue   float64 `json:"currentValue" bson:"current_value"`
}

// EmergencyFundEntry records a deposit into or withdrawal from the emergency fund.
type EmergencyFundEntry struct {
	ID     string  `json:"id" bson:"id"`
	Date   string  `json:"date" bson:"date"`
	Type   string  `json:"type" bson:"type"`
	Notes  string  `json:"notes,omitempty" bson:"notes,omitempty"`
	Amount float64 `json:"amount" bson:"amount"`
}

// EmergencyFund tracks progress towards an emergency reserve.
type EmergencyFund struct {
	History []EmergencyFundEntry `json:"history" bson:"history"`
	Target  float64              `json:"target" bson:"target"`
	Current float64              `json:"current" bson:"current"`
}

// UserProfile is the per-user document. The allocation fields mirror the last
// computed Allocation; they are never authoritative.
type UserProfile struct {
	UserID             string         `json:"userId" bson:"user_id"`
	Name               string         `json:"name,omitempty" bson:"name,omitempty"`
	Role               Role           `json:"role" bson:"role"`
	FixedExpenses      []FixedExpense `json:"fixedExpenses" bson:"fixed_expenses"`
	Goals              []Goal         `json:"goals" bson:"goals"`
	Investments        []Investment   `json:"investments" bson:"investments"`
	EmergencyFund      EmergencyFund  `json:"emergencyFund" bson:"emergency_fund"`
	Income             float64        `json:"income" bson:"income"`
	DailySpendingLimit float64        `json:"dailySpendingLimit" bson:"daily_spending_limit"`
	MonthlyNeeds       float64        `json:"monthlyNeeds" bson:"monthly_needs"`
	MonthlyWants       float64        `json:"monthlyWants" bson:"monthly_wants"`
	MonthlySavings     float64        `json:"monthlySavings" bson:"monthly_savings"`
}
