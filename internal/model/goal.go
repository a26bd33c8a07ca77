package model

// GoalTemplate is a suggested savings goal shown to new users.
type GoalTemplate struct {
	Name            string  `json:"name"`
	SuggestedAmount float64 `json:"suggestedAmount"`
	TimelineMonths  int     `json:"timelineMonths"`
}

var goalTemplates = map[Role][]GoalTemplate{
	RoleStudent: {
		{Name: "Laptop Fund", SuggestedAmount: 50000, TimelineMonths: 12},
		{Name: "Semester Fees", SuggestedAmount: 30000, TimelineMonths: 6},
		{Name: "Emergency Buffer", SuggestedAmount: 10000, TimelineMonths: 6},
		{Name: "Internship Prep", SuggestedAmount: 15000, TimelineMonths: 4},
	},
	RoleProfessional: {
		{Name: "Emergency Fund (6 months)", SuggestedAmount: 180000, TimelineMonths: 24},
		{Name: "Vacation", SuggestedAmount: 80000, TimelineMonths: 12},
		{Name: "Investment Corpus", SuggestedAmount: 200000, TimelineMonths: 18},
		{Name: "Car Down Payment", SuggestedAmount: 150000, TimelineMonths: 24},
	},
	RoleHousewife: {
		{Name: "Kids Education", SuggestedAmount: 100000, TimelineMonths: 24},
		{Name: "Family Medical Fund", SuggestedAmount: 50000, TimelineMonths: 12},
		{Name: "Festival Savings", SuggestedAmount: 30000, TimelineMonths: 10},
		{Name: "Home Improvement", SuggestedAmount: 60000, TimelineMonths: 18},
	},
}

// GoalTemplatesForRole returns suggested goals for role, defaulting to the
// Professional templates.
func GoalTemplatesForRole(role Role) []GoalTemplate {
	tpls, ok := goalTemplates[role]
	if !ok {
		tpls = goalTemplates[RoleProfessional]
	}
	out := make([]GoalTemplate, len(tpls))
	copy(out, tpls)
	return out
}
