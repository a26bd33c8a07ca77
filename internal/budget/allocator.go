// Package budget implements the role-based needs/wants/savings allocation and
// the success metrics evaluated against it. Everything here is pure.
package budget

import (
	"github.com/Veraticus/finmate/internal/model"
)

// DaysPerMonth is the fixed month length used for the daily limit.
const DaysPerMonth = 30

var splits = map[model.Role]model.BudgetSplit{
	model.RoleStudent:      {NeedsPercent: 0.60, WantsPercent: 0.30, SavingsPercent: 0.10},
	model.RoleProfessional: {NeedsPercent: 0.50, WantsPercent: 0.30, SavingsPercent: 0.20},
	model.RoleHousewife:    {NeedsPercent: 0.55, WantsPercent: 0.25, SavingsPercent: 0.20},
}

// SplitFor returns the budget split for role. Unset or unknown roles use the
// Professional split.
func SplitFor(role model.Role) model.BudgetSplit {
	if split, ok := splits[role]; ok {
		return split
	}
	return splits[model.RoleProfessional]
}

// Allocate divides income into needs, wants and savings.
//
// Fixed expenses are always the needs figure, even when they exceed income.
// While they fit under the role's needs threshold, wants and savings get their
// role targets and any leftover goes to wants. Past the threshold, whatever
// income remains is split in the role's wants:savings ratio.
func Allocate(income, fixedExpensesTotal float64, role model.Role) model.Allocation {
	if income <= 0 {
		return model.Allocation{}
	}

	split := SplitFor(role)
	needs := fixedExpensesTotal
	needsThreshold := income * split.NeedsPercent

	var wants, savings float64
	if needs <= needsThreshold {
		wantsTarget := income * split.WantsPercent
		savingsTarget := income * split.SavingsPercent

		wants = wantsTarget
		if remainder := income - (needs + wantsTarget + savingsTarget); remainder > 0 {
			wants += remainder
		}
		savings = savingsTarget
	} else {
		disposable := max(income-needs, 0)
		if disposable > 0 {
			flex := split.WantsPercent + split.SavingsPercent
			wants = disposable * (split.WantsPercent / flex)
			savings = disposable * (split.SavingsPercent / flex)
		}
	}

	return model.Allocation{
		MonthlyNeeds:   needs,
		MonthlyWants:   wants,
		MonthlySavings: savings,
		DailyLimit:     DailyLimit(wants),
	}
}

// DailyLimit spreads the monthly wants budget over a 30-day month.
func DailyLimit(wants float64) float64 {
	if wants <= 0 {
		return 0
	}
	return wants / DaysPerMonth
}
