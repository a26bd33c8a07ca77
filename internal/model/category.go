package model

import "strings"

// CategoryOther is the catch-all expense category.
const CategoryOther = "Other"

// ExpenseCategories is the fixed set of expense categories. Extracted and
// stored categories are always members of this set.
var ExpenseCategories = []string{
	"Food & Dining",
	"Groceries",
	"Transport",
	"Shopping",
	"Entertainment",
	"Utilities",
	"Rent/EMI",
	"Healthcare",
	"Education",
	CategoryOther,
}

// roleCategories orders the expense categories by relevance to each role.
var roleCategories = map[Role][]string{
	RoleStudent: {
		"Education",
		"Food & Dining",
		"Transport",
		"Entertainment",
		"Shopping",
		"Rent/EMI",
		"Healthcare",
		"Groceries",
		"Utilities",
		CategoryOther,
	},
	RoleProfessional: {
		"Food & Dining",
		"Transport",
		"Rent/EMI",
		"Healthcare",
		"Shopping",
		"Entertainment",
		"Education",
		"Groceries",
		"Utilities",
		CategoryOther,
	},
	RoleHousewife: {
		"Groceries",
		"Healthcare",
		"Education",
		"Utilities",
		"Shopping",
		"Food & Dining",
		"Transport",
		"Rent/EMI",
		"Entertainment",
		CategoryOther,
	},
}

// CanonicalCategory returns the allowed category that name matches, ignoring case
// and surrounding space.
func CanonicalCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range ExpenseCategories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// CategoriesForRole returns the expense categories ordered for role. Unset
// roles get the default ordering. The returned slice is a copy.
func CategoriesForRole(role Role) []string {
	cats, ok := roleCategories[role]
	if !ok {
		cats = ExpenseCategories
	}
	out := make([]string, len(cats))
	copy(out, cats)
	return out
}
