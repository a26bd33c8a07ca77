package extract

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/Veraticus/finmate/internal/model"
)

// Onboarding field names.
const (
	FieldRole          = "role"
	FieldIncome        = "income"
	FieldFixedExpenses = "fixedExpenses"
)

var roleKeywordRe = regexp.MustCompile(`(?i)\b(student|professional|housewife|homemaker)\b`)

// normalizeOnboarding canonicalizes the role, resolves income against texts
// when the model gave none, clamps fixed expenses and gives each an id and a
// known category.
func normalizeOnboarding(parsed map[string]any, texts ...string) {
	if raw, ok := parsed[FieldRole].(string); ok {
		if role, known := model.ParseRole(raw); known {
			parsed[FieldRole] = string(role)
		} else {
			delete(parsed, FieldRole)
		}
	} else {
		delete(parsed, FieldRole)
	}

	resolveIncome(parsed, texts...)

	items, ok := parsed[FieldFixedExpenses].([]any)
	if !ok {
		delete(parsed, FieldFixedExpenses)
		return
	}

	expenses := make([]any, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if amount, ok := coerceAmount(entry[FieldAmount]); ok {
			entry[FieldAmount] = amount
		} else {
			entry[FieldAmount] = 0.0
		}
		category, _ := entry[FieldCategory].(string)
		entry[FieldCategory] = NormalizeCategory(category)
		if id, _ := entry["id"].(string); id == "" {
			entry["id"] = uuid.NewString()
		}
		expenses = append(expenses, entry)
	}
	parsed[FieldFixedExpenses] = expenses
}

// fallbackOnboarding guesses the role and income from raw text alone.
func fallbackOnboarding(text string) map[string]any {
	parsed := map[string]any{}
	if m := roleKeywordRe.FindStringSubmatch(text); m != nil {
		role, known := model.ParseRole(m[1])
		if !known {
			role = model.RoleHousewife
		}
		parsed[FieldRole] = string(role)
	}
	resolveIncome(parsed, text)
	return parsed
}
