package extract

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finmate/internal/model"
)

// TargetForm selects which form the extracted fields are meant to fill.
type TargetForm string

const (
	// FormOnboarding extracts role, income and fixed expenses.
	FormOnboarding TargetForm = "onboarding"
	// FormExpense extracts a single expense, usually from receipt text.
	FormExpense TargetForm = "expense"
)

// ParseTargetForm maps s to a known form. Empty and unknown values select
// FormOnboarding.
func ParseTargetForm(s string) TargetForm {
	if strings.EqualFold(strings.TrimSpace(s), string(FormExpense)) {
		return FormExpense
	}
	return FormOnboarding
}

var instructions = map[TargetForm]string{
	FormOnboarding: "Produce a JSON object with keys: role (Student|Professional|Housewife), income (number), " +
		"fixedExpenses (array of {name,category,amount,timelineMonths,startDate?}). " +
		"Parse dates as ISO strings. Only output JSON, no explanation. If a field is missing, omit it.",
	FormExpense: fmt.Sprintf("Produce a JSON object with keys: description (short string, 2-6 words), "+
		"amount (number = total amount on the receipt), category (one of %s), date (ISO date if available). "+
		"Only output JSON, no explanation. The category value MUST be exactly one of the allowed values: %s. "+
		`If you cannot determine a category, return "Other". `+
		`If you see line-item prices, prefer the explicit "Total" line; otherwise sum item prices to compute the total. `+
		"Always return amount as a plain number.",
		strings.Join(model.ExpenseCategories, ", "),
		strings.Join(model.ExpenseCategories, " | ")),
}

// BuildPrompt returns the instruction for form followed by the quoted input.
func BuildPrompt(form TargetForm, text string) string {
	instruction, ok := instructions[form]
	if !ok {
		instruction = instructions[FormOnboarding]
	}
	return instruction + "\n\nInput: \"" + strings.ReplaceAll(text, `"`, `\"`) + `"`
}
