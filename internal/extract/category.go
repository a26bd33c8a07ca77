package extract

import (
	"regexp"
	"strings"

	"github.com/Veraticus/finmate/internal/model"
)

type categoryRule struct {
	re       *regexp.Regexp
	category string
}

// categoryRules are tried in order against the lower-cased value.
var categoryRules = []categoryRule{
	{regexp.MustCompile(`food|restaurant|dine|dining|cafe|coffee|lunch|dinner|breakfast|meal|pizza|domino|burger|snack|swiggy|zomato`), "Food & Dining"},
	{regexp.MustCompile(`grocer|supermarket|vegetable|fruit|mart|shopping for groceries`), "Groceries"},
	{regexp.MustCompile(`taxi|uber|ola|bus|metro|train|transport|ride|fuel|petrol`), "Transport"},
	{regexp.MustCompile(`shopping|mall|clothes|apparel|purchase|buy`), "Shopping"},
	{regexp.MustCompile(`movie|netflix|spotify|entertainment|show|concert`), "Entertainment"},
	{regexp.MustCompile(`electric|water|bill|utility|utilities|internet|wifi|gas|electricity|recharge`), "Utilities"},
	{regexp.MustCompile(`rent|emi|loan|mortgage`), "Rent/EMI"},
	{regexp.MustCompile(`doctor|hospital|medicine|clinic|health|pharmacy`), "Healthcare"},
	{regexp.MustCompile(`tuition|course|study|education|school|college|books`), "Education"},
}

// NormalizeCategory maps raw onto the fixed expense category set. Canonical
// names pass through unchanged; anything unmatched becomes "Other".
func NormalizeCategory(raw string) string {
	r := strings.TrimSpace(raw)
	if r == "" {
		return model.CategoryOther
	}
	if c, ok := model.CanonicalCategory(r); ok {
		return c
	}

	lower := strings.ToLower(r)
	for _, rule := range categoryRules {
		if rule.re.MatchString(lower) {
			return rule.category
		}
	}
	return model.CategoryOther
}

// resolveCategory overwrites the category with its canonical form.
func resolveCategory(parsed map[string]any) {
	raw, _ := parsed[FieldCategory].(string)
	normalized := NormalizeCategory(raw)
	parsed[FieldCategory] = normalized
	parsed[FieldCategoryNormalized] = normalized
}
