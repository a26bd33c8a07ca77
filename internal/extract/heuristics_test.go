package extract

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finmate/internal/model"
)

func TestAmountFromText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "total keyword beats larger numbers", input: "Total 840.00 Qty 6", want: 840, wantOK: true},
		{name: "largest positive number", input: "250 180 90", want: 250, wantOK: true},
		{name: "last total line wins", input: "Total Qty: 6\nTotal 840.00", want: 840, wantOK: true},
		{name: "subtotal is not a total", input: "Subtotal 700 Tax 900", want: 900, wantOK: true},
		{name: "thousands separators", input: "Grand TOTAL: Rs 1,234.50", want: 1234.5, wantOK: true},
		{name: "zeros are ignored", input: "0 0.00", wantOK: false},
		{name: "no numbers", input: "coffee with friends", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "number glued to total", input: "TOTAL840.00 Qty 6 Item 1200", want: 840, wantOK: true},
		{name: "item count footer after total", input: "Total 840.00\nTotal Items 6", want: 840, wantOK: true},
		{name: "oversized total falls back to largest", input: "Total " + strings.Repeat("9", 400) + " paid 120", want: 120, wantOK: true},
		{name: "oversized numbers only", input: strings.Repeat("9", 400), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AmountFromText(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		value  any
		name   string
		want   float64
		wantOK bool
	}{
		{name: "number", value: 42.5, want: 42.5, wantOK: true},
		{name: "numeric string", value: "1,250.50", want: 1250.5, wantOK: true},
		{name: "currency string", value: "₹840", want: 840, wantOK: true},
		{name: "negative", value: -3.0, wantOK: false},
		{name: "negative string", value: "-3", wantOK: false},
		{name: "garbage string", value: "lots", wantOK: false},
		{name: "bool", value: true, wantOK: false},
		{name: "nil", value: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceAmount(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestResolveAmount(t *testing.T) {
	t.Run("model amount", func(t *testing.T) {
		parsed := map[string]any{"total": "99.5"}
		assert.Equal(t, SourceModel, resolveAmount(parsed, "Total 10"))
		assert.InDelta(t, 99.5, parsed[FieldAmount], 0)
		assert.Equal(t, "model", parsed[FieldAmountSource])
	})

	t.Run("invalid model amount falls back in order", func(t *testing.T) {
		parsed := map[string]any{"amount": "n/a"}
		assert.Equal(t, SourceFallback, resolveAmount(parsed, "no digits here", "Total 840.00 Qty 6"))
		assert.InDelta(t, 840.0, parsed[FieldAmount], 0)
		assert.Equal(t, "fallback", parsed[FieldAmountSource])
	})

	t.Run("nothing found", func(t *testing.T) {
		parsed := map[string]any{"amount": -1.0}
		assert.Equal(t, SourceNone, resolveAmount(parsed, "", "lunch"))
		assert.NotContains(t, parsed, FieldAmount)
		assert.Equal(t, "none", parsed[FieldAmountSource])
	})
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Dominos pizza", want: "Food & Dining"},
		{input: "xyz123", want: "Other"},
		{input: "", want: "Other"},
		{input: "  Groceries ", want: "Groceries"},
		{input: "groceries", want: "Groceries"},
		{input: "Weekly supermarket run", want: "Groceries"},
		{input: "Uber ride", want: "Transport"},
		{input: "New clothes", want: "Shopping"},
		{input: "Netflix", want: "Entertainment"},
		{input: "Electricity bill", want: "Utilities"},
		{input: "home loan", want: "Rent/EMI"},
		{input: "Pharmacy", want: "Healthcare"},
		{input: "College tuition", want: "Education"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.input))
		})
	}
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	for _, c := range model.ExpenseCategories {
		assert.Equal(t, c, NormalizeCategory(c))
		assert.Equal(t, c, NormalizeCategory(NormalizeCategory(c)))
	}
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "one two three four five six", ShortDescription("one  two\nthree four five six seven"))
	assert.Equal(t, "Dinner", ShortDescription("  Dinner "))
	assert.Equal(t, "Big Bazaar Receipt Total 840 00", FallbackDescription("Big Bazaar - Receipt!\nTotal: 840.00 Qty 6"))
	assert.Equal(t, DefaultDescription, FallbackDescription("!!! ..."))
}

func TestParseTargetForm(t *testing.T) {
	assert.Equal(t, FormExpense, ParseTargetForm("expense"))
	assert.Equal(t, FormExpense, ParseTargetForm(" Expense "))
	assert.Equal(t, FormOnboarding, ParseTargetForm(""))
	assert.Equal(t, FormOnboarding, ParseTargetForm("payroll"))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(FormExpense, `Cafe "Blue" 120`)
	assert.Contains(t, prompt, `prefer the explicit "Total" line`)
	assert.Contains(t, prompt, "Food & Dining | Groceries")
	assert.Contains(t, prompt, "\n\nInput: \"Cafe \\\"Blue\\\" 120\"")

	onboarding := BuildPrompt(TargetForm("unknown"), "hi")
	assert.Contains(t, onboarding, "role (Student|Professional|Housewife)")
}

func TestHeuristicAmountIsAlwaysFinite(t *testing.T) {
	huge := strings.Repeat("9", 400)

	for _, form := range []TargetForm{FormExpense, FormOnboarding} {
		t.Run(string(form), func(t *testing.T) {
			parsed := Heuristic(form, "Total "+huge)
			for _, field := range []string{FieldAmount, FieldIncome} {
				if v, ok := parsed[field].(float64); ok {
					assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "%s = %v", field, v)
				}
			}
			assert.Equal(t, "none", parsed[FieldAmountSource])

			_, err := json.Marshal(&Result{Parsed: parsed})
			require.NoError(t, err)
		})
	}
}
