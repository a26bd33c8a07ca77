package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finmate/internal/model"
)

func sampleInput() SuggestionInput {
	return SuggestionInput{
		Role:   model.RoleStudent,
		Income: 20000,
		Goals: []SuggestionGoal{
			{Name: "Laptop Fund", TargetAmount: 50000, MonthlyContribution: 2000},
		},
		Expenses: []SuggestionExpense{
			{Category: "Food & Dining", Date: "2026-10-01", Amount: 450},
			{Category: "Education", Date: "2026-10-02", Amount: 300},
			{Category: "Food & Dining", Date: "2026-10-03", Amount: 200},
		},
	}
}

func TestBuildSuggestionPrompt(t *testing.T) {
	prompt, err := BuildSuggestionPrompt(sampleInput())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Role: Student")
	assert.Contains(t, prompt, "Monthly Income: ₹20000.00")
	assert.Contains(t, prompt, "Save for 'Laptop Fund' (Target: ₹50000.00, Monthly Contribution: ₹2000.00)")
	assert.Contains(t, prompt, "Category: Education")
	assert.Contains(t, prompt, "highest spend is 'Food & Dining'")
	assert.Contains(t, prompt, "student discounts")
}

func TestBuildSuggestionPromptEmptyInput(t *testing.T) {
	prompt, err := BuildSuggestionPrompt(SuggestionInput{})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Role: Professional")
	assert.Contains(t, prompt, "none recorded")
	assert.Contains(t, prompt, "no expenses recorded")
	assert.NotContains(t, prompt, "highest spend")
}

func TestTopCategory(t *testing.T) {
	assert.Equal(t, "Food & Dining", topCategory(sampleInput().Expenses))
	assert.Empty(t, topCategory(nil))
	assert.Equal(t, "A", topCategory([]SuggestionExpense{{Category: "A", Amount: 5}, {Category: "B", Amount: 5}}))
}

func TestSuggest(t *testing.T) {
	mock := NewMockGenerator(map[string]MockResponse{
		"primary": {Text: "  Use your student discount on books this week.  "},
	})
	s := NewSuggester(mock, ModelChain{Primary: "primary"}, time.Hour, nil)
	defer s.Close()

	got := s.Suggest(context.Background(), sampleInput())
	assert.Equal(t, Suggestion{Text: "Use your student discount on books this week."}, got)

	// Second call is served from the cache.
	got = s.Suggest(context.Background(), sampleInput())
	assert.False(t, got.Fallback)
	assert.Equal(t, []string{"primary"}, mock.Calls())
}

func TestSuggestFallbacks(t *testing.T) {
	tests := []struct {
		gen  Generator
		name string
	}{
		{name: "no generator", gen: nil},
		{name: "upstream error", gen: NewMockGenerator(map[string]MockResponse{"primary": {Err: errors.New("boom")}})},
		{name: "empty output", gen: NewMockGenerator(map[string]MockResponse{"primary": {Text: "   "}})},
		{name: "model not found anywhere", gen: NewMockGenerator(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSuggester(tt.gen, ModelChain{Primary: "primary"}, time.Hour, nil)
			defer s.Close()

			got := s.Suggest(context.Background(), sampleInput())
			assert.Equal(t, FallbackSuggestion, got.Text)
			assert.True(t, got.Fallback)
			assert.Zero(t, s.cache.size())
		})
	}
}
