package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/finmate/internal/model"
)

// FallbackSuggestion is returned whenever a suggestion cannot be generated.
const FallbackSuggestion = "The AI service is temporarily unavailable. Please try again later."

//go:embed templates/suggestion.tmpl
var templateFS embed.FS

var suggestionTemplate = template.Must(
	template.New("suggestion.tmpl").
		Funcs(template.FuncMap{"formatAmount": formatAmount}).
		ParseFS(templateFS, "templates/suggestion.tmpl"),
)

var roleGuidance = map[model.Role]string{
	model.RoleStudent:      "Role guidance (Student): suggest free alternatives, student discounts, or budget-friendly options. Focus on small changes that don't impact lifestyle drastically.",
	model.RoleProfessional: "Role guidance (Professional): suggest optimization and reallocation strategies. Don't restrict, but encourage smarter choices (meal prep vs dining out, carpooling vs solo commute).",
	model.RoleHousewife:    "Role guidance (Housewife): suggest bulk buying, seasonal planning, or community resources. Focus on maximizing household efficiency.",
}

// SuggestionGoal is the goal summary sent to the model.
type SuggestionGoal struct {
	Name                string  `json:"name"`
	TargetAmount        float64 `json:"targetAmount"`
	MonthlyContribution float64 `json:"monthlyContribution"`
}

// SuggestionExpense is one recent expense sent to the model.
type SuggestionExpense struct {
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
}

// SuggestionInput describes the user for a spending suggestion.
type SuggestionInput struct {
	Role     model.Role          `json:"role"`
	Goals    []SuggestionGoal    `json:"goals"`
	Expenses []SuggestionExpense `json:"expensesData"`
	Income   float64             `json:"income"`
}

// Suggestion is the caller-visible result. Fallback is set when Text is the
// fixed unavailable message.
type Suggestion struct {
	Text     string `json:"suggestion"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Suggester produces weekly spending suggestions. It never returns an error:
// failures are logged and replaced with FallbackSuggestion.
type Suggester struct {
	gen    Generator
	cache  *suggestionCache
	logger *slog.Logger
	chain  ModelChain
}

// NewSuggester creates a Suggester. A nil generator always yields the fallback.
func NewSuggester(gen Generator, chain ModelChain, cacheTTL time.Duration, logger *slog.Logger) *Suggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{
		gen:    gen,
		chain:  chain,
		cache:  newSuggestionCache(cacheTTL),
		logger: logger,
	}
}

// Close stops the cache janitor.
func (s *Suggester) Close() {
	s.cache.Close()
}

// Suggest returns a suggestion for in.
func (s *Suggester) Suggest(ctx context.Context, in SuggestionInput) Suggestion {
	if s.gen == nil {
		s.logger.Warn("suggestion generator not configured")
		return Suggestion{Text: FallbackSuggestion, Fallback: true}
	}

	key := cacheKey(in)
	if text, ok := s.cache.get(key); ok {
		s.logger.Debug("suggestion cache hit", "role", in.Role)
		return Suggestion{Text: text}
	}

	prompt, err := BuildSuggestionPrompt(in)
	if err != nil {
		s.logger.Error("failed to build suggestion prompt", "error", err)
		return Suggestion{Text: FallbackSuggestion, Fallback: true}
	}

	gen, err := GenerateWithFallback(ctx, s.gen, s.chain, prompt, s.logger)
	if err != nil {
		s.logger.Error("suggestion generation failed",
			"model", s.chain.Primary,
			"status", StatusCode(err),
			"error", err)
		return Suggestion{Text: FallbackSuggestion, Fallback: true}
	}

	text := strings.TrimSpace(gen.Text)
	if text == "" {
		s.logger.Warn("model returned no suggestion", "model", gen.Model)
		return Suggestion{Text: FallbackSuggestion, Fallback: true}
	}

	s.cache.set(key, text)
	return Suggestion{Text: text}
}

type suggestionPromptData struct {
	SuggestionInput
	Role        string
	TopCategory string
	Guidance    string
}

// BuildSuggestionPrompt renders the analyst prompt for in.
func BuildSuggestionPrompt(in SuggestionInput) (string, error) {
	role := in.Role
	if !role.Valid() {
		role = model.RoleProfessional
	}

	data := suggestionPromptData{
		SuggestionInput: in,
		Role:            string(role),
		TopCategory:     topCategory(in.Expenses),
		Guidance:        roleGuidance[role],
	}

	var buf bytes.Buffer
	if err := suggestionTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render suggestion prompt: %w", err)
	}
	return buf.String(), nil
}

// topCategory returns the category with the largest total spend. Ties go to
// the category seen first.
func topCategory(expenses []SuggestionExpense) string {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, e := range expenses {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] = totals[e.Category].Add(decimal.NewFromFloat(e.Amount))
	}

	var top string
	best := decimal.Zero
	for _, cat := range order {
		if totals[cat].GreaterThan(best) {
			top, best = cat, totals[cat]
		}
	}
	return top
}

func formatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

func cacheKey(in SuggestionInput) string {
	data, _ := json.Marshal(in)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
