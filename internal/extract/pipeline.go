// Package extract turns free text such as receipt OCR output or an onboarding
// blurb into structured form fields. A generative model does the first pass;
// deterministic heuristics repair or replace whatever it gets wrong.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/finmate/internal/common"
	"github.com/Veraticus/finmate/internal/llm"
	"github.com/Veraticus/finmate/internal/model"
)

// Expense field names.
const (
	FieldAmount             = "amount"
	FieldDescription        = "description"
	FieldCategory           = "category"
	FieldCategoryNormalized = "categoryNormalized"
	FieldDate               = "date"
	FieldAmountSource       = "_amountSource"
)

// Reasons reported on degraded results.
const (
	ReasonAPIError   = "Generative API error"
	ReasonFetchError = "Generative API fetch error"
)

// Result is what the caller receives for every non-error extraction.
type Result struct {
	Parsed map[string]any `json:"parsed"`
	// ModelResponse is the upstream body, null when none was received.
	ModelResponse json.RawMessage `json:"modelResponse"`
	// Status is the upstream HTTP status of a degraded result, 0 when the
	// request never got a response.
	Status *int   `json:"status,omitempty"`
	Raw    string `json:"raw"`
	Error  string `json:"error,omitempty"`
}

// Degraded reports whether the result was built without model output.
func (r *Result) Degraded() bool {
	return r.Error != ""
}

// Pipeline runs extractions against a Generator.
type Pipeline struct {
	gen       llm.Generator
	configErr error
	logger    *slog.Logger
	chain     llm.ModelChain
}

// NewPipeline creates a pipeline. Missing credentials in cfg or a nil gen are
// not an error here; every Extract call reports them instead.
func NewPipeline(gen llm.Generator, cfg llm.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	configErr := cfg.Validate()
	if configErr == nil && gen == nil {
		configErr = fmt.Errorf("%w: generator not configured", common.ErrMissingConfig)
	}

	return &Pipeline{
		gen:       gen,
		chain:     cfg.Chain(),
		configErr: configErr,
		logger:    logger,
	}
}

// Extract parses text for form. It fails only with common.ErrMissingText or
// common.ErrMissingConfig; upstream failures produce a heuristic Result.
func (p *Pipeline) Extract(ctx context.Context, text string, form TargetForm) (*Result, error) {
	p.logger.Info("extraction requested", "text_length", len(text), "target_form", form)

	if strings.TrimSpace(text) == "" {
		return nil, common.NewUserError("Missing text", common.ErrMissingText)
	}
	if p.configErr != nil {
		return nil, p.configErr
	}

	gen, err := llm.GenerateWithFallback(ctx, p.gen, p.chain, BuildPrompt(form, text), p.logger)
	if err != nil {
		return p.degraded(form, text, err), nil
	}

	parsed := llm.ParseJSONObject(gen.Text)
	if form == FormExpense {
		resolveAmount(parsed, gen.Text, text)
		resolveDescription(parsed, text)
		resolveCategory(parsed)
	} else {
		// The model's JSON lists fixed-expense amounts, so only the input
		// text is a safe income fallback.
		normalizeOnboarding(parsed, text)
	}

	if len(parsed) == 0 {
		p.logger.Warn("model output contained no JSON object", "model", gen.Model, "output", gen.Text)
	}

	return &Result{
		Parsed:        parsed,
		Raw:           gen.Text,
		ModelResponse: gen.Raw,
	}, nil
}

// degraded builds a result from text alone after every model attempt failed.
func (p *Pipeline) degraded(form TargetForm, text string, err error) *Result {
	status := llm.StatusCode(err)
	reason := ReasonAPIError
	if status == 0 {
		reason = ReasonFetchError
	}

	common.LogError(p.logger, err, "generation failed, using heuristic extraction", common.Fields{
		"model":  p.chain.Primary,
		"status": status,
		"body":   string(llm.ErrorBody(err)),
	})

	return &Result{
		Parsed:        Heuristic(form, text),
		ModelResponse: llm.ErrorBody(err),
		Status:        &status,
		Error:         reason,
	}
}

// Heuristic extracts fields from text without a model.
func Heuristic(form TargetForm, text string) map[string]any {
	if form != FormExpense {
		return fallbackOnboarding(text)
	}

	parsed := map[string]any{
		FieldDescription:        FallbackDescription(text),
		FieldCategory:           model.CategoryOther,
		FieldCategoryNormalized: model.CategoryOther,
	}
	resolveAmount(parsed, text)
	return parsed
}
