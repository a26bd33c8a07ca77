package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/finmate/internal/common"
)

// Generator produces text for a prompt using the named model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (Generation, error)
}

// Generation is a successful model response.
type Generation struct {
	Model string
	Text  string
	// Raw is the undecoded response body, nil when it was not JSON.
	Raw json.RawMessage
}

// Default endpoint settings.
const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta2"
	DefaultModel     = "gemini-2.5-flash"
	DefaultMaxTokens = 800
)

// Config holds configuration for the generative-language client.
type Config struct {
	APIKey         string
	ProjectID      string
	BaseURL        string
	Model          string
	FallbackModels []string
	CacheTTL       time.Duration
	RateLimit      int
	Temperature    float64
	MaxTokens      int
}

// Validate reports a configuration error when credentials are absent.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: set GOOGLE_API_KEY or GEMINI_API_KEY", common.ErrMissingConfig)
	}
	if c.ProjectID == "" {
		return fmt.Errorf("%w: set GOOGLE_PROJECT_ID or GOOGLE_CLOUD_PROJECT", common.ErrMissingConfig)
	}
	return nil
}

// Chain returns the model chain described by the config.
func (c Config) Chain() ModelChain {
	primary := c.Model
	if primary == "" {
		primary = DefaultModel
	}
	return ModelChain{Primary: primary, Fallbacks: c.FallbackModels}
}
