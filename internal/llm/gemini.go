package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/googleapi"
)

// GeminiClient calls the generateText method of the generative-language API.
type GeminiClient struct {
	httpClient  *http.Client
	limiter     *rateLimiter
	apiKey      string
	baseURL     string
	temperature float64
	maxTokens   int
}

// NewGeminiClient creates a new client. It fails with common.ErrMissingConfig
// when credentials are absent.
func NewGeminiClient(cfg Config) (*GeminiClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	c := &GeminiClient{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		// No client timeout: requests are bounded by the caller's context.
		httpClient: &http.Client{},
	}
	if cfg.RateLimit > 0 {
		c.limiter = newRateLimiter(cfg.RateLimit)
	}
	return c, nil
}

type generateTextRequest struct {
	Prompt          textPrompt `json:"prompt"`
	Temperature     float64    `json:"temperature"`
	MaxOutputTokens int        `json:"maxOutputTokens"`
}

type textPrompt struct {
	Text string `json:"text"`
}

// generateTextResponse accepts both candidates[0].content and output[0].content.
type generateTextResponse struct {
	Candidates []struct {
		Content json.RawMessage `json:"content"`
		Output  string          `json:"output"`
	} `json:"candidates"`
	Output []struct {
		Content json.RawMessage `json:"content"`
	} `json:"output"`
}

func (r generateTextResponse) text() string {
	if len(r.Candidates) > 0 {
		if text := contentText(r.Candidates[0].Content); text != "" {
			return text
		}
		if r.Candidates[0].Output != "" {
			return r.Candidates[0].Output
		}
	}
	if len(r.Output) > 0 {
		return contentText(r.Output[0].Content)
	}
	return ""
}

// contentText decodes content that is either a plain string or a parts object.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var parts struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	texts := make([]string, 0, len(parts.Parts))
	for _, p := range parts.Parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "")
}

// Generate sends prompt to modelID. Non-2xx responses are returned as
// *googleapi.Error carrying the status code and body.
func (c *GeminiClient) Generate(ctx context.Context, modelID, prompt string) (Generation, error) {
	if c.limiter != nil {
		if err := c.limiter.wait(ctx); err != nil {
			return Generation{}, err
		}
	}

	jsonBody, err := json.Marshal(generateTextRequest{
		Prompt:          textPrompt{Text: prompt},
		Temperature:     c.temperature,
		MaxOutputTokens: c.maxTokens,
	})
	if err != nil {
		return Generation{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateText", c.baseURL, url.PathEscape(modelID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return Generation{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Generation{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := googleapi.CheckResponse(resp); err != nil {
		return Generation{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Generation{}, fmt.Errorf("failed to read response: %w", err)
	}

	gen := Generation{Model: modelID}
	var response generateTextResponse
	if err := json.Unmarshal(body, &response); err != nil {
		// A 2xx with an undecodable body still counts as an answer; the caller
		// falls back to heuristics on the empty text.
		return gen, nil
	}

	gen.Text = response.text()
	gen.Raw = json.RawMessage(body)
	return gen, nil
}
