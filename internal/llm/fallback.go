package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/Veraticus/finmate/internal/common"
)

// DefaultFallbackModels are tried after a "not found" when none are configured.
var DefaultFallbackModels = []string{"text-bison-001", "text-bison"}

// ModelChain is the primary model plus the ordered alternates tried when the
// primary is not found.
type ModelChain struct {
	Primary   string
	Fallbacks []string
}

// FallbackList returns the configured fallbacks or the built-in defaults.
func (c ModelChain) FallbackList() []string {
	if len(c.Fallbacks) == 0 {
		return DefaultFallbackModels
	}
	return c.Fallbacks
}

// GenerateWithFallback calls the primary model once. Only a "not found" status
// moves on to the fallback models, which are tried in order until one
// succeeds. There is no retry. When nothing succeeds the primary's error is
// returned.
func GenerateWithFallback(ctx context.Context, gen Generator, chain ModelChain, prompt string, logger *slog.Logger) (Generation, error) {
	if logger == nil {
		logger = slog.Default()
	}

	result, err := gen.Generate(ctx, chain.Primary, prompt)
	logAttempt(logger, chain.Primary, err)
	if err == nil {
		return result, nil
	}
	if !IsNotFound(err) {
		return Generation{}, err
	}

	common.LogWarn(logger, "primary model not found, trying fallbacks", common.Fields{
		"model":     chain.Primary,
		"fallbacks": chain.FallbackList(),
	})

	for _, alt := range chain.FallbackList() {
		if ctx.Err() != nil {
			break
		}
		altResult, altErr := gen.Generate(ctx, alt, prompt)
		logAttempt(logger, alt, altErr)
		if altErr == nil {
			common.LogInfo(logger, "fallback model succeeded", common.Fields{"model": alt})
			return altResult, nil
		}
	}

	return Generation{}, err
}

func logAttempt(logger *slog.Logger, model string, err error) {
	if err == nil {
		common.LogDebug(logger, "model attempt succeeded", common.Fields{"model": model})
		return
	}
	common.LogWarn(logger, "model attempt failed", common.Fields{
		"model":  model,
		"status": StatusCode(err),
		"body":   string(ErrorBody(err)),
		"error":  err.Error(),
	})
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode extracts the upstream HTTP status from err, or 0 when the request
// never got a response.
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// ErrorBody returns the upstream response body carried by err when it is
// valid JSON, nil otherwise.
func ErrorBody(err error) json.RawMessage {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Body == "" {
		return nil
	}
	if !json.Valid([]byte(gerr.Body)) {
		return nil
	}
	return json.RawMessage(gerr.Body)
}

// StatusError builds the error the client returns for an upstream status.
func StatusError(code int, body string) error {
	return &googleapi.Error{Code: code, Body: body, Message: http.StatusText(code)}
}

// NotFoundError is the upstream error for an unknown model id.
func NotFoundError(model string) error {
	return StatusError(http.StatusNotFound, `{"error":{"code":404,"message":"models/`+model+` is not found","status":"NOT_FOUND"}}`)
}
