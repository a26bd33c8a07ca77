// Package llm talks to the generative-language API. It provides the text
// generation client, the ordered model fallback chain, best-effort JSON
// recovery from free-form model output, and the spending suggestion flow with
// its response cache and outbound rate limiting.
package llm
