package llm

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finmate/internal/common"
)

func TestModelChainFallbackList(t *testing.T) {
	assert.Equal(t, DefaultFallbackModels, ModelChain{Primary: "p"}.FallbackList())
	assert.Equal(t, []string{"a", "b"}, ModelChain{Primary: "p", Fallbacks: []string{"a", "b"}}.FallbackList())
}

func TestGenerateWithFallback(t *testing.T) {
	transportErr := errors.New("request failed: connection refused")

	tests := []struct {
		responses map[string]MockResponse
		name      string
		wantText  string
		wantStat  int
		chain     ModelChain
		wantCalls []string
		wantErr   bool
	}{
		{
			name:      "primary succeeds",
			chain:     ModelChain{Primary: "primary"},
			responses: map[string]MockResponse{"primary": {Text: "ok"}},
			wantText:  "ok",
			wantCalls: []string{"primary"},
		},
		{
			name:      "transport failure does not try fallbacks",
			chain:     ModelChain{Primary: "primary", Fallbacks: []string{"alt"}},
			responses: map[string]MockResponse{"primary": {Err: transportErr}, "alt": {Text: "unused"}},
			wantErr:   true,
			wantCalls: []string{"primary"},
		},
		{
			name:  "server error does not try fallbacks",
			chain: ModelChain{Primary: "primary", Fallbacks: []string{"alt"}},
			responses: map[string]MockResponse{
				"primary": {Err: StatusError(http.StatusInternalServerError, "{}")},
				"alt":     {Text: "unused"},
			},
			wantErr:   true,
			wantStat:  http.StatusInternalServerError,
			wantCalls: []string{"primary"},
		},
		{
			name:      "not found tries configured fallbacks in order",
			chain:     ModelChain{Primary: "primary", Fallbacks: []string{"a", "b", "c"}},
			responses: map[string]MockResponse{"b": {Text: "from b"}, "c": {Text: "unused"}},
			wantText:  "from b",
			wantCalls: []string{"primary", "a", "b"},
		},
		{
			name:      "not found uses default fallbacks",
			chain:     ModelChain{Primary: "primary"},
			responses: map[string]MockResponse{"text-bison": {Text: "bison"}},
			wantText:  "bison",
			wantCalls: []string{"primary", "text-bison-001", "text-bison"},
		},
		{
			name:  "fallback transport failure moves to next fallback",
			chain: ModelChain{Primary: "primary", Fallbacks: []string{"a", "b"}},
			responses: map[string]MockResponse{
				"a": {Err: transportErr},
				"b": {Text: "from b"},
			},
			wantText:  "from b",
			wantCalls: []string{"primary", "a", "b"},
		},
		{
			name:      "all fallbacks fail returns primary error",
			chain:     ModelChain{Primary: "primary", Fallbacks: []string{"a"}},
			responses: map[string]MockResponse{"a": {Err: StatusError(http.StatusForbidden, "{}")}},
			wantErr:   true,
			wantStat:  http.StatusNotFound,
			wantCalls: []string{"primary", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockGenerator(tt.responses)
			gen, err := GenerateWithFallback(context.Background(), mock, tt.chain, "prompt", nil)

			assert.Equal(t, tt.wantCalls, mock.Calls())
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantStat, StatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, gen.Text)
		})
	}
}

func TestGenerateWithFallbackStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockGenerator(nil)
	_, err := GenerateWithFallback(ctx, mock, ModelChain{Primary: "p", Fallbacks: []string{"a"}}, "x", nil)
	require.Error(t, err)
	assert.Equal(t, []string{"p"}, mock.Calls())
}

func TestGenerateWithFallbackLogsAttempts(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewLogger(&buf, slog.LevelDebug, "json")

	gen := NewMockGenerator(map[string]MockResponse{"alt": {Text: "ok"}})
	_, err := GenerateWithFallback(context.Background(), gen, ModelChain{Primary: "primary", Fallbacks: []string{"alt"}}, "prompt", logger)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"model attempt failed"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"msg":"primary model not found, trying fallbacks"`)
	assert.Contains(t, out, `"msg":"model attempt succeeded"`)
	assert.Contains(t, out, `"msg":"fallback model succeeded"`)
	assert.Contains(t, out, `"model":"alt"`)
}
