package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finmate/internal/engine"
	"github.com/Veraticus/finmate/internal/extract"
	"github.com/Veraticus/finmate/internal/llm"
	"github.com/Veraticus/finmate/internal/model"
)

type fakeSuggester struct {
	got llm.SuggestionInput
}

func (f *fakeSuggester) Suggest(_ context.Context, in llm.SuggestionInput) llm.Suggestion {
	f.got = in
	return llm.Suggestion{Text: "Cook at home twice this week."}
}

type testServer struct {
	handler   http.Handler
	gen       *llm.MockGenerator
	suggester *fakeSuggester
}

func newTestServer(t *testing.T, responses map[string]llm.MockResponse, cfg llm.Config) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gen := llm.NewMockGenerator(responses)
	suggester := &fakeSuggester{}
	api := New(Deps{
		Extractor: extract.NewPipeline(gen, cfg, logger),
		Suggester: suggester,
		Profiles:  engine.NewProfiles(engine.NewMockProfileStore(), logger),
		Logger:    logger,
	}, []string{"https://finmate.example"})

	return &testServer{handler: api.Handler(), gen: gen, suggester: suggester}
}

func validLLMConfig() llm.Config {
	return llm.Config{APIKey: "key", ProjectID: "project", Model: "primary"}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.handler.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, validLLMConfig())
	rec, body := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		responses  map[string]llm.MockResponse
		check      func(t *testing.T, body map[string]any)
		name       string
		body       string
		config     llm.Config
		wantStatus int
	}{
		{
			name:       "missing text",
			body:       `{"targetForm": "expense"}`,
			config:     validLLMConfig(),
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Missing text", body["error"])
			},
		},
		{
			name:       "malformed body",
			body:       `{"text":`,
			config:     validLLMConfig(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing credentials",
			body:       `{"text": "lunch 200"}`,
			config:     llm.Config{},
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["error"], "GOOGLE_API_KEY")
			},
		},
		{
			name:       "model answer",
			body:       `{"text": "Dominos 450", "targetForm": "expense"}`,
			config:     validLLMConfig(),
			responses:  map[string]llm.MockResponse{"primary": {Text: `{"description": "Pizza night", "amount": 450, "category": "Dominos pizza"}`, Raw: []byte(`{"candidates": []}`)}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				parsed := body["parsed"].(map[string]any)
				assert.Equal(t, "Food & Dining", parsed["category"])
				assert.InDelta(t, 450.0, parsed["amount"], 0)
				assert.Equal(t, "model", parsed["_amountSource"])
				assert.NotContains(t, body, "error")
				assert.NotNil(t, body["modelResponse"])
			},
		},
		{
			name:       "degraded answer is still 200",
			body:       `{"text": "Total 840.00 Qty 6", "targetForm": "expense"}`,
			config:     validLLMConfig(),
			responses:  map[string]llm.MockResponse{"primary": {Err: llm.StatusError(http.StatusServiceUnavailable, `{"error":{}}`)}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				parsed := body["parsed"].(map[string]any)
				assert.InDelta(t, 840.0, parsed["amount"], 0)
				assert.Equal(t, "fallback", parsed["_amountSource"])
				assert.Equal(t, extract.ReasonAPIError, body["error"])
				assert.InDelta(t, 503.0, body["status"], 0)
				assert.Equal(t, "", body["raw"])
			},
		},
		{
			name:       "oversized total is dropped",
			body:       `{"text": "Total ` + strings.Repeat("9", 400) + `", "targetForm": "expense"}`,
			config:     validLLMConfig(),
			responses:  map[string]llm.MockResponse{"primary": {Err: llm.StatusError(http.StatusServiceUnavailable, `{"error":{}}`)}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				parsed := body["parsed"].(map[string]any)
				assert.NotContains(t, parsed, "amount")
				assert.Equal(t, "none", parsed["_amountSource"])
			},
		},
		{
			name:       "degraded onboarding marks income provenance",
			body:       `{"text": "Student, pocket money 5,000"}`,
			config:     validLLMConfig(),
			responses:  map[string]llm.MockResponse{"primary": {Err: llm.StatusError(http.StatusInternalServerError, `{"error":{}}`)}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				parsed := body["parsed"].(map[string]any)
				assert.Equal(t, "Student", parsed["role"])
				assert.InDelta(t, 5000.0, parsed["income"], 0)
				assert.Equal(t, "fallback", parsed["_amountSource"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.responses, tt.config)
			rec, body := s.do(t, http.MethodPost, "/api/parse-fields", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestAllocate(t *testing.T) {
	s := newTestServer(t, nil, validLLMConfig())

	rec, body := s.do(t, http.MethodPost, "/api/budget/allocate", `{"income": 50000, "fixedExpensesTotal": 20000, "role": "professional"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 20000.0, body["monthlyNeeds"], 1e-9)
	assert.InDelta(t, 20000.0, body["monthlyWants"], 1e-9)
	assert.InDelta(t, 10000.0, body["monthlySavings"], 1e-9)
	assert.InDelta(t, 20000.0/30, body["dailyLimit"], 1e-9)

	rec, body = s.do(t, http.MethodPost, "/api/budget/allocate", `{"income": 0, "fixedExpensesTotal": 100, "role": "Student"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0.0, body["monthlyNeeds"], 0)
	assert.InDelta(t, 0.0, body["dailyLimit"], 0)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, nil, validLLMConfig())

	rec, body := s.do(t, http.MethodPost, "/api/budget/metrics",
		`{"role": "student", "income": 20000, "dailySpendingLimit": 100, "averageDailySpending": 120}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Daily Discipline Score", body["metricName"])
	assert.InDelta(t, 80.0, body["successRate"], 0)
}

func TestSuggestions(t *testing.T) {
	s := newTestServer(t, nil, validLLMConfig())

	rec, body := s.do(t, http.MethodPost, "/api/suggestions",
		`{"role": "housewife", "income": 40000, "goals": [{"name": "Festival", "targetAmount": 30000}], "expensesData": [{"category": "Groceries", "date": "2026-10-01", "amount": 900}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cook at home twice this week.", body["suggestion"])

	assert.Equal(t, model.RoleHousewife, s.suggester.got.Role)
	require.Len(t, s.suggester.got.Expenses, 1)
	assert.Equal(t, "Groceries", s.suggester.got.Expenses[0].Category)
}

func TestProfileLifecycle(t *testing.T) {
	s := newTestServer(t, nil, validLLMConfig())

	rec, _ := s.do(t, http.MethodGet, "/api/users/u1/profile", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body := s.do(t, http.MethodPut, "/api/users/u1/profile", `{
		"role": "student",
		"income": 20000,
		"fixedExpenses": [{"name": "Hostel", "category": "rent", "amount": 18000}],
		"goals": [{"id": "g1", "name": "Laptop", "targetAmount": 50000}]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Student", body["role"])
	assert.Equal(t, "u1", body["userId"])
	assert.InDelta(t, 1500.0, body["monthlyWants"], 1e-9)
	assert.InDelta(t, 50.0, body["dailySpendingLimit"], 1e-9)

	rec, _ = s.do(t, http.MethodPut, "/api/users/u1/profile", `{"role": "pilot"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(t, http.MethodPost, "/api/users/u1/investments", `{"name": "Index fund", "purchaseAmount": 1000, "currentValue": 1250}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, body["id"])

	rec, body = s.do(t, http.MethodPost, "/api/users/u1/goals/g1/contributions", `{"amount": 2000, "date": "2026-10-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.InDelta(t, 2000.0, body["currentAmount"], 0)

	rec, _ = s.do(t, http.MethodPost, "/api/users/u1/goals/missing/contributions", `{"amount": 5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = s.do(t, http.MethodGet, "/api/users/u1/portfolio", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 250.0, body["gain"], 1e-9)
	assert.InDelta(t, 25.0, body["gainPercent"], 1e-9)

	rec, body = s.do(t, http.MethodGet, "/api/users/u1/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["investments"], 1)
}

func TestRoleLookups(t *testing.T) {
	s := newTestServer(t, nil, validLLMConfig())

	rec, body := s.do(t, http.MethodGet, "/api/roles/student/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	categories := body["categories"].([]any)
	assert.Equal(t, "Education", categories[0])

	rec, body = s.do(t, http.MethodGet, "/api/roles/unknown/goal-templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["templates"], len(model.GoalTemplatesForRole(model.RoleProfessional)))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil, validLLMConfig())
	rec, _ := s.do(t, http.MethodGet, "/api/parse-fields", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, nil, validLLMConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/parse-fields", nil)
	req.Header.Set("Origin", "https://finmate.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://finmate.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartStopsOnCancel(t *testing.T) {
	api := New(Deps{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- api.Start(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWriteJSONUnencodableValue(t *testing.T) {
	a := New(Deps{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}, nil)
	rec := httptest.NewRecorder()

	a.writeJSON(rec, http.StatusOK, map[string]float64{"amount": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
