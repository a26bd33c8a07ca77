package llm

import (
	"context"
	"sync"
)

// MockResponse scripts the outcome of one model for MockGenerator.
type MockResponse struct {
	Err  error
	Text string
	Raw  []byte
}

// MockGenerator is a test Generator that answers per model id and records
// every call in order.
type MockGenerator struct {
	Responses map[string]MockResponse
	calls     []string
	mu        sync.Mutex
}

// NewMockGenerator creates a mock with the given per-model responses.
func NewMockGenerator(responses map[string]MockResponse) *MockGenerator {
	if responses == nil {
		responses = make(map[string]MockResponse)
	}
	return &MockGenerator{Responses: responses}
}

// Generate returns the scripted response for model. Unscripted models fail
// with a 404.
func (m *MockGenerator) Generate(_ context.Context, model, _ string) (Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, model)

	resp, ok := m.Responses[model]
	if !ok {
		return Generation{}, NotFoundError(model)
	}
	if resp.Err != nil {
		return Generation{}, resp.Err
	}
	return Generation{Model: model, Text: resp.Text, Raw: resp.Raw}, nil
}

// Calls returns the model ids requested so far.
func (m *MockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
