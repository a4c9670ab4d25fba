// Package providertest provides a mock implementation of the Provider
// interface for testing.
package providertest

import (
	"context"
	"sync"

	"deckfill/pkg/providers"
)

// MockProvider is a scriptable Provider: Respond controls what each
// Complete call returns, and every prompt is recorded. Safe for
// concurrent use, since batch jobs call Complete from many goroutines.
type MockProvider struct {
	name  string
	model string

	// Respond computes the response for a prompt. Defaults to echoing
	// a fixed JSON object.
	Respond func(prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// NewMockProvider creates a mock provider with the given name and model.
func NewMockProvider(name, model string) *MockProvider {
	return &MockProvider{name: name, model: model}
}

// Name returns the provider name.
func (m *MockProvider) Name() string { return m.name }

// Model returns the configured model.
func (m *MockProvider) Model() string { return m.model }

// Complete records the prompt and returns the scripted response.
func (m *MockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Respond != nil {
		return m.Respond(prompt)
	}
	return `{"Back": "mock response"}`, nil
}

// Prompts returns a copy of every prompt received so far.
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls returns the number of Complete calls received so far.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

var _ providers.Provider = (*MockProvider)(nil)
