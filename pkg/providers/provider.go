// Package providers defines the LLM provider abstraction: thin
// request/response wrappers around third-party completion APIs.
//
// Providers are deliberately minimal collaborators. Throttling lives in
// pkg/ratelimit, batch orchestration in pkg/batch, and retries are out of
// scope: a failed call surfaces as a typed error and the job that made it
// is reported failed.
package providers

import (
	"context"
	"time"
)

// Provider is a thin client for one LLM completion API.
//
// Implementations must be safe for concurrent use: a single Provider
// instance is shared by every job in a batch.
type Provider interface {
	// Name returns the provider's configured instance name (e.g.
	// "openai"), used in logs and error messages.
	Name() string

	// Model returns the model identifier requests are sent to.
	Model() string

	// Complete sends one prompt and returns the model's text response.
	// Errors are one of ConfigError, ProviderError, or ParseError.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config contains the common configuration for a provider instance.
type Config struct {
	// Name is the instance name used in logs and errors.
	Name string

	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string

	// APIKey authenticates requests. When empty, the provider falls
	// back to its conventional environment variable.
	APIKey string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// Temperature is the sampling temperature passed through verbatim.
	Temperature float32

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int

	// Timeout bounds each HTTP request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// ExtraHeaders are added to every request. Used by OpenAI-compatible
	// endpoints that want attribution headers.
	ExtraHeaders map[string]string
}

// DefaultTimeout is the per-request timeout used when none is configured.
const DefaultTimeout = 60 * time.Second
