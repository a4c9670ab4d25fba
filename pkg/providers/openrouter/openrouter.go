// Package openrouter adapts OpenRouter to the providers.Provider
// interface. OpenRouter speaks the OpenAI chat completions wire format,
// so the adapter reuses the go-openai SDK with a custom base URL and the
// attribution headers OpenRouter asks clients to send.
package openrouter

import (
	"context"
	"os"

	"deckfill/pkg/providers"
	"deckfill/pkg/providers/openai"
)

// EnvAPIKey is the conventional environment variable for the API key.
const EnvAPIKey = "OPENROUTER_API_KEY"

// DefaultBaseURL is OpenRouter's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Provider is the OpenRouter provider adapter.
type Provider struct {
	inner *openai.Provider
}

// New creates an OpenRouter provider. The API key comes from cfg.APIKey
// or the OPENROUTER_API_KEY environment variable.
func New(cfg providers.Config) (*Provider, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvAPIKey)
	}
	if cfg.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: cfg.Name,
			Field:    "api_key",
			Message:  "API key is required (set api_key or " + EnvAPIKey + ")",
		}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ExtraHeaders == nil {
		cfg.ExtraHeaders = map[string]string{
			"HTTP-Referer": "https://github.com/deckfill/deckfill",
			"X-Title":      "deckfill",
		}
	}

	inner, err := openai.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Provider{inner: inner}, nil
}

// Name returns the provider instance name.
func (p *Provider) Name() string { return p.inner.Name() }

// Model returns the configured model identifier.
func (p *Provider) Model() string { return p.inner.Model() }

// Complete sends one prompt through the OpenAI-compatible endpoint.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.inner.Complete(ctx, prompt)
}
