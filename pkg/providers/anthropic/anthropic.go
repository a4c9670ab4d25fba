// Package anthropic adapts the Anthropic Messages API to the
// providers.Provider interface. Anthropic does not speak the OpenAI wire
// format, so the adapter is a hand-rolled JSON client on the shared
// providers.HTTPClient helper.
package anthropic

import (
	"context"
	"errors"
	"os"
	"strings"

	"deckfill/pkg/providers"
)

// EnvAPIKey is the conventional environment variable for the API key.
const EnvAPIKey = "ANTHROPIC_API_KEY"

// DefaultBaseURL is the Anthropic API endpoint.
const DefaultBaseURL = "https://api.anthropic.com"

// APIVersion is the anthropic-version header value.
const APIVersion = "2023-06-01"

// defaultMaxTokens applies when no completion cap is configured; the
// Messages API requires max_tokens to be set.
const defaultMaxTokens = 1024

// Provider is the Anthropic provider adapter.
type Provider struct {
	name    string
	model   string
	apiKey  string
	baseURL string

	temperature float32
	maxTokens   int

	client *providers.HTTPClient
}

// New creates an Anthropic provider. The API key comes from cfg.APIKey
// or the ANTHROPIC_API_KEY environment variable.
func New(cfg providers.Config) (*Provider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, &providers.ConfigError{
			Provider: cfg.Name,
			Field:    "api_key",
			Message:  "API key is required (set api_key or " + EnvAPIKey + ")",
		}
	}
	if cfg.Model == "" {
		return nil, &providers.ConfigError{
			Provider: cfg.Name,
			Field:    "model",
			Message:  "model is required",
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Provider{
		name:        cfg.Name,
		model:       cfg.Model,
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		client:      providers.NewHTTPClient(cfg.Name, cfg.Timeout),
	}, nil
}

// Name returns the provider instance name.
func (p *Provider) Name() string { return p.name }

// Model returns the configured model identifier.
func (p *Provider) Model() string { return p.model }

// messagesRequest is the Messages API request body.
type messagesRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the subset of the Messages API response this
// adapter consumes.
type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends one prompt as a single user message.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	req := messagesRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": APIVersion,
	}

	var resp messagesResponse
	if err := p.client.PostJSON(ctx, p.baseURL+"/v1/messages", req, &resp, headers); err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", &providers.ParseError{
		Provider: p.name,
		Cause:    errors.New("response contained no text content block"),
	}
}
