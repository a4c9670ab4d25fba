// Package openai adapts the OpenAI chat completions API to the
// providers.Provider interface using the go-openai SDK.
package openai

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"deckfill/pkg/providers"
)

// EnvAPIKey is the conventional environment variable for the API key.
const EnvAPIKey = "OPENAI_API_KEY"

// Provider is the OpenAI provider adapter.
type Provider struct {
	name   string
	model  string
	client *goopenai.Client

	temperature float32
	maxTokens   int
}

// New creates an OpenAI provider. The API key comes from cfg.APIKey or,
// when that is empty, the OPENAI_API_KEY environment variable.
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

	clientCfg := goopenai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = providers.DefaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	if len(cfg.ExtraHeaders) > 0 {
		httpClient.Transport = &headerTransport{headers: cfg.ExtraHeaders}
	}
	clientCfg.HTTPClient = httpClient

	return &Provider{
		name:        cfg.Name,
		model:       cfg.Model,
		client:      goopenai.NewClientWithConfig(clientCfg),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Name returns the provider instance name.
func (p *Provider) Name() string { return p.name }

// Model returns the configured model identifier.
func (p *Provider) Model() string { return p.model }

// Complete sends one prompt as a single user message.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyError(p.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", &providers.ParseError{
			Provider: p.name,
			Cause:    errors.New("response contained no choices"),
		}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// headerTransport injects extra headers into every SDK request.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// classifyError maps SDK errors onto the provider error taxonomy.
func classifyError(name string, err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden {
			return &providers.ConfigError{
				Provider: name,
				Field:    "api_key",
				Message:  "API key rejected: " + apiErr.Message,
			}
		}
		return &providers.ProviderError{
			Provider:   name,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Cause:      err,
		}
	}
	return &providers.ProviderError{
		Provider: name,
		Message:  "request failed",
		Cause:    err,
	}
}
