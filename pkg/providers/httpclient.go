package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient is the shared JSON request helper for hand-rolled provider
// adapters (those without an SDK in the dependency set). It owns a pooled
// http.Client and maps HTTP failures onto the provider error taxonomy.
//
// There is no retry logic: callers surface failures per job and the batch
// moves on.
type HTTPClient struct {
	provider string
	client   *http.Client
}

// NewHTTPClient creates a JSON client for the named provider.
func NewHTTPClient(provider string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPClient{
		provider: provider,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// PostJSON sends reqBody as JSON and decodes a 2xx response into respBody.
//
// Status mapping: 401/403 become ConfigError (the key is wrong; retrying
// is pointless), anything else non-2xx becomes ProviderError carrying the
// status and response body, and an undecodable success body becomes
// ParseError.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, reqBody, respBody any, headers map[string]string) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &ProviderError{
			Provider: c.provider,
			Message:  "request failed",
			Cause:    err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    "reading response body failed",
			Cause:      err,
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &ConfigError{
			Provider: c.provider,
			Field:    "api_key",
			Message:  fmt.Sprintf("API key rejected (status %d)", resp.StatusCode),
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &ProviderError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return &ParseError{
			Provider: c.provider,
			Cause:    err,
		}
	}
	return nil
}
