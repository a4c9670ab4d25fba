package providers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Provider: "openai", Field: "api_key", Message: "API key is required"}
	if !strings.Contains(err.Error(), "openai") || !strings.Contains(err.Error(), "api_key") {
		t.Errorf("Unexpected error string: %s", err.Error())
	}

	noField := &ConfigError{Provider: "openai", Message: "bad settings"}
	if strings.Contains(noField.Error(), "()") {
		t.Errorf("Expected no empty field marker, got: %s", noField.Error())
	}
}

func TestProviderError_Error(t *testing.T) {
	withStatus := &ProviderError{Provider: "anthropic", StatusCode: 500, Message: "overloaded"}
	if !strings.Contains(withStatus.Error(), "status 500") {
		t.Errorf("Expected status in error string, got: %s", withStatus.Error())
	}

	withoutStatus := &ProviderError{Provider: "anthropic", Message: "connection refused"}
	if strings.Contains(withoutStatus.Error(), "status") {
		t.Errorf("Expected no status in error string, got: %s", withoutStatus.Error())
	}
}

func TestErrorClassification(t *testing.T) {
	cause := errors.New("underlying")
	wrapped := fmt.Errorf("job failed: %w", &ProviderError{Provider: "p", Message: "boom", Cause: cause})

	if !IsProviderError(wrapped) {
		t.Error("Expected IsProviderError to see through wrapping")
	}
	if IsConfigError(wrapped) || IsParseError(wrapped) {
		t.Error("Expected classification to be exclusive")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected Unwrap to expose the cause chain")
	}

	if !IsConfigError(&ConfigError{Provider: "p"}) {
		t.Error("Expected IsConfigError for direct ConfigError")
	}
	if !IsParseError(fmt.Errorf("x: %w", &ParseError{Provider: "p", Cause: cause})) {
		t.Error("Expected IsParseError through wrapping")
	}
}
