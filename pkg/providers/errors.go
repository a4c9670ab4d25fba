package providers

import (
	"errors"
	"fmt"
)

// The error taxonomy is deliberately small. Every job failure is one of
// these three, all terminal for the job that raised them:
//
//   - ConfigError: missing or rejected credentials/settings; retrying
//     the same call cannot succeed.
//   - ProviderError: the external call failed (network, HTTP status,
//     provider-side rate limit rejection); surfaced, never retried here.
//   - ParseError: the call succeeded but its output was unusable.

// ConfigError represents missing or invalid provider configuration,
// including an API key the provider rejected.
type ConfigError struct {
	// Provider is the provider instance name.
	Provider string

	// Field is the configuration field at fault, when known.
	Field string

	// Message describes what is missing or wrong.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("provider %q configuration error (%s): %s", e.Provider, e.Field, e.Message)
	}
	return fmt.Sprintf("provider %q configuration error: %s", e.Provider, e.Message)
}

// ProviderError represents a failed external call.
type ProviderError struct {
	// Provider is the provider instance name.
	Provider string

	// StatusCode is the HTTP status code (0 if the request never got a
	// response).
	StatusCode int

	// Message is the error message, typically the provider's response body.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %q error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %q error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response that could not be interpreted: either
// malformed provider JSON or model output that did not contain the
// requested structure.
type ParseError struct {
	// Provider is the provider instance name.
	Provider string

	// Cause is the underlying parse error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %q response parse error: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsProviderError reports whether err is (or wraps) a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
