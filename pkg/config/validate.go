package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"deckfill/pkg/prompt"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "store.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProviders(cfg)...)
	errs = append(errs, validatePrompt(&cfg.Prompt)...)
	errs = append(errs, validateStore(&cfg.Store)...)
	errs = append(errs, validateDaemon(&cfg.Daemon)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateProviders(cfg *Config) []FieldError {
	var errs []FieldError

	if len(cfg.Providers) == 0 {
		errs = append(errs, FieldError{
			Field:   "providers",
			Message: "at least one provider must be configured",
		})
		return errs
	}

	active, ok := cfg.Providers[cfg.Provider]
	if !ok {
		errs = append(errs, FieldError{
			Field:   "provider",
			Message: fmt.Sprintf("active provider %q is not configured", cfg.Provider),
		})
	} else if active.Model == "" {
		errs = append(errs, FieldError{
			Field:   fmt.Sprintf("providers.%s.model", cfg.Provider),
			Message: "model is required for the active provider",
		})
	}

	for name, provider := range cfg.Providers {
		if provider.RequestsPerMinute <= 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.requests_per_minute", name),
				Message: "requests per minute must be positive",
			})
		}
		if provider.TokensPerMinute <= 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.tokens_per_minute", name),
				Message: "tokens per minute must be positive",
			})
		}
		if provider.Timeout < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.timeout", name),
				Message: "timeout must be positive",
			})
		}
		if provider.Temperature < 0 || provider.Temperature > 2 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.temperature", name),
				Message: "temperature must be between 0 and 2",
			})
		}
	}

	return errs
}

func validatePrompt(cfg *PromptConfig) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(cfg.Template) == "" {
		errs = append(errs, FieldError{
			Field:   "prompt.template",
			Message: "prompt template is required",
		})
	}
	if len(prompt.ParseFieldMappings(cfg.FieldMappings)) == 0 {
		errs = append(errs, FieldError{
			Field:   "prompt.field_mappings",
			Message: "at least one \"Field: description\" mapping is required",
		})
	}
	if cfg.Limit < 0 {
		errs = append(errs, FieldError{
			Field:   "prompt.limit",
			Message: "limit must be non-negative",
		})
	}

	return errs
}

func validateStore(cfg *StoreConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "sqlite":
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{
				Field:   "store.sqlite.path",
				Message: "database path is required",
			})
		}
	case "memory":
	default:
		errs = append(errs, FieldError{
			Field:   "store.backend",
			Message: fmt.Sprintf("unknown backend %q (must be sqlite or memory)", cfg.Backend),
		})
	}

	return errs
}

func validateDaemon(cfg *DaemonConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "daemon.schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (must be json, text, or console)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.address",
			Message: "metrics address is required when metrics are enabled",
		})
	}

	return errs
}
