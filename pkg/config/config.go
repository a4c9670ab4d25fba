// Package config defines the deckfill configuration model: YAML files with
// defaults, validation, DECKFILL_* environment overrides, and a debounced
// file watcher for live rate-limit changes. Configuration is always passed
// explicitly; there is no process-wide config instance.
package config

import "time"

// Config is the root configuration for deckfill.
type Config struct {
	// Provider selects the active provider by name from Providers.
	Provider string `yaml:"provider"`

	// Providers maps provider names to their settings. The name is
	// also the provider kind (openai, anthropic, openrouter) unless
	// Kind overrides it.
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Prompt configures the fill prompt and field mappings.
	Prompt PromptConfig `yaml:"prompt"`

	// Store configures note storage.
	Store StoreConfig `yaml:"store"`

	// Tokens configures the token cost estimator.
	Tokens TokensConfig `yaml:"tokens"`

	// Daemon configures scheduled recurring fills.
	Daemon DaemonConfig `yaml:"daemon"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProviderConfig contains settings for one LLM provider.
type ProviderConfig struct {
	// Kind selects the provider adapter. Defaults to the map key.
	Kind string `yaml:"kind"`

	// APIKey authenticates with the provider. Falls back to the
	// provider's conventional environment variable when empty.
	APIKey string `yaml:"api_key"`

	// Model is the model identifier to request.
	Model string `yaml:"model"`

	// BaseURL overrides the provider's API endpoint.
	BaseURL string `yaml:"base_url"`

	// Temperature is the sampling temperature.
	Temperature float32 `yaml:"temperature"`

	// MaxTokens caps the completion length. Zero uses the adapter's
	// default.
	MaxTokens int `yaml:"max_tokens"`

	// Timeout bounds each provider call.
	Timeout time.Duration `yaml:"timeout"`

	// RequestsPerMinute is the request-count quota for the sliding
	// one-minute window.
	RequestsPerMinute int64 `yaml:"requests_per_minute"`

	// TokensPerMinute is the token quota for the sliding one-minute
	// window.
	TokensPerMinute int64 `yaml:"tokens_per_minute"`
}

// PromptConfig configures prompt rendering and note selection.
type PromptConfig struct {
	// Template is the prompt body with {FieldName} placeholders.
	Template string `yaml:"template"`

	// FieldMappings is the "Field: description" block listing the
	// fields the model must generate.
	FieldMappings string `yaml:"field_mappings"`

	// Deck restricts fills to one deck. Empty fills all decks.
	Deck string `yaml:"deck"`

	// Limit caps the number of notes per batch. Zero means no cap.
	Limit int `yaml:"limit"`
}

// StoreConfig configures note storage.
type StoreConfig struct {
	// Backend selects the storage backend: "sqlite" or "memory".
	Backend string `yaml:"backend"`

	// SQLite configures the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains SQLite backend settings.
type SQLiteConfig struct {
	Path         string        `yaml:"path"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	WALMode      bool          `yaml:"wal_mode"`
	BusyTimeout  time.Duration `yaml:"busy_timeout"`
}

// TokensConfig configures the token cost estimator.
type TokensConfig struct {
	// CharsPerToken overrides the default characters-per-token ratio.
	CharsPerToken float64 `yaml:"chars_per_token"`

	// ModelRatios maps model names to model-specific ratios.
	ModelRatios map[string]float64 `yaml:"model_ratios"`
}

// DaemonConfig configures scheduled recurring fills.
type DaemonConfig struct {
	// Enabled turns daemon mode on.
	Enabled bool `yaml:"enabled"`

	// Schedule is the cron expression for recurring fills.
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `yaml:"level"`

	// Format selects the output format: json, text, or console.
	Format string `yaml:"format"`

	// AddSource includes the source file and line in each record.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled turns the /metrics endpoint on in daemon mode.
	Enabled bool `yaml:"enabled"`

	// Address is the listen address for the metrics endpoint.
	Address string `yaml:"address"`
}
