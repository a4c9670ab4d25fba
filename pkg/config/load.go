package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention DECKFILL_SECTION_FIELD (e.g., DECKFILL_STORE_SQLITE_PATH) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("DECKFILL_PROVIDER"); val != "" {
		cfg.Provider = val
	}

	for name := range cfg.Providers {
		applyProviderEnvOverrides(cfg, name)
	}

	if val := os.Getenv("DECKFILL_PROMPT_DECK"); val != "" {
		cfg.Prompt.Deck = val
	}
	if val := os.Getenv("DECKFILL_PROMPT_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Prompt.Limit = i
		}
	}

	if val := os.Getenv("DECKFILL_STORE_BACKEND"); val != "" {
		cfg.Store.Backend = val
	}
	if val := os.Getenv("DECKFILL_STORE_SQLITE_PATH"); val != "" {
		cfg.Store.SQLite.Path = val
	}

	if val := os.Getenv("DECKFILL_DAEMON_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Daemon.Enabled = b
		}
	}
	if val := os.Getenv("DECKFILL_DAEMON_SCHEDULE"); val != "" {
		cfg.Daemon.Schedule = val
	}

	if val := os.Getenv("DECKFILL_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("DECKFILL_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("DECKFILL_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("DECKFILL_TELEMETRY_METRICS_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.Address = val
	}
}

// applyProviderEnvOverrides applies environment variable overrides for a
// specific provider. Provider environment variables follow the format
// DECKFILL_PROVIDERS_<NAME>_<FIELD> where NAME is the uppercase provider
// name.
func applyProviderEnvOverrides(cfg *Config, providerName string) {
	provider := cfg.Providers[providerName]

	prefix := fmt.Sprintf("DECKFILL_PROVIDERS_%s_", strings.ToUpper(providerName))

	modified := false

	if val := os.Getenv(prefix + "API_KEY"); val != "" {
		provider.APIKey = val
		modified = true
	}
	if val := os.Getenv(prefix + "MODEL"); val != "" {
		provider.Model = val
		modified = true
	}
	if val := os.Getenv(prefix + "BASE_URL"); val != "" {
		provider.BaseURL = val
		modified = true
	}
	if val := os.Getenv(prefix + "TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			provider.Timeout = d
			modified = true
		}
	}
	if val := os.Getenv(prefix + "REQUESTS_PER_MINUTE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			provider.RequestsPerMinute = i
			modified = true
		}
	}
	if val := os.Getenv(prefix + "TOKENS_PER_MINUTE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			provider.TokensPerMinute = i
			modified = true
		}
	}

	if modified {
		cfg.Providers[providerName] = provider
	}
}
