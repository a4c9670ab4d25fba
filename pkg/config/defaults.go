package config

import "time"

// Default values for configuration fields.
const (
	// Provider defaults
	DefaultProvider          = "openai"
	DefaultProviderTimeout   = 60 * time.Second
	DefaultRequestsPerMinute = int64(60)
	DefaultTokensPerMinute   = int64(90000)

	// Store defaults
	DefaultStoreBackend       = "sqlite"
	DefaultSQLitePath         = "data/notes.db"
	DefaultSQLiteMaxOpenConns = 10
	DefaultSQLiteMaxIdleConns = 5
	DefaultSQLiteWALMode      = true
	DefaultSQLiteBusyTimeout  = 5 * time.Second

	// Tokens defaults
	DefaultCharsPerToken = 4.0

	// Daemon defaults
	DefaultSchedule = "0 * * * *"

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsAddress = "127.0.0.1:9090"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}

	for name, provider := range cfg.Providers {
		if provider.Kind == "" {
			provider.Kind = name
		}
		if provider.Timeout == 0 {
			provider.Timeout = DefaultProviderTimeout
		}
		if provider.RequestsPerMinute == 0 {
			provider.RequestsPerMinute = DefaultRequestsPerMinute
		}
		if provider.TokensPerMinute == 0 {
			provider.TokensPerMinute = DefaultTokensPerMinute
		}
		cfg.Providers[name] = provider
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.SQLite.Path == "" {
		cfg.Store.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Store.SQLite.MaxOpenConns == 0 {
		cfg.Store.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Store.SQLite.MaxIdleConns == 0 {
		cfg.Store.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if !cfg.Store.SQLite.WALMode {
		cfg.Store.SQLite.WALMode = DefaultSQLiteWALMode
	}
	if cfg.Store.SQLite.BusyTimeout == 0 {
		cfg.Store.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	if cfg.Tokens.CharsPerToken == 0 {
		cfg.Tokens.CharsPerToken = DefaultCharsPerToken
	}

	if cfg.Daemon.Schedule == "" {
		cfg.Daemon.Schedule = DefaultSchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Address == "" {
		cfg.Telemetry.Metrics.Address = DefaultMetricsAddress
	}
}
