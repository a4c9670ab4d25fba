package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{
		Provider: "openai",
		Providers: map[string]ProviderConfig{
			"openai": {Model: "gpt-4o-mini"},
		},
		Prompt: PromptConfig{
			Template:      "Word: {Front}",
			FieldMappings: "Back: the translation",
		},
		Store: StoreConfig{Backend: "memory"},
	}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Prompt.Template = ""
	cfg.Prompt.FieldMappings = ""
	cfg.Store.Backend = "oracle"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 3 {
		t.Errorf("Expected 3 field errors, got %d: %v", len(verr.Errors), verr.Errors)
	}
}

func TestValidate_Providers(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			"no providers",
			func(c *Config) { c.Providers = nil },
			"providers",
		},
		{
			"unknown active provider",
			func(c *Config) { c.Provider = "ghost" },
			"provider",
		},
		{
			"missing model",
			func(c *Config) {
				p := c.Providers["openai"]
				p.Model = ""
				c.Providers["openai"] = p
			},
			"providers.openai.model",
		},
		{
			"non-positive rpm",
			func(c *Config) {
				p := c.Providers["openai"]
				p.RequestsPerMinute = -1
				c.Providers["openai"] = p
			},
			"providers.openai.requests_per_minute",
		},
		{
			"non-positive tpm",
			func(c *Config) {
				p := c.Providers["openai"]
				p.TokensPerMinute = 0
				c.Providers["openai"] = p
			},
			"providers.openai.tokens_per_minute",
		},
		{
			"temperature out of range",
			func(c *Config) {
				p := c.Providers["openai"]
				p.Temperature = 3
				c.Providers["openai"] = p
			},
			"providers.openai.temperature",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Expected error mentioning %q, got %v", tc.field, err)
			}
		})
	}
}

func TestValidate_DaemonSchedule(t *testing.T) {
	cfg := validConfig()
	cfg.Daemon.Enabled = true
	cfg.Daemon.Schedule = "not a cron"

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "daemon.schedule") {
		t.Errorf("Expected daemon.schedule error, got %v", err)
	}

	// Disabled daemon skips the schedule check entirely.
	cfg.Daemon.Enabled = false
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected disabled daemon to skip schedule validation, got %v", err)
	}
}

func TestValidate_SQLiteRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Backend = "sqlite"
	cfg.Store.SQLite.Path = ""

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "store.sqlite.path") {
		t.Errorf("Expected store.sqlite.path error, got %v", err)
	}
}

func TestFieldError_Format(t *testing.T) {
	err := FieldError{Field: "store.backend", Message: "unknown backend"}
	if err.Error() != "store.backend: unknown backend" {
		t.Errorf("Unexpected format: %q", err.Error())
	}
}
