package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"deckfill/pkg/ratelimit"
)

func TestDebouncer_CollapsesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("Expected 1 callback after rapid triggers, got %d", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("Expected no callback after Stop, got %d", got)
	}
}

func TestApplyLimits_UpdatesLiveLimiter(t *testing.T) {
	limiter, err := ratelimit.NewPerMinute(10, 1000)
	if err != nil {
		t.Fatalf("Failed to create limiter: %v", err)
	}

	cfg := validConfig()
	provider := cfg.Providers["openai"]
	provider.RequestsPerMinute = 42
	provider.TokensPerMinute = 4200
	cfg.Providers["openai"] = provider

	ApplyLimits(cfg, limiter, nil)

	usage := limiter.Usage()
	if usage[ratelimit.QuotaRequests].Limit != 42 {
		t.Errorf("Expected request limit 42, got %d", usage[ratelimit.QuotaRequests].Limit)
	}
	if usage[ratelimit.QuotaTokens].Limit != 4200 {
		t.Errorf("Expected token limit 4200, got %d", usage[ratelimit.QuotaTokens].Limit)
	}
}

func TestWatcher_ReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deckfill.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	watcher, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	reloaded := make(chan *Config, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, func(cfg *Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to install before writing.
	time.Sleep(100 * time.Millisecond)

	updated := validYAML + "\ndaemon:\n  enabled: false\n  schedule: \"*/5 * * * *\"\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Daemon.Schedule != "*/5 * * * *" {
			t.Errorf("Expected reloaded schedule, got %q", cfg.Daemon.Schedule)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}

func TestWatcher_InvalidConfigKeepsOldOne(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deckfill.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	watcher, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	var reloads atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, func(*Config) { reloads.Add(1) })
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("provider: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	// The broken file must not reach the callback.
	time.Sleep(500 * time.Millisecond)
	if got := reloads.Load(); got != 0 {
		t.Errorf("Expected no reload for invalid config, got %d", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}
