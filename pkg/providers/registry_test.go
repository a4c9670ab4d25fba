package providers

import (
	"context"
	"testing"
)

type stubProvider struct{ name string }

func (s *stubProvider) Name() string  { return s.name }
func (s *stubProvider) Model() string { return "stub-model" }
func (s *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func TestRegistry_RegisterAndNew(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register("stub", func(cfg Config) (Provider, error) {
		return &stubProvider{name: cfg.Name}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	provider, err := registry.New("stub", Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if provider.Name() != "stub" {
		t.Errorf("Expected instance name to default to kind, got %q", provider.Name())
	}
}

func TestRegistry_DuplicateKindRejected(t *testing.T) {
	registry := NewRegistry()
	factory := func(cfg Config) (Provider, error) { return &stubProvider{}, nil }

	if err := registry.Register("stub", factory); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	if err := registry.Register("stub", factory); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
}

func TestRegistry_UnknownKindIsConfigError(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.New("nonexistent", Config{})
	if !IsConfigError(err) {
		t.Errorf("Expected ConfigError for unknown kind, got %T: %v", err, err)
	}
}

func TestRegistry_KindsSorted(t *testing.T) {
	registry := NewRegistry()
	factory := func(cfg Config) (Provider, error) { return &stubProvider{}, nil }

	for _, kind := range []string{"zeta", "alpha", "mid"} {
		if err := registry.Register(kind, factory); err != nil {
			t.Fatalf("Register %q failed: %v", kind, err)
		}
	}

	kinds := registry.Kinds()
	want := []string{"alpha", "mid", "zeta"}
	for i, kind := range kinds {
		if kind != want[i] {
			t.Errorf("Kinds()[%d] = %q, want %q", i, kind, want[i])
		}
	}
}
