// Package providerfactory wires the built-in provider adapters into a
// registry. It exists so that pkg/providers stays import-cycle free: the
// adapters import pkg/providers, and this package imports both.
package providerfactory

import (
	"deckfill/pkg/providers"
	"deckfill/pkg/providers/anthropic"
	"deckfill/pkg/providers/openai"
	"deckfill/pkg/providers/openrouter"
)

// Default returns a registry with every built-in provider kind.
func Default() *providers.Registry {
	registry := providers.NewRegistry()

	// Registration of built-in kinds cannot collide.
	_ = registry.Register("openai", func(cfg providers.Config) (providers.Provider, error) {
		return openai.New(cfg)
	})
	_ = registry.Register("anthropic", func(cfg providers.Config) (providers.Provider, error) {
		return anthropic.New(cfg)
	})
	_ = registry.Register("openrouter", func(cfg providers.Config) (providers.Provider, error) {
		return openrouter.New(cfg)
	})

	return registry
}
