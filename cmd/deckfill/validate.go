package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deckfill/pkg/config"
	"deckfill/pkg/prompt"
	"deckfill/pkg/telemetry/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file without running anything.

Defaults and DECKFILL_* environment overrides are applied first, so the
check covers the configuration exactly as "deckfill run" would see it.

Examples:
  # Validate the default config file
  deckfill validate

  # Validate a specific file
  deckfill validate --config /etc/deckfill/deckfill.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Configuration valid: %s\n", cfgFile)

	providerCfg := cfg.Providers[cfg.Provider]
	fmt.Printf("  provider:   %s (%s)\n", cfg.Provider, providerCfg.Model)
	if providerCfg.APIKey != "" {
		fmt.Printf("  api key:    %s\n", logging.RedactAPIKey(providerCfg.APIKey))
	} else {
		fmt.Println("  api key:    from environment")
	}
	fmt.Printf("  limits:     %d req/min, %d tokens/min\n",
		providerCfg.RequestsPerMinute, providerCfg.TokensPerMinute)
	fmt.Printf("  store:      %s\n", cfg.Store.Backend)

	mappings := prompt.ParseFieldMappings(cfg.Prompt.FieldMappings)
	fmt.Printf("  fields:     %d mapped", len(mappings))
	for _, m := range mappings {
		fmt.Printf("\n    - %s: %s", m.Field, m.Description)
	}
	fmt.Println()

	if cfg.Daemon.Enabled {
		fmt.Printf("  schedule:   %s\n", cfg.Daemon.Schedule)
	}

	return nil
}
