package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Short == "" {
		t.Error("versionCmd.Short should not be empty")
	}
	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}
}

func TestRootCommandFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("root command missing --config flag")
	}
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("root command missing --verbose flag")
	}
}

func TestValidateCommand(t *testing.T) {
	content := `
provider: openai
providers:
  openai:
    api_key: sk-test
    model: gpt-4o-mini
prompt:
  template: "Word: {Front}"
  field_mappings: "Back: the translation"
store:
  backend: memory
`
	path := filepath.Join(t.TempDir(), "deckfill.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	origCfgFile := cfgFile
	cfgFile = path
	defer func() { cfgFile = origCfgFile }()

	if err := validateConfig(validateCmd, nil); err != nil {
		t.Errorf("validateConfig failed for valid config: %v", err)
	}

	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	if err := validateConfig(validateCmd, nil); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}
