package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assistant.Name != "Aimy" {
		t.Errorf("assistant name = %q", cfg.Assistant.Name)
	}
	if len(cfg.Models) == 0 {
		t.Error("default config has no models")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config was not written: %v", err)
	}
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := `
config_format_version: "1"
models:
  - name: local
    endpoint: http://localhost:11434/v1/chat/completions
    auth_env_var: LOCAL_KEY
    model_id: llama3
`
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Reasoning.DefaultModel != "local" {
		t.Errorf("default model = %q, want first configured model", cfg.Reasoning.DefaultModel)
	}
	if cfg.Reasoning.ClassifyTemperature != 0.1 || cfg.Reasoning.GenerateTemperature != 0.7 {
		t.Errorf("temperatures not hydrated: %+v", cfg.Reasoning)
	}
	if len(cfg.Assistant.Capabilities) == 0 {
		t.Error("capabilities not hydrated")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("models: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}
