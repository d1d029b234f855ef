// Package config loads the YAML configuration file, writing a commented
// default on first run.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

// EnvOverride names the environment variable that relocates the config file.
const EnvOverride = "AIMY_CONFIG"

// FileLoader loads YAML configuration from ~/.aimy/config.yaml
// (overridable via AIMY_CONFIG or an explicit path).
type FileLoader struct {
	overridePath string
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvOverride); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".aimy", "config.yaml")
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig is what first run writes to disk.
func DefaultConfig() domain.Config {
	home := userHomeDir()
	return domain.Config{
		ConfigFormatVersion: "1",
		Assistant: domain.AssistantSettings{
			Name:    "Aimy",
			Type:    "personal assistant",
			Version: "1.0.0",
		},
		Reasoning: domain.ReasoningSettings{
			DefaultModel:            "gpt-4o-mini",
			TimeoutSeconds:          8,
			ClassifyTemperature:     0.1,
			GenerateTemperature:     0.7,
			RequestsPerSecond:       2,
			ClassificationCacheSize: 100,
		},
		Models: []domain.ModelDefinition{
			{
				Name:       "gpt-4o-mini",
				Endpoint:   "https://api.openai.com/v1/chat/completions",
				AuthEnvVar: "OPENAI_API_KEY",
				ModelID:    "gpt-4o-mini",
				MaxTokens:  1024,
			},
			{
				Name:       "claude-sonnet",
				Endpoint:   "https://api.anthropic.com/v1/messages",
				AuthEnvVar: "ANTHROPIC_API_KEY",
				ModelID:    "claude-3-5-sonnet-20240620",
				MaxTokens:  1024,
				APIFormat: domain.APIFormat{
					AuthHeaderName:    "x-api-key",
					SystemMessageMode: domain.SystemMessageModeSeparate,
					ResponseJSONPath:  "content[0].text",
					ExtraHeaders: map[string]string{
						"anthropic-version": "2023-06-01",
					},
				},
			},
		},
		Content: domain.ContentSettings{
			PrimaryDir:   filepath.Join(home, "Desktop"),
			OrganizedDir: filepath.Join(home, ".aimy", "generated"),
		},
		Security: domain.SecuritySettings{
			Enabled:   true,
			RulesFile: filepath.Join(home, ".aimy", "permissions.yaml"),
		},
		Server: domain.ServerSettings{
			Addr: "127.0.0.1:8712",
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Assistant.Name == "" {
		cfg.Assistant.Name = "Aimy"
	}
	if len(cfg.Assistant.Capabilities) == 0 {
		cfg.Assistant.Capabilities = domain.DefaultCapabilities()
	}
	if len(cfg.Assistant.Features) == 0 {
		cfg.Assistant.Features = domain.DefaultFeatures()
	}
	if cfg.Reasoning.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Reasoning.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Reasoning.TimeoutSeconds == 0 {
		cfg.Reasoning.TimeoutSeconds = 8
	}
	if cfg.Reasoning.ClassifyTemperature == 0 {
		cfg.Reasoning.ClassifyTemperature = 0.1
	}
	if cfg.Reasoning.GenerateTemperature == 0 {
		cfg.Reasoning.GenerateTemperature = 0.7
	}
	if cfg.Reasoning.ClassificationCacheSize == 0 {
		cfg.Reasoning.ClassificationCacheSize = 100
	}
	if cfg.Content.PrimaryDir == "" {
		cfg.Content.PrimaryDir = filepath.Join(userHomeDir(), "Desktop")
	}
	if cfg.Content.OrganizedDir == "" {
		cfg.Content.OrganizedDir = filepath.Join(userHomeDir(), ".aimy", "generated")
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8712"
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
