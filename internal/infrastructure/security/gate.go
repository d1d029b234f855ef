// Package security implements the permission gate for restricted
// deployments.
package security

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/aimy-go/internal/ports"
)

// Gate enforces the restricted-mode policy: in an unrestricted deployment
// everything is permitted; in a restricted one only allow-listed
// applications may launch and arbitrary system commands are refused.
type Gate struct {
	probe       ports.EnvironmentProbe
	enabled     bool
	allowedApps map[string]struct{}
}

var _ ports.PermissionGate = (*Gate)(nil)

// RulesFile is the YAML schema for the permission rules file.
type RulesFile struct {
	Rules struct {
		AllowedApps []string `yaml:"allowed_apps"`
	} `yaml:"rules"`
}

// NewGate loads the allow-list from path, falling back to built-in defaults
// when the file is missing or empty. With enabled false the gate reports
// unrestricted regardless of the probe.
func NewGate(probe ports.EnvironmentProbe, enabled bool, path string) (*Gate, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]struct{}, len(rules.Rules.AllowedApps))
	for _, app := range rules.Rules.AllowedApps {
		allowed[strings.ToLower(strings.TrimSpace(app))] = struct{}{}
	}

	return &Gate{probe: probe, enabled: enabled, allowedApps: allowed}, nil
}

// Restricted reports whether the restricted policy is active.
func (g *Gate) Restricted() bool {
	return g.enabled && g.probe.Restricted()
}

// AllowApp reports whether launching the named application is permitted.
func (g *Gate) AllowApp(name string) bool {
	if !g.Restricted() {
		return true
	}
	_, ok := g.allowedApps[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// AllowSystemCommand reports whether system-level commands may run.
// Restricted deployments never run them.
func (g *Gate) AllowSystemCommand() bool {
	return !g.Restricted()
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		rules.Rules.AllowedApps = defaultAllowedApps()
		return rules, nil
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	if len(rules.Rules.AllowedApps) == 0 {
		rules.Rules.AllowedApps = defaultAllowedApps()
	}
	return rules, nil
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(userHomeDir(), ".aimy", "permissions.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Join(userHomeDir(), path)
}

// defaultAllowedApps is the built-in allow-list: harmless desktop utilities
// only, no terminals or script hosts.
func defaultAllowedApps() []string {
	return []string{
		"Calculator",
		"Notes",
		"TextEdit",
		"Calendar",
		"Safari",
		"Google Chrome",
		"Firefox",
	}
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
