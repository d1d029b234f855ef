package security

import (
	"os"
	"path/filepath"
	"testing"
)

type stubProbe struct {
	restricted bool
}

func (s stubProbe) Restricted() bool { return s.restricted }
func (s stubProbe) OS() string       { return "linux" }
func (s stubProbe) Home() string     { return "/home/test" }

func TestUnrestrictedAllowsEverything(t *testing.T) {
	gate, err := NewGate(stubProbe{restricted: false}, true, "")
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}
	if gate.Restricted() {
		t.Fatal("gate reports restricted in an unrestricted deployment")
	}
	if !gate.AllowApp("Terminal") {
		t.Error("unrestricted gate denied an app launch")
	}
	if !gate.AllowSystemCommand() {
		t.Error("unrestricted gate denied system commands")
	}
}

func TestRestrictedDefaultAllowList(t *testing.T) {
	gate, err := NewGate(stubProbe{restricted: true}, true, "")
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}
	if !gate.AllowApp("Calculator") {
		t.Error("Calculator should be on the default allow-list")
	}
	if gate.AllowApp("Terminal") {
		t.Error("Terminal must not be launchable in restricted mode")
	}
	if gate.AllowSystemCommand() {
		t.Error("system commands must be refused in restricted mode")
	}
}

func TestDisabledGateIgnoresProbe(t *testing.T) {
	gate, err := NewGate(stubProbe{restricted: true}, false, "")
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}
	if gate.Restricted() {
		t.Error("disabled gate should never report restricted")
	}
}

func TestRulesFileOverridesAllowList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "permissions.yaml")
	rules := "rules:\n  allowed_apps:\n    - Notes\n"
	if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
		t.Fatal(err)
	}

	gate, err := NewGate(stubProbe{restricted: true}, true, path)
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}
	if !gate.AllowApp("notes") {
		t.Error("allow-list matching should be case-insensitive")
	}
	if gate.AllowApp("Calculator") {
		t.Error("rules file should replace the default allow-list")
	}
}
