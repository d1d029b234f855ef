package osfacade

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// A launch must return as soon as the app starts; the app runs on long after
// the request is over.
func TestLaunchAppLinuxDoesNotWaitForChild(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "slowapp")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 5\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	l := &Launcher{shell: "/bin/sh", goos: "linux"}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	if err := l.LaunchApp(ctx, "slowapp"); err != nil {
		t.Fatalf("LaunchApp: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("LaunchApp blocked for %v waiting on the child", elapsed)
	}
}

func TestLaunchAppLinuxMissingBinary(t *testing.T) {
	l := &Launcher{shell: "/bin/sh", goos: "linux"}
	if err := l.LaunchApp(context.Background(), "no-such-app-xyzzy"); err == nil {
		t.Error("LaunchApp succeeded for a nonexistent binary")
	}
}

func TestRunCommandCapturesExitCode(t *testing.T) {
	l := NewLauncher("")
	code, out, err := l.RunCommand(context.Background(), "echo hi; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if out == "" {
		t.Error("output was not captured")
	}
}
