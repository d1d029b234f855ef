// Package osfacade wraps the host OS facilities the action router depends
// on: application launching, shell commands, detached processes, and file
// and URL opening.
package osfacade

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/doeshing/aimy-go/internal/ports"
)

// Launcher runs processes on the local host.
type Launcher struct {
	shell string
	goos  string
}

var _ ports.Launcher = (*Launcher)(nil)

// NewLauncher builds a launcher; shell defaults to /bin/sh.
func NewLauncher(shell string) *Launcher {
	if shell == "" {
		shell = "/bin/sh"
	}
	return &Launcher{shell: shell, goos: runtime.GOOS}
}

// LaunchApp starts a named application using the platform launcher. A
// non-nil error means the launch command exited non-zero.
func (l *Launcher) LaunchApp(ctx context.Context, name string) error {
	var cmd *exec.Cmd
	switch l.goos {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", "-a", name)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", name)
	default:
		// Linux has no registry of app names. Check the binary exists under
		// the request context, then start it detached: the app must outlive
		// the request, and waiting on it would burn the whole deadline.
		check := exec.CommandContext(ctx, l.shell, "-c", fmt.Sprintf("command -v %q", name))
		if err := check.Run(); err != nil {
			return fmt.Errorf("launch %s: no such application", name)
		}
		app := exec.Command(name)
		if err := app.Start(); err != nil {
			return fmt.Errorf("launch %s: %w", name, err)
		}
		go func() { _ = app.Wait() }()
		return nil
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("launch %s: %s", name, bytes.TrimSpace(stderr.Bytes()))
		}
		return fmt.Errorf("launch %s: %w", name, err)
	}
	return nil
}

// RunCommand runs a shell command, capturing exit code and combined output.
func (l *Launcher) RunCommand(ctx context.Context, command string) (int, string, error) {
	cmd := exec.CommandContext(ctx, l.shell, "-c", command)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), out.String(), err
	}
	if err != nil {
		return -1, out.String(), err
	}
	return 0, out.String(), nil
}

// SpawnDetached starts a fire-and-forget child process and returns its PID.
// The child survives the parent and its fate is not tracked.
func (l *Launcher) SpawnDetached(path string, args ...string) (int, error) {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// Reap the child in the background so it never zombies.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

// OpenPath opens a file in the platform default handler.
func (l *Launcher) OpenPath(path string) error {
	var cmd *exec.Cmd
	switch l.goos {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
