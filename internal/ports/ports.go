// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// These interfaces are the contract between the dispatch pipeline and the
// infrastructure adapters (reasoning service, heuristic engine, OS facade,
// stores). The pipeline depends only on abstractions declared here; concrete
// implementations live under internal/infrastructure.
package ports

import (
	"context"

	"github.com/doeshing/aimy-go/internal/domain"
)

// Classifier derives Understanding, Intent and Plan from request text. Two
// implementations exist: the reasoning gateway and the heuristic engine.
// The pipeline controller owns selection and fallback between them.
type Classifier interface {
	Understand(ctx context.Context, text string) (domain.Understanding, error)
	Intent(ctx context.Context, text string, u domain.Understanding) (domain.Intent, error)
	Plan(ctx context.Context, text string, u domain.Understanding, in domain.Intent) (domain.Plan, error)
}

// CompletionRequest is one chat-completion call to the reasoning service.
type CompletionRequest struct {
	Messages    []domain.PromptMessage
	Temperature float64
	MaxTokens   int
}

// Reasoner is the raw prompt-in, text-out client for the reasoning service.
type Reasoner interface {
	Name() string
	// Available reports whether a credential is configured. It does not
	// probe the network; transport failures surface from Complete.
	Available() bool
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ContentGenerator produces and places a generated artifact.
type ContentGenerator interface {
	Generate(ctx context.Context, text string, hint domain.ContentType, served bool) (domain.Artifact, error)
}

// Executor routes a plan to its handler and returns the normalized result.
type Executor interface {
	Execute(ctx context.Context, req domain.Request, u domain.Understanding, plan domain.Plan) domain.ExecutionResult
}

// Launcher abstracts the OS process facilities the router depends on.
type Launcher interface {
	// LaunchApp starts a named application; a non-nil error means the
	// launch command exited non-zero or could not start.
	LaunchApp(ctx context.Context, name string) error
	// RunCommand runs a shell command capturing its exit code and output.
	RunCommand(ctx context.Context, command string) (exitCode int, output string, err error)
	// SpawnDetached starts a fire-and-forget child and returns its PID
	// immediately; the child's fate is not tracked.
	SpawnDetached(path string, args ...string) (pid int, err error)
	// OpenPath opens a file in the platform default handler.
	OpenPath(path string) error
}

// BrowserOpener opens a URL (or file URL) in the default browser.
type BrowserOpener interface {
	OpenURL(url string) error
}

// PermissionGate enforces the restricted-deployment policy.
type PermissionGate interface {
	Restricted() bool
	// AllowApp reports whether launching the named application is
	// permitted under the current deployment mode.
	AllowApp(name string) bool
	// AllowSystemCommand reports whether arbitrary system-level commands
	// are permitted under the current deployment mode.
	AllowSystemCommand() bool
}

// ContextStore is the bounded rolling log of recent exchanges.
type ContextStore interface {
	Append(entry domain.ContextEntry)
	Recent(n int) []domain.ContextEntry
}

// PatternStore is the bounded per-prefix log of interaction quality signals.
type PatternStore interface {
	Record(input string, sig domain.InteractionSignal)
	Signals(input string) []domain.InteractionSignal
}

// InteractionRepository persists per-request records for diagnostics.
type InteractionRepository interface {
	Save(rec domain.InteractionRecord) error
	Records(limit int, search string) ([]domain.InteractionRecord, error)
	Clear() error
}

// CacheStore caches reasoning-service classification replies.
type CacheStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// ConfigProvider loads the latest configuration from persistent storage.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// EnvironmentProbe reports deployment-environment facts the gate and the
// content subsystem depend on.
type EnvironmentProbe interface {
	Restricted() bool
	OS() string
	Home() string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
