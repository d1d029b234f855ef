package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// ScriptPermissions marks generated scripts executable (rwxr-xr-x)
	ScriptPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultReasoningTimeout bounds a single reasoning-service round trip
	DefaultReasoningTimeout = 8 * time.Second
	// DefaultCommandTimeout bounds a single OS command invocation
	DefaultCommandTimeout = 5 * time.Second
)

// Memory bounds. The context log trims to ContextKeep once it exceeds
// ContextCap; learned-pattern lists trim to PatternKeep past PatternCap.
const (
	ContextCap  = 20
	ContextKeep = 10
	PatternCap  = 5
	PatternKeep = 3
	// PatternPrefixLen is how many lower-cased characters key a pattern
	PatternPrefixLen = 50
)

// Content generation constants
const (
	// FilenameStemLen is how much of the request seeds the artifact filename
	FilenameStemLen = 20
	// FallbackFilenameStem is used when sanitization yields nothing
	FallbackFilenameStem = "ai_generated"
)

// History constants
const (
	// DefaultHistoryLimit is the default number of records to display
	DefaultHistoryLimit = 20
)

// TimestampFormat is the standard timestamp format.
const TimestampFormat = time.RFC3339
