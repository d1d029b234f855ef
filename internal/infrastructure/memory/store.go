// Package memory holds the in-process conversation state: the bounded
// rolling context log and the bounded learned-pattern log, plus the SQLite
// interaction repository for durable diagnostics.
package memory

import (
	"strings"
	"sync"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

// Store keeps the rolling context and learned patterns with hard caps, so a
// long-running session can never grow memory without bound. Trimming keeps
// the most recent entries.
type Store struct {
	mu       sync.Mutex
	context  []domain.ContextEntry
	patterns map[string][]domain.InteractionSignal
}

var (
	_ ports.ContextStore = (*Store)(nil)
	_ ports.PatternStore = (*Store)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{patterns: make(map[string][]domain.InteractionSignal)}
}

// Append records one exchange. Past ContextCap entries the log is trimmed to
// the newest ContextKeep.
func (s *Store) Append(entry domain.ContextEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = append(s.context, entry)
	if len(s.context) > domain.ContextCap {
		trimmed := make([]domain.ContextEntry, domain.ContextKeep)
		copy(trimmed, s.context[len(s.context)-domain.ContextKeep:])
		s.context = trimmed
	}
}

// Recent returns up to n of the latest exchanges, oldest first.
func (s *Store) Recent(n int) []domain.ContextEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.context) {
		n = len(s.context)
	}
	out := make([]domain.ContextEntry, n)
	copy(out, s.context[len(s.context)-n:])
	return out
}

// Record stores a quality signal under the input's pattern key. Each key's
// list is trimmed to the newest PatternKeep once it exceeds PatternCap.
func (s *Store) Record(input string, sig domain.InteractionSignal) {
	key := PatternKey(input)
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.patterns[key], sig)
	if len(list) > domain.PatternCap {
		trimmed := make([]domain.InteractionSignal, domain.PatternKeep)
		copy(trimmed, list[len(list)-domain.PatternKeep:])
		list = trimmed
	}
	s.patterns[key] = list
}

// Signals returns the retained signals for the input's pattern key.
func (s *Store) Signals(input string) []domain.InteractionSignal {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.patterns[PatternKey(input)]
	out := make([]domain.InteractionSignal, len(list))
	copy(out, list)
	return out
}

// PatternKey derives the learned-pattern key: the lower-cased first
// PatternPrefixLen characters of the input.
func PatternKey(input string) string {
	key := strings.ToLower(strings.TrimSpace(input))
	if len(key) > domain.PatternPrefixLen {
		key = key[:domain.PatternPrefixLen]
	}
	return key
}
