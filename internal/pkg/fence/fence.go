// Package fence strips markdown code fences from reasoning-service replies.
package fence

import "strings"

// Strip removes a surrounding markdown code fence, with or without a
// language tag, returning the inner text unchanged otherwise.
func Strip(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.Index(trimmed, "\n"); i >= 0 {
		// Drop the language tag line ("json", "html", ...).
		first := strings.TrimSpace(trimmed[:i])
		if len(first) <= 10 && !strings.ContainsAny(first, "{}<>") {
			trimmed = trimmed[i+1:]
		}
	}
	if i := strings.LastIndex(trimmed, "```"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.TrimSpace(trimmed)
}
