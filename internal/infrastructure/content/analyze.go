package content

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/doeshing/aimy-go/internal/domain"
)

// Keyword buckets for offline content-type scoring. The highest-scoring
// bucket wins; ties and empty scores fall to HTML, the most broadly useful
// artifact for a vague creative request.
var (
	htmlKeywords = []string{
		"html", "website", "webpage", "page", "site", "web",
		"calculator", "form", "dashboard", "interactive", "app",
	}
	pythonKeywords = []string{
		"python", "script", "automation", "automate", "scraper",
		"data", "analysis", "bot",
	}
	textKeywords = []string{
		"note", "notes", "document", "text", "letter", "list", "readme",
	}
)

// HeuristicAnalysis classifies a creative request without the reasoning
// service. The hint, when present, overrides the scored type.
func HeuristicAnalysis(text string, hint domain.ContentType) domain.ContentAnalysis {
	lower := strings.ToLower(text)

	contentType := hint
	if contentType == "" {
		scores := map[domain.ContentType]int{
			domain.ContentHTML:   score(lower, htmlKeywords),
			domain.ContentPython: score(lower, pythonKeywords),
			domain.ContentText:   score(lower, textKeywords),
		}
		contentType = domain.ContentHTML
		best := scores[domain.ContentHTML]
		if scores[domain.ContentPython] > best {
			contentType = domain.ContentPython
			best = scores[domain.ContentPython]
		}
		if scores[domain.ContentText] > best {
			contentType = domain.ContentText
		}
	}

	return domain.ContentAnalysis{
		Type:        contentType,
		Purpose:     purpose(lower),
		KeyFeatures: detectFeatures(lower),
		Filename:    SanitizeStem(text),
		Complexity:  complexity(lower),
	}
}

func score(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

func purpose(lower string) string {
	switch {
	case strings.Contains(lower, "calculator"):
		return "calculator tool"
	case strings.Contains(lower, "dashboard"):
		return "dashboard"
	case strings.Contains(lower, "form"):
		return "input form"
	case strings.Contains(lower, "game"):
		return "game"
	default:
		return "general content"
	}
}

func detectFeatures(lower string) []string {
	var features []string
	if strings.Contains(lower, "calculator") || strings.Contains(lower, "math") {
		features = append(features, "mathematical")
	}
	if strings.Contains(lower, "interactive") || strings.Contains(lower, "button") {
		features = append(features, "interactive")
	}
	if strings.Contains(lower, "form") || strings.Contains(lower, "input") {
		features = append(features, "form")
	}
	if strings.Contains(lower, "dashboard") || strings.Contains(lower, "chart") {
		features = append(features, "dashboard")
	}
	return features
}

func complexity(lower string) string {
	switch {
	case strings.Contains(lower, "simple") || strings.Contains(lower, "basic"):
		return "low"
	case strings.Contains(lower, "complex") || strings.Contains(lower, "advanced"):
		return "high"
	default:
		return "medium"
	}
}

// BuildFilename derives the artifact filename: the sanitized request stem,
// a Unix timestamp for uniqueness, and the canonical extension.
func BuildFilename(text string, analysis domain.ContentAnalysis) string {
	stem := analysis.Filename
	if stem == "" {
		stem = SanitizeStem(text)
	}
	return fmt.Sprintf("%s_%d%s", stem, time.Now().Unix(), analysis.Type.Extension())
}

// SanitizeStem turns the leading part of the request into a filesystem-safe
// snake_case stem. An unusable result falls back to a fixed stem.
func SanitizeStem(text string) string {
	prefix := strings.TrimSpace(text)
	if len(prefix) > domain.FilenameStemLen {
		prefix = prefix[:domain.FilenameStemLen]
	}

	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(prefix) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	stem := strings.Trim(b.String(), "_")
	if stem == "" {
		return domain.FallbackFilenameStem
	}
	return stem
}
