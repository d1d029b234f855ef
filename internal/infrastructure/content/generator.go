// Package content implements the generation subsystem: analyzing a creative
// request, producing the artifact body, placing it in the configured save
// locations, and running the type-appropriate post-action.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/pkg/fence"
	"github.com/doeshing/aimy-go/internal/ports"
)

// Generator produces artifacts. The reasoning service is preferred for both
// analysis and body generation; the template fallback keeps the subsystem
// fully functional offline.
type Generator struct {
	reasoner ports.Reasoner
	launcher ports.Launcher
	browser  ports.BrowserOpener
	saver    *Saver
	logger   ports.Logger

	generateTemp float64
}

var _ ports.ContentGenerator = (*Generator)(nil)

// NewGenerator wires the content subsystem. reasoner may be nil for a purely
// template-driven generator.
func NewGenerator(reasoner ports.Reasoner, launcher ports.Launcher, browser ports.BrowserOpener, saver *Saver, logger ports.Logger, generateTemp float64) *Generator {
	if generateTemp <= 0 {
		generateTemp = 0.7
	}
	return &Generator{
		reasoner:     reasoner,
		launcher:     launcher,
		browser:      browser,
		saver:        saver,
		logger:       logger,
		generateTemp: generateTemp,
	}
}

// Generate runs the full pipeline: analyze, produce, save, act. A non-nil
// error is returned only when the artifact could not be produced at all;
// save and post-action problems are reported inside the artifact.
func (g *Generator) Generate(ctx context.Context, text string, hint domain.ContentType, served bool) (domain.Artifact, error) {
	analysis := g.analyze(ctx, text, hint)
	body := g.produceBody(ctx, text, analysis)
	if strings.TrimSpace(body) == "" {
		return domain.Artifact{}, fmt.Errorf("empty artifact body for %q", text)
	}

	artifact := domain.Artifact{
		Analysis: analysis,
		Filename: BuildFilename(text, analysis),
		Body:     body,
	}
	artifact.Saves = g.saver.SaveAll(artifact.Filename, body, analysis.Type.Executable())

	g.runPostAction(&artifact, served)
	return artifact, nil
}

// analyze classifies the request. Reasoning-service analysis is attempted
// first; any failure falls back to keyword scoring.
func (g *Generator) analyze(ctx context.Context, text string, hint domain.ContentType) domain.ContentAnalysis {
	if g.reasoner != nil && g.reasoner.Available() {
		if analysis, err := g.serviceAnalysis(ctx, text); err == nil {
			if hint != "" {
				analysis.Type = hint
			}
			return analysis
		} else if g.logger != nil {
			g.logger.Debug("content analysis fell back to heuristics", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return HeuristicAnalysis(text, hint)
}

const analysisSystemPrompt = `You analyze content-creation requests. Respond with a single JSON object
and nothing else. Keys:
  "content_type": one of "html", "python", "text", "javascript", "css", "markdown", "bash", "json", "yaml"
  "primary_purpose": short phrase
  "key_features": array of short snake_case strings
  "suggested_filename": lowercase stem without extension
  "complexity_level": "low", "medium" or "high"
No markdown, no explanation.`

func (g *Generator) serviceAnalysis(ctx context.Context, text string) (domain.ContentAnalysis, error) {
	reply, err := g.reasoner.Complete(ctx, ports.CompletionRequest{
		Messages: []domain.PromptMessage{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return domain.ContentAnalysis{}, err
	}

	var analysis domain.ContentAnalysis
	if err := json.Unmarshal([]byte(fence.Strip(reply)), &analysis); err != nil {
		return domain.ContentAnalysis{}, fmt.Errorf("%w: %v", domain.ErrReasoningMalformed, err)
	}
	if analysis.Type == "" {
		return domain.ContentAnalysis{}, fmt.Errorf("%w: missing content_type", domain.ErrReasoningMalformed)
	}
	return analysis, nil
}

// produceBody asks the reasoning service for the artifact body, falling back
// to the built-in templates.
func (g *Generator) produceBody(ctx context.Context, text string, analysis domain.ContentAnalysis) string {
	if g.reasoner != nil && g.reasoner.Available() {
		prompt := fmt.Sprintf(
			"Generate complete %s content for this request. Output only the raw file body, no commentary.\n\nRequest: %s",
			analysis.Type, text)
		reply, err := g.reasoner.Complete(ctx, ports.CompletionRequest{
			Messages: []domain.PromptMessage{
				{Role: "user", Content: prompt},
			},
			Temperature: g.generateTemp,
		})
		if err == nil {
			if body := fence.Strip(reply); strings.TrimSpace(body) != "" {
				return body
			}
		} else if g.logger != nil {
			g.logger.Debug("body generation fell back to templates", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return TemplateBody(text, analysis)
}

// runPostAction performs the type-appropriate follow-up on the saved
// artifact. Failures are recorded, never fatal.
func (g *Generator) runPostAction(artifact *domain.Artifact, served bool) {
	path := artifact.SavedPath()
	if path == "" {
		artifact.Action = domain.PostSavedOnly
		return
	}

	switch {
	case artifact.Analysis.Type.Executable():
		pid, err := g.launcher.SpawnDetached(path)
		if err != nil {
			artifact.Action = domain.PostSavedOnly
			artifact.ActionErr = err.Error()
			return
		}
		artifact.Action = domain.PostExecuted
		artifact.ProcessID = pid

	case artifact.Analysis.Type.BrowserRenderable():
		if served {
			// The HTTP shell serves the artifact from its retrieval
			// route instead of touching the host browser.
			artifact.Action = domain.PostServed
			artifact.ServePath = "/generated/" + artifact.Filename
			return
		}
		if err := g.browser.OpenURL("file://" + path); err != nil {
			artifact.Action = domain.PostSavedOnly
			artifact.ActionErr = err.Error()
			return
		}
		artifact.Action = domain.PostBrowser

	default:
		if served {
			artifact.Action = domain.PostServed
			artifact.ServePath = "/generated/" + artifact.Filename
			return
		}
		if err := g.launcher.OpenPath(path); err != nil {
			artifact.Action = domain.PostSavedOnly
			artifact.ActionErr = err.Error()
			return
		}
		artifact.Action = domain.PostOpened
	}
}
