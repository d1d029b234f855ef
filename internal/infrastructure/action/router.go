// Package action implements the execution router: total dispatch from a
// plan's approach to a concrete handler, with the permission gate applied
// before anything touches the host.
package action

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

// AppResolver supplies the lexical tables the router needs at execution
// time: app-name resolution, launch alternates, web equivalents, canned
// replies and expression extraction. The heuristic engine implements it.
type AppResolver interface {
	ResolveAppName(text string) string
	Alternative(app string) (string, bool)
	WebEquivalent(app, text string) string
	CannedReply(ct domain.ConversationType) string
	ExtractExpression(text string) string
}

// Responder generates free-form conversational replies. The reasoning
// gateway implements it; a nil responder means canned replies only.
type Responder interface {
	Available() bool
	Respond(ctx context.Context, text string) (string, error)
}

// Router dispatches plans to handlers. Every approach in the closed
// vocabulary has a handler and every handler returns a well-formed result;
// the router never panics on unexpected plan shapes.
type Router struct {
	launcher  ports.Launcher
	browser   ports.BrowserOpener
	gate      ports.PermissionGate
	generator ports.ContentGenerator
	apps      AppResolver
	responder Responder
	probe     ports.EnvironmentProbe
	logger    ports.Logger

	now func() time.Time
}

var _ ports.Executor = (*Router)(nil)

// NewRouter wires the router. responder may be nil.
func NewRouter(launcher ports.Launcher, browser ports.BrowserOpener, gate ports.PermissionGate, generator ports.ContentGenerator, apps AppResolver, responder Responder, probe ports.EnvironmentProbe, logger ports.Logger) *Router {
	return &Router{
		launcher:  launcher,
		browser:   browser,
		gate:      gate,
		generator: generator,
		apps:      apps,
		responder: responder,
		probe:     probe,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute routes the plan to its handler.
func (r *Router) Execute(ctx context.Context, req domain.Request, u domain.Understanding, plan domain.Plan) domain.ExecutionResult {
	switch plan.Approach {
	case domain.ApproachAppLaunch:
		return r.handleAppLaunch(ctx, req, plan)
	case domain.ApproachWebOpen:
		return r.handleWebOpen(plan)
	case domain.ApproachCreateContent:
		return r.handleCreateContent(ctx, req, plan)
	case domain.ApproachSystemCommand:
		return r.handleSystemCommand(ctx, plan)
	case domain.ApproachCalculation:
		return r.handleCalculation(ctx, req, u, plan)
	case domain.ApproachInfoResponse:
		return r.handleInfoResponse(req)
	default:
		// Normalization upstream maps unknown tags to conversation, so
		// this arm also covers any future vocabulary drift.
		return r.handleConversation(ctx, req, u, plan)
	}
}

// handleAppLaunch tries the native launch, then the second-ranked alternate,
// then falls back to the web-accessible equivalent.
func (r *Router) handleAppLaunch(ctx context.Context, req domain.Request, plan domain.Plan) domain.ExecutionResult {
	app := plan.AppName
	if app == "" {
		app = r.apps.ResolveAppName(req.Text)
	}

	if !r.gate.AllowApp(app) {
		return domain.Failure(domain.ResultPermissionDenied,
			fmt.Sprintf("launching %s is not permitted in this deployment", app))
	}

	if err := r.launcher.LaunchApp(ctx, app); err == nil {
		return domain.ExecutionResult{
			Success: true,
			Type:    domain.ResultAppLaunch,
			Message: fmt.Sprintf("Opened %s", app),
			AppName: app,
		}
	} else if r.logger != nil {
		r.logger.Debug("native launch failed", map[string]interface{}{
			"app": app, "error": err.Error(),
		})
	}

	if alt, ok := r.apps.Alternative(app); ok && r.gate.AllowApp(alt) {
		if err := r.launcher.LaunchApp(ctx, alt); err == nil {
			return domain.ExecutionResult{
				Success: true,
				Type:    domain.ResultAppLaunch,
				Message: fmt.Sprintf("%s was unavailable, opened %s instead", app, alt),
				AppName: alt,
			}
		}
	}

	fallbackURL := r.apps.WebEquivalent(app, req.Text)
	if err := r.browser.OpenURL(fallbackURL); err != nil {
		return domain.Failure(domain.ResultExecutionFailure,
			fmt.Sprintf("could not open %s natively or on the web: %v", app, err))
	}
	return domain.ExecutionResult{
		Success: true,
		Type:    domain.ResultWebAppLaunch,
		Message: fmt.Sprintf("Opened a web version for %s", app),
		AppName: app,
		URL:     fallbackURL,
	}
}

func (r *Router) handleWebOpen(plan domain.Plan) domain.ExecutionResult {
	target := plan.URL
	if target == "" && plan.SearchTerms != "" {
		target = "https://www.google.com/search?q=" + url.QueryEscape(plan.SearchTerms)
	}
	if target == "" {
		return domain.Failure(domain.ResultExecutionFailure, "no destination resolved for web request")
	}

	if err := r.browser.OpenURL(target); err != nil {
		return domain.Failure(domain.ResultExecutionFailure,
			fmt.Sprintf("opening %s: %v", target, err))
	}

	if plan.SearchTerms != "" {
		return domain.ExecutionResult{
			Success: true,
			Type:    domain.ResultWebSearch,
			Message: fmt.Sprintf("Searching the web for %q", plan.SearchTerms),
			URL:     target,
		}
	}
	return domain.ExecutionResult{
		Success: true,
		Type:    domain.ResultWebAppLaunch,
		Message: fmt.Sprintf("Opened %s", target),
		AppName: plan.AppName,
		URL:     target,
	}
}

func (r *Router) handleCreateContent(ctx context.Context, req domain.Request, plan domain.Plan) domain.ExecutionResult {
	artifact, err := r.generator.Generate(ctx, req.Text, plan.ContentType, req.Served)
	if err != nil {
		return domain.Failure(domain.ResultExecutionFailure, fmt.Sprintf("content generation: %v", err))
	}

	saved := artifact.SavedPath()
	if saved == "" {
		var reasons []string
		for _, s := range artifact.Saves {
			reasons = append(reasons, fmt.Sprintf("%s: %s", s.Role, s.Err))
		}
		return domain.Failure(domain.ResultExecutionFailure,
			"artifact could not be saved anywhere: "+strings.Join(reasons, "; "))
	}

	result := domain.ExecutionResult{
		Success:   true,
		Type:      domain.ResultContentCreation,
		FilePath:  saved,
		ProcessID: artifact.ProcessID,
		Saves:     artifact.Saves,
		URL:       artifact.ServePath,
	}
	switch artifact.Action {
	case domain.PostExecuted:
		result.Message = fmt.Sprintf("Created and started %s (pid %d)", artifact.Filename, artifact.ProcessID)
	case domain.PostBrowser:
		result.Message = fmt.Sprintf("Created %s and opened it in your browser", artifact.Filename)
	case domain.PostServed:
		result.Message = fmt.Sprintf("Created %s, available at %s", artifact.Filename, artifact.ServePath)
	case domain.PostOpened:
		result.Message = fmt.Sprintf("Created and opened %s", artifact.Filename)
	default:
		result.Message = fmt.Sprintf("Created %s", artifact.Filename)
	}
	if artifact.ActionErr != "" {
		result.Message += " (follow-up action failed: " + artifact.ActionErr + ")"
	}
	return result
}

func (r *Router) handleSystemCommand(ctx context.Context, plan domain.Plan) domain.ExecutionResult {
	if !r.gate.AllowSystemCommand() {
		return domain.Failure(domain.ResultPermissionDenied,
			"system commands are not permitted in this deployment")
	}
	if plan.Setting == "" {
		return domain.Failure(domain.ResultExecutionFailure, "no system setting recognized")
	}

	command, err := settingCommand(r.probe.OS(), plan.Setting, plan.SettingAction)
	if err != nil {
		return domain.Failure(domain.ResultExecutionFailure, err.Error())
	}

	runCtx, cancel := context.WithTimeout(ctx, domain.DefaultCommandTimeout)
	defer cancel()
	exitCode, output, err := r.launcher.RunCommand(runCtx, command)
	if err != nil || exitCode != 0 {
		detail := strings.TrimSpace(output)
		if detail == "" && err != nil {
			detail = err.Error()
		}
		return domain.Failure(domain.ResultExecutionFailure,
			fmt.Sprintf("setting adjustment failed (exit %d): %s", exitCode, detail))
	}

	return domain.ExecutionResult{
		Success: true,
		Type:    domain.ResultSystemControl,
		Message: settingMessage(plan.Setting, plan.SettingAction),
	}
}

func (r *Router) handleConversation(ctx context.Context, req domain.Request, u domain.Understanding, plan domain.Plan) domain.ExecutionResult {
	reply := plan.Response
	if reply == "" && r.responder != nil && r.responder.Available() {
		if generated, err := r.responder.Respond(ctx, req.Text); err == nil {
			reply = generated
		} else if r.logger != nil {
			r.logger.Debug("reply generation fell back to canned responses", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if reply == "" {
		reply = r.apps.CannedReply(u.ConversationType)
	}
	return domain.ExecutionResult{
		Success: true,
		Type:    domain.ResultConversation,
		Message: reply,
	}
}

func (r *Router) handleCalculation(ctx context.Context, req domain.Request, u domain.Understanding, plan domain.Plan) domain.ExecutionResult {
	expr := strings.TrimSpace(plan.Expression)
	if expr == "" {
		expr = r.apps.ExtractExpression(req.Text)
	}
	if expr == "" {
		// Nothing numeric to evaluate locally; defer the answer to the
		// reasoning service, or treat the request as conversation.
		if r.responder != nil && r.responder.Available() {
			if reply, err := r.responder.Respond(ctx, req.Text); err == nil {
				return domain.ExecutionResult{
					Success: true,
					Type:    domain.ResultComputation,
					Message: reply,
				}
			} else if r.logger != nil {
				r.logger.Debug("calculation deferral failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
		return r.handleConversation(ctx, req, u, plan)
	}

	value, err := Evaluate(expr)
	if err != nil {
		return domain.Failure(domain.ResultExecutionFailure,
			fmt.Sprintf("evaluating %q: %v", expr, err))
	}
	return domain.ExecutionResult{
		Success:    true,
		Type:       domain.ResultComputation,
		Message:    fmt.Sprintf("%s = %s", expr, FormatNumber(value)),
		Expression: expr,
		Value:      value,
	}
}

func (r *Router) handleInfoResponse(req domain.Request) domain.ExecutionResult {
	now := r.now()
	lower := strings.ToLower(req.Text)

	var message string
	switch {
	case strings.Contains(lower, "date") || strings.Contains(lower, "today"):
		message = fmt.Sprintf("Today is %s", now.Format("Monday, January 2, 2006"))
	default:
		message = fmt.Sprintf("It's %s", now.Format("3:04 PM"))
	}
	return domain.ExecutionResult{
		Success: true,
		Type:    domain.ResultTimeInformation,
		Message: message,
	}
}
