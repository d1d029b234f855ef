// Package services contains the dispatch pipeline: the use-case layer that
// turns one natural-language request into one execution result.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

// Pipeline runs the six stages: understand, intent, plan, execute, learn,
// context update. The reasoning gateway drives intent and plan when
// available; any gateway failure latches the heuristic classifier for the
// remainder of that request only.
type Pipeline struct {
	Gateway   ports.Classifier
	Heuristic ports.Classifier
	Executor  ports.Executor
	Contexts  ports.ContextStore
	Patterns  ports.PatternStore
	History   ports.InteractionRepository
	Logger    ports.Logger

	Timeout time.Duration

	// background tracks the fire-and-forget learn and context stages so
	// shutdown (and tests) can wait for them.
	background sync.WaitGroup
}

var _ domain.PipelineService = (*Pipeline)(nil)

// Process handles one request end to end. It never panics: any escaped
// failure becomes a reasoning_failure result.
func (p *Pipeline) Process(req domain.Request) (result domain.ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			if p.Logger != nil {
				p.Logger.Error("pipeline panic", fmt.Errorf("%v", r), map[string]interface{}{
					"request_id": req.ID,
				})
			}
			result = domain.Failure(domain.ResultReasoningFailure, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.ReceivedAt.IsZero() {
		req.ReceivedAt = time.Now()
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	u, in, plan := p.classify(ctx, req)
	result = p.Executor.Execute(ctx, req, u, plan)

	p.background.Add(1)
	go func() {
		defer p.background.Done()
		defer func() {
			if r := recover(); r != nil && p.Logger != nil {
				p.Logger.Error("learning stage panic", fmt.Errorf("%v", r), nil)
			}
		}()
		p.learn(req, u, in, plan, result)
	}()

	return result
}

// Drain waits for outstanding learn and context updates; called on shutdown.
func (p *Pipeline) Drain() {
	p.background.Wait()
}

// classify runs the three reasoning stages. Understanding is always lexical;
// intent and plan prefer the gateway, with a per-request fallback latch.
func (p *Pipeline) classify(ctx context.Context, req domain.Request) (domain.Understanding, domain.Intent, domain.Plan) {
	u, err := p.Heuristic.Understand(ctx, req.Text)
	if err != nil {
		// The lexical analyzer cannot fail in practice; guard anyway.
		u = domain.Understanding{RawText: req.Text}
	}

	classifier := p.Heuristic
	usingGateway := false
	if p.Gateway != nil {
		classifier = p.Gateway
		usingGateway = true
	}

	in, err := p.intentStage(ctx, classifier, usingGateway, req.Text, u)
	if err != nil {
		if usingGateway {
			p.noteFallback(req, "intent", err)
			classifier = p.Heuristic
			usingGateway = false
		}
		in, _ = p.Heuristic.Intent(ctx, req.Text, u)
	}

	plan, err := p.planStage(ctx, classifier, usingGateway, req.Text, u, in)
	if err != nil {
		if usingGateway {
			p.noteFallback(req, "plan", err)
		}
		plan, _ = p.Heuristic.Plan(ctx, req.Text, u, in)
	}

	plan.Approach = domain.NormalizeApproach(string(plan.Approach))
	return u, in, plan
}

// Gateway round trips carry their own deadline so an exhausted reasoning
// budget never bleeds into the heuristic retry or execution, which stay on
// the caller's context.
func (p *Pipeline) reasoningContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultReasoningTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (p *Pipeline) intentStage(ctx context.Context, c ports.Classifier, gateway bool, text string, u domain.Understanding) (domain.Intent, error) {
	if !gateway {
		return c.Intent(ctx, text, u)
	}
	gctx, cancel := p.reasoningContext(ctx)
	defer cancel()
	return c.Intent(gctx, text, u)
}

func (p *Pipeline) planStage(ctx context.Context, c ports.Classifier, gateway bool, text string, u domain.Understanding, in domain.Intent) (domain.Plan, error) {
	if !gateway {
		return c.Plan(ctx, text, u, in)
	}
	gctx, cancel := p.reasoningContext(ctx)
	defer cancel()
	return c.Plan(gctx, text, u, in)
}

func (p *Pipeline) noteFallback(req domain.Request, stage string, err error) {
	if p.Logger == nil {
		return
	}
	p.Logger.Warn("reasoning unavailable, using heuristic classification", map[string]interface{}{
		"request_id": req.ID,
		"stage":      stage,
		"error":      err.Error(),
	})
}

// learn records the interaction in the bounded stores and the durable
// repository. Failures here never affect the request outcome.
func (p *Pipeline) learn(req domain.Request, u domain.Understanding, in domain.Intent, plan domain.Plan, result domain.ExecutionResult) {
	now := time.Now()

	if p.Patterns != nil {
		p.Patterns.Record(req.Text, domain.InteractionSignal{
			Timestamp:        now,
			UnderstandingQ:   understandingQuality(u),
			IntentConfidence: in.Confidence,
			Success:          result.Success,
			Approach:         plan.Approach,
		})
	}

	if p.Contexts != nil {
		p.Contexts.Append(domain.ContextEntry{
			Timestamp: now,
			UserInput: req.Text,
			Response:  responseSummary(result),
			Success:   result.Success,
			Type:      result.Type,
		})
	}

	if p.History != nil {
		err := p.History.Save(domain.InteractionRecord{
			Timestamp: now,
			RequestID: req.ID,
			Input:     req.Text,
			Approach:  plan.Approach,
			Type:      result.Type,
			Success:   result.Success,
			Message:   responseSummary(result),
		})
		if err != nil && p.Logger != nil {
			p.Logger.Debug("interaction history write failed", map[string]interface{}{
				"request_id": req.ID,
				"error":      err.Error(),
			})
		}
	}
}

// understandingQuality scores how much signal the lexical analysis found.
func understandingQuality(u domain.Understanding) float64 {
	quality := 0.5
	if u.IsQuestion || u.IsCommand {
		quality += 0.2
	}
	if u.ConversationType != domain.ConversationGeneral {
		quality += 0.15
	}
	if u.WordCount >= 3 {
		quality += 0.15
	}
	if quality > 1 {
		quality = 1
	}
	return quality
}

func responseSummary(result domain.ExecutionResult) string {
	if result.Success {
		return result.Message
	}
	return result.Error
}
