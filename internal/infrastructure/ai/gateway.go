package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/pkg/fence"
	"github.com/doeshing/aimy-go/internal/ports"
)

// Gateway is the reasoning-service classifier. Language analysis stays
// lexical (delegated to the fallback classifier) so stage one behaves
// identically whichever classifier is active; intent and plan go through the
// reasoning service with low-temperature prompts and strict JSON parsing.
type Gateway struct {
	reasoner ports.Reasoner
	fallback ports.Classifier
	cache    ports.CacheStore
	logger   ports.Logger

	classifyTemp float64
	generateTemp float64
}

var _ ports.Classifier = (*Gateway)(nil)

// NewGateway wires the gateway. cache may be nil to disable classification
// caching; fallback must be the heuristic classifier.
func NewGateway(reasoner ports.Reasoner, fallback ports.Classifier, cache ports.CacheStore, logger ports.Logger, classifyTemp, generateTemp float64) *Gateway {
	if classifyTemp <= 0 {
		classifyTemp = 0.1
	}
	if generateTemp <= 0 {
		generateTemp = 0.7
	}
	return &Gateway{
		reasoner:     reasoner,
		fallback:     fallback,
		cache:        cache,
		logger:       logger,
		classifyTemp: classifyTemp,
		generateTemp: generateTemp,
	}
}

// Available reports whether the underlying reasoning client has a credential.
func (g *Gateway) Available() bool {
	return g.reasoner.Available()
}

// Understand delegates to the lexical analyzer; the reasoning service adds
// nothing at this stage and keeping it local makes stage one infallible.
func (g *Gateway) Understand(ctx context.Context, text string) (domain.Understanding, error) {
	return g.fallback.Understand(ctx, text)
}

// Intent classifies the request via the reasoning service.
func (g *Gateway) Intent(ctx context.Context, text string, u domain.Understanding) (domain.Intent, error) {
	userPrompt, err := renderTemplate("intent", intentUserTemplate, struct {
		Text string
		U    domain.Understanding
	}{text, u})
	if err != nil {
		return domain.Intent{}, err
	}

	reply, err := g.classify(ctx, "intent", intentSystemPrompt, userPrompt)
	if err != nil {
		return domain.Intent{}, err
	}
	return parseIntentReply(reply)
}

// Plan derives the execution plan via the reasoning service. Whatever
// approach tag comes back is normalized into the closed vocabulary.
func (g *Gateway) Plan(ctx context.Context, text string, u domain.Understanding, in domain.Intent) (domain.Plan, error) {
	userPrompt, err := renderTemplate("plan", planUserTemplate, struct {
		Text string
		In   domain.Intent
	}{text, in})
	if err != nil {
		return domain.Plan{}, err
	}

	reply, err := g.classify(ctx, "plan", planSystemPrompt, userPrompt)
	if err != nil {
		return domain.Plan{}, err
	}
	return parsePlanReply(reply)
}

// Respond generates a free-form conversational reply at the generation
// temperature.
func (g *Gateway) Respond(ctx context.Context, text string) (string, error) {
	reply, err := g.reasoner.Complete(ctx, ports.CompletionRequest{
		Messages: []domain.PromptMessage{
			{Role: "system", Content: respondSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: g.generateTemp,
	})
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(fence.Strip(reply))
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrReasoningMalformed)
	}
	return reply, nil
}

// classify performs one low-temperature completion, consulting the reply
// cache first. Cache errors are ignored; the cache is an optimization only.
func (g *Gateway) classify(ctx context.Context, stage, systemPrompt, userPrompt string) (string, error) {
	key := cacheKey(stage, userPrompt)
	if g.cache != nil {
		if cached, ok, err := g.cache.Get(key); err == nil && ok {
			return cached, nil
		}
	}

	reply, err := g.reasoner.Complete(ctx, ports.CompletionRequest{
		Messages: []domain.PromptMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: g.classifyTemp,
	})
	if err != nil {
		return "", err
	}

	if g.cache != nil {
		if err := g.cache.Set(key, reply); err != nil && g.logger != nil {
			g.logger.Debug("classification cache write failed", map[string]interface{}{
				"stage": stage, "error": err.Error(),
			})
		}
	}
	return reply, nil
}

func cacheKey(stage, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return stage + ":" + hex.EncodeToString(sum[:16])
}

type intentReply struct {
	PrimaryGoal    string   `json:"primary_goal"`
	Domain         string   `json:"domain"`
	SecondaryGoals []string `json:"secondary_goals"`
	ActionRequired bool     `json:"action_required"`
	Confidence     float64  `json:"confidence"`
}

// parseIntentReply strictly parses the classification reply. Malformed JSON
// or missing required keys fail the stage; there is no repair step.
func parseIntentReply(reply string) (domain.Intent, error) {
	raw, err := decodeJSONObject(reply, "primary_goal", "domain", "confidence")
	if err != nil {
		return domain.Intent{}, err
	}

	var parsed intentReply
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return domain.Intent{}, fmt.Errorf("%w: %v", domain.ErrReasoningMalformed, err)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return domain.Intent{}, fmt.Errorf("%w: confidence %v out of range", domain.ErrReasoningMalformed, parsed.Confidence)
	}

	return domain.Intent{
		PrimaryGoal:    domain.Goal(parsed.PrimaryGoal),
		Domain:         domain.Domain(parsed.Domain),
		SecondaryGoals: parsed.SecondaryGoals,
		ActionRequired: parsed.ActionRequired,
		Confidence:     parsed.Confidence,
	}, nil
}

type planReply struct {
	Approach      string `json:"approach"`
	AppName       string `json:"app_name"`
	URL           string `json:"url"`
	SearchTerms   string `json:"search_terms"`
	Expression    string `json:"expression"`
	ContentType   string `json:"content_type"`
	Setting       string `json:"setting"`
	SettingAction string `json:"setting_action"`
	Response      string `json:"response"`
	Reasoning     string `json:"reasoning"`
}

func parsePlanReply(reply string) (domain.Plan, error) {
	raw, err := decodeJSONObject(reply, "approach")
	if err != nil {
		return domain.Plan{}, err
	}

	var parsed planReply
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return domain.Plan{}, fmt.Errorf("%w: %v", domain.ErrReasoningMalformed, err)
	}

	return domain.Plan{
		Approach:      domain.NormalizeApproach(parsed.Approach),
		AppName:       parsed.AppName,
		URL:           parsed.URL,
		SearchTerms:   parsed.SearchTerms,
		Expression:    parsed.Expression,
		ContentType:   domain.ContentType(parsed.ContentType),
		Setting:       domain.SystemSetting(parsed.Setting),
		SettingAction: domain.SettingAction(parsed.SettingAction),
		Response:      parsed.Response,
		Reasoning:     parsed.Reasoning,
	}, nil
}

// decodeJSONObject strips fences, verifies the reply is one JSON object and
// that every required key is present, and returns the raw bytes.
func decodeJSONObject(reply string, required ...string) ([]byte, error) {
	cleaned := fence.Strip(reply)
	raw := []byte(cleaned)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReasoningMalformed, err)
	}
	for _, key := range required {
		if _, ok := probe[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", domain.ErrReasoningMalformed, key)
		}
	}
	return raw, nil
}
