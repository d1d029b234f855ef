package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

type stubReasoner struct {
	reply     string
	err       error
	available bool
	calls     int
}

func (s *stubReasoner) Name() string    { return "stub" }
func (s *stubReasoner) Available() bool { return s.available }

func (s *stubReasoner) Complete(_ context.Context, _ ports.CompletionRequest) (string, error) {
	s.calls++
	return s.reply, s.err
}

type mapCache struct {
	values map[string]string
}

func (c *mapCache) Get(key string) (string, bool, error) {
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *mapCache) Set(key, value string) error {
	c.values[key] = value
	return nil
}

func newTestGateway(r ports.Reasoner, cache ports.CacheStore) *Gateway {
	return NewGateway(r, newFallback(), cache, nil, 0.1, 0.7)
}

// The fallback only serves Understand in these tests; a minimal stub keeps
// the package free of an import cycle with the heuristic engine.
type lexicalStub struct{}

func newFallback() *lexicalStub { return &lexicalStub{} }

func (*lexicalStub) Understand(_ context.Context, text string) (domain.Understanding, error) {
	return domain.Understanding{RawText: text}, nil
}

func (*lexicalStub) Intent(_ context.Context, _ string, _ domain.Understanding) (domain.Intent, error) {
	return domain.Intent{}, nil
}

func (*lexicalStub) Plan(_ context.Context, _ string, _ domain.Understanding, _ domain.Intent) (domain.Plan, error) {
	return domain.Plan{}, nil
}

func TestIntentParsesFencedReply(t *testing.T) {
	reasoner := &stubReasoner{
		available: true,
		reply: "```json\n" +
			`{"primary_goal":"task_execution","domain":"creation_task","secondary_goals":["python_script"],"action_required":true,"confidence":0.85}` +
			"\n```",
	}
	g := newTestGateway(reasoner, nil)

	in, err := g.Intent(context.Background(), "write a python script", domain.Understanding{})
	if err != nil {
		t.Fatalf("Intent: %v", err)
	}
	if in.PrimaryGoal != domain.GoalTaskExecution || in.Domain != domain.DomainCreation {
		t.Errorf("parsed intent = %+v", in)
	}
	if !in.ActionRequired || in.Confidence != 0.85 {
		t.Errorf("parsed intent = %+v", in)
	}
}

func TestIntentRejectsMalformedReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "sure, I'd classify that as a task"},
		{"missing required key", `{"domain":"general","confidence":0.5}`},
		{"confidence out of range", `{"primary_goal":"conversation","domain":"general","confidence":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(&stubReasoner{available: true, reply: tt.reply}, nil)
			_, err := g.Intent(context.Background(), "anything", domain.Understanding{})
			if !errors.Is(err, domain.ErrReasoningMalformed) {
				t.Errorf("err = %v, want ErrReasoningMalformed", err)
			}
		})
	}
}

func TestPlanNormalizesApproach(t *testing.T) {
	tests := []struct {
		tag  string
		want domain.Approach
	}{
		{"app_launch", domain.ApproachAppLaunch},
		{"application_launch", domain.ApproachAppLaunch},
		{"html_creation", domain.ApproachCreateContent},
		{"web_search", domain.ApproachWebOpen},
		{"something_improvised", domain.ApproachConversation},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			g := newTestGateway(&stubReasoner{
				available: true,
				reply:     `{"approach":"` + tt.tag + `","reasoning":"because"}`,
			}, nil)
			plan, err := g.Plan(context.Background(), "x", domain.Understanding{}, domain.Intent{})
			if err != nil {
				t.Fatalf("Plan: %v", err)
			}
			if plan.Approach != tt.want {
				t.Errorf("approach = %q, want %q", plan.Approach, tt.want)
			}
		})
	}
}

func TestClassifyUsesCache(t *testing.T) {
	reasoner := &stubReasoner{
		available: true,
		reply:     `{"primary_goal":"conversation","domain":"general_conversation","confidence":0.5}`,
	}
	g := newTestGateway(reasoner, &mapCache{values: map[string]string{}})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := g.Intent(ctx, "hello there", domain.Understanding{}); err != nil {
			t.Fatalf("Intent run %d: %v", i, err)
		}
	}
	if reasoner.calls != 1 {
		t.Errorf("reasoner calls = %d, want 1 (cache should absorb repeats)", reasoner.calls)
	}
}

func TestRespondStripsFences(t *testing.T) {
	g := newTestGateway(&stubReasoner{available: true, reply: "```\nHello!\n```"}, nil)
	reply, err := g.Respond(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply != "Hello!" {
		t.Errorf("reply = %q, want %q", reply, "Hello!")
	}
}
