package heuristic

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/aimy-go/internal/domain"
)

func classify(t *testing.T, text string) (domain.Understanding, domain.Intent, domain.Plan) {
	t.Helper()
	e := New()
	ctx := context.Background()
	u, err := e.Understand(ctx, text)
	if err != nil {
		t.Fatalf("Understand(%q): %v", text, err)
	}
	in, err := e.Intent(ctx, text, u)
	if err != nil {
		t.Fatalf("Intent(%q): %v", text, err)
	}
	plan, err := e.Plan(ctx, text, u, in)
	if err != nil {
		t.Fatalf("Plan(%q): %v", text, err)
	}
	return u, in, plan
}

func TestUnderstandFlags(t *testing.T) {
	tests := []struct {
		text string
		want domain.Understanding
	}{
		{
			text: "What time is it?",
			want: domain.Understanding{
				RawText:          "What time is it?",
				TextLength:       16,
				WordCount:        4,
				IsQuestion:       true,
				ConversationType: domain.ConversationGeneral,
				EmotionalTone:    domain.ToneNeutral,
				Complexity:       domain.ComplexityMedium,
			},
		},
		{
			text: "please open the terminal app now",
			want: domain.Understanding{
				RawText:          "please open the terminal app now",
				TextLength:       32,
				WordCount:        6,
				IsCommand:        true,
				IsSystemRequest:  true,
				ConversationType: domain.ConversationGeneral,
				EmotionalTone:    domain.TonePolite,
				UrgencyHigh:      true,
				Complexity:       domain.ComplexityMedium,
			},
		},
		{
			text: "build a simple database api",
			want: domain.Understanding{
				RawText:          "build a simple database api",
				TextLength:       27,
				WordCount:        5,
				IsCommand:        true,
				HasTechnicalTerm: true,
				ConversationType: domain.ConversationGeneral,
				EmotionalTone:    domain.ToneNeutral,
				Complexity:       domain.ComplexityLow,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, _, _ := classify(t, tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Understand mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Understanding flags are deterministic: the same input always yields the
// same analysis.
func TestUnderstandDeterministic(t *testing.T) {
	e := New()
	ctx := context.Background()
	const text = "please create a complex python script to calculate primes"
	first, err := e.Understand(ctx, text)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := e.Understand(ctx, text)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d diverged (-first +again):\n%s", i, diff)
		}
	}
}

func TestDomainPriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Domain
	}{
		// "create" and "calculator" both appear; creation wins.
		{"creation over computation", "create a calculator", domain.DomainCreation},
		// "open" and "search" both appear; system control wins.
		{"system control over search", "open the browser and search", domain.DomainSystemControl},
		// "send" and "find" both appear; communication wins.
		{"communication over search", "send a message to find out", domain.DomainCommunication},
		{"search alone", "search for gophers", domain.DomainRetrieval},
		{"computation alone", "calculate 2 + 2", domain.DomainComputation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, in, _ := classify(t, tt.text)
			if in.Domain != tt.want {
				t.Errorf("Intent(%q).Domain = %q, want %q", tt.text, in.Domain, tt.want)
			}
			if !in.ActionRequired {
				t.Errorf("Intent(%q).ActionRequired = false, want true", tt.text)
			}
		})
	}
}

func TestConfidenceLadder(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"create a python script", 0.8}, // secondary goals present
		{"what time is it?", 0.7},       // concrete domain, no secondary goals
		{"hello there friend", 0.7},     // conversational domain is still concrete
		{"close the door", 0.5},         // command with no recognizable domain
	}
	for _, tt := range tests {
		_, in, _ := classify(t, tt.text)
		if in.Confidence != tt.want {
			t.Errorf("Intent(%q).Confidence = %v, want %v", tt.text, in.Confidence, tt.want)
		}
	}
}

func TestPlanApproaches(t *testing.T) {
	tests := []struct {
		text string
		want domain.Approach
	}{
		{"open the terminal", domain.ApproachAppLaunch},
		{"open youtube", domain.ApproachWebOpen},
		{"create a website for my portfolio", domain.ApproachCreateContent},
		{"turn the volume up", domain.ApproachSystemCommand},
		{"calculate 12 * 4", domain.ApproachCalculation},
		{"what time is it?", domain.ApproachInfoResponse},
		{"hello", domain.ApproachConversation},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, _, plan := classify(t, tt.text)
			if plan.Approach != tt.want {
				t.Errorf("Plan(%q).Approach = %q, want %q", tt.text, plan.Approach, tt.want)
			}
		})
	}
}

// Arithmetic phrased as a question must still reach the calculator; the
// question words alone don't make it a knowledge lookup.
func TestArithmeticQuestionsRouteToCalculation(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"what is 12 * 4", "12 * 4"},
		{"what is 5 + 3 - 2", "5 + 3 - 2"},
		{"what is 10 divided by 4", "10 / 4"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, in, plan := classify(t, tt.text)
			if in.Domain != domain.DomainComputation {
				t.Fatalf("Intent(%q).Domain = %q, want computation", tt.text, in.Domain)
			}
			if plan.Approach != domain.ApproachCalculation {
				t.Fatalf("Plan(%q).Approach = %q, want calculation", tt.text, plan.Approach)
			}
			if normalizeSpaces(plan.Expression) != normalizeSpaces(tt.want) {
				t.Errorf("Plan(%q).Expression = %q, want %q", tt.text, plan.Expression, tt.want)
			}
		})
	}
}

func TestResolveAppName(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"open the calculator", "Calculator"},
		{"open chrome", "Google Chrome"},
		{"launch my email", "Mail"},
		{"open vscode", "Visual Studio Code"},
		{"open something obscure", "Safari"}, // table default
	}
	e := New()
	for _, tt := range tests {
		if got := e.ResolveAppName(tt.text); got != tt.want {
			t.Errorf("ResolveAppName(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAlternativeReturnsSecondRanked(t *testing.T) {
	e := New()
	alt, ok := e.Alternative("Safari")
	if !ok || alt != "Google Chrome" {
		t.Errorf("Alternative(Safari) = %q, %v; want Google Chrome, true", alt, ok)
	}
	if _, ok := e.Alternative("Calculator"); ok {
		t.Error("Alternative(Calculator) = ok, want no entry")
	}
}

func TestWebEquivalentAlwaysURL(t *testing.T) {
	e := New()
	for _, app := range []string{"Mail", "Notes", "Calculator", "Some Unknown App"} {
		u := e.WebEquivalent(app, "open "+strings.ToLower(app))
		if !strings.HasPrefix(u, "https://") {
			t.Errorf("WebEquivalent(%q) = %q, want an https URL", app, u)
		}
	}
}

func TestExtractExpression(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"calculate 12 * 4", "12 * 4"},
		{"what is 5 plus 3 minus 2", "5 + 3 - 2"},
		{"compute 10 divided by 4 please", "10 / 4"},
		{"3.5 times 2", "3.5 * 2"},
		{"calculate something vague", ""},
	}
	e := New()
	for _, tt := range tests {
		got := e.ExtractExpression(tt.text)
		if normalizeSpaces(got) != normalizeSpaces(tt.want) {
			t.Errorf("ExtractExpression(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestExtractSearchTerms(t *testing.T) {
	e := New()
	got := e.ExtractSearchTerms("search for golang concurrency patterns")
	want := "golang concurrency patterns"
	if got != want {
		t.Errorf("ExtractSearchTerms = %q, want %q", got, want)
	}
}

func TestCannedReplies(t *testing.T) {
	e := New()
	types := []domain.ConversationType{
		domain.ConversationGreeting,
		domain.ConversationFarewell,
		domain.ConversationHelp,
		domain.ConversationGratitude,
		domain.ConversationCapabilities,
		domain.ConversationGeneral,
	}
	seen := map[string]domain.ConversationType{}
	for _, ct := range types {
		reply := e.CannedReply(ct)
		if reply == "" {
			t.Errorf("CannedReply(%q) is empty", ct)
		}
		if prev, dup := seen[reply]; dup {
			t.Errorf("CannedReply(%q) duplicates reply for %q", ct, prev)
		}
		seen[reply] = ct
	}
}

func TestSystemSettingDetection(t *testing.T) {
	tests := []struct {
		text    string
		setting domain.SystemSetting
		action  domain.SettingAction
	}{
		{"turn the volume up", domain.SettingVolume, domain.SettingIncrease},
		{"turn the volume down", domain.SettingVolume, domain.SettingDecrease},
		{"mute the sound", domain.SettingVolume, domain.SettingMute},
		{"increase brightness", domain.SettingBrightness, domain.SettingIncrease},
		{"dim the screen", domain.SettingBrightness, domain.SettingDecrease},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, _, plan := classify(t, tt.text)
			if plan.Approach != domain.ApproachSystemCommand {
				t.Fatalf("Plan(%q).Approach = %q, want system_command", tt.text, plan.Approach)
			}
			if plan.Setting != tt.setting || plan.SettingAction != tt.action {
				t.Errorf("Plan(%q) = %s/%s, want %s/%s",
					tt.text, plan.Setting, plan.SettingAction, tt.setting, tt.action)
			}
		})
	}
}
