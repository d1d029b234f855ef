// Package heuristic implements the keyword fallback classifier.
//
// The engine is pure: no network, no clock beyond what the caller passes in,
// and deterministic output for a given input string. It backs the dispatch
// pipeline whenever the reasoning gateway is unavailable, and it always owns
// the language-analysis stage regardless of gateway health.
package heuristic

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

// Engine implements ports.Classifier with fixed word lists and tables.
type Engine struct{}

var _ ports.Classifier = (*Engine)(nil)

// New returns the heuristic classifier.
func New() *Engine {
	return &Engine{}
}

var expressionPattern = regexp.MustCompile(`\d+(?:\.\d+)?(?:\s*[-+*/^%]\s*\d+(?:\.\d+)?)+`)

// bareDomainPattern recognizes things like "example.com" inside a request.
var bareDomainPattern = regexp.MustCompile(`\b([a-z0-9][a-z0-9-]*(?:\.[a-z0-9][a-z0-9-]*)+)\b`)

// wordRewrites turn spoken operators into symbols before expression
// extraction. Longer phrases first so "divided by" is not eaten by "divide".
var wordRewrites = []struct{ from, to string }{
	{"divided by", "/"},
	{"multiplied by", "*"},
	{"plus", "+"},
	{"minus", "-"},
	{"times", "*"},
	{"divide", "/"},
	{"multiply", "*"},
	{"add", "+"},
	{"subtract", "-"},
}

// Understand derives the language-analysis flags from the raw text. It never
// fails; the error return satisfies the classifier contract.
func (e *Engine) Understand(_ context.Context, text string) (domain.Understanding, error) {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	u := domain.Understanding{
		RawText:    text,
		TextLength: len(text),
		WordCount:  len(tokens),
	}

	u.IsQuestion = strings.HasSuffix(strings.TrimSpace(text), "?") || containsAny(tokens, questionWords)
	u.IsCommand = containsAny(tokens, actionWords)
	u.IsSystemRequest = containsAny(tokens, systemWords)
	u.HasTechnicalTerm = containsAny(tokens, technicalWords)
	u.ConversationType = conversationType(lower, tokens)

	u.EmotionalTone = domain.ToneNeutral
	if containsAny(tokens, politeWords) {
		u.EmotionalTone = domain.TonePolite
	}
	u.UrgencyHigh = containsAny(tokens, urgencyWords)

	switch {
	case containsAny(tokens, simpleWords):
		u.Complexity = domain.ComplexityLow
	case containsAny(tokens, complexWords):
		u.Complexity = domain.ComplexityHigh
	default:
		u.Complexity = domain.ComplexityMedium
	}
	return u, nil
}

// Intent classifies goal and domain. Domain checks run in a fixed priority
// order; the first matching family wins, so "create a calculator" is a
// creation task, never a computation.
func (e *Engine) Intent(_ context.Context, text string, u domain.Understanding) (domain.Intent, error) {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	in := domain.Intent{
		PrimaryGoal: domain.GoalConversation,
		Domain:      domain.DomainConversation,
		Confidence:  0.5,
	}

	switch {
	case u.IsQuestion:
		in.PrimaryGoal = domain.GoalInformationSeeking
		in.Domain = questionDomain(tokens)
		// "what is 12 * 4" is a computation, not a knowledge lookup.
		if in.Domain == domain.DomainKnowledge && e.ExtractExpression(text) != "" {
			in.Domain = domain.DomainComputation
		}
	case u.IsCommand:
		in.PrimaryGoal = domain.GoalTaskExecution
		in.ActionRequired = true
		in.Domain, in.SecondaryGoals = commandDomain(lower, tokens)
	}

	if len(in.SecondaryGoals) > 0 {
		in.Confidence = 0.8
	} else if in.Domain != domain.DomainGeneral {
		in.Confidence = 0.7
	}
	return in, nil
}

// Plan maps the intent to a concrete execution approach.
func (e *Engine) Plan(_ context.Context, text string, u domain.Understanding, in domain.Intent) (domain.Plan, error) {
	switch in.PrimaryGoal {
	case domain.GoalInformationSeeking:
		return e.planInformation(text, in), nil
	case domain.GoalTaskExecution:
		return e.planTask(text, in), nil
	default:
		return domain.Plan{
			Approach:  domain.ApproachConversation,
			Response:  e.CannedReply(u.ConversationType),
			Reasoning: "conversational request",
		}, nil
	}
}

func (e *Engine) planInformation(text string, in domain.Intent) domain.Plan {
	switch in.Domain {
	case domain.DomainTemporal:
		return domain.Plan{
			Approach:  domain.ApproachInfoResponse,
			Reasoning: "time or date question answered from the local clock",
		}
	case domain.DomainComputation:
		return domain.Plan{
			Approach:   domain.ApproachCalculation,
			Expression: e.ExtractExpression(text),
			Reasoning:  "arithmetic question",
		}
	}
	return domain.Plan{
		Approach:  domain.ApproachConversation,
		Reasoning: "general knowledge question",
	}
}

func (e *Engine) planTask(text string, in domain.Intent) domain.Plan {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	switch in.Domain {
	case domain.DomainCreation:
		return domain.Plan{
			Approach:    domain.ApproachCreateContent,
			ContentType: contentHint(in.SecondaryGoals),
			Reasoning:   "creation request routed to the content subsystem",
		}

	case domain.DomainSystemControl:
		if setting, action, ok := detectSystemSetting(tokens); ok {
			return domain.Plan{
				Approach:      domain.ApproachSystemCommand,
				Setting:       setting,
				SettingAction: action,
				Reasoning:     "hardware setting adjustment",
			}
		}
		if name, siteURL, ok := e.DetectWebsite(lower); ok {
			return domain.Plan{
				Approach:  domain.ApproachWebOpen,
				AppName:   name,
				URL:       siteURL,
				Reasoning: "known website requested by name",
			}
		}
		if raw, ok := detectBareDomain(lower); ok {
			return domain.Plan{
				Approach:  domain.ApproachWebOpen,
				URL:       "https://" + raw,
				Reasoning: "explicit domain in request",
			}
		}
		return domain.Plan{
			Approach:  domain.ApproachAppLaunch,
			AppName:   e.ResolveAppName(lower),
			Reasoning: "application launch request",
		}

	case domain.DomainCommunication:
		app := "Messages"
		if anyIn(tokenSet(tokens), "email", "mail") {
			app = "Mail"
		}
		return domain.Plan{
			Approach:  domain.ApproachAppLaunch,
			AppName:   app,
			Reasoning: "communication request routed to the messaging app",
		}

	case domain.DomainRetrieval:
		terms := e.ExtractSearchTerms(text)
		return domain.Plan{
			Approach:    domain.ApproachWebOpen,
			SearchTerms: terms,
			URL:         searchURL(terms),
			Reasoning:   "web search request",
		}

	case domain.DomainComputation:
		return domain.Plan{
			Approach:   domain.ApproachCalculation,
			Expression: e.ExtractExpression(text),
			Reasoning:  "arithmetic request",
		}
	}

	return domain.Plan{
		Approach:  domain.ApproachConversation,
		Reasoning: "no concrete task recognized",
	}
}

// ResolveAppName maps request text to a canonical application name. Unmatched
// requests default to Safari.
func (e *Engine) ResolveAppName(text string) string {
	tokens := tokenSet(tokenize(strings.ToLower(text)))
	for _, row := range appTable {
		for _, kw := range row.keywords {
			if _, ok := tokens[kw]; ok {
				return row.name
			}
		}
	}
	return defaultApp
}

// Alternative returns the second-ranked substitute for a failed app launch,
// or false when the table has none.
func (e *Engine) Alternative(app string) (string, bool) {
	ranked, ok := appAlternates[app]
	if !ok {
		return "", false
	}
	for _, candidate := range ranked {
		if candidate != app {
			return candidate, true
		}
	}
	return "", false
}

// WebEquivalent resolves a browser-reachable stand-in for an application that
// could not be launched natively. The result is always a valid URL.
func (e *Engine) WebEquivalent(app, text string) string {
	if _, siteURL, ok := e.DetectWebsite(strings.ToLower(text)); ok {
		return siteURL
	}
	if u, ok := webEquivalents[app]; ok {
		return u
	}
	return searchURL(app)
}

// DetectWebsite scans the lower-cased text for a known destination keyword.
func (e *Engine) DetectWebsite(lower string) (name, siteURL string, ok bool) {
	tokens := tokenSet(tokenize(lower))
	for _, row := range websiteTable {
		if _, hit := tokens[row.keyword]; hit {
			return row.name, row.url, true
		}
	}
	return "", "", false
}

// ExtractExpression pulls the first arithmetic expression out of the text,
// rewriting spoken operators first. Returns "" when nothing matches.
func (e *Engine) ExtractExpression(text string) string {
	lower := strings.ToLower(text)
	for _, rw := range wordRewrites {
		lower = strings.ReplaceAll(lower, rw.from, " "+rw.to+" ")
	}
	return strings.TrimSpace(expressionPattern.FindString(lower))
}

// ExtractSearchTerms drops search verbs and short filler words, keeping the
// remainder as the query.
func (e *Engine) ExtractSearchTerms(text string) string {
	var kept []string
	for _, tok := range tokenize(strings.ToLower(text)) {
		if _, stop := searchStopWords[tok]; stop {
			continue
		}
		if len(tok) <= 2 {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// CannedReply returns the offline response for a conversational sub-type.
func (e *Engine) CannedReply(ct domain.ConversationType) string {
	switch ct {
	case domain.ConversationGreeting:
		return "Hello! I'm Aimy, your AI assistant. How can I help you today?"
	case domain.ConversationFarewell:
		return "Goodbye! Feel free to come back whenever you need help."
	case domain.ConversationHelp:
		return "I can open applications, control system settings, search the web, create content, and do calculations. Just tell me what you need."
	case domain.ConversationGratitude:
		return "You're welcome! Happy to help."
	case domain.ConversationCapabilities:
		return "I can launch apps, open websites, adjust volume and brightness, generate HTML pages and Python scripts, run calculations, and answer questions."
	default:
		return "I'm not sure how to help with that yet, but I'm always learning. Could you rephrase it?"
	}
}

func conversationType(lower string, tokens []string) domain.ConversationType {
	for _, phrase := range capabilityPhrases {
		if strings.Contains(lower, phrase) {
			return domain.ConversationCapabilities
		}
	}
	set := tokenSet(tokens)
	switch {
	case overlaps(set, greetingWords):
		return domain.ConversationGreeting
	case overlaps(set, farewellWords):
		return domain.ConversationFarewell
	case overlaps(set, gratitudeWords):
		return domain.ConversationGratitude
	case overlaps(set, helpWords):
		return domain.ConversationHelp
	default:
		return domain.ConversationGeneral
	}
}

func questionDomain(tokens []string) domain.Domain {
	set := tokenSet(tokens)
	switch {
	case anyIn(set, "time", "date", "clock", "today"):
		return domain.DomainTemporal
	case anyIn(set, "weather", "temperature", "forecast"):
		return domain.DomainEnvironmental
	case anyIn(set, "system", "computer", "specs", "memory"):
		return domain.DomainSystemInfo
	default:
		return domain.DomainKnowledge
	}
}

func commandDomain(lower string, tokens []string) (domain.Domain, []string) {
	set := tokenSet(tokens)
	switch {
	case overlaps(set, creationWords):
		return domain.DomainCreation, creationGoals(lower, set)
	case overlaps(set, launchWords) || overlaps(set, systemWords):
		return domain.DomainSystemControl, []string{"application_launch"}
	case overlaps(set, communicationWords):
		return domain.DomainCommunication, []string{"messaging"}
	case overlaps(set, searchWords):
		return domain.DomainRetrieval, []string{"web_search"}
	case overlaps(set, computationWords) || expressionPattern.MatchString(lower):
		return domain.DomainComputation, []string{"mathematical_calculation"}
	}
	return domain.DomainGeneral, nil
}

func creationGoals(lower string, set map[string]struct{}) []string {
	var goals []string
	if anyIn(set, "html", "website", "webpage", "page") {
		goals = append(goals, "html_website")
	}
	if anyIn(set, "calculator") {
		goals = append(goals, "calculator_tool")
	}
	if anyIn(set, "python", "script") {
		goals = append(goals, "python_script")
	}
	if anyIn(set, "app", "application", "software", "program") {
		goals = append(goals, "software_development")
	}
	if anyIn(set, "file", "document") {
		goals = append(goals, "file_creation")
	}
	if len(goals) == 0 {
		goals = append(goals, "intelligent_creation")
	}
	return goals
}

func contentHint(goals []string) domain.ContentType {
	for _, g := range goals {
		switch g {
		case "html_website", "calculator_tool":
			return domain.ContentHTML
		case "python_script":
			return domain.ContentPython
		case "file_creation":
			return domain.ContentText
		}
	}
	return ""
}

func detectSystemSetting(tokens []string) (domain.SystemSetting, domain.SettingAction, bool) {
	set := tokenSet(tokens)
	var setting domain.SystemSetting
	switch {
	case anyIn(set, "brightness", "screen"):
		setting = domain.SettingBrightness
	case anyIn(set, "volume", "sound", "audio"):
		setting = domain.SettingVolume
	default:
		return "", "", false
	}

	action := domain.SettingIncrease
	switch {
	case anyIn(set, "mute", "silence") && setting == domain.SettingVolume:
		action = domain.SettingMute
	case anyIn(set, "decrease", "lower", "down", "dim", "reduce"):
		action = domain.SettingDecrease
	}
	return setting, action, true
}

func detectBareDomain(lower string) (string, bool) {
	m := bareDomainPattern.FindString(lower)
	if m == "" {
		return "", false
	}
	// Require a plausible TLD so "3.14" style tokens never qualify.
	parts := strings.Split(m, ".")
	last := parts[len(parts)-1]
	if len(last) < 2 || strings.ContainsAny(last, "0123456789") {
		return "", false
	}
	return m, true
}

func searchURL(terms string) string {
	if terms == "" {
		return "https://www.google.com"
	}
	return fmt.Sprintf("https://www.google.com/search?q=%s", url.QueryEscape(terms))
}

func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return false
		case r == '.', r == '-':
			return false
		default:
			return true
		}
	})
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[strings.Trim(t, ".-")] = struct{}{}
	}
	return set
}

func containsAny(tokens []string, words map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := words[strings.Trim(t, ".-?")]; ok {
			return true
		}
	}
	return false
}

func overlaps(set, words map[string]struct{}) bool {
	for w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

func anyIn(set map[string]struct{}, words ...string) bool {
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}
