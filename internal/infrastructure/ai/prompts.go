package ai

import (
	"bytes"
	"strings"
	"text/template"
)

// Stage prompts ask for bare JSON with a fixed key set. Replies are stripped
// of markdown fences and parsed strictly; a missing required key fails the
// stage rather than being repaired.

const intentSystemPrompt = `You classify natural-language requests for a desktop assistant.
Respond with a single JSON object and nothing else. Keys:
  "primary_goal": one of "information_seeking", "task_execution", "conversation", "system_control"
  "domain": one of "temporal_information", "environmental_information", "system_information", "general_knowledge", "creation_task", "system_control", "communication", "information_retrieval", "computation", "general_conversation", "general"
  "secondary_goals": array of short snake_case strings (may be empty)
  "action_required": boolean
  "confidence": number between 0 and 1
No markdown, no explanation.`

const intentUserTemplate = `Request: {{.Text}}
Analysis: question={{.U.IsQuestion}} command={{.U.IsCommand}} system={{.U.IsSystemRequest}} tone={{.U.EmotionalTone}} complexity={{.U.Complexity}}`

const planSystemPrompt = `You plan how a desktop assistant should act on a classified request.
Respond with a single JSON object and nothing else. Keys:
  "approach": one of "app_launch", "web_open", "create_content", "system_command", "conversation", "calculation", "info_response"
  "app_name": application to launch, or ""
  "url": URL to open, or ""
  "search_terms": web search query, or ""
  "expression": arithmetic expression, or ""
  "content_type": one of "html", "python", "text", "javascript", "css", "markdown", "bash", "json", "yaml", or ""
  "setting": "volume" or "brightness", or ""
  "setting_action": "increase", "decrease" or "mute", or ""
  "response": direct reply text for the conversation approach, or ""
  "reasoning": one short sentence
No markdown, no explanation.`

const planUserTemplate = `Request: {{.Text}}
Intent: goal={{.In.PrimaryGoal}} domain={{.In.Domain}} secondary={{join .In.SecondaryGoals ","}} confidence={{.In.Confidence}}`

const respondSystemPrompt = `You are Aimy, a friendly desktop assistant. Reply conversationally in at
most three sentences. Plain text only.`

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

func renderTemplate(name, raw string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(promptFuncs).Parse(raw)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
