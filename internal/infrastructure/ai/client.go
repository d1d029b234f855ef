// Package ai implements the reasoning gateway: a configuration-driven HTTP
// client for chat-completion services plus the classifier built on top of it.
//
// All provider-specific wire behavior is controlled through the model's
// APIFormat configuration (auth header, system-message placement, response
// JSON path), so a single client serves any OpenAI- or Anthropic-shaped API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/time/rate"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

// Client is an HTTP chat-completion client for one configured model.
type Client struct {
	model      domain.ModelDefinition
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ ports.Reasoner = (*Client)(nil)

// NewClient builds a client for the model definition. requestsPerSecond
// bounds the outbound call rate; zero or negative disables limiting.
func NewClient(model domain.ModelDefinition, httpClient *http.Client, requestsPerSecond float64) *Client {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Client{
		model:      model,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

func (c *Client) Name() string {
	return c.model.Name
}

// Available reports whether the configured credential is present. It does
// not probe the network; transport failures surface from Complete.
func (c *Client) Available() bool {
	if c.model.AuthEnvVar == "" {
		return false
	}
	return os.Getenv(c.model.AuthEnvVar) != ""
}

// Complete performs one chat-completion round trip and returns the reply
// text located at the configured response JSON path.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("%w: credential %s not set", domain.ErrReasoningUnavailable, c.model.AuthEnvVar)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	body, err := c.buildRequestBody(req)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(httpReq)
	for key, value := range c.model.APIFormat.ExtraHeaders {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReasoningUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: HTTP %d %s", domain.ErrReasoningUnavailable, resp.StatusCode, resp.Status)
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	content, err := c.parseResponse(responseBody.Bytes())
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReasoningMalformed, err)
	}
	return content, nil
}

// buildRequestBody constructs the JSON body based on the model's APIFormat.
func (c *Client) buildRequestBody(req ports.CompletionRequest) ([]byte, error) {
	request := map[string]interface{}{
		"model":       c.model.ModelID,
		"temperature": req.Temperature,
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.model.MaxTokens
	}
	if maxTokens > 0 {
		request["max_tokens"] = maxTokens
	}

	if c.model.APIFormat.IsSystemMessageSeparate() {
		systemPrompt, chatMessages := splitSystemMessages(req.Messages)
		if systemPrompt != "" {
			request["system"] = systemPrompt
		}
		request["messages"] = chatMessages
	} else {
		request["messages"] = inlineMessages(req.Messages)
	}

	return json.Marshal(request)
}

// splitSystemMessages separates system messages for providers that take the
// system prompt in a dedicated field.
func splitSystemMessages(messages []domain.PromptMessage) (string, []domain.PromptMessage) {
	var systemLines []string
	var chat []domain.PromptMessage
	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "system") {
			systemLines = append(systemLines, msg.Content)
			continue
		}
		chat = append(chat, normalizeRole(msg))
	}
	return strings.TrimSpace(strings.Join(systemLines, "\n")), chat
}

func inlineMessages(messages []domain.PromptMessage) []domain.PromptMessage {
	out := make([]domain.PromptMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, normalizeRole(msg))
	}
	return out
}

func normalizeRole(msg domain.PromptMessage) domain.PromptMessage {
	msg.Role = strings.ToLower(msg.Role)
	return msg
}

func (c *Client) setAuthHeaders(req *http.Request) {
	format := c.model.APIFormat
	key := os.Getenv(c.model.AuthEnvVar)
	req.Header.Set(format.GetAuthHeaderName(), format.GetAuthHeaderPrefix()+key)
}

// parseResponse extracts the reply text using the configured JSON path.
func (c *Client) parseResponse(body []byte) (string, error) {
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("unmarshal JSON: %w", err)
	}

	path := c.model.APIFormat.GetResponseJSONPath()
	content, err := extractJSONPath(response, path)
	if err != nil {
		return "", fmt.Errorf("extract from path %q: %w", path, err)
	}
	return strings.TrimSpace(content), nil
}

// extractJSONPath walks a nested JSON value using a simple path notation.
// Supported paths: "field", "field.nested", "field[0].nested".
func extractJSONPath(data map[string]interface{}, path string) (string, error) {
	parts := parseJSONPath(path)
	var current interface{} = data

	for _, part := range parts {
		switch part.kind {
		case "field":
			obj, ok := current.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("expected object at '%s'", part.value)
			}
			var found bool
			current, found = obj[part.value]
			if !found {
				return "", fmt.Errorf("field '%s' not found", part.value)
			}

		case "index":
			arr, ok := current.([]interface{})
			if !ok {
				return "", fmt.Errorf("expected array at index %s", part.value)
			}
			var idx int
			fmt.Sscanf(part.value, "%d", &idx)
			if idx < 0 || idx >= len(arr) {
				return "", fmt.Errorf("index %d out of bounds (len=%d)", idx, len(arr))
			}
			current = arr[idx]
		}
	}

	if str, ok := current.(string); ok {
		return str, nil
	}
	return "", fmt.Errorf("final value is not a string: %T", current)
}

type pathPart struct {
	kind  string // "field" or "index"
	value string
}

// parseJSONPath converts "choices[0].message.content" into structured parts.
func parseJSONPath(path string) []pathPart {
	var parts []pathPart
	current := ""

	for i := 0; i < len(path); i++ {
		ch := path[i]
		switch ch {
		case '.':
			if current != "" {
				parts = append(parts, pathPart{kind: "field", value: current})
				current = ""
			}
		case '[':
			if current != "" {
				parts = append(parts, pathPart{kind: "field", value: current})
				current = ""
			}
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			if j < len(path) {
				parts = append(parts, pathPart{kind: "index", value: path[i+1 : j]})
				i = j
			}
		default:
			current += string(ch)
		}
	}

	if current != "" {
		parts = append(parts, pathPart{kind: "field", value: current})
	}
	return parts
}
