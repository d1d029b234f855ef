package domain

// ModelDefinition describes the reasoning-service endpoint declared in the
// config file: where to send chat completions and how to authenticate.
type ModelDefinition struct {
	Name       string    `yaml:"name"`
	Endpoint   string    `yaml:"endpoint"`
	AuthEnvVar string    `yaml:"auth_env_var"`
	ModelID    string    `yaml:"model_id"`
	MaxTokens  int       `yaml:"max_tokens"`
	APIFormat  APIFormat `yaml:"api_format,omitempty"`
}

// APIFormat defines how to construct requests and parse responses for
// different chat-completion APIs. All fields default to the
// OpenAI-compatible wire format.
type APIFormat struct {
	// AuthHeaderName specifies the HTTP header carrying the credential.
	// Default: "Authorization".
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`

	// AuthHeaderPrefix is prepended to the API key value. Default:
	// "Bearer " (with trailing space). Providers using a bare key header
	// (e.g. "x-api-key") set AuthHeaderName and leave this empty.
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`

	// SystemMessageMode is "inline" (system messages in the messages
	// array, the default) or "separate" (a dedicated "system" field).
	SystemMessageMode string `yaml:"system_message_mode,omitempty"`

	// ResponseJSONPath locates the generated text in the reply.
	// Default: "choices[0].message.content".
	ResponseJSONPath string `yaml:"response_json_path,omitempty"`

	// ExtraHeaders are sent verbatim with each request.
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

// PromptMessage follows the role/content pair required by chat APIs.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	DefaultAuthHeaderName   = "Authorization"
	DefaultAuthHeaderPrefix = "Bearer "

	SystemMessageModeInline   = "inline"
	SystemMessageModeSeparate = "separate"

	DefaultResponsePath = "choices[0].message.content"
)

// GetAuthHeaderName returns the authentication header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the credential prefix. An empty prefix is a
// valid value when the header name was customized.
func (f APIFormat) GetAuthHeaderPrefix() string {
	if f.AuthHeaderName != "" && f.AuthHeaderPrefix == "" {
		return ""
	}
	if f.AuthHeaderPrefix == "" {
		return DefaultAuthHeaderPrefix
	}
	return f.AuthHeaderPrefix
}

// IsSystemMessageSeparate reports whether system messages go in a separate field.
func (f APIFormat) IsSystemMessageSeparate() bool {
	return f.SystemMessageMode == SystemMessageModeSeparate
}

// GetResponseJSONPath returns the JSON path for extracting reply content.
func (f APIFormat) GetResponseJSONPath() string {
	if f.ResponseJSONPath == "" {
		return DefaultResponsePath
	}
	return f.ResponseJSONPath
}
