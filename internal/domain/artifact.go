package domain

// ContentType enumerates the artifact kinds the generator understands.
type ContentType string

const (
	ContentHTML     ContentType = "html"
	ContentPython   ContentType = "python"
	ContentText     ContentType = "text"
	ContentJS       ContentType = "javascript"
	ContentCSS      ContentType = "css"
	ContentMarkdown ContentType = "markdown"
	ContentShell    ContentType = "bash"
	ContentJSON     ContentType = "json"
	ContentYAML     ContentType = "yaml"
)

// Extension returns the canonical file extension for a content type.
func (c ContentType) Extension() string {
	switch c {
	case ContentHTML:
		return ".html"
	case ContentPython:
		return ".py"
	case ContentJS:
		return ".js"
	case ContentCSS:
		return ".css"
	case ContentMarkdown:
		return ".md"
	case ContentShell:
		return ".sh"
	case ContentJSON:
		return ".json"
	case ContentYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// Executable reports whether artifacts of this type run as scripts.
func (c ContentType) Executable() bool {
	return c == ContentPython || c == ContentShell
}

// BrowserRenderable reports whether artifacts of this type open in a browser.
func (c ContentType) BrowserRenderable() bool {
	return c == ContentHTML
}

// ContentAnalysis is the structured classification of a creative request.
// Gateway-backed and heuristic analysis produce the same shape.
type ContentAnalysis struct {
	Type        ContentType `json:"content_type"`
	Purpose     string      `json:"primary_purpose"`
	KeyFeatures []string    `json:"key_features"`
	Filename    string      `json:"suggested_filename"`
	Complexity  string      `json:"complexity_level"`
}

// SaveRole differentiates the candidate save directories.
type SaveRole string

const (
	SavePrimary   SaveRole = "primary"
	SaveOrganized SaveRole = "organized"
	SaveOther     SaveRole = "other"
)

// SaveResult records one attempted write of an artifact.
type SaveResult struct {
	Role SaveRole `json:"role"`
	Path string   `json:"path"`
	Err  string   `json:"error,omitempty"`
}

// PostAction records what happened to the artifact after generation.
type PostAction string

const (
	PostExecuted  PostAction = "executed"
	PostBrowser   PostAction = "opened_in_browser"
	PostServed    PostAction = "served"
	PostOpened    PostAction = "opened_file"
	PostSavedOnly PostAction = "created_only"
)

// Artifact is a generated file with its placement and post-action outcomes.
type Artifact struct {
	Analysis  ContentAnalysis
	Filename  string
	Body      string
	Saves     []SaveResult
	Action    PostAction
	ActionErr string
	ProcessID int
	ServePath string
}

// SavedPath returns the first successfully persisted location, if any.
func (a Artifact) SavedPath() string {
	for _, s := range a.Saves {
		if s.Err == "" {
			return s.Path
		}
	}
	return ""
}
