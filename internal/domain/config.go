package domain

// Config mirrors ~/.aimy/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Assistant           AssistantSettings `yaml:"assistant"`
	Reasoning           ReasoningSettings `yaml:"reasoning"`
	Models              []ModelDefinition `yaml:"models"`
	Content             ContentSettings   `yaml:"content"`
	Security            SecuritySettings  `yaml:"security"`
	Server              ServerSettings    `yaml:"server"`
}

// AssistantSettings carries identity metadata surfaced by the CLI banner and
// the capabilities endpoint.
type AssistantSettings struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	Version      string   `yaml:"version"`
	Capabilities []string `yaml:"capabilities,omitempty"`
	Features     []string `yaml:"features,omitempty"`
}

// ReasoningSettings configures the gateway to the reasoning service.
type ReasoningSettings struct {
	DefaultModel            string  `yaml:"default_model"`
	TimeoutSeconds          int     `yaml:"timeout"`
	ClassifyTemperature     float64 `yaml:"classify_temperature"`
	GenerateTemperature     float64 `yaml:"generate_temperature"`
	RequestsPerSecond       float64 `yaml:"requests_per_second"`
	ClassificationCacheSize int     `yaml:"classification_cache_size"`
}

// ContentSettings controls artifact placement.
type ContentSettings struct {
	PrimaryDir   string `yaml:"primary_dir"`
	OrganizedDir string `yaml:"organized_dir"`
	ExtraDir     string `yaml:"extra_dir"`
}

// SecuritySettings defines permission-gate behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}

// ServerSettings configures the HTTP shell.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// DefaultCapabilities lists what the assistant advertises when the config
// does not override it.
func DefaultCapabilities() []string {
	return []string{
		"Dynamic application creation",
		"System control and automation",
		"Natural language processing",
		"Code generation",
		"Web browsing and search",
		"Mathematical computations",
		"File operations",
		"Intelligent conversations",
	}
}

// DefaultFeatures lists the feature tags advertised alongside capabilities.
func DefaultFeatures() []string {
	return []string{
		"AI-powered reasoning",
		"Heuristic offline fallback",
		"Bounded conversation memory",
		"Real-time adaptation",
	}
}
