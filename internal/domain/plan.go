package domain

// Approach selects which action router handler runs for a plan.
type Approach string

const (
	ApproachAppLaunch     Approach = "app_launch"
	ApproachWebOpen       Approach = "web_open"
	ApproachCreateContent Approach = "create_content"
	ApproachSystemCommand Approach = "system_command"
	ApproachConversation  Approach = "conversation"
	ApproachCalculation   Approach = "calculation"
	ApproachInfoResponse  Approach = "info_response"
)

// legacyApproaches maps tags emitted by older prompt revisions (and by the
// reasoning service when it improvises) onto the closed vocabulary.
var legacyApproaches = map[string]Approach{
	"application_launch":   ApproachAppLaunch,
	"system_control":       ApproachAppLaunch,
	"web_interaction":      ApproachWebOpen,
	"web_search":           ApproachWebOpen,
	"html_creation":        ApproachCreateContent,
	"python_creation":      ApproachCreateContent,
	"software_creation":    ApproachCreateContent,
	"ai_content_creation":  ApproachCreateContent,
	"computation":          ApproachCalculation,
	"direct_system_call":   ApproachInfoResponse,
	"natural_conversation": ApproachConversation,
}

// NormalizeApproach coerces an arbitrary tag into the closed vocabulary.
// Unrecognized tags map to conversation rather than failing.
func NormalizeApproach(tag string) Approach {
	switch Approach(tag) {
	case ApproachAppLaunch, ApproachWebOpen, ApproachCreateContent,
		ApproachSystemCommand, ApproachConversation, ApproachCalculation,
		ApproachInfoResponse:
		return Approach(tag)
	}
	if a, ok := legacyApproaches[tag]; ok {
		return a
	}
	return ApproachConversation
}

// SystemSetting names a controllable OS setting.
type SystemSetting string

const (
	SettingVolume     SystemSetting = "volume"
	SettingBrightness SystemSetting = "brightness"
)

// SettingAction names the adjustment applied to a system setting.
type SettingAction string

const (
	SettingIncrease SettingAction = "increase"
	SettingDecrease SettingAction = "decrease"
	SettingMute     SettingAction = "mute"
)

// Plan is the resolved strategy for a single request. Only the fields
// relevant to its Approach are populated.
type Plan struct {
	Approach      Approach
	AppName       string
	URL           string
	SearchTerms   string
	Expression    string
	ContentType   ContentType
	Setting       SystemSetting
	SettingAction SettingAction
	Response      string
	Reasoning     string
}
