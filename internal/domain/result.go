package domain

// ResultType tags the terminal outcome of a request.
type ResultType string

const (
	ResultConversation     ResultType = "conversation"
	ResultAppLaunch        ResultType = "application_launch"
	ResultWebAppLaunch     ResultType = "web_app_launch"
	ResultWebSearch        ResultType = "web_search"
	ResultContentCreation  ResultType = "content_creation"
	ResultSystemControl    ResultType = "system_control"
	ResultComputation      ResultType = "computation"
	ResultTimeInformation  ResultType = "time_information"
	ResultPermissionDenied ResultType = "permission_denied"
	ResultExecutionFailure ResultType = "execution_failure"
	ResultReasoningFailure ResultType = "reasoning_failure"
)

// ExecutionResult is the canonical value returned to the hosting shell.
// Success implies a non-empty Message; failure implies a non-empty Error.
type ExecutionResult struct {
	Success bool       `json:"success"`
	Type    ResultType `json:"type"`
	Message string     `json:"message,omitempty"`
	Error   string     `json:"error,omitempty"`

	AppName    string       `json:"app_name,omitempty"`
	URL        string       `json:"url,omitempty"`
	Expression string       `json:"expression,omitempty"`
	Value      float64      `json:"value,omitempty"`
	FilePath   string       `json:"file_path,omitempty"`
	ProcessID  int          `json:"process_id,omitempty"`
	Saves      []SaveResult `json:"saves,omitempty"`
}

// Failure builds a well-formed failure result, guaranteeing the error
// description is never empty.
func Failure(t ResultType, errMsg string) ExecutionResult {
	if errMsg == "" {
		errMsg = "unknown error"
	}
	return ExecutionResult{Success: false, Type: t, Error: errMsg}
}
