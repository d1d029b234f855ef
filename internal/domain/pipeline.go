package domain

// PipelineService exposes the use-case boundary for handling one request.
type PipelineService interface {
	Process(Request) ExecutionResult
}
