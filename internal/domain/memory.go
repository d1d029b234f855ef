package domain

import "time"

// ContextEntry is one exchange in the rolling conversation context.
type ContextEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	UserInput string     `json:"user_input"`
	Response  string     `json:"response"`
	Success   bool       `json:"success"`
	Type      ResultType `json:"type"`
}

// InteractionSignal is one per-interaction quality observation retained for
// the learned-pattern log. Observational only; routing never consults it.
type InteractionSignal struct {
	Timestamp        time.Time `json:"timestamp"`
	UnderstandingQ   float64   `json:"understanding_quality"`
	IntentConfidence float64   `json:"intent_confidence"`
	Success          bool      `json:"success"`
	Approach         Approach  `json:"approach"`
}

// InteractionRecord is the durable per-request row persisted for diagnostics.
type InteractionRecord struct {
	Timestamp time.Time  `json:"timestamp"`
	RequestID string     `json:"request_id"`
	Input     string     `json:"input"`
	Approach  Approach   `json:"approach"`
	Type      ResultType `json:"type"`
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
}
