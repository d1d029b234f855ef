package domain

import "errors"

// Gateway error taxonomy. ReasoningUnavailable silently triggers the
// heuristic path; ReasoningMalformed does the same but is worth logging.
var (
	ErrReasoningUnavailable = errors.New("reasoning service unavailable")
	ErrReasoningMalformed   = errors.New("reasoning reply failed validation")
	ErrPermissionDenied     = errors.New("permission denied")
)

// IsGatewayError reports whether err belongs to the gateway taxonomy and so
// should route the current stage to the heuristic engine.
func IsGatewayError(err error) bool {
	return errors.Is(err, ErrReasoningUnavailable) || errors.Is(err, ErrReasoningMalformed)
}
