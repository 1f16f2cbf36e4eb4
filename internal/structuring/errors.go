package structuring

import "fmt"

// ServiceError represents a transport or service-level failure of the
// language-model call. The underlying message is carried for diagnostics.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("AI service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError indicates the service responded but its payload
// was not a valid résumé JSON object after cleanup. Distinguished from
// ServiceError so callers can surface a format-specific message.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed AI response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed AI response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
