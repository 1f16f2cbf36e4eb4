package enhance

import "fmt"

// InvalidTypeError indicates a suggestion request with an unrecognized
// field type tag.
type InvalidTypeError struct {
	Type string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid suggestion type: %q", e.Type)
}

// ServiceError represents a transport or service-level failure of the
// language-model call.
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
