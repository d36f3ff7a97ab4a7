package slots

import "fmt"

// FormatError indicates a malformed clock-time string. It is never coerced
// into a zero value; callers must treat the input as unusable.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid clock time %q: %s", e.Input, e.Reason)
}

// ValidationError indicates bad input to the generator or builder. The
// caller must fix the request; retrying will not help.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
