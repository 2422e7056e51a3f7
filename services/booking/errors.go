package booking

import "fmt"

// ConflictError signals that no bay satisfies the requested interval. It is
// a normal negative result, not an internal failure: callers turn it into a
// user-facing "slot no longer available" message.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConflictError(msg string) error {
	return &ConflictError{
		Code:    "noBayAvailable",
		Message: msg,
	}
}

// ValidationError signals a malformed booking request.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    "invalidBookingRequest",
		Message: msg,
	}
}
