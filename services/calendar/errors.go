package calendar

import "fmt"

// UpstreamError wraps a failure of the external calendar provider. Callers
// treat it as retryable and never substitute partial data for the answer.
type UpstreamError struct {
	CalendarID string
	Op         string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("calendar %s failed for %s: %v", e.Op, e.CalendarID, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
