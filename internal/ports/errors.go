package ports

import "fmt"

// StatusError reports a non-2xx answer from an upstream provider.
// Body holds the trimmed response text for diagnostics.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}
