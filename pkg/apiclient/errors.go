package apiclient

import "fmt"

// StatusError is returned when the API answers with a non-2xx status.
// The response body is kept for display but never interpreted.
type StatusError struct {
	Endpoint   string
	What       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Failed to fetch %s: %d", e.What, e.StatusCode)
	}
	return fmt.Sprintf("Failed to fetch %s: %d %s", e.What, e.StatusCode, e.Body)
}

// ShapeError is returned when a 2xx body does not decode into the
// expected record
type ShapeError struct {
	Endpoint string
	What     string
	Err      error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("Unexpected %s response: %v", e.What, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
