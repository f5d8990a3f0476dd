package gemini

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned before any network call when the client was
// constructed without credentials. It is never retried.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// ErrEmptyResponse is returned when the API answers 200 but carries no
// generated content. Treated as a structural defect, not a transient fault.
var ErrEmptyResponse = errors.New("gemini response contains no candidates")

// APIError is a non-2xx answer from the Gemini API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api returned %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the failure classifies for the backoff loop.
// Only rate limiting and server-side errors qualify; auth failures and
// malformed requests propagate immediately.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// AuthFailure reports whether the failure is a credential problem.
func (e *APIError) AuthFailure() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
