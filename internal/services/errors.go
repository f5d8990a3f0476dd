package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine codes surfaced to clients, matching what the frontend switches on.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeMissingAPIKey    = "MISSING_API_KEY"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeAuthFailed       = "INVALID_API_KEY"
	CodeUpstreamError    = "EXTERNAL_API_ERROR"
	CodeParseError       = "PARSE_ERROR"
	CodeInvalidStructure = "INVALID_STRUCTURE"
	CodeDatabaseError    = "DATABASE_ERROR"
)

// PipelineError is the typed failure a guide generation run surfaces. The
// HTTP status is derived from the code so handlers stay mapping-free.
type PipelineError struct {
	Code    string
	Message string
	Details string
}

func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus maps the error code to the response status.
func (e *PipelineError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeAuthFailed:
		return http.StatusUnauthorized
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newPipelineError(code, message string, cause error) *PipelineError {
	perr := &PipelineError{Code: code, Message: message}
	if cause != nil {
		perr.Details = cause.Error()
	}
	return perr
}

// AsPipelineError unwraps err into a *PipelineError if it is one.
func AsPipelineError(err error) (*PipelineError, bool) {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
