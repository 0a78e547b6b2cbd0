package errors

import (
	"net/http"
)

// Error codes carried by APIError and echoed as the error_code extension
const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// APIError is an error that already knows its HTTP status and code
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// ValidationError describes one rejected query parameter
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates an APIError
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// ErrRateLimitExceeded is answered by the rate limiter once a client's
// bucket is empty
var ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")

// NewValidationErrors reports every rejected query parameter at once
func NewValidationErrors(fields []ValidationError) *APIError {
	err := New(http.StatusBadRequest, CodeValidationFailed, "Request validation failed")
	err.Details = fields
	return err
}
