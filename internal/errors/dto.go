package errors

import (
	"github.com/cockroachdb/errors"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code          string         `json:"code"`
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds the structured payload for a failed operation.
// The display message comes from the error's hint when present so the
// internal chain never leaks to callers.
func NewErrorResponse(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	display := errors.FlattenHints(err)
	if display == "" {
		display = err.Error()
	}

	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:          Code(err),
			Display:       display,
			InternalError: err.Error(),
		},
	}
}
