package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound           = New(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists      = New(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation         = New(ErrCodeValidation, "validation error")
	ErrInvalidOperation   = New(ErrCodeInvalidOperation, "invalid operation")
	ErrCreationProhibited = New(ErrCodeCreationProhibited, "creation is prohibited in the current state")
	ErrProtectedField     = New(ErrCodeProtectedField, "field can't be modified")
	ErrHTTPClient         = New(ErrCodeHTTPClient, "http client error")
	ErrSystem             = New(ErrCodeSystemError, "system error")

	// sentinels ordered for matching: domain specific markers win over
	// the transport marker when an error carries both.
	sentinels = []*InternalError{
		ErrNotFound,
		ErrAlreadyExists,
		ErrValidation,
		ErrInvalidOperation,
		ErrCreationProhibited,
		ErrProtectedField,
		ErrHTTPClient,
		ErrSystem,
	}

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:         http.StatusInternalServerError,
		ErrNotFound:           http.StatusNotFound,
		ErrAlreadyExists:      http.StatusConflict,
		ErrValidation:         http.StatusBadRequest,
		ErrInvalidOperation:   http.StatusBadRequest,
		ErrCreationProhibited: http.StatusUnprocessableEntity,
		ErrProtectedField:     http.StatusBadRequest,
		ErrSystem:             http.StatusInternalServerError,
	}
)

const (
	ErrCodeHTTPClient         = "http_client_error"
	ErrCodeSystemError        = "system_error"
	ErrCodeNotFound           = "not_found"
	ErrCodeAlreadyExists      = "already_exists"
	ErrCodeValidation         = "validation_error"
	ErrCodeInvalidOperation   = "invalid_operation"
	ErrCodeCreationProhibited = "creation_prohibited"
	ErrCodeProtectedField     = "protected_field_changing"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func New(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsCreationProhibited checks if an error is a creation prohibited error
func IsCreationProhibited(err error) bool {
	return errors.Is(err, ErrCreationProhibited)
}

// IsProtectedField checks if an error is a protected field error
func IsProtectedField(err error) bool {
	return errors.Is(err, ErrProtectedField)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

func HTTPStatusFromErr(err error) int {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return statusCodeMap[sentinel]
		}
	}
	return http.StatusInternalServerError
}

// Code returns the machine-readable code of the error. Marked errors
// match their sentinel; a bare InternalError reports its own code;
// everything else is a system error.
func Code(err error) string {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Code
		}
	}
	var internal *InternalError
	if errors.As(err, &internal) {
		return internal.Code
	}
	return ErrCodeSystemError
}
