package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType discriminates application errors for transport mapping.
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeDecode         ErrorType = "decode"
	ErrorTypeMalformedImage ErrorType = "malformed_image"
	ErrorTypeNetwork        ErrorType = "network"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeInternal       ErrorType = "internal"
)

// AppError is the error currency of the service layers. It wraps the
// underlying cause and carries the type used to pick an HTTP status.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports bad caller input.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// NewDecodeError reports bytes that no supported image codec accepts.
func NewDecodeError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeDecode, Message: message, Cause: cause}
}

// NewMalformedImageError reports a decoded image with unusable geometry.
func NewMalformedImageError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeMalformedImage, Message: message, Cause: cause}
}

// NewNetworkError reports an upstream fetch failure.
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeNetwork, Message: message, Cause: cause}
}

// NewTimeoutError reports an exceeded deadline.
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeTimeout, Message: message, Cause: cause}
}

// NewNotFoundError reports a missing upstream resource.
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message, Cause: cause}
}

// NewInternalError reports an unexpected failure.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Cause: cause}
}

// GetStatusCode maps an error to the HTTP status the transport layer
// responds with. Unrecognized errors map to 500.
func GetStatusCode(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeDecode, ErrorTypeMalformedImage:
		return http.StatusUnprocessableEntity
	case ErrorTypeNetwork:
		return http.StatusBadGateway
	case ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// TypeOf returns the application error type, or ErrorTypeInternal for
// errors outside the taxonomy.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}
