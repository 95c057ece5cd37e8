package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypePrecondition ErrorType = "precondition"
	ErrorTypeNotFound     ErrorType = "upstream_not_found"
	ErrorTypeAuth         ErrorType = "upstream_auth"
	ErrorTypeConnectivity ErrorType = "connectivity"
	ErrorTypeStorage      ErrorType = "storage"
	ErrorTypeConfig       ErrorType = "config"
	ErrorTypeInternal     ErrorType = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
	Context  map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
	}
}

// Predefined errors
var (
	ErrWeatherAuth  = New(ErrorTypeAuth, "WEATHER_AUTH", "Weather API rejected the key")
	ErrConnectivity = New(ErrorTypeConnectivity, "CONNECTIVITY", "Upstream service unreachable")
)

// NewConnectivityError wraps a transport failure talking to an upstream API
func NewConnectivityError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeConnectivity, "CONNECTIVITY", fmt.Sprintf("%s is unreachable", api)).
		WithContext("api", api)
}

// NewAuthError creates an upstream authentication error
func NewAuthError(api, upstreamMessage string) *AppError {
	return New(ErrorTypeAuth, "WEATHER_AUTH", fmt.Sprintf("%s rejected credentials: %s", api, upstreamMessage)).
		WithContext("api", api)
}

// NewStorageError wraps a persistence failure
func NewStorageError(err error) *AppError {
	return Wrap(err, ErrorTypeStorage, "STORAGE", "Storage operation failed")
}

// NewConfigError creates a startup configuration error
func NewConfigError(message string) *AppError {
	return New(ErrorTypeConfig, "CONFIG", message)
}
