package errors

import (
	"fmt"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryApproved       ErrorCategory = "approved"
	CategoryDeclined       ErrorCategory = "declined"
	CategoryInvalidCard    ErrorCategory = "invalid_card"
	CategoryExpiredCard    ErrorCategory = "expired_card"
	CategoryFraud          ErrorCategory = "fraud"
	CategorySystemError    ErrorCategory = "system_error"
	CategoryInvalidRequest ErrorCategory = "invalid_request"
)

// ConfigError reports a missing or invalid construction-time option.
// Not retryable: the caller has to supply corrected options.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Key)
}

// NewConfigError creates a configuration error naming the offending key
func NewConfigError(key string) *ConfigError {
	return &ConfigError{Key: key}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// VerificationError reports a notification whose recomputed signature does
// not match the one the gateway posted. Recoverable at the application
// level: the caller decides whether to discard or quarantine the payload.
type VerificationError struct {
	Expected string
	Received string
}

func (e *VerificationError) Error() string {
	return "notification signature mismatch"
}
