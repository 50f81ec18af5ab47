package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrFolderUnavailable indicates a monitored folder could not be listed
	ErrFolderUnavailable = errors.New("folder unavailable")
	// ErrTransportDisabled indicates a notification transport has nothing to deliver to
	ErrTransportDisabled = errors.New("transport disabled")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigurationError reports a configuration problem in a named section
type ConfigurationError struct {
	Section string
	Message string
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("configuration error in '%s': %s: %v", e.Section, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("configuration error in '%s': %s", e.Section, e.Message)
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Wrapped != nil {
		return []error{ErrInvalidConfiguration, e.Wrapped}
	}
	return []error{ErrInvalidConfiguration}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(section, message string, wrapped error) *ConfigurationError {
	return &ConfigurationError{
		Section: section,
		Message: message,
		Wrapped: wrapped,
	}
}

// IsConfigurationError reports whether err stems from invalid configuration
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
