package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMissingSource     ErrorType = "MISSING_SOURCE"
	ErrTypeMissingColumn     ErrorType = "MISSING_COLUMN"
	ErrTypeDegenerateAverage ErrorType = "DEGENERATE_AVERAGE"
	ErrTypeUnknownPlayer     ErrorType = "UNKNOWN_PLAYER"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeStorage           ErrorType = "STORAGE"
	ErrTypeValidation        ErrorType = "VALIDATION"
	ErrTypeConfig            ErrorType = "CONFIG"
)

// Sentinels for errors.Is checks. Any AppError of the same Type matches.
var (
	ErrMissingSource     = &AppError{Type: ErrTypeMissingSource}
	ErrMissingColumn     = &AppError{Type: ErrTypeMissingColumn}
	ErrDegenerateAverage = &AppError{Type: ErrTypeDegenerateAverage}
	ErrUnknownPlayer     = &AppError{Type: ErrTypeUnknownPlayer}
	ErrParsing           = &AppError{Type: ErrTypeParsing}
	ErrStorage           = &AppError{Type: ErrTypeStorage}
	ErrValidation        = &AppError{Type: ErrTypeValidation}
	ErrConfig            = &AppError{Type: ErrTypeConfig}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or ""
// when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Helper functions for common error types

// NewMissingSourceError reports a play type with no input table.
func NewMissingSourceError(playType string, cause error) *AppError {
	return NewAppError(ErrTypeMissingSource, fmt.Sprintf("no source for play type %q", playType), cause).
		WithContext("play_type", playType)
}

// NewMissingColumnError reports a required column absent from a table header.
func NewMissingColumnError(playType, column string) *AppError {
	return NewAppError(ErrTypeMissingColumn, fmt.Sprintf("%s table has no %s column", playType, column), nil).
		WithContext("play_type", playType).
		WithContext("column", column)
}

// NewDegenerateAverageError reports a play type whose possessions sum to zero.
func NewDegenerateAverageError(playType string) *AppError {
	return NewAppError(ErrTypeDegenerateAverage, fmt.Sprintf("%s has zero total possessions, league average undefined", playType), nil).
		WithContext("play_type", playType)
}

// NewUnknownPlayerError reports a lookup that matched no row.
func NewUnknownPlayerError(player string) *AppError {
	return NewAppError(ErrTypeUnknownPlayer, fmt.Sprintf("player %q not found", player), nil).
		WithContext("player", player)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
