// Package errors provides custom error types for the fusion system.
// Errors are returned as values across the public boundary, never thrown,
// so every call site inspects them before using a result.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the fusion system
var (
	// ErrEmptyInput indicates that no candidates or source documents were supplied
	ErrEmptyInput = errors.New("empty input")

	// ErrUnknownStrategy indicates that an unrecognized strategy was requested
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// EmptyInputError reports an operation that received nothing to work on.
type EmptyInputError struct {
	Operation string // "fuse", "merge"
}

// Error implements the error interface
func (e *EmptyInputError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: no input supplied", e.Operation)
	}
	return "no input supplied"
}

// Is implements errors.Is support
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

// NewEmptyInputError creates a new EmptyInputError
func NewEmptyInputError(operation string) *EmptyInputError {
	return &EmptyInputError{Operation: operation}
}

// UnknownStrategyError reports a strategy name with no registered resolver.
type UnknownStrategyError struct {
	Strategy string
}

// Error implements the error interface
func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q", e.Strategy)
}

// Is implements errors.Is support
func (e *UnknownStrategyError) Is(target error) bool {
	return target == ErrUnknownStrategy
}

// NewUnknownStrategyError creates a new UnknownStrategyError
func NewUnknownStrategyError(strategy string) *UnknownStrategyError {
	return &UnknownStrategyError{Strategy: strategy}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "json"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// Helper functions for error checking

// IsEmptyInput checks if an error reports empty input
func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}

// IsUnknownStrategy checks if an error reports an unknown strategy
func IsUnknownStrategy(err error) bool {
	return errors.Is(err, ErrUnknownStrategy)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
