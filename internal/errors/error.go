package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryLoad        Category = "load"
	CategoryPersistence Category = "persistence"
	CategoryValidation  Category = "validation"
	CategoryConfig      Category = "config"
	CategoryCLI         Category = "cli"
)

// ElectaError is a structured error with a registered code and an optional
// suggestion for the operator.
type ElectaError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (load, persistence, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ElectaError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ElectaError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ElectaError) WithSuggestion(s string) *ElectaError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ElectaError) WithDetail(d string) *ElectaError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ElectaError) Wrap(err error) *ElectaError {
	e.Wrapped = err
	return e
}

// New creates an ElectaError from a registered error code.
func New(code string) *ElectaError {
	template, ok := registry[code]
	if !ok {
		return &ElectaError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ElectaError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new ElectaError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ElectaError {
	return &ElectaError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an ElectaError.
func FromError(err error, code string) *ElectaError {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*ElectaError); ok {
		return ee
	}
	return New(code).Wrap(err)
}
