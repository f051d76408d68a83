package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeMetadata represents metadata inventory errors
	ErrorTypeMetadata ErrorType = "metadata"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeChat represents chat-service integration errors
	ErrorTypeChat ErrorType = "chat"
	// ErrorTypeReport represents analytics report errors
	ErrorTypeReport ErrorType = "report"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Base returns the underlying BaseError. Typed wrappers embed *BaseError, so
// the method is promoted and lets IsErrorType classify them uniformly.
func (e *BaseError) Base() *BaseError {
	return e
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Metadata Errors

// ErrMetadataUnavailable is returned when the label/type inventory cannot be
// read from the graph store: the connection cannot be established or the
// query fails. It is surfaced once, never as a partial result.
type ErrMetadataUnavailable struct {
	*BaseError
}

func NewMetadataUnavailable(err error) *ErrMetadataUnavailable {
	return &ErrMetadataUnavailable{
		BaseError: NewBaseError(ErrorTypeMetadata, "metadata unavailable", err),
	}
}

// IsMetadataUnavailable reports whether err is (or wraps) ErrMetadataUnavailable.
func IsMetadataUnavailable(err error) bool {
	var target *ErrMetadataUnavailable
	return errors.As(err, &target)
}

// Graph Errors

// ErrGraphConnectionFailed is returned when the Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Query string
}

func NewGraphQueryFailed(query string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", query), err),
		Query:     query,
	}
}

// Chat Errors

// ErrChatRequestFailed is returned when the external chat service cannot
// produce a response after the configured number of attempts.
type ErrChatRequestFailed struct {
	*BaseError
	Model    string
	Attempts int
}

func NewChatRequestFailed(model string, attempts int, err error) *ErrChatRequestFailed {
	return &ErrChatRequestFailed{
		BaseError: NewBaseError(ErrorTypeChat, fmt.Sprintf("chat request failed after %d attempts", attempts), err),
		Model:     model,
		Attempts:  attempts,
	}
}

// Report Errors

// ErrReportFailed is returned when an analytics report cannot be generated
// or written. The report name identifies which fixed query failed.
type ErrReportFailed struct {
	*BaseError
	Report string
}

func NewReportFailed(report string, err error) *ErrReportFailed {
	return &ErrReportFailed{
		BaseError: NewBaseError(ErrorTypeReport, fmt.Sprintf("report failed: %s", report), err),
		Report:    report,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if based, ok := err.(interface{ Base() *BaseError }); ok {
			return based.Base().Type == errType
		}
		err = errors.Unwrap(err)
	}
	return false
}
