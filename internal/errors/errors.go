// Package errors provides centralized error definitions and error handling
// utilities for the dailydo codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and
// error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific boundaries:
//   - UpstreamError: errors talking to the LLM provider (network, auth,
//     bad status, undecodable response)
//   - StorageError: errors reading or writing journal files
//
// Semantic errors represent common error conditions:
//   - ValidationError: a mutation operation referenced an invalid index
//     or carried an empty description
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewUpstreamError(errors.UpstreamNetwork, "chat completion failed", baseErr)
//	err := errors.NewStorageError("write failed", baseErr).WithPath("/tmp/2025-01-02.md")
//	err := errors.NewValidationError("complete", 99, "index out of range")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrDocumentNotFound) { ... }
//
//	var upErr *errors.UpstreamError
//	if errors.As(err, &upErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors
var (
	// ErrDocumentNotFound indicates that no journal file exists for a date.
	ErrDocumentNotFound = New("document not found")
	// ErrAPIKeyMissing indicates that no API key is configured for the LLM provider.
	ErrAPIKeyMissing = New("api key not set")
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
)

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// UpstreamKind classifies failures at the LLM provider boundary.
type UpstreamKind int

const (
	// UpstreamNetwork is a transport-level failure (dial, TLS, timeout).
	UpstreamNetwork UpstreamKind = iota
	// UpstreamAuth is an authentication or authorization failure.
	UpstreamAuth
	// UpstreamStatus is a non-2xx HTTP status from the provider.
	UpstreamStatus
	// UpstreamDecode means the provider response body could not be decoded.
	UpstreamDecode
)

// String returns the string representation of the upstream kind.
func (k UpstreamKind) String() string {
	switch k {
	case UpstreamNetwork:
		return "network"
	case UpstreamAuth:
		return "auth"
	case UpstreamStatus:
		return "status"
	case UpstreamDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// UpstreamError represents a failure talking to the LLM provider.
//
// Example:
//
//	err := errors.NewUpstreamError(errors.UpstreamStatus, "chat completion", baseErr).WithStatusCode(429)
type UpstreamError struct {
	baseError
	Kind       UpstreamKind
	StatusCode int
}

// NewUpstreamError creates a new UpstreamError of the given kind.
// Network and status errors are retryable; auth and decode errors are not.
func NewUpstreamError(kind UpstreamKind, message string, cause error) *UpstreamError {
	return &UpstreamError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			retryable:  kind == UpstreamNetwork || kind == UpstreamStatus,
			userFacing: true,
		},
		Kind: kind,
	}
}

// WithStatusCode adds the HTTP status code to the error context and
// refines classification: 401/403 become auth failures, 429 and 5xx
// stay retryable, other 4xx codes will not heal on retry.
func (e *UpstreamError) WithStatusCode(code int) *UpstreamError {
	e.StatusCode = code
	switch {
	case code == 401 || code == 403:
		e.Kind = UpstreamAuth
		e.retryable = false
	case code == 429 || code >= 500:
		e.retryable = true
	case code >= 400:
		e.retryable = false
	}
	return e
}

// Error returns the formatted error message.
func (e *UpstreamError) Error() string {
	prefix := fmt.Sprintf("llm error [%s]", e.Kind)
	if e.StatusCode != 0 {
		prefix = fmt.Sprintf("llm error [%s, http=%d]", e.Kind, e.StatusCode)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *UpstreamError) Is(target error) bool {
	if _, ok := target.(*UpstreamError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// StorageError represents a failure reading or writing journal files.
type StorageError struct {
	baseError
	Path string
	Date string
}

// NewStorageError creates a new StorageError.
func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithPath adds the file path to the error context.
func (e *StorageError) WithPath(path string) *StorageError {
	e.Path = path
	return e
}

// WithDate adds the journal date to the error context.
func (e *StorageError) WithDate(date string) *StorageError {
	e.Date = date
	return e
}

// Error returns the formatted error message.
func (e *StorageError) Error() string {
	var parts []string
	if e.Date != "" {
		parts = append(parts, fmt.Sprintf("date=%s", e.Date))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}

	prefix := "storage error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("storage error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *StorageError) Is(target error) bool {
	if _, ok := target.(*StorageError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents a mutation operation that failed validation:
// an index outside the current task list or an empty description.
// It is recorded per operation and is never fatal to a batch.
type ValidationError struct {
	Op     string
	Index  int
	Reason string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(op string, index int, reason string) *ValidationError {
	return &ValidationError{Op: op, Index: index, Reason: reason}
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("invalid %s operation (index %d): %s", e.Op, e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid %s operation: %s", e.Op, e.Reason)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// IsRetryable returns true if the error is transient and the operation
// may succeed on retry. Works with wrapped errors.
func IsRetryable(err error) bool {
	var r interface{ IsRetryable() bool }
	if errors.As(err, &r) {
		return r.IsRetryable()
	}
	return errors.Is(err, ErrTimeout)
}

// IsUserFacing returns true if the error message is safe to display to
// end users. Works with wrapped errors.
func IsUserFacing(err error) bool {
	var u interface{ IsUserFacing() bool }
	if errors.As(err, &u) {
		return u.IsUserFacing()
	}
	return false
}
