// File: api/errors.go
// Package api defines common error types for hostloop.
// License: Apache-2.0

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrResourceGone reports that the host object behind a handle no
	// longer exists, or that a named task's resource failed to resolve.
	ErrResourceGone = fmt.Errorf("resource is gone")

	// ErrChannelClosed reports that the wakeup channel's receiver is
	// gone, which means the executor has been torn down.
	ErrChannelClosed = fmt.Errorf("wakeup channel is closed")

	// ErrExecutorClosed reports an operation on a closed executor.
	ErrExecutorClosed = fmt.Errorf("executor is closed")

	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrAlreadyExists   = fmt.Errorf("resource already exists")
	ErrNotSupported    = fmt.Errorf("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeResourceGone
	ErrCodeChannelClosed
	ErrCodeExecutorClosed
	ErrCodeInvalidArgument
	ErrCodeAlreadyExists
	ErrCodeNotSupported
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
