// Package visioncore structured error types for better error handling
package visioncore

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Memory errors (allocation failure, double free)
	ErrTypeMemory ErrorType = iota
	// Invalid argument errors (precondition violations)
	ErrTypeInvalidArg
	// Execution errors
	ErrTypeExecution
	// Device errors
	ErrTypeDevice
	// Not implemented errors
	ErrTypeNotImplemented
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Op      string      // Operation that failed
	Message string      // Human-readable message
	Err     error       // Underlying error if any
	Context interface{} // Additional context
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("visioncore %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("visioncore %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeMemory:
		return "Memory"
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeExecution:
		return "Execution"
	case ErrTypeDevice:
		return "Device"
	case ErrTypeNotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewMemoryError creates a memory-related error
func NewMemoryError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeMemory,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &Error{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewPreconditionError creates an invalid argument error that wraps one of
// the sentinel values below, so callers can match it with errors.Is.
func NewPreconditionError(op string, sentinel error, format string, args ...interface{}) error {
	return &Error{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

// NewExecutionError creates an execution error
func NewExecutionError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewDeviceError creates a device error
func NewDeviceError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeDevice,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Common pre-defined errors

var (
	// ErrOutOfMemory indicates memory allocation failure
	ErrOutOfMemory = NewMemoryError("Allocate", "out of memory", nil)

	// ErrDoubleFree indicates double free attempt
	ErrDoubleFree = NewMemoryError("Free", "double free detected", nil)

	// ErrInvalidSize indicates a negative or overflowing extent
	ErrInvalidSize = NewInvalidArgError("Extents", "extents must be non-negative")

	// ErrInvalidPitch indicates a row pitch smaller than the row width
	ErrInvalidPitch = NewInvalidArgError("Extents", "row pitch must not be smaller than width")

	// ErrShortBacking indicates caller memory too small for the requested extents
	ErrShortBacking = NewInvalidArgError("View", "backing memory too small for extents")

	// ErrRegionOutOfRange indicates a sub-view exceeding its parent
	ErrRegionOutOfRange = NewInvalidArgError("SubView", "region exceeds parent extents")

	// ErrLevelRange indicates a pyramid level range outside the level count
	ErrLevelRange = NewInvalidArgError("Pyramid", "level range outside pyramid")

	// ErrDimensionMismatch indicates source/destination views of incompatible size
	ErrDimensionMismatch = NewInvalidArgError("Kernel", "in/out dimensions don't match")

	// ErrNotDense indicates an operation that needs pitch == width
	ErrNotDense = NewInvalidArgError("View", "view rows are not contiguous")

	// ErrPointerElement indicates an owning buffer over an element type holding pointers
	ErrPointerElement = NewInvalidArgError("Allocate", "element type must be pointer-free")

	// ErrDegenerateRange indicates a value range whose bounds coincide
	ErrDegenerateRange = NewInvalidArgError("Rescale", "value range is empty")

	// ErrInvalidConfig indicates a configuration value out of range
	ErrInvalidConfig = NewInvalidArgError("Config", "invalid configuration")

	// ErrKernelPanic indicates an operation that panicked inside a device worker
	ErrKernelPanic = NewExecutionError("Launch", "kernel panicked", nil)
)

func errorType(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return 0, false
}

// IsMemoryError checks if an error is a memory error
func IsMemoryError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeMemory
}

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeInvalidArg
}

// IsExecutionError checks if an error is an execution error
func IsExecutionError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeExecution
}

// IsDeviceError checks if an error is a device error
func IsDeviceError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeDevice
}
