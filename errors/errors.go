// Package errors provides standardized error handling patterns for mechstreams
// components. It includes error classification, standard error variables, and
// helper functions for consistent error wrapping and classification across the
// toolkit.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorTransient represents temporary errors the embedding loop may retry
	ErrorTransient ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that should stop the loop
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions.
//
// Absence of a value is NOT represented here: a Getter that has nothing to
// report returns a nil datum with a nil error. ErrNoValue exists only for
// callers that explicitly convert absence into a failure (see
// stream/converters.NoneToError).
var (
	// Value-flow errors
	ErrNoValue       = errors.New("no value available")
	ErrNoInputs      = errors.New("node requires at least one input")
	ErrStaleValue    = errors.New("value is older than allowed")
	ErrWindowLength  = errors.New("window length must be positive")
	ErrNegativeDelta = errors.New("time delta is negative")

	// Unit and quantity errors
	ErrUnitMismatch = errors.New("unit mismatch")
	ErrNotASecond   = errors.New("quantity is not a time in seconds")

	// Device graph errors
	ErrAlreadyConnected = errors.New("terminals already connected")
	ErrNotConnected     = errors.New("terminals not connected")
	ErrTerminalFanout   = errors.New("terminal fan-out limit exceeded")
	ErrNoSuchTerminal   = errors.New("no such terminal")
	ErrCapability       = errors.New("operation not supported by device capability")

	// Trajectory errors
	ErrInvalidProfile = errors.New("motion profile is kinematically infeasible")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")

	// Runner and telemetry errors
	ErrAlreadyRegistered = errors.New("node already registered")
	ErrNoConnection      = errors.New("no connection available")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsTransient checks if an error is transient and may be retried by the
// embedding control loop. The core itself never retries.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorTransient
	}

	return errors.Is(err, ErrStaleValue) ||
		errors.Is(err, ErrNoValue) ||
		errors.Is(err, ErrNoConnection)
}

// IsFatal checks if an error is fatal and should stop processing
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig)
}

// IsInvalid checks if an error is due to invalid input
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrUnitMismatch) ||
		errors.Is(err, ErrAlreadyConnected) ||
		errors.Is(err, ErrNotConnected) ||
		errors.Is(err, ErrTerminalFanout) ||
		errors.Is(err, ErrInvalidProfile) ||
		errors.Is(err, ErrWindowLength) ||
		errors.Is(err, ErrNoInputs)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorTransient
	}

	if IsFatal(err) {
		return ErrorFatal
	}
	if IsInvalid(err) {
		return ErrorInvalid
	}

	// Default to transient for unknown errors so the embedding loop may retry
	return ErrorTransient
}

// newClassified creates a new classified error.
// This is an internal helper - use WrapTransient(), WrapFatal(), or WrapInvalid() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapTransient wraps an error as transient with context
func WrapTransient(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorTransient, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}
