// Package errors provides standardized error handling patterns for mechstreams components.
//
// # Overview
//
// The errors package implements a three-class error classification system for
// tick-driven control software: Transient (temporary, the embedding loop may
// retry on a later tick), Invalid (bad input or construction, non-retryable),
// and Fatal (unrecoverable, stop the loop).
//
// This classification enables informed decisions in the embedding control
// loop without hardcoded error string matching. The core itself never
// retries; retry policy belongs to the application.
//
// # Absence Is Not an Error
//
// A stream node that has nothing to report yet returns a nil datum with a
// nil error. "No value yet" is a valid steady state, never a failure, and
// callers must handle it as a distinct, expected outcome. The ErrNoValue
// sentinel exists only for the explicit absence-to-failure converter in
// stream/converters.
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if a.peers[b] {
//	    return errors.ErrAlreadyConnected
//	}
//
// Wrap errors with context for debugging:
//
//	if err := input.Update(); err != nil {
//	    return errors.Wrap(err, "Integral", "Update", "input update")
//	}
//
// Check classification in the embedding loop:
//
//	if err := runner.Tick(); err != nil {
//	    if errors.IsFatal(err) {
//	        log.Fatalf("unrecoverable error: %v", err)
//	    }
//	    // transient failures leave node caches intact; tick again
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// The generic Wrap() function preserves the original error's classification:
//
//	errors.Wrap(err, "Component", "Method", "action")
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
package errors
