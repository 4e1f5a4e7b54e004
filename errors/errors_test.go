package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"stale value", ErrStaleValue, true},
		{"no value", ErrNoValue, true},
		{"no connection", ErrNoConnection, true},
		{"unit mismatch", ErrUnitMismatch, false},
		{"invalid config", ErrInvalidConfig, false},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"unit mismatch", ErrUnitMismatch, true},
		{"already connected", ErrAlreadyConnected, true},
		{"not connected", ErrNotConnected, true},
		{"fan-out", ErrTerminalFanout, true},
		{"infeasible profile", ErrInvalidProfile, true},
		{"window length", ErrWindowLength, true},
		{"no inputs", ErrNoInputs, true},
		{"stale value", ErrStaleValue, false},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"invalid config", ErrInvalidConfig, true},
		{"missing config", ErrMissingConfig, true},
		{"stale value", ErrStaleValue, false},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsFatal(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil defaults transient", nil, ErrorTransient},
		{"fatal sentinel", ErrInvalidConfig, ErrorFatal},
		{"invalid sentinel", ErrUnitMismatch, ErrorInvalid},
		{"unknown defaults transient", fmt.Errorf("mystery"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestWrapPattern(t *testing.T) {
	base := fmt.Errorf("boom")
	err := Wrap(base, "Terminal", "Connect", "peer registration")
	if err == nil {
		t.Fatal("expected non-nil error")
	}
	want := "Terminal.Connect: peer registration failed: boom"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error must unwrap to the original")
	}
	if Wrap(nil, "a", "b", "c") != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestWrapClassified(t *testing.T) {
	base := ErrAlreadyConnected
	err := WrapInvalid(base, "Terminal", "Connect", "duplicate check")
	if !IsInvalid(err) {
		t.Error("WrapInvalid must produce an invalid-class error")
	}
	if !errors.Is(err, ErrAlreadyConnected) {
		t.Error("classified error must unwrap to the sentinel")
	}
	var ce *ClassifiedError
	if !errors.As(err, &ce) {
		t.Fatal("expected a ClassifiedError in the chain")
	}
	if ce.Component != "Terminal" || ce.Operation != "Connect" {
		t.Errorf("unexpected context: %+v", ce)
	}
	if !strings.Contains(ce.Message, "duplicate check failed") {
		t.Errorf("message missing action context: %q", ce.Message)
	}

	if got := WrapTransient(ErrStaleValue, "Expirer", "Get", "staleness check"); !IsTransient(got) {
		t.Error("WrapTransient must produce a transient-class error")
	}
	if got := WrapFatal(ErrInvalidConfig, "Config", "Load", "schema validation"); !IsFatal(got) {
		t.Error("WrapFatal must produce a fatal-class error")
	}
}
