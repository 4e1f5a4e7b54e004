package stream

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// TimeFromGetter derives a clock from a producing node's datum stamps.
// A graph driven entirely by encoder readings can use the encoder itself
// as its notion of now.
type TimeFromGetter[T any] struct {
	input Input[T]
}

// NewTimeFromGetter constructs a clock reading the input's timestamps.
func NewTimeFromGetter[T any](input Input[T]) *TimeFromGetter[T] {
	return &TimeFromGetter[T]{input: input}
}

// Now reports the input's current datum timestamp. An absent input is an
// error here: a clock cannot report "no time yet".
func (t *TimeFromGetter[T]) Now() (types.Time, error) {
	d, err := t.input.Get()
	if err != nil {
		return 0, errors.Wrap(err, "TimeFromGetter", "Now", "input read failed")
	}
	if d == nil {
		return 0, errors.Wrap(errors.ErrNoValue, "TimeFromGetter", "Now", "input has no datum to take a timestamp from")
	}
	return d.Time, nil
}

// Update advances the input when owned.
func (t *TimeFromGetter[T]) Update() error {
	if err := t.input.Update(); err != nil {
		return errors.Wrap(err, "TimeFromGetter", "Update", "input update failed")
	}
	return nil
}

// FixedStep is a deterministic clock advancing by a fixed increment per
// Update, used by simulations and tests.
type FixedStep struct {
	now  types.Time
	step types.Time
}

// NewFixedStep constructs a clock starting at start and advancing by
// step each Update.
func NewFixedStep(start, step types.Time) *FixedStep {
	return &FixedStep{now: start, step: step}
}

// Now reports the current instant.
func (f *FixedStep) Now() (types.Time, error) {
	return f.now, nil
}

// Update advances by one step.
func (f *FixedStep) Update() error {
	f.now += f.step
	return nil
}
