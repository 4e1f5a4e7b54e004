package stream

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// Expirer gates its input on staleness: data older than maxAge relative
// to the clock's now are reported as absent rather than served. Sensor
// dropouts then read as "no value yet" downstream instead of a frozen
// last reading.
type Expirer[T any] struct {
	input  Input[T]
	clock  Clock
	maxAge types.Time
	cache  *types.Datum[T]
}

// NewExpirer constructs an Expirer with the given maximum datum age.
func NewExpirer[T any](input Input[T], clock Clock, maxAge types.Time) *Expirer[T] {
	return &Expirer[T]{input: input, clock: clock, maxAge: maxAge}
}

// Get returns the input's datum if it was fresh at the last Update.
func (e *Expirer[T]) Get() (*types.Datum[T], error) {
	return e.cache, nil
}

// Update refreshes the staleness decision. An input failure leaves the
// cache untouched.
func (e *Expirer[T]) Update() error {
	if err := e.input.Update(); err != nil {
		return errors.Wrap(err, "Expirer", "Update", "input update failed")
	}
	if err := e.clock.Update(); err != nil {
		return errors.Wrap(err, "Expirer", "Update", "clock update failed")
	}
	d, err := e.input.Get()
	if err != nil {
		return errors.Wrap(err, "Expirer", "Update", "input read failed")
	}
	if d == nil {
		e.cache = nil
		return nil
	}
	now, err := e.clock.Now()
	if err != nil {
		return errors.Wrap(err, "Expirer", "Update", "clock read failed")
	}
	if now.Sub(d.Time) > e.maxAge {
		e.cache = nil
		return nil
	}
	e.cache = d
	return nil
}
