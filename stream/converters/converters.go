// Package converters provides type and shape bridges for the stream
// graph: absence handling (NoneToError, NoneToValue), numeric to
// unit-tagged quantity bridges, and derivative/integral chains that
// rebuild a full kinematic State from a single measured derivative.
package converters

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/quantity"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// NoneToError turns an absent input into an ErrNoValue failure, for
// graphs where a missing value at this point means something is wrong
// rather than merely not yet known.
type NoneToError[T any] struct {
	input stream.Input[T]
	cache *types.Datum[T]
	err   error
}

// NewNoneToError constructs a NoneToError.
func NewNoneToError[T any](input stream.Input[T]) *NoneToError[T] {
	return &NoneToError[T]{input: input}
}

// Get returns the input's datum, or ErrNoValue when it was absent.
func (n *NoneToError[T]) Get() (*types.Datum[T], error) {
	return n.cache, n.err
}

// Update refreshes the passthrough.
func (n *NoneToError[T]) Update() error {
	if err := n.input.Update(); err != nil {
		return errors.Wrap(err, "NoneToError", "Update", "input update failed")
	}
	d, err := n.input.Get()
	if err != nil {
		n.cache = nil
		n.err = err
		return errors.Wrap(err, "NoneToError", "Update", "input read failed")
	}
	if d == nil {
		n.cache = nil
		n.err = errors.Wrap(errors.ErrNoValue, "NoneToError", "Update", "input has no value")
		return nil
	}
	n.cache = d
	n.err = nil
	return nil
}

// NoneToValue substitutes a default value, stamped with the clock's now,
// when its input is absent.
type NoneToValue[T any] struct {
	input    stream.Input[T]
	clock    stream.Clock
	fallback T
	cache    *types.Datum[T]
}

// NewNoneToValue constructs a NoneToValue substituting fallback.
func NewNoneToValue[T any](input stream.Input[T], clock stream.Clock, fallback T) *NoneToValue[T] {
	return &NoneToValue[T]{input: input, clock: clock, fallback: fallback}
}

// Get returns the input's datum, or the fallback when it was absent.
func (n *NoneToValue[T]) Get() (*types.Datum[T], error) {
	return n.cache, nil
}

// Update refreshes the passthrough.
func (n *NoneToValue[T]) Update() error {
	if err := n.input.Update(); err != nil {
		return errors.Wrap(err, "NoneToValue", "Update", "input update failed")
	}
	if err := n.clock.Update(); err != nil {
		return errors.Wrap(err, "NoneToValue", "Update", "clock update failed")
	}
	d, err := n.input.Get()
	if err != nil {
		return errors.Wrap(err, "NoneToValue", "Update", "input read failed")
	}
	if d != nil {
		n.cache = d
		return nil
	}
	now, err := n.clock.Now()
	if err != nil {
		return errors.Wrap(err, "NoneToValue", "Update", "clock read failed")
	}
	n.cache = &types.Datum[T]{Time: now, Value: n.fallback}
	return nil
}

// FloatToQuantity tags a plain numeric stream with a unit. Pure and
// unit-preserving; the value and timestamp pass through unchanged.
type FloatToQuantity struct {
	input stream.Input[float64]
	unit  quantity.Unit
	cache *types.Datum[quantity.Quantity]
}

// NewFloatToQuantity constructs a FloatToQuantity tagging with unit.
func NewFloatToQuantity(input stream.Input[float64], unit quantity.Unit) *FloatToQuantity {
	return &FloatToQuantity{input: input, unit: unit}
}

// Get returns the tagged datum.
func (f *FloatToQuantity) Get() (*types.Datum[quantity.Quantity], error) {
	return f.cache, nil
}

// Update refreshes the passthrough.
func (f *FloatToQuantity) Update() error {
	if err := f.input.Update(); err != nil {
		return errors.Wrap(err, "FloatToQuantity", "Update", "input update failed")
	}
	d, err := f.input.Get()
	if err != nil {
		return errors.Wrap(err, "FloatToQuantity", "Update", "input read failed")
	}
	if d == nil {
		f.cache = nil
		return nil
	}
	f.cache = &types.Datum[quantity.Quantity]{
		Time:  d.Time,
		Value: quantity.New(d.Value, f.unit),
	}
	return nil
}

// QuantityToFloat strips the unit from a quantity stream.
type QuantityToFloat struct {
	input stream.Input[quantity.Quantity]
	cache *types.Datum[float64]
}

// NewQuantityToFloat constructs a QuantityToFloat.
func NewQuantityToFloat(input stream.Input[quantity.Quantity]) *QuantityToFloat {
	return &QuantityToFloat{input: input}
}

// Get returns the untagged datum.
func (q *QuantityToFloat) Get() (*types.Datum[float64], error) {
	return q.cache, nil
}

// Update refreshes the passthrough.
func (q *QuantityToFloat) Update() error {
	if err := q.input.Update(); err != nil {
		return errors.Wrap(err, "QuantityToFloat", "Update", "input update failed")
	}
	d, err := q.input.Get()
	if err != nil {
		return errors.Wrap(err, "QuantityToFloat", "Update", "input read failed")
	}
	if d == nil {
		q.cache = nil
		return nil
	}
	q.cache = &types.Datum[float64]{Time: d.Time, Value: d.Value.Value}
	return nil
}
