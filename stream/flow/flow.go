// Package flow provides conditional routing nodes: If and IfElse select
// between upstream producers on a boolean condition re-evaluated every
// Update, and Freeze holds its last value while a condition is raised.
package flow

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// If passes its input through while the condition is definitely true and
// reports absence otherwise. An absent condition reads as false.
type If[T any] struct {
	condition stream.Input[bool]
	input     stream.Input[T]
	cache     *types.Datum[T]
}

// NewIf constructs an If.
func NewIf[T any](condition stream.Input[bool], input stream.Input[T]) *If[T] {
	return &If[T]{condition: condition, input: input}
}

// Get returns the routed datum.
func (f *If[T]) Get() (*types.Datum[T], error) {
	return f.cache, nil
}

// Update re-evaluates the condition and reroutes.
func (f *If[T]) Update() error {
	if err := f.condition.Update(); err != nil {
		return errors.Wrap(err, "If", "Update", "condition update failed")
	}
	if err := f.input.Update(); err != nil {
		return errors.Wrap(err, "If", "Update", "input update failed")
	}
	cond, err := f.condition.Get()
	if err != nil {
		return errors.Wrap(err, "If", "Update", "condition read failed")
	}
	if cond == nil || !cond.Value {
		f.cache = nil
		return nil
	}
	d, err := f.input.Get()
	if err != nil {
		return errors.Wrap(err, "If", "Update", "input read failed")
	}
	f.cache = d
	return nil
}

// IfElse selects between two producers on a boolean condition. An absent
// condition makes the output absent; it does not default to either
// branch.
type IfElse[T any] struct {
	condition stream.Input[bool]
	whenTrue  stream.Input[T]
	whenFalse stream.Input[T]
	cache     *types.Datum[T]
}

// NewIfElse constructs an IfElse.
func NewIfElse[T any](condition stream.Input[bool], whenTrue, whenFalse stream.Input[T]) *IfElse[T] {
	return &IfElse[T]{condition: condition, whenTrue: whenTrue, whenFalse: whenFalse}
}

// Get returns the routed datum.
func (f *IfElse[T]) Get() (*types.Datum[T], error) {
	return f.cache, nil
}

// Update re-evaluates the condition and reroutes.
func (f *IfElse[T]) Update() error {
	if err := f.condition.Update(); err != nil {
		return errors.Wrap(err, "IfElse", "Update", "condition update failed")
	}
	if err := f.whenTrue.Update(); err != nil {
		return errors.Wrap(err, "IfElse", "Update", "true branch update failed")
	}
	if err := f.whenFalse.Update(); err != nil {
		return errors.Wrap(err, "IfElse", "Update", "false branch update failed")
	}
	cond, err := f.condition.Get()
	if err != nil {
		return errors.Wrap(err, "IfElse", "Update", "condition read failed")
	}
	if cond == nil {
		f.cache = nil
		return nil
	}
	branch := f.whenFalse
	if cond.Value {
		branch = f.whenTrue
	}
	d, err := branch.Get()
	if err != nil {
		return errors.Wrap(err, "IfElse", "Update", "branch read failed")
	}
	f.cache = d
	return nil
}

// Freeze passes its input through while the condition is false and holds
// the last passed value while the condition is true. An absent condition
// clears the held value.
type Freeze[T any] struct {
	condition stream.Input[bool]
	input     stream.Input[T]
	cache     *types.Datum[T]
	err       error
}

// NewFreeze constructs a Freeze.
func NewFreeze[T any](condition stream.Input[bool], input stream.Input[T]) *Freeze[T] {
	return &Freeze[T]{condition: condition, input: input}
}

// Get returns the held or passed-through datum, or the failure of the
// last Update.
func (f *Freeze[T]) Get() (*types.Datum[T], error) {
	return f.cache, f.err
}

// Update re-evaluates the condition, refreshing the held value only
// while it is false.
func (f *Freeze[T]) Update() error {
	if err := f.condition.Update(); err != nil {
		return errors.Wrap(err, "Freeze", "Update", "condition update failed")
	}
	if err := f.input.Update(); err != nil {
		return errors.Wrap(err, "Freeze", "Update", "input update failed")
	}
	cond, err := f.condition.Get()
	if err != nil {
		f.err = err
		return errors.Wrap(err, "Freeze", "Update", "condition read failed")
	}
	if cond == nil {
		f.cache = nil
		f.err = nil
		return nil
	}
	if cond.Value {
		return nil
	}
	d, err := f.input.Get()
	f.cache = d
	f.err = err
	if err != nil {
		return errors.Wrap(err, "Freeze", "Update", "input read failed")
	}
	return nil
}
