// Package logic provides three-valued boolean nodes. Absence is never
// assumed to be true or false: And reports false as soon as any input is
// definitely false, true only when every input is definitely true, and
// absence otherwise. Or is the dual.
package logic

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// And is a boolean conjunction over two or more inputs.
//
//	Input 1 | Input 2 | And
//	--------+---------+-------
//	false   | absent  | false
//	absent  | absent  | absent
//	true    | absent  | absent
//	absent  | true    | absent
//	true    | true    | true
type And struct {
	inputs []stream.Input[bool]
	cache  *types.Datum[bool]
}

// NewAnd constructs an And over at least two inputs.
func NewAnd(inputs ...stream.Input[bool]) (*And, error) {
	if len(inputs) < 2 {
		return nil, errors.WrapInvalid(errors.ErrNoInputs, "And", "NewAnd", "need at least two inputs")
	}
	return &And{inputs: inputs}, nil
}

// Get returns the cached conjunction.
func (a *And) Get() (*types.Datum[bool], error) {
	return a.cache, nil
}

// Update advances owned inputs in order, then recomputes.
func (a *And) Update() error {
	if err := stream.UpdateInputs(a.inputs); err != nil {
		return errors.Wrap(err, "And", "Update", "input update failed")
	}
	anyAbsent := false
	anyFalse := false
	var latest *types.Time
	for _, in := range a.inputs {
		d, err := in.Get()
		if err != nil {
			return errors.Wrap(err, "And", "Update", "input read failed")
		}
		if d == nil {
			anyAbsent = true
			continue
		}
		if !d.Value {
			anyFalse = true
		}
		if latest == nil || d.Time > *latest {
			t := d.Time
			latest = &t
		}
	}
	switch {
	case latest == nil:
		a.cache = nil
	case anyFalse:
		a.cache = &types.Datum[bool]{Time: *latest, Value: false}
	case anyAbsent:
		a.cache = nil
	default:
		a.cache = &types.Datum[bool]{Time: *latest, Value: true}
	}
	return nil
}

// Or is a boolean disjunction over two or more inputs: true as soon as
// any input is definitely true, false only when every input is
// definitely false, absent otherwise.
type Or struct {
	inputs []stream.Input[bool]
	cache  *types.Datum[bool]
}

// NewOr constructs an Or over at least two inputs.
func NewOr(inputs ...stream.Input[bool]) (*Or, error) {
	if len(inputs) < 2 {
		return nil, errors.WrapInvalid(errors.ErrNoInputs, "Or", "NewOr", "need at least two inputs")
	}
	return &Or{inputs: inputs}, nil
}

// Get returns the cached disjunction.
func (o *Or) Get() (*types.Datum[bool], error) {
	return o.cache, nil
}

// Update advances owned inputs in order, then recomputes.
func (o *Or) Update() error {
	if err := stream.UpdateInputs(o.inputs); err != nil {
		return errors.Wrap(err, "Or", "Update", "input update failed")
	}
	anyAbsent := false
	anyTrue := false
	var latest *types.Time
	for _, in := range o.inputs {
		d, err := in.Get()
		if err != nil {
			return errors.Wrap(err, "Or", "Update", "input read failed")
		}
		if d == nil {
			anyAbsent = true
			continue
		}
		if d.Value {
			anyTrue = true
		}
		if latest == nil || d.Time > *latest {
			t := d.Time
			latest = &t
		}
	}
	switch {
	case latest == nil:
		o.cache = nil
	case anyTrue:
		o.cache = &types.Datum[bool]{Time: *latest, Value: true}
	case anyAbsent:
		o.cache = nil
	default:
		o.cache = &types.Datum[bool]{Time: *latest, Value: false}
	}
	return nil
}

// Not negates its input. Absence passes through.
type Not struct {
	input stream.Input[bool]
	cache *types.Datum[bool]
}

// NewNot constructs a Not.
func NewNot(input stream.Input[bool]) *Not {
	return &Not{input: input}
}

// Get returns the cached negation.
func (n *Not) Get() (*types.Datum[bool], error) {
	return n.cache, nil
}

// Update advances the input when owned, then recomputes.
func (n *Not) Update() error {
	if err := n.input.Update(); err != nil {
		return errors.Wrap(err, "Not", "Update", "input update failed")
	}
	d, err := n.input.Get()
	if err != nil {
		return errors.Wrap(err, "Not", "Update", "input read failed")
	}
	if d == nil {
		n.cache = nil
		return nil
	}
	n.cache = &types.Datum[bool]{Time: d.Time, Value: !d.Value}
	return nil
}
