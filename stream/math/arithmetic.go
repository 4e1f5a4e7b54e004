package math

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// Numeric constrains the payloads the arithmetic nodes operate on.
type Numeric interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Sum adds all its inputs. Absent inputs are excluded; the output is
// absent only when every input is.
type Sum[T Numeric] struct {
	addends []stream.Input[T]
	cache   *types.Datum[T]
}

// NewSum constructs a Sum over at least one input.
func NewSum[T Numeric](addends ...stream.Input[T]) (*Sum[T], error) {
	if len(addends) < 1 {
		return nil, errors.WrapInvalid(errors.ErrNoInputs, "Sum", "NewSum", "no addends given")
	}
	return &Sum[T]{addends: addends}, nil
}

// Get returns the cached sum.
func (s *Sum[T]) Get() (*types.Datum[T], error) {
	return s.cache, nil
}

// Update advances owned inputs in order, then recomputes. An input
// failure aborts with that failure and leaves the cache untouched.
func (s *Sum[T]) Update() error {
	if err := stream.UpdateInputs(s.addends); err != nil {
		return errors.Wrap(err, "Sum", "Update", "input update failed")
	}
	var value T
	var latest *types.Time
	for _, in := range s.addends {
		d, err := in.Get()
		if err != nil {
			return errors.Wrap(err, "Sum", "Update", "input read failed")
		}
		if d == nil {
			continue
		}
		value += d.Value
		if latest == nil || d.Time > *latest {
			t := d.Time
			latest = &t
		}
	}
	if latest == nil {
		s.cache = nil
		return nil
	}
	s.cache = &types.Datum[T]{Time: *latest, Value: value}
	return nil
}

// Difference subtracts the subtrahend from the minuend. An absent
// subtrahend passes the minuend through unchanged; an absent minuend
// makes the output absent.
type Difference[T Numeric] struct {
	minuend    stream.Input[T]
	subtrahend stream.Input[T]
	cache      *types.Datum[T]
}

// NewDifference constructs a Difference.
func NewDifference[T Numeric](minuend, subtrahend stream.Input[T]) *Difference[T] {
	return &Difference[T]{minuend: minuend, subtrahend: subtrahend}
}

// Get returns the cached difference.
func (d *Difference[T]) Get() (*types.Datum[T], error) {
	return d.cache, nil
}

// Update advances both inputs, minuend first, then recomputes.
func (d *Difference[T]) Update() error {
	if err := d.minuend.Update(); err != nil {
		return errors.Wrap(err, "Difference", "Update", "minuend update failed")
	}
	if err := d.subtrahend.Update(); err != nil {
		return errors.Wrap(err, "Difference", "Update", "subtrahend update failed")
	}
	m, err := d.minuend.Get()
	if err != nil {
		return errors.Wrap(err, "Difference", "Update", "minuend read failed")
	}
	s, err := d.subtrahend.Get()
	if err != nil {
		return errors.Wrap(err, "Difference", "Update", "subtrahend read failed")
	}
	switch {
	case m == nil:
		d.cache = nil
	case s == nil:
		d.cache = m
	default:
		d.cache = &types.Datum[T]{Time: types.MergeTime(m.Time, s.Time), Value: m.Value - s.Value}
	}
	return nil
}

// Product multiplies all its inputs. Absent inputs are excluded,
// effectively contributing 1; use converters.NoneToError or
// converters.NoneToValue when that is not the desired reading.
type Product[T Numeric] struct {
	factors []stream.Input[T]
	cache   *types.Datum[T]
}

// NewProduct constructs a Product over at least one input.
func NewProduct[T Numeric](factors ...stream.Input[T]) (*Product[T], error) {
	if len(factors) < 1 {
		return nil, errors.WrapInvalid(errors.ErrNoInputs, "Product", "NewProduct", "no factors given")
	}
	return &Product[T]{factors: factors}, nil
}

// Get returns the cached product.
func (p *Product[T]) Get() (*types.Datum[T], error) {
	return p.cache, nil
}

// Update advances owned inputs in order, then recomputes.
func (p *Product[T]) Update() error {
	if err := stream.UpdateInputs(p.factors); err != nil {
		return errors.Wrap(err, "Product", "Update", "input update failed")
	}
	value := T(1)
	present := false
	var latest types.Time
	for _, in := range p.factors {
		d, err := in.Get()
		if err != nil {
			return errors.Wrap(err, "Product", "Update", "input read failed")
		}
		if d == nil {
			continue
		}
		value *= d.Value
		if !present || d.Time > latest {
			latest = d.Time
		}
		present = true
	}
	if !present {
		p.cache = nil
		return nil
	}
	p.cache = &types.Datum[T]{Time: latest, Value: value}
	return nil
}

// Quotient divides the dividend by the divisor. An absent divisor passes
// the dividend through unchanged; an absent dividend makes the output
// absent.
type Quotient[T Numeric] struct {
	dividend stream.Input[T]
	divisor  stream.Input[T]
	cache    *types.Datum[T]
}

// NewQuotient constructs a Quotient.
func NewQuotient[T Numeric](dividend, divisor stream.Input[T]) *Quotient[T] {
	return &Quotient[T]{dividend: dividend, divisor: divisor}
}

// Get returns the cached quotient.
func (q *Quotient[T]) Get() (*types.Datum[T], error) {
	return q.cache, nil
}

// Update advances both inputs, dividend first, then recomputes.
func (q *Quotient[T]) Update() error {
	if err := q.dividend.Update(); err != nil {
		return errors.Wrap(err, "Quotient", "Update", "dividend update failed")
	}
	if err := q.divisor.Update(); err != nil {
		return errors.Wrap(err, "Quotient", "Update", "divisor update failed")
	}
	dd, err := q.dividend.Get()
	if err != nil {
		return errors.Wrap(err, "Quotient", "Update", "dividend read failed")
	}
	dv, err := q.divisor.Get()
	if err != nil {
		return errors.Wrap(err, "Quotient", "Update", "divisor read failed")
	}
	switch {
	case dd == nil:
		q.cache = nil
	case dv == nil:
		q.cache = dd
	default:
		q.cache = &types.Datum[T]{Time: types.MergeTime(dd.Time, dv.Time), Value: dd.Value / dv.Value}
	}
	return nil
}
