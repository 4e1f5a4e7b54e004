package math

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// Derivative computes the numerical derivative of its input between the
// two most recent samples, in input units per second. It reports no
// value until two samples exist, and an input failure or absence clears
// the sample pair so the rebuild starts over.
type Derivative struct {
	input stream.Input[float64]
	prev  *types.Datum[float64]
	cache *types.Datum[float64]
	err   error
}

// NewDerivative constructs a Derivative.
func NewDerivative(input stream.Input[float64]) *Derivative {
	return &Derivative{input: input}
}

// Get returns the cached derivative, or the failure of the last Update.
func (d *Derivative) Get() (*types.Datum[float64], error) {
	return d.cache, d.err
}

// Update pulls one sample and differentiates against the previous one.
func (d *Derivative) Update() error {
	if err := d.input.Update(); err != nil {
		return errors.Wrap(err, "Derivative", "Update", "input update failed")
	}
	in, err := d.input.Get()
	if err != nil {
		d.prev = nil
		d.cache = nil
		d.err = err
		return errors.Wrap(err, "Derivative", "Update", "input read failed")
	}
	if in == nil {
		d.prev = nil
		d.cache = nil
		d.err = nil
		return nil
	}
	if d.prev == nil {
		d.prev = in
		return nil
	}
	dt := in.Time.Sub(d.prev.Time).Seconds()
	value := (in.Value - d.prev.Value) / dt
	d.cache = &types.Datum[float64]{Time: in.Time, Value: value}
	d.prev = in
	d.err = nil
	return nil
}

// Integral computes the trapezoidal numerical integral of its input in
// input units times seconds, accumulating value·Δt between consecutive
// samples and stamping the output with the later sample's time.
type Integral struct {
	input stream.Input[float64]
	prev  *types.Datum[float64]
	cache *types.Datum[float64]
	err   error
}

// NewIntegral constructs an Integral.
func NewIntegral(input stream.Input[float64]) *Integral {
	return &Integral{input: input}
}

// Get returns the cached integral, or the failure of the last Update.
func (i *Integral) Get() (*types.Datum[float64], error) {
	return i.cache, i.err
}

// Update pulls one sample and accumulates one trapezoid.
func (i *Integral) Update() error {
	if err := i.input.Update(); err != nil {
		return errors.Wrap(err, "Integral", "Update", "input update failed")
	}
	in, err := i.input.Get()
	if err != nil {
		i.prev = nil
		i.cache = nil
		i.err = err
		return errors.Wrap(err, "Integral", "Update", "input read failed")
	}
	if in == nil {
		i.prev = nil
		i.cache = nil
		i.err = nil
		return nil
	}
	if i.prev == nil {
		i.prev = in
		return nil
	}
	var accumulated float64
	if i.cache != nil {
		accumulated = i.cache.Value
	}
	dt := in.Time.Sub(i.prev.Time).Seconds()
	value := accumulated + dt*(i.prev.Value+in.Value)/2
	i.cache = &types.Datum[float64]{Time: in.Time, Value: value}
	i.prev = in
	i.err = nil
	return nil
}
