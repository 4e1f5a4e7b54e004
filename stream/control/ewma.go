package control

import (
	"math"

	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/quantity"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// EWMA is an exponentially weighted moving average. Because samples do
// not arrive at a fixed interval, the weighting factor is computed per
// sample as λ = 1-(1-smoothing)^Δt with Δt in seconds, so a long gap
// weighs the new sample more heavily than a short one.
type EWMA struct {
	input     stream.Input[float64]
	smoothing float64
	cache     *types.Datum[float64]
	err       error
}

// NewEWMA constructs an EWMA with the given smoothing constant in (0,1].
func NewEWMA(input stream.Input[float64], smoothing float64) *EWMA {
	return &EWMA{input: input, smoothing: smoothing}
}

// Get returns the smoothed value, or the failure of the last Update.
func (e *EWMA) Get() (*types.Datum[float64], error) {
	return e.cache, e.err
}

// Update folds one sample into the average. An absent sample holds the
// current average; a failing sample records the failure and restarts the
// average at the next good sample.
func (e *EWMA) Update() error {
	if err := e.input.Update(); err != nil {
		return errors.Wrap(err, "EWMA", "Update", "input update failed")
	}
	in, err := e.input.Get()
	if err != nil {
		e.cache = nil
		e.err = err
		return errors.Wrap(err, "EWMA", "Update", "input read failed")
	}
	if in == nil {
		return nil
	}
	if e.cache == nil {
		e.cache = in
		e.err = nil
		return nil
	}
	dt := in.Time.Sub(e.cache.Time).Seconds()
	lambda := 1 - math.Pow(1-e.smoothing, dt)
	value := e.cache.Value*(1-lambda) + in.Value*lambda
	e.cache = &types.Datum[float64]{Time: in.Time, Value: value}
	e.err = nil
	return nil
}

// QuantityEWMA is EWMA over unit-tagged quantities. Mixing units across
// samples is a failure, not a silently wrong scale.
type QuantityEWMA struct {
	input     stream.Input[quantity.Quantity]
	smoothing float64
	cache     *types.Datum[quantity.Quantity]
	err       error
}

// NewQuantityEWMA constructs a QuantityEWMA.
func NewQuantityEWMA(input stream.Input[quantity.Quantity], smoothing float64) *QuantityEWMA {
	return &QuantityEWMA{input: input, smoothing: smoothing}
}

// Get returns the smoothed quantity, or the failure of the last Update.
func (e *QuantityEWMA) Get() (*types.Datum[quantity.Quantity], error) {
	return e.cache, e.err
}

// Update folds one sample into the average.
func (e *QuantityEWMA) Update() error {
	if err := e.input.Update(); err != nil {
		return errors.Wrap(err, "QuantityEWMA", "Update", "input update failed")
	}
	in, err := e.input.Get()
	if err != nil {
		e.cache = nil
		e.err = err
		return errors.Wrap(err, "QuantityEWMA", "Update", "input read failed")
	}
	if in == nil {
		return nil
	}
	if e.cache == nil {
		e.cache = in
		e.err = nil
		return nil
	}
	dt := in.Time.Sub(e.cache.Time).Seconds()
	lambda := 1 - math.Pow(1-e.smoothing, dt)
	value, err := e.cache.Value.Scale(1 - lambda).Add(in.Value.Scale(lambda))
	if err != nil {
		e.err = err
		return errors.Wrap(err, "QuantityEWMA", "Update", "sample unit differs from average")
	}
	e.cache = &types.Datum[quantity.Quantity]{Time: in.Time, Value: value}
	e.err = nil
	return nil
}
