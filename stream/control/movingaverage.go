package control

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/quantity"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// MovingAverage is a weighted average over a fixed-length sample window.
// Weights are supplied once at construction, weights[0] applying to the
// newest sample; their sum is cached rather than recomputed every tick.
// The node produces nothing until the window has filled.
type MovingAverage struct {
	input     stream.Input[float64]
	weights   []float64
	weightSum float64
	window    []types.Datum[float64]
	cache     *types.Datum[float64]
	err       error
}

// NewMovingAverage constructs a MovingAverage with at least one weight.
func NewMovingAverage(input stream.Input[float64], weights ...float64) (*MovingAverage, error) {
	if len(weights) < 1 {
		return nil, errors.WrapInvalid(errors.ErrWindowLength, "MovingAverage", "NewMovingAverage", "no weights given")
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return nil, errors.WrapInvalid(errors.ErrWindowLength, "MovingAverage", "NewMovingAverage", "weights sum to zero")
	}
	ws := make([]float64, len(weights))
	copy(ws, weights)
	return &MovingAverage{input: input, weights: ws, weightSum: sum}, nil
}

// Get returns the windowed average, or the failure of the last Update.
func (m *MovingAverage) Get() (*types.Datum[float64], error) {
	return m.cache, m.err
}

// Update pushes one sample into the window. A failing sample clears the
// window; an absent one holds the current output.
func (m *MovingAverage) Update() error {
	if err := m.input.Update(); err != nil {
		return errors.Wrap(err, "MovingAverage", "Update", "input update failed")
	}
	in, err := m.input.Get()
	if err != nil {
		m.window = m.window[:0]
		m.cache = nil
		m.err = err
		return errors.Wrap(err, "MovingAverage", "Update", "input read failed")
	}
	if in == nil {
		return nil
	}
	m.window = append(m.window, *in)
	if len(m.window) > len(m.weights) {
		m.window = m.window[1:]
	}
	if len(m.window) < len(m.weights) {
		return nil
	}
	var value float64
	for i, w := range m.weights {
		// weights[0] pairs with the newest sample.
		value += w * m.window[len(m.window)-1-i].Value
	}
	m.cache = &types.Datum[float64]{Time: in.Time, Value: value / m.weightSum}
	m.err = nil
	return nil
}

// QuantityMovingAverage is MovingAverage over unit-tagged quantities.
type QuantityMovingAverage struct {
	input     stream.Input[quantity.Quantity]
	weights   []float64
	weightSum float64
	window    []types.Datum[quantity.Quantity]
	cache     *types.Datum[quantity.Quantity]
	err       error
}

// NewQuantityMovingAverage constructs a QuantityMovingAverage.
func NewQuantityMovingAverage(input stream.Input[quantity.Quantity], weights ...float64) (*QuantityMovingAverage, error) {
	if len(weights) < 1 {
		return nil, errors.WrapInvalid(errors.ErrWindowLength, "QuantityMovingAverage", "NewQuantityMovingAverage", "no weights given")
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return nil, errors.WrapInvalid(errors.ErrWindowLength, "QuantityMovingAverage", "NewQuantityMovingAverage", "weights sum to zero")
	}
	ws := make([]float64, len(weights))
	copy(ws, weights)
	return &QuantityMovingAverage{input: input, weights: ws, weightSum: sum}, nil
}

// Get returns the windowed average, or the failure of the last Update.
func (m *QuantityMovingAverage) Get() (*types.Datum[quantity.Quantity], error) {
	return m.cache, m.err
}

// Update pushes one sample into the window.
func (m *QuantityMovingAverage) Update() error {
	if err := m.input.Update(); err != nil {
		return errors.Wrap(err, "QuantityMovingAverage", "Update", "input update failed")
	}
	in, err := m.input.Get()
	if err != nil {
		m.window = m.window[:0]
		m.cache = nil
		m.err = err
		return errors.Wrap(err, "QuantityMovingAverage", "Update", "input read failed")
	}
	if in == nil {
		return nil
	}
	m.window = append(m.window, *in)
	if len(m.window) > len(m.weights) {
		m.window = m.window[1:]
	}
	if len(m.window) < len(m.weights) {
		return nil
	}
	value := m.window[len(m.window)-1].Value.Scale(m.weights[0])
	for i := 1; i < len(m.weights); i++ {
		value, err = value.Add(m.window[len(m.window)-1-i].Value.Scale(m.weights[i]))
		if err != nil {
			m.err = err
			return errors.Wrap(err, "QuantityMovingAverage", "Update", "sample units differ within window")
		}
	}
	m.cache = &types.Datum[quantity.Quantity]{Time: in.Time, Value: value.Scale(1 / m.weightSum)}
	m.err = nil
	return nil
}
