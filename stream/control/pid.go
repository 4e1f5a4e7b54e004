package control

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/pid"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// PID is a proportional-integral-derivative controller over a scalar
// process variable. The setpoint is settable and followable; setting an
// equal setpoint is a no-op, a changed setpoint clears the integral and
// derivative state.
type PID struct {
	input    stream.Input[float64]
	gains    pid.KValues
	setpoint float64
	req      stream.Request[float64]
	prevErr  *types.Datum[float64]
	integral float64
	cache    *types.Datum[float64]
	err      error
}

// NewPID constructs a PID with an initial setpoint.
func NewPID(input stream.Input[float64], setpoint float64, gains pid.KValues) *PID {
	return &PID{input: input, gains: gains, setpoint: setpoint}
}

func (p *PID) reset() {
	p.prevErr = nil
	p.integral = 0
	p.cache = nil
	p.err = nil
}

// Get returns the cached control output, or the failure of the last
// Update.
func (p *PID) Get() (*types.Datum[float64], error) {
	return p.cache, p.err
}

// Set replaces the setpoint. A changed setpoint resets the controller.
func (p *PID) Set(setpoint float64) error {
	p.req.Record(setpoint)
	if setpoint != p.setpoint {
		p.reset()
		p.setpoint = setpoint
	}
	return nil
}

// LastRequest reports the most recent Set value, nil if none.
func (p *PID) LastRequest() *float64 {
	return p.req.Last()
}

// Follow attaches a setpoint source re-read on every Update, enabling a
// controller that tracks a live trajectory.
func (p *PID) Follow(source types.Getter[float64]) {
	p.req.Follow(source)
}

// Integral reports the accumulated error integral, exposed for tuning
// and tests.
func (p *PID) Integral() float64 {
	return p.integral
}

// Update pulls one process sample and recomputes the control output. An
// absent sample resets the controller; a failing sample records the
// failure without touching the accumulated state.
func (p *PID) Update() error {
	if v, err := p.req.Followed(); err != nil {
		return errors.Wrap(err, "PID", "Update", "followed setpoint failed")
	} else if v != nil {
		if err := p.Set(*v); err != nil {
			return err
		}
	}
	if err := p.input.Update(); err != nil {
		return errors.Wrap(err, "PID", "Update", "input update failed")
	}
	process, err := p.input.Get()
	if err != nil {
		p.err = err
		return errors.Wrap(err, "PID", "Update", "process read failed")
	}
	if process == nil {
		p.reset()
		return nil
	}
	errorValue := p.setpoint - process.Value
	var derivative float64
	if p.prevErr != nil {
		dt := process.Time.Sub(p.prevErr.Time).Seconds()
		derivative = (errorValue - p.prevErr.Value) / dt
		// Trapezoidal integral approximation is more precise than
		// rectangular.
		p.integral += dt * (p.prevErr.Value + errorValue) / 2
	}
	p.cache = &types.Datum[float64]{
		Time:  process.Time,
		Value: p.gains.Evaluate(errorValue, p.integral, derivative),
	}
	p.prevErr = &types.Datum[float64]{Time: process.Time, Value: errorValue}
	p.err = nil
	return nil
}
