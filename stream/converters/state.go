package converters

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// The *ToState converters rebuild a full kinematic State from a single
// measured derivative by numeric integration and differentiation,
// mostly useful for encoders. Each Update consumes one sample; the
// output stays absent until enough samples exist to populate every
// component. An input failure clears the chain so the rebuild starts
// over; an absent input holds the chain as it is.

// PositionToState differentiates a position stream twice. Velocity is
// available from the second sample, acceleration from the third.
type PositionToState struct {
	input stream.Input[float64]
	chain *positionChain
	err   error
}

type positionChain struct {
	time types.Time
	pos  float64
	vel  *float64
	acc  *float64
}

// NewPositionToState constructs a PositionToState.
func NewPositionToState(input stream.Input[float64]) *PositionToState {
	return &PositionToState{input: input}
}

// Get returns the rebuilt State once all three components exist.
func (p *PositionToState) Get() (*types.Datum[types.State], error) {
	if p.err != nil {
		return nil, p.err
	}
	c := p.chain
	if c == nil || c.vel == nil || c.acc == nil {
		return nil, nil
	}
	return &types.Datum[types.State]{
		Time:  c.time,
		Value: types.NewState(c.pos, *c.vel, *c.acc),
	}, nil
}

// Update consumes one position sample.
func (p *PositionToState) Update() error {
	if err := p.input.Update(); err != nil {
		return errors.Wrap(err, "PositionToState", "Update", "input update failed")
	}
	in, err := p.input.Get()
	if err != nil {
		p.chain = nil
		p.err = err
		return errors.Wrap(err, "PositionToState", "Update", "input read failed")
	}
	if in == nil {
		return nil
	}
	prev := p.chain
	if prev == nil {
		p.chain = &positionChain{time: in.Time, pos: in.Value}
		p.err = nil
		return nil
	}
	dt := in.Time.Sub(prev.time).Seconds()
	vel := (in.Value - prev.pos) / dt
	next := &positionChain{time: in.Time, pos: in.Value, vel: &vel}
	if prev.vel != nil {
		acc := (vel - *prev.vel) / dt
		next.acc = &acc
	}
	p.chain = next
	p.err = nil
	return nil
}

// VelocityToState differentiates and integrates a velocity stream. The
// full State is available from the second sample, with position
// accumulated from zero.
type VelocityToState struct {
	input stream.Input[float64]
	chain *velocityChain
	err   error
}

type velocityChain struct {
	time types.Time
	vel  float64
	acc  *float64
	pos  float64
}

// NewVelocityToState constructs a VelocityToState.
func NewVelocityToState(input stream.Input[float64]) *VelocityToState {
	return &VelocityToState{input: input}
}

// Get returns the rebuilt State once acceleration exists.
func (v *VelocityToState) Get() (*types.Datum[types.State], error) {
	if v.err != nil {
		return nil, v.err
	}
	c := v.chain
	if c == nil || c.acc == nil {
		return nil, nil
	}
	return &types.Datum[types.State]{
		Time:  c.time,
		Value: types.NewState(c.pos, c.vel, *c.acc),
	}, nil
}

// Update consumes one velocity sample.
func (v *VelocityToState) Update() error {
	if err := v.input.Update(); err != nil {
		return errors.Wrap(err, "VelocityToState", "Update", "input update failed")
	}
	in, err := v.input.Get()
	if err != nil {
		v.chain = nil
		v.err = err
		return errors.Wrap(err, "VelocityToState", "Update", "input read failed")
	}
	if in == nil {
		return nil
	}
	prev := v.chain
	if prev == nil {
		v.chain = &velocityChain{time: in.Time, vel: in.Value}
		v.err = nil
		return nil
	}
	dt := in.Time.Sub(prev.time).Seconds()
	acc := (in.Value - prev.vel) / dt
	pos := prev.pos + (prev.vel+in.Value)/2*dt
	v.chain = &velocityChain{time: in.Time, vel: in.Value, acc: &acc, pos: pos}
	v.err = nil
	return nil
}

// AccelerationToState integrates an acceleration stream twice. Velocity
// is available from the second sample, position from the third, both
// accumulated from zero.
type AccelerationToState struct {
	input stream.Input[float64]
	chain *accelerationChain
	err   error
}

type accelerationChain struct {
	time types.Time
	acc  float64
	vel  *float64
	pos  *float64
}

// NewAccelerationToState constructs an AccelerationToState.
func NewAccelerationToState(input stream.Input[float64]) *AccelerationToState {
	return &AccelerationToState{input: input}
}

// Get returns the rebuilt State once all three components exist.
func (a *AccelerationToState) Get() (*types.Datum[types.State], error) {
	if a.err != nil {
		return nil, a.err
	}
	c := a.chain
	if c == nil || c.vel == nil || c.pos == nil {
		return nil, nil
	}
	return &types.Datum[types.State]{
		Time:  c.time,
		Value: types.NewState(*c.pos, *c.vel, c.acc),
	}, nil
}

// Update consumes one acceleration sample.
func (a *AccelerationToState) Update() error {
	if err := a.input.Update(); err != nil {
		return errors.Wrap(err, "AccelerationToState", "Update", "input update failed")
	}
	in, err := a.input.Get()
	if err != nil {
		a.chain = nil
		a.err = err
		return errors.Wrap(err, "AccelerationToState", "Update", "input read failed")
	}
	if in == nil {
		return nil
	}
	prev := a.chain
	if prev == nil {
		a.chain = &accelerationChain{time: in.Time, acc: in.Value}
		a.err = nil
		return nil
	}
	dt := in.Time.Sub(prev.time).Seconds()
	velAddend := (prev.acc + in.Value) / 2 * dt
	next := &accelerationChain{time: in.Time, acc: in.Value}
	if prev.vel == nil {
		vel := velAddend
		next.vel = &vel
	} else {
		vel := *prev.vel + velAddend
		next.vel = &vel
		posAddend := (*prev.vel + vel) / 2 * dt
		if prev.pos == nil {
			next.pos = &posAddend
		} else {
			pos := *prev.pos + posAddend
			next.pos = &pos
		}
	}
	a.chain = next
	a.err = nil
	return nil
}
