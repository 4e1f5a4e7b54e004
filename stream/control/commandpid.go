package control

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/pid"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// commandPIDChain holds the integrated outputs built up once at least
// two samples exist.
type commandPIDChain struct {
	outputInt    float64
	errInt       float64
	outputIntInt *float64
}

// commandPIDState is the controller's per-sample cache, nil after a
// reset.
type commandPIDState struct {
	time   types.Time
	output float64
	err    float64
	chain  *commandPIDChain
}

// CommandPID drives a raw effort actuator toward a Command target using
// a measured State. Gains are selected per the command's position
// derivative. For a velocity command the raw PID output is integrated
// once before being served, for an acceleration command twice, so the
// served value is always in the actuator's effort domain.
type CommandPID struct {
	input   stream.Input[types.State]
	command types.Command
	gains   pid.DerivativeDependentKValues
	req     stream.Request[types.Command]
	state   *commandPIDState
	err     error
}

// NewCommandPID constructs a CommandPID with an initial command.
func NewCommandPID(input stream.Input[types.State], command types.Command, gains pid.DerivativeDependentKValues) *CommandPID {
	return &CommandPID{input: input, command: command, gains: gains}
}

// Reset clears the integral and derivative cache. The controller then
// rebuilds it over the next updates exactly as it does after
// construction. Called internally when the command changes.
func (c *CommandPID) Reset() {
	c.state = nil
	c.err = nil
}

// Get returns the control output for the current command's derivative:
// the raw PID output for position commands, its first integral for
// velocity, its second for acceleration. Absent until enough samples
// have accumulated for the required integration depth.
func (c *CommandPID) Get() (*types.Datum[float64], error) {
	if c.err != nil {
		return nil, c.err
	}
	s := c.state
	if s == nil {
		return nil, nil
	}
	switch c.command.Derivative {
	case types.Position:
		return &types.Datum[float64]{Time: s.time, Value: s.output}, nil
	case types.Velocity:
		if s.chain == nil {
			return nil, nil
		}
		return &types.Datum[float64]{Time: s.time, Value: s.chain.outputInt}, nil
	default:
		if s.chain == nil || s.chain.outputIntInt == nil {
			return nil, nil
		}
		return &types.Datum[float64]{Time: s.time, Value: *s.chain.outputIntInt}, nil
	}
}

// Set replaces the command. A changed command resets the controller so
// stale integrals cannot bleed into the new target.
func (c *CommandPID) Set(command types.Command) error {
	c.req.Record(command)
	if command != c.command {
		c.Reset()
		c.command = command
	}
	return nil
}

// LastRequest reports the most recent Set value, nil if none.
func (c *CommandPID) LastRequest() *types.Command {
	return c.req.Last()
}

// Follow attaches a command source re-read on every Update.
func (c *CommandPID) Follow(source types.Getter[types.Command]) {
	c.req.Follow(source)
}

// Update pulls one measured State and advances the output integration
// chain.
func (c *CommandPID) Update() error {
	if v, err := c.req.Followed(); err != nil {
		return errors.Wrap(err, "CommandPID", "Update", "followed command failed")
	} else if v != nil {
		if err := c.Set(*v); err != nil {
			return err
		}
	}
	if err := c.input.Update(); err != nil {
		return errors.Wrap(err, "CommandPID", "Update", "input update failed")
	}
	measured, err := c.input.Get()
	if err != nil {
		c.err = err
		return errors.Wrap(err, "CommandPID", "Update", "state read failed")
	}
	if measured == nil {
		c.Reset()
		return nil
	}

	pd := c.command.Derivative
	errorValue := c.command.Value - measured.Value.Value(pd)
	prev := c.state
	if prev == nil {
		c.state = &commandPIDState{
			time:   measured.Time,
			output: c.gains.Evaluate(pd, errorValue, 0, 0),
			err:    errorValue,
		}
		c.err = nil
		return nil
	}

	dt := measured.Time.Sub(prev.time).Seconds()
	errDrv := (errorValue - prev.err) / dt
	errIntAddend := (prev.err + errorValue) / 2 * dt
	if prev.chain == nil {
		output := c.gains.Evaluate(pd, errorValue, errIntAddend, errDrv)
		c.state = &commandPIDState{
			time:   measured.Time,
			output: output,
			err:    errorValue,
			chain: &commandPIDChain{
				outputInt: (prev.output + output) / 2 * dt,
				errInt:    errIntAddend,
			},
		}
		c.err = nil
		return nil
	}

	errInt := prev.chain.errInt + errIntAddend
	output := c.gains.Evaluate(pd, errorValue, errInt, errDrv)
	outputInt := prev.chain.outputInt + (prev.output+output)/2*dt
	outputIntIntAddend := (prev.chain.outputInt + outputInt) / 2 * dt
	if prev.chain.outputIntInt != nil {
		outputIntIntAddend += *prev.chain.outputIntInt
	}
	c.state = &commandPIDState{
		time:   measured.Time,
		output: output,
		err:    errorValue,
		chain: &commandPIDChain{
			outputInt:    outputInt,
			errInt:       errInt,
			outputIntInt: &outputIntIntAddend,
		},
	}
	c.err = nil
	return nil
}
