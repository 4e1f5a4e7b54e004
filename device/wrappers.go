package device

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/pid"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/stream/control"
	"github.com/c360/mechstreams/types"
)

// Sensor adapts a State-producing node into a device, republishing the
// node's output as its terminal's State every Update. An encoder built
// from stream converters plugs into the device graph this way.
type Sensor struct {
	inner interface {
		types.Getter[types.State]
		types.Updatable
	}
	terminal *Terminal
}

// NewSensor constructs a Sensor around a State producer.
func NewSensor(inner interface {
	types.Getter[types.State]
	types.Updatable
}) *Sensor {
	return &Sensor{inner: inner, terminal: NewTerminal()}
}

// Terminal returns the sensor's terminal.
func (s *Sensor) Terminal() *Terminal { return s.terminal }

// Update advances the wrapped node and republishes its output.
func (s *Sensor) Update() error {
	if err := s.inner.Update(); err != nil {
		return errors.Wrap(err, "Sensor", "Update", "inner update failed")
	}
	d, err := s.inner.Get()
	if err != nil {
		return errors.Wrap(err, "Sensor", "Update", "inner read failed")
	}
	if d == nil {
		return nil
	}
	s.terminal.SetState(*d)
	return nil
}

// Actuator adapts a TerminalData-accepting node into a device, feeding
// it the terminal's merged view every Update.
type Actuator struct {
	inner interface {
		types.Settable[TerminalData]
		types.Updatable
	}
	terminal *Terminal
}

// NewActuator constructs an Actuator around a TerminalData acceptor.
func NewActuator(inner interface {
	types.Settable[TerminalData]
	types.Updatable
}) *Actuator {
	return &Actuator{inner: inner, terminal: NewTerminal()}
}

// Terminal returns the actuator's terminal.
func (a *Actuator) Terminal() *Terminal { return a.terminal }

// Update forwards the merged terminal view into the wrapped node.
func (a *Actuator) Update() error {
	if d := a.terminal.Data(); d != nil {
		if err := a.inner.Set(d.Value); err != nil {
			return errors.Wrap(err, "Actuator", "Update", "inner set failed")
		}
	}
	if err := a.inner.Update(); err != nil {
		return errors.Wrap(err, "Actuator", "Update", "inner update failed")
	}
	return nil
}

// Servo adapts a closed-loop node, one that accepts Commands and reports
// State, into a device: the terminal's merged Command drives the node
// and the node's State feeds the terminal.
type Servo struct {
	inner interface {
		types.Getter[types.State]
		types.Settable[types.Command]
		types.Updatable
	}
	terminal *Terminal
}

// NewServo constructs a Servo.
func NewServo(inner interface {
	types.Getter[types.State]
	types.Settable[types.Command]
	types.Updatable
}) *Servo {
	return &Servo{inner: inner, terminal: NewTerminal()}
}

// Terminal returns the servo's terminal.
func (s *Servo) Terminal() *Terminal { return s.terminal }

// Update drives the node with the merged Command and republishes its
// State.
func (s *Servo) Update() error {
	if c := s.terminal.Command(); c != nil {
		if err := s.inner.Set(c.Value); err != nil {
			return errors.Wrap(err, "Servo", "Update", "inner set failed")
		}
	}
	if err := s.inner.Update(); err != nil {
		return errors.Wrap(err, "Servo", "Update", "inner update failed")
	}
	d, err := s.inner.Get()
	if err != nil {
		return errors.Wrap(err, "Servo", "Update", "inner read failed")
	}
	if d != nil {
		s.terminal.SetState(*d)
	}
	return nil
}

// Motor specializes the single-motor-plus-encoder closed loop: a raw
// effort actuator driven by an internal CommandPID whose measured State
// is the terminal's merged view. It runs its own loop rather than
// relying on an aggregator. The controller is created on the first
// Command seen at the terminal.
type Motor struct {
	inner interface {
		types.Settable[float64]
		types.Updatable
	}
	gains    pid.DerivativeDependentKValues
	terminal *Terminal
	pid      *control.CommandPID
}

// NewMotor constructs a Motor with the given controller gains.
func NewMotor(inner interface {
	types.Settable[float64]
	types.Updatable
}, gains pid.DerivativeDependentKValues) *Motor {
	return &Motor{inner: inner, gains: gains, terminal: NewTerminal()}
}

// Terminal returns the motor's terminal.
func (m *Motor) Terminal() *Terminal { return m.terminal }

// Update runs one controller step and drives the effort actuator.
func (m *Motor) Update() error {
	cmd := m.terminal.Command()
	if cmd != nil {
		if m.pid == nil {
			m.pid = control.NewCommandPID(
				stream.Shared[types.State](terminalState{terminal: m.terminal}),
				cmd.Value,
				m.gains,
			)
		}
		if err := m.pid.Set(cmd.Value); err != nil {
			return errors.Wrap(err, "Motor", "Update", "controller command failed")
		}
		if err := m.pid.Update(); err != nil {
			return errors.Wrap(err, "Motor", "Update", "controller update failed")
		}
		out, err := m.pid.Get()
		if err != nil {
			return errors.Wrap(err, "Motor", "Update", "controller read failed")
		}
		if out != nil {
			if err := m.inner.Set(out.Value); err != nil {
				return errors.Wrap(err, "Motor", "Update", "effort write failed")
			}
		}
	}
	if err := m.inner.Update(); err != nil {
		return errors.Wrap(err, "Motor", "Update", "inner update failed")
	}
	return nil
}

// terminalState exposes a terminal's merged State to a controller.
type terminalState struct {
	terminal *Terminal
}

func (t terminalState) Get() (*types.Datum[types.State], error) {
	return t.terminal.State(), nil
}
