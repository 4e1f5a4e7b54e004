package types

import "errors"

// ErrDerivativeMismatch is returned when two commands with different primary
// derivatives are combined arithmetically.
var ErrDerivativeMismatch = errors.New("commands have different position derivatives")

// PositionDerivative selects which kinematic quantity is primary: a position
// to hold, a velocity to run at, or an acceleration to apply.
type PositionDerivative int

// Position derivative variants, in ascending derivative order.
const (
	Position PositionDerivative = iota
	Velocity
	Acceleration
)

// String returns the string representation of the derivative.
func (d PositionDerivative) String() string {
	switch d {
	case Position:
		return "position"
	case Velocity:
		return "velocity"
	case Acceleration:
		return "acceleration"
	default:
		return "unknown"
	}
}

// Command is a requested motion: a primary position derivative plus a
// numeric target for that derivative.
type Command struct {
	Derivative PositionDerivative `json:"derivative"`
	Value      float64            `json:"value"`
}

// NewCommand constructs a Command.
func NewCommand(derivative PositionDerivative, value float64) Command {
	return Command{Derivative: derivative, Value: value}
}

// CommandFromState derives the constant command implied by a state: the
// highest-order non-zero quantity is primary, and an all-zero state commands
// the position.
func CommandFromState(s State) Command {
	if s.Acceleration != 0 {
		return Command{Derivative: Acceleration, Value: s.Acceleration}
	}
	if s.Velocity != 0 {
		return Command{Derivative: Velocity, Value: s.Velocity}
	}
	return Command{Derivative: Position, Value: s.Position}
}

// Position returns the commanded constant position, or nil when the command
// is a velocity or acceleration and no constant position exists.
func (c Command) Position() *float64 {
	if c.Derivative == Position {
		v := c.Value
		return &v
	}
	return nil
}

// Velocity returns the commanded constant velocity. A position command
// implies zero velocity; an acceleration command has no constant velocity.
func (c Command) Velocity() *float64 {
	switch c.Derivative {
	case Position:
		v := 0.0
		return &v
	case Velocity:
		v := c.Value
		return &v
	default:
		return nil
	}
}

// Acceleration returns the commanded constant acceleration, zero for
// position and velocity commands.
func (c Command) Acceleration() float64 {
	if c.Derivative == Acceleration {
		return c.Value
	}
	return 0
}

// Add combines two commands of the same derivative.
func (c Command) Add(other Command) (Command, error) {
	if c.Derivative != other.Derivative {
		return Command{}, ErrDerivativeMismatch
	}
	return Command{Derivative: c.Derivative, Value: c.Value + other.Value}, nil
}

// Sub subtracts a command of the same derivative.
func (c Command) Sub(other Command) (Command, error) {
	if c.Derivative != other.Derivative {
		return Command{}, ErrDerivativeMismatch
	}
	return Command{Derivative: c.Derivative, Value: c.Value - other.Value}, nil
}

// Scale multiplies the numeric target, keeping the derivative.
func (c Command) Scale(coefficient float64) Command {
	return Command{Derivative: c.Derivative, Value: c.Value * coefficient}
}

// Neg flips the numeric target only.
func (c Command) Neg() Command {
	return Command{Derivative: c.Derivative, Value: -c.Value}
}
