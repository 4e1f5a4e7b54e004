package types

// State is a one-dimensional motion state: where you are, how fast you're
// going, and how fast that is changing. Arithmetic is component-wise.
type State struct {
	Position     float64 `json:"position"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
}

// NewState constructs a State.
func NewState(position, velocity, acceleration float64) State {
	return State{Position: position, Velocity: velocity, Acceleration: acceleration}
}

// Project advances the state by dt assuming constant acceleration, using the
// trapezoidal rule for the position term.
func (s *State) Project(dt Time) {
	seconds := dt.Seconds()
	newVelocity := s.Velocity + seconds*s.Acceleration
	s.Position += seconds * (s.Velocity + newVelocity) / 2
	s.Velocity = newVelocity
}

// SetConstantAcceleration fixes the acceleration.
func (s *State) SetConstantAcceleration(acceleration float64) {
	s.Acceleration = acceleration
}

// SetConstantVelocity fixes the velocity and zeroes the acceleration.
func (s *State) SetConstantVelocity(velocity float64) {
	s.Acceleration = 0
	s.Velocity = velocity
}

// SetConstantPosition fixes the position and zeroes velocity and acceleration.
func (s *State) SetConstantPosition(position float64) {
	s.Acceleration = 0
	s.Velocity = 0
	s.Position = position
}

// Value returns the component selected by the given position derivative.
func (s State) Value(d PositionDerivative) float64 {
	switch d {
	case Velocity:
		return s.Velocity
	case Acceleration:
		return s.Acceleration
	default:
		return s.Position
	}
}

// Add returns the component-wise sum.
func (s State) Add(other State) State {
	return State{
		Position:     s.Position + other.Position,
		Velocity:     s.Velocity + other.Velocity,
		Acceleration: s.Acceleration + other.Acceleration,
	}
}

// Sub returns the component-wise difference.
func (s State) Sub(other State) State {
	return State{
		Position:     s.Position - other.Position,
		Velocity:     s.Velocity - other.Velocity,
		Acceleration: s.Acceleration - other.Acceleration,
	}
}

// Scale returns the state multiplied by a coefficient.
func (s State) Scale(coefficient float64) State {
	return State{
		Position:     s.Position * coefficient,
		Velocity:     s.Velocity * coefficient,
		Acceleration: s.Acceleration * coefficient,
	}
}

// Neg returns the component-wise negation.
func (s State) Neg() State {
	return s.Scale(-1)
}
