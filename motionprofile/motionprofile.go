// Package motionprofile generates trapezoidal motion trajectories:
// accelerate to a cruise velocity, hold it, decelerate into the target
// state. A Profile is a precomputed plan addressed by instant, so it
// plugs into a stream graph through a history adapter.
package motionprofile

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// Piece names where an instant falls in a profile.
type Piece int

const (
	// BeforeStart is any instant before the profile's zero.
	BeforeStart Piece = iota
	// InitialAcceleration is the ramp up to cruise velocity.
	InitialAcceleration
	// ConstantVelocity is the cruise segment.
	ConstantVelocity
	// EndAcceleration is the ramp into the end state.
	EndAcceleration
	// Complete is any instant past the profile's end.
	Complete
)

// String implements fmt.Stringer.
func (p Piece) String() string {
	switch p {
	case BeforeStart:
		return "before-start"
	case InitialAcceleration:
		return "initial-acceleration"
	case ConstantVelocity:
		return "constant-velocity"
	case EndAcceleration:
		return "end-acceleration"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Profile is a trapezoidal plan from one state to another, immutable
// once constructed. Instants are relative to the profile's own zero;
// align them with a live clock through stream.NewFromHistoryStartAtUpdate.
// A completed Profile keeps returning its end Command forever, so a
// follower holds the target rather than going silent.
type Profile struct {
	startPos float64
	startVel float64
	t1       types.Time
	t2       types.Time
	t3       types.Time
	maxAcc   float64
	end      types.Command
}

// New plans a profile from a start state to an end state under velocity
// and acceleration limits. The limits' signs are ignored; the direction
// of travel decides them. A target unreachable under the limits, such
// as a cruise velocity below the start velocity or a distance too short
// to ramp down in, fails with ErrInvalidProfile.
func New(start, end types.State, maxVel, maxAcc float64) (*Profile, error) {
	if maxVel == 0 || maxAcc == 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidProfile, "Profile", "New", "velocity and acceleration limits must be non-zero")
	}
	sign := 1.0
	if end.Position < start.Position {
		sign = -1
	}
	vel := abs(maxVel) * sign
	acc := abs(maxAcc) * sign

	t1 := (vel - start.Velocity) / acc
	if t1 < 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidProfile, "Profile", "New", "start velocity exceeds the cruise velocity")
	}
	rampUpDistance := (start.Velocity + vel) / 2 * t1

	dt3 := (end.Velocity - vel) / -acc
	if dt3 < 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidProfile, "Profile", "New", "end velocity exceeds the cruise velocity")
	}
	rampDownDistance := (vel + end.Velocity) / 2 * dt3

	cruiseDistance := (end.Position - start.Position) - (rampUpDistance + rampDownDistance)
	dt2 := cruiseDistance / vel
	if dt2 < 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidProfile, "Profile", "New", "distance too short for the ramps")
	}

	return &Profile{
		startPos: start.Position,
		startVel: start.Velocity,
		t1:       types.FromSeconds(t1),
		t2:       types.FromSeconds(t1 + dt2),
		t3:       types.FromSeconds(t1 + dt2 + dt3),
		maxAcc:   acc,
		end:      types.CommandFromState(end),
	}, nil
}

// End returns the constant Command the profile settles on.
func (p *Profile) End() types.Command {
	return p.end
}

// Duration returns the profile's total length.
func (p *Profile) Duration() types.Time {
	return p.t3
}

// Piece reports which segment the instant falls in.
func (p *Profile) Piece(t types.Time) Piece {
	switch {
	case t < 0:
		return BeforeStart
	case t < p.t1:
		return InitialAcceleration
	case t < p.t2:
		return ConstantVelocity
	case t < p.t3:
		return EndAcceleration
	default:
		return Complete
	}
}

// Mode reports the position derivative the profile commands at the
// instant, false before the start. Ramps command acceleration, the
// cruise commands velocity, and a completed profile commands whatever
// its end state implies.
func (p *Profile) Mode(t types.Time) (types.PositionDerivative, bool) {
	switch {
	case t < 0:
		return 0, false
	case t < p.t1, t >= p.t2 && t < p.t3:
		return types.Acceleration, true
	case t < p.t2:
		return types.Velocity, true
	default:
		return p.end.Derivative, true
	}
}

// Acceleration returns the planned acceleration at the instant, false
// before the start.
func (p *Profile) Acceleration(t types.Time) (float64, bool) {
	switch {
	case t < 0:
		return 0, false
	case t < p.t1:
		return p.maxAcc, true
	case t < p.t2:
		return 0, true
	case t < p.t3:
		return -p.maxAcc, true
	default:
		return p.end.Acceleration(), true
	}
}

// Velocity returns the planned velocity at the instant, false before
// the start or when the end command has no constant velocity.
func (p *Profile) Velocity(t types.Time) (float64, bool) {
	switch {
	case t < 0:
		return 0, false
	case t < p.t1:
		return p.maxAcc*t.Seconds() + p.startVel, true
	case t < p.t2:
		return p.maxAcc*p.t1.Seconds() + p.startVel, true
	case t < p.t3:
		return p.maxAcc*(p.t1.Seconds()+p.t2.Seconds()-t.Seconds()) + p.startVel, true
	default:
		if v := p.end.Velocity(); v != nil {
			return *v, true
		}
		return 0, false
	}
}

// Position returns the planned position at the instant, false before
// the start or when the end command has no constant position.
func (p *Profile) Position(t types.Time) (float64, bool) {
	ts := t.Seconds()
	t1 := p.t1.Seconds()
	t2 := p.t2.Seconds()
	switch {
	case t < 0:
		return 0, false
	case t < p.t1:
		return 0.5*p.maxAcc*ts*ts + p.startVel*ts + p.startPos, true
	case t < p.t2:
		return p.maxAcc*t1*(ts-t1/2) + p.startVel*ts + p.startPos, true
	case t < p.t3:
		cruiseEnd := p.maxAcc * t1 * (t2 - t1/2)
		rampDown := 0.5 * p.maxAcc * (ts - t2) * (ts - 2*t1 - t2)
		return cruiseEnd - rampDown + p.startVel*ts + p.startPos, true
	default:
		if pos := p.end.Position(); pos != nil {
			return *pos, true
		}
		return 0, false
	}
}

// At returns the commanded motion at the instant, stamped with the
// requested instant. Nil before the profile's start; the end Command
// forever after its end.
func (p *Profile) At(t types.Time) *types.Datum[types.Command] {
	mode, ok := p.Mode(t)
	if !ok {
		return nil
	}
	var value float64
	switch mode {
	case types.Position:
		value, _ = p.Position(t)
	case types.Velocity:
		value, _ = p.Velocity(t)
	default:
		value, _ = p.Acceleration(t)
	}
	d := types.NewDatum(t, types.NewCommand(mode, value))
	return &d
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
