package pid

import "github.com/c360/mechstreams/types"

// KValues is one set of proportional, integral and derivative gains.
type KValues struct {
	KP float64 `json:"kp"`
	KI float64 `json:"ki"`
	KD float64 `json:"kd"`
}

// NewKValues constructs a gain set.
func NewKValues(kp, ki, kd float64) KValues {
	return KValues{KP: kp, KI: ki, KD: kd}
}

// Evaluate folds an error, its integral and its derivative through the
// gains.
func (k KValues) Evaluate(err, errIntegral, errDerivative float64) float64 {
	return k.KP*err + k.KI*errIntegral + k.KD*errDerivative
}

// DerivativeDependentKValues carries a separate gain set for each
// position derivative a command can target. Motor controllers tuned for
// position tracking rarely share gains with the same motor tuned for
// velocity.
type DerivativeDependentKValues struct {
	Position     KValues `json:"position"`
	Velocity     KValues `json:"velocity"`
	Acceleration KValues `json:"acceleration"`
}

// NewDerivativeDependentKValues constructs a per-derivative gain table.
func NewDerivativeDependentKValues(position, velocity, acceleration KValues) DerivativeDependentKValues {
	return DerivativeDependentKValues{
		Position:     position,
		Velocity:     velocity,
		Acceleration: acceleration,
	}
}

// For returns the gain set for a given position derivative.
func (k DerivativeDependentKValues) For(pd types.PositionDerivative) KValues {
	switch pd {
	case types.Velocity:
		return k.Velocity
	case types.Acceleration:
		return k.Acceleration
	default:
		return k.Position
	}
}

// Evaluate folds an error triple through the gains selected by the
// position derivative.
func (k DerivativeDependentKValues) Evaluate(pd types.PositionDerivative, err, errIntegral, errDerivative float64) float64 {
	return k.For(pd).Evaluate(err, errIntegral, errDerivative)
}
