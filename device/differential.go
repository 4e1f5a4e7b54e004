package device

import "github.com/c360/mechstreams/types"

// Distrust selects which leg of a Differential is derived from the
// other two rather than read. With encoders on two legs, derive the
// third; with encoders on all three, Equal folds every reading in.
type Distrust int

const (
	// DistrustSide1 derives side 1 from sum and side 2.
	DistrustSide1 Distrust = iota
	// DistrustSide2 derives side 2 from sum and side 1.
	DistrustSide2
	// DistrustSum derives the sum leg from the two sides.
	DistrustSum
	// DistrustEqual trusts all three legs equally, reconciling them
	// with a symmetric least-squares fit.
	DistrustEqual
)

// Differential is a three-terminal mechanical differential with legs
// related by side1 + side2 = sum. Each Update derives consistent State
// values for the legs per the distrust mode; because any leg may be the
// one that changed, Equal privileges none of them. With two degrees of
// freedom the device cannot propagate Commands between its terminals.
type Differential struct {
	side1    *Terminal
	side2    *Terminal
	sum      *Terminal
	distrust Distrust
}

// NewDifferential constructs a Differential trusting all legs equally.
func NewDifferential() *Differential {
	return NewDifferentialWithDistrust(DistrustEqual)
}

// NewDifferentialWithDistrust constructs a Differential with an explicit
// distrust mode.
func NewDifferentialWithDistrust(distrust Distrust) *Differential {
	return &Differential{
		side1:    NewTerminal(),
		side2:    NewTerminal(),
		sum:      NewTerminal(),
		distrust: distrust,
	}
}

// Side1 returns the side 1 terminal.
func (d *Differential) Side1() *Terminal { return d.side1 }

// Side2 returns the side 2 terminal.
func (d *Differential) Side2() *Terminal { return d.side2 }

// Sum returns the coupled sum terminal.
func (d *Differential) Sum() *Terminal { return d.sum }

// Update reconciles the three legs.
func (d *Differential) Update() error {
	switch d.distrust {
	case DistrustSide1:
		sum := d.sum.State()
		side2 := d.side2.State()
		if sum == nil || side2 == nil {
			return nil
		}
		d.side1.SetState(subStates(*sum, *side2))
	case DistrustSide2:
		sum := d.sum.State()
		side1 := d.side1.State()
		if sum == nil || side1 == nil {
			return nil
		}
		d.side2.SetState(subStates(*sum, *side1))
	case DistrustSum:
		side1 := d.side1.State()
		side2 := d.side2.State()
		if side1 == nil || side2 == nil {
			return nil
		}
		d.sum.SetState(addStates(*side1, *side2))
	case DistrustEqual:
		sum := d.sum.State()
		side1 := d.side1.State()
		side2 := d.side2.State()
		if sum == nil || side1 == nil || side2 == nil {
			return nil
		}
		// Least-squares fit: minimize the distance from the measured
		// values subject to side1 + side2 = sum, so the reconciled
		// values stay as close to the readings as the constraint
		// allows without privileging any leg.
		t := types.MergeTime(types.MergeTime(side1.Time, side2.Time), sum.Time)
		s1, s2, sm := side1.Value, side2.Value, sum.Value
		d.sum.SetState(types.Datum[types.State]{
			Time:  t,
			Value: s1.Add(s2).Add(sm.Scale(2)).Scale(1.0 / 3.0),
		})
		d.side1.SetState(types.Datum[types.State]{
			Time:  t,
			Value: s1.Scale(2).Sub(s2).Add(sm).Scale(1.0 / 3.0),
		})
		d.side2.SetState(types.Datum[types.State]{
			Time:  t,
			Value: s2.Scale(2).Sub(s1).Add(sm).Scale(1.0 / 3.0),
		})
	}
	return nil
}

func addStates(a, b types.Datum[types.State]) types.Datum[types.State] {
	return types.Datum[types.State]{
		Time:  types.MergeTime(a.Time, b.Time),
		Value: a.Value.Add(b.Value),
	}
}

func subStates(a, b types.Datum[types.State]) types.Datum[types.State] {
	return types.Datum[types.State]{
		Time:  types.MergeTime(a.Time, b.Time),
		Value: a.Value.Sub(b.Value),
	}
}
