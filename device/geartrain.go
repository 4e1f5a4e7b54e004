package device

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// GearTrain is a two-terminal mechanism with a fixed multiplicative
// ratio where (side 1) · ratio = (side 2). With one degree of freedom it
// propagates Commands between its terminals as well as States.
type GearTrain struct {
	term1 *Terminal
	term2 *Terminal
	ratio float64
}

// NewGearTrain constructs a GearTrain with an explicit ratio.
func NewGearTrain(ratio float64) *GearTrain {
	return &GearTrain{term1: NewTerminal(), term2: NewTerminal(), ratio: ratio}
}

// NewGearTrainFromTeeth constructs a GearTrain from the tooth counts of
// each meshed gear in the train, first to last. Each mesh reverses the
// direction of rotation, so an even number of gears makes the ratio
// negative.
func NewGearTrainFromTeeth(teeth ...float64) (*GearTrain, error) {
	if len(teeth) < 2 {
		return nil, errors.WrapInvalid(errors.ErrNoInputs, "GearTrain", "NewGearTrainFromTeeth", "need at least two gears")
	}
	ratio := teeth[0] / teeth[len(teeth)-1]
	if len(teeth)%2 == 0 {
		ratio = -ratio
	}
	return NewGearTrain(ratio), nil
}

// Terminal1 returns the side 1 terminal.
func (g *GearTrain) Terminal1() *Terminal { return g.term1 }

// Terminal2 returns the side 2 terminal.
func (g *GearTrain) Terminal2() *Terminal { return g.term2 }

// Update reconciles States across the ratio and forwards the newer
// side's Command to the other, on both terminals.
func (g *GearTrain) Update() error {
	s1 := g.term1.State()
	s2 := g.term2.State()
	switch {
	case s1 != nil && s2 != nil:
		t := types.MergeTime(s1.Time, s2.Time)
		// Least-squares reconciliation of the two readings under
		// state1 · ratio = state2.
		rSquaredPlus1 := g.ratio*g.ratio + 1
		fit := s1.Value.Add(s2.Value.Scale(g.ratio))
		g.term1.SetState(types.Datum[types.State]{Time: t, Value: fit.Scale(1 / rSquaredPlus1)})
		g.term2.SetState(types.Datum[types.State]{Time: t, Value: fit.Scale(g.ratio / rSquaredPlus1)})
	case s1 != nil:
		g.term2.SetState(types.Datum[types.State]{Time: s1.Time, Value: s1.Value.Scale(g.ratio)})
	case s2 != nil:
		g.term1.SetState(types.Datum[types.State]{Time: s2.Time, Value: s2.Value.Scale(1 / g.ratio)})
	}

	c1 := g.term1.Command()
	c2 := g.term2.Command()
	switch {
	case c1 != nil && c2 != nil:
		if c1.Time >= c2.Time {
			g.term2.SetCommand(types.Datum[types.Command]{Time: c1.Time, Value: c1.Value.Scale(g.ratio)})
		} else {
			g.term1.SetCommand(types.Datum[types.Command]{Time: c2.Time, Value: c2.Value.Scale(1 / g.ratio)})
		}
	case c1 != nil:
		g.term2.SetCommand(types.Datum[types.Command]{Time: c1.Time, Value: c1.Value.Scale(g.ratio)})
	case c2 != nil:
		g.term1.SetCommand(types.Datum[types.Command]{Time: c2.Time, Value: c2.Value.Scale(1 / g.ratio)})
	}
	return nil
}

// Invert is a two-terminal device where positive for one terminal is
// negative for the other. With one degree of freedom it propagates
// Commands as well as States, symmetrically on both terminals.
type Invert struct {
	term1 *Terminal
	term2 *Terminal
}

// NewInvert constructs an Invert.
func NewInvert() *Invert {
	return &Invert{term1: NewTerminal(), term2: NewTerminal()}
}

// Terminal1 returns the side 1 terminal.
func (iv *Invert) Terminal1() *Terminal { return iv.term1 }

// Terminal2 returns the side 2 terminal.
func (iv *Invert) Terminal2() *Terminal { return iv.term2 }

// Update reconciles States across the sign flip and forwards the newer
// Command to both terminals.
func (iv *Invert) Update() error {
	s1 := iv.term1.State()
	s2 := iv.term2.State()
	switch {
	case s1 != nil && s2 != nil:
		t := types.MergeTime(s1.Time, s2.Time)
		// Average with side 2 negated, since it is inverted from side 1.
		mid := s1.Value.Sub(s2.Value).Scale(0.5)
		iv.term1.SetState(types.Datum[types.State]{Time: t, Value: mid})
		iv.term2.SetState(types.Datum[types.State]{Time: t, Value: mid.Neg()})
	case s1 != nil:
		iv.term2.SetState(types.Datum[types.State]{Time: s1.Time, Value: s1.Value.Neg()})
	case s2 != nil:
		iv.term1.SetState(types.Datum[types.State]{Time: s2.Time, Value: s2.Value.Neg()})
	}

	c1 := iv.term1.Command()
	c2 := iv.term2.Command()
	var pick *types.Datum[types.Command]
	if c1 != nil {
		pick = c1
	}
	if c2 != nil && (pick == nil || c2.Time > pick.Time) {
		pick = &types.Datum[types.Command]{Time: c2.Time, Value: c2.Value.Neg()}
	}
	if pick != nil {
		// Both terminals get the passthrough so neither side of the
		// mechanism can miss a Command.
		iv.term1.SetCommand(*pick)
		iv.term2.SetCommand(types.Datum[types.Command]{Time: pick.Time, Value: pick.Value.Neg()})
	}
	return nil
}
