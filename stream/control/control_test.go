package control

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/pid"
	"github.com/c360/mechstreams/quantity"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

type scripted[T any] struct {
	outputs []*types.Datum[T]
	errs    []error
	pos     int
	primed  bool
}

func (s *scripted[T]) Get() (*types.Datum[T], error) {
	i := s.pos
	if i >= len(s.outputs) {
		i = len(s.outputs) - 1
	}
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return s.outputs[i], err
}

func (s *scripted[T]) Update() error {
	if !s.primed {
		s.primed = true
		return nil
	}
	if s.pos < len(s.outputs)-1 {
		s.pos++
	}
	return nil
}

func datum[T any](t types.Time, v T) *types.Datum[T] {
	return &types.Datum[T]{Time: t, Value: v}
}

func TestPIDProportional(t *testing.T) {
	src := &scripted[float64]{outputs: []*types.Datum[float64]{
		datum(types.FromSeconds(0), 2.0),
	}}
	p := NewPID(stream.Owned[float64](src), 10.0, pid.NewKValues(0.5, 0, 0))

	require.NoError(t, p.Update())
	d, err := p.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.InDelta(t, 4.0, d.Value, 1e-12)
}

func TestPIDIntegralAndDerivative(t *testing.T) {
	src := &scripted[float64]{outputs: []*types.Datum[float64]{
		datum(types.FromSeconds(0), 0.0),
		datum(types.FromSeconds(1), 4.0),
	}}
	p := NewPID(stream.Owned[float64](src), 10.0, pid.NewKValues(1, 1, 1))

	require.NoError(t, p.Update())
	require.NoError(t, p.Update())

	// error went 10 -> 6 over 1s: integral = 8, derivative = -4.
	d, err := p.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.InDelta(t, 6+8-4, d.Value, 1e-9)
	assert.InDelta(t, 8.0, p.Integral(), 1e-9)
}

func TestPIDResetDiscipline(t *testing.T) {
	src := &scripted[float64]{outputs: []*types.Datum[float64]{
		datum(types.FromSeconds(0), 0.0),
		datum(types.FromSeconds(1), 1.0),
		datum(types.FromSeconds(2), 2.0),
	}}
	p := NewPID(stream.Owned[float64](src), 10.0, pid.NewKValues(1, 1, 0))

	require.NoError(t, p.Update())
	require.NoError(t, p.Update())
	before := p.Integral()
	require.NotZero(t, before)

	// Resending the same setpoint must not reset the integral.
	require.NoError(t, p.Set(10.0))
	assert.Equal(t, before, p.Integral())

	require.NoError(t, p.Update())
	require.Greater(t, p.Integral(), before)

	// A changed setpoint must.
	require.NoError(t, p.Set(20.0))
	assert.Zero(t, p.Integral())
}

func TestPIDFailedInputKeepsState(t *testing.T) {
	src := &scripted[float64]{
		outputs: []*types.Datum[float64]{
			datum(types.FromSeconds(0), 0.0),
			datum(types.FromSeconds(1), 1.0),
			nil,
		},
		errs: []error{nil, nil, merrors.ErrNoConnection},
	}
	p := NewPID(stream.Owned[float64](src), 10.0, pid.NewKValues(1, 1, 0))

	require.NoError(t, p.Update())
	require.NoError(t, p.Update())
	before := p.Integral()

	err := p.Update()
	require.Error(t, err)
	assert.ErrorIs(t, err, merrors.ErrNoConnection)
	assert.Equal(t, before, p.Integral(), "failure does not reset accumulated state")
}

func TestCommandPIDPositionConverges(t *testing.T) {
	// A crude plant: position follows the control output directly.
	position := 0.0
	now := types.Time(0)
	plant := &plantGetter{time: &now, position: &position}
	gains := pid.NewDerivativeDependentKValues(
		pid.NewKValues(0.5, 0, 0),
		pid.NewKValues(0.5, 0, 0),
		pid.NewKValues(0.5, 0, 0),
	)
	c := NewCommandPID(stream.Shared[types.State](plant), types.NewCommand(types.Position, 10), gains)

	for i := 0; i < 50; i++ {
		plant.advance()
		require.NoError(t, c.Update())
		d, err := c.Get()
		require.NoError(t, err)
		if d != nil {
			position += d.Value * 0.5
		}
	}
	assert.InDelta(t, 10.0, position, 0.5)
}

type plantGetter struct {
	time     *types.Time
	position *float64
}

func (p *plantGetter) advance() {
	*p.time += types.FromSeconds(0.1)
}

func (p *plantGetter) Get() (*types.Datum[types.State], error) {
	return &types.Datum[types.State]{
		Time:  *p.time,
		Value: types.NewState(*p.position, 0, 0),
	}, nil
}

func TestCommandPIDVelocityNeedsTwoSamples(t *testing.T) {
	src := &scripted[types.State]{outputs: []*types.Datum[types.State]{
		datum(types.FromSeconds(0), types.NewState(0, 0, 0)),
		datum(types.FromSeconds(1), types.NewState(0, 1, 0)),
	}}
	gains := pid.NewDerivativeDependentKValues(
		pid.NewKValues(1, 0, 0),
		pid.NewKValues(1, 0, 0),
		pid.NewKValues(1, 0, 0),
	)
	c := NewCommandPID(stream.Owned[types.State](src), types.NewCommand(types.Velocity, 5), gains)

	require.NoError(t, c.Update())
	d, err := c.Get()
	require.NoError(t, err)
	assert.Nil(t, d, "velocity command needs one integration step")

	require.NoError(t, c.Update())
	d, err = c.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	// outputs were 5 then 4; trapezoid over 1s gives 4.5.
	assert.InDelta(t, 4.5, d.Value, 1e-9)
}

func TestCommandPIDResetOnChangedCommandOnly(t *testing.T) {
	src := &scripted[types.State]{outputs: []*types.Datum[types.State]{
		datum(types.FromSeconds(0), types.NewState(0, 0, 0)),
	}}
	gains := pid.NewDerivativeDependentKValues(
		pid.NewKValues(1, 0, 0), pid.NewKValues(1, 0, 0), pid.NewKValues(1, 0, 0),
	)
	cmd := types.NewCommand(types.Position, 10)
	c := NewCommandPID(stream.Owned[types.State](src), cmd, gains)

	require.NoError(t, c.Update())
	d, err := c.Get()
	require.NoError(t, err)
	require.NotNil(t, d)

	require.NoError(t, c.Set(cmd))
	d, err = c.Get()
	require.NoError(t, err)
	assert.NotNil(t, d, "equal command does not reset")

	require.NoError(t, c.Set(types.NewCommand(types.Position, 20)))
	d, err = c.Get()
	require.NoError(t, err)
	assert.Nil(t, d, "changed command resets")
}

func TestEWMA(t *testing.T) {
	src := &scripted[float64]{outputs: []*types.Datum[float64]{
		datum(types.FromSeconds(0), 10.0),
		datum(types.FromSeconds(1), 20.0),
	}}
	e := NewEWMA(stream.Owned[float64](src), 0.5)

	require.NoError(t, e.Update())
	d, err := e.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.InDelta(t, 10.0, d.Value, 1e-12, "first sample taken as-is")

	require.NoError(t, e.Update())
	d, err = e.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	lambda := 1 - math.Pow(0.5, 1.0)
	assert.InDelta(t, 10*(1-lambda)+20*lambda, d.Value, 1e-9)
}

func TestQuantityEWMAUnitMismatch(t *testing.T) {
	src := &scripted[quantity.Quantity]{outputs: []*types.Datum[quantity.Quantity]{
		datum(types.FromSeconds(0), quantity.New(10, quantity.Millimeter)),
		datum(types.FromSeconds(1), quantity.New(20, quantity.Second)),
	}}
	e := NewQuantityEWMA(stream.Owned[quantity.Quantity](src), 0.5)

	require.NoError(t, e.Update())
	err := e.Update()
	require.Error(t, err)
	assert.ErrorIs(t, err, merrors.ErrUnitMismatch)
}

func TestMovingAverage(t *testing.T) {
	src := &scripted[float64]{outputs: []*types.Datum[float64]{
		datum(types.FromSeconds(0), 1.0),
		datum(types.FromSeconds(1), 2.0),
		datum(types.FromSeconds(2), 3.0),
		datum(types.FromSeconds(3), 6.0),
	}}
	// Newest sample weighs double.
	m, err := NewMovingAverage(stream.Owned[float64](src), 2, 1, 1)
	require.NoError(t, err)

	require.NoError(t, m.Update())
	require.NoError(t, m.Update())
	d, err := m.Get()
	require.NoError(t, err)
	assert.Nil(t, d, "no output until the window fills")

	require.NoError(t, m.Update())
	d, err = m.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.InDelta(t, (2*3+1*2+1*1)/4.0, d.Value, 1e-12)

	require.NoError(t, m.Update())
	d, err = m.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.InDelta(t, (2*6+1*3+1*2)/4.0, d.Value, 1e-12)
}

func TestMovingAverageRejectsEmptyWindow(t *testing.T) {
	_, err := NewMovingAverage(stream.Shared[float64](&scripted[float64]{outputs: []*types.Datum[float64]{nil}}))
	require.Error(t, err)
	assert.ErrorIs(t, err, merrors.ErrWindowLength)
}

func TestQuantityMovingAverage(t *testing.T) {
	src := &scripted[quantity.Quantity]{outputs: []*types.Datum[quantity.Quantity]{
		datum(types.FromSeconds(0), quantity.New(2, quantity.Millimeter)),
		datum(types.FromSeconds(1), quantity.New(4, quantity.Millimeter)),
	}}
	m, err := NewQuantityMovingAverage(stream.Owned[quantity.Quantity](src), 1, 1)
	require.NoError(t, err)

	require.NoError(t, m.Update())
	require.NoError(t, m.Update())
	d, err := m.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, quantity.Millimeter, d.Value.Unit)
	assert.InDelta(t, 3.0, d.Value.Value, 1e-12)
}
