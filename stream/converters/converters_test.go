package converters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/quantity"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

type scripted[T any] struct {
	outputs []*types.Datum[T]
	pos     int
	primed  bool
}

func (s *scripted[T]) Get() (*types.Datum[T], error) {
	i := s.pos
	if i >= len(s.outputs) {
		i = len(s.outputs) - 1
	}
	return s.outputs[i], nil
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

func TestNoneToError(t *testing.T) {
	n := NewNoneToError[float64](stream.Owned[float64](&scripted[float64]{
		outputs: []*types.Datum[float64]{nil},
	}))
	require.NoError(t, n.Update())
	_, err := n.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, merrors.ErrNoValue)

	n = NewNoneToError[float64](stream.Owned[float64](&scripted[float64]{
		outputs: []*types.Datum[float64]{datum(1, 2.0)},
	}))
	require.NoError(t, n.Update())
	d, err := n.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 2.0, d.Value)
}

func TestNoneToValue(t *testing.T) {
	clock := stream.NewFixedStep(0, types.FromSeconds(1))
	n := NewNoneToValue[float64](stream.Owned[float64](&scripted[float64]{
		outputs: []*types.Datum[float64]{nil},
	}), stream.OwnedClock(clock), 9.0)

	require.NoError(t, n.Update())
	d, err := n.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 9.0, d.Value)
	assert.Equal(t, types.FromSeconds(1), d.Time)
}

func TestFloatQuantityBridges(t *testing.T) {
	f := NewFloatToQuantity(stream.Owned[float64](&scripted[float64]{
		outputs: []*types.Datum[float64]{datum(3, 7.0)},
	}), quantity.MillimeterPerSecond)
	require.NoError(t, f.Update())
	d, err := f.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, quantity.New(7.0, quantity.MillimeterPerSecond), d.Value)
	assert.Equal(t, types.Time(3), d.Time)

	q := NewQuantityToFloat(stream.Owned[quantity.Quantity](&scripted[quantity.Quantity]{
		outputs: []*types.Datum[quantity.Quantity]{datum(3, quantity.New(7.0, quantity.Millimeter))},
	}))
	require.NoError(t, q.Update())
	fd, err := q.Get()
	require.NoError(t, err)
	require.NotNil(t, fd)
	assert.Equal(t, 7.0, fd.Value)
}

func TestPositionToState(t *testing.T) {
	src := &scripted[float64]{outputs: []*types.Datum[float64]{
		datum(types.FromSeconds(0), 0.0),
		datum(types.FromSeconds(1), 2.0),
		datum(types.FromSeconds(2), 6.0),
	}}
	p := NewPositionToState(stream.Owned[float64](src))

	require.NoError(t, p.Update())
	d, err := p.Get()
	require.NoError(t, err)
	assert.Nil(t, d)

	require.NoError(t, p.Update())
	d, err = p.Get()
	require.NoError(t, err)
	assert.Nil(t, d, "acceleration needs a third sample")

	require.NoError(t, p.Update())
	d, err = p.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.InDelta(t, 6.0, d.Value.Position, 1e-9)
	assert.InDelta(t, 4.0, d.Value.Velocity, 1e-9)
	assert.InDelta(t, 2.0, d.Value.Acceleration, 1e-9)
}

func TestVelocityToState(t *testing.T) {
	src := &scripted[float64]{outputs: []*types.Datum[float64]{
		datum(types.FromSeconds(0), 0.0),
		datum(types.FromSeconds(1), 4.0),
	}}
	v := NewVelocityToState(stream.Owned[float64](src))

	require.NoError(t, v.Update())
	d, err := v.Get()
	require.NoError(t, err)
	assert.Nil(t, d)

	require.NoError(t, v.Update())
	d, err = v.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.InDelta(t, 2.0, d.Value.Position, 1e-9, "trapezoidal position")
	assert.InDelta(t, 4.0, d.Value.Velocity, 1e-9)
	assert.InDelta(t, 4.0, d.Value.Acceleration, 1e-9)
}

func TestAccelerationToState(t *testing.T) {
	src := &scripted[float64]{outputs: []*types.Datum[float64]{
		datum(types.FromSeconds(0), 2.0),
		datum(types.FromSeconds(1), 2.0),
		datum(types.FromSeconds(2), 2.0),
	}}
	a := NewAccelerationToState(stream.Owned[float64](src))

	require.NoError(t, a.Update())
	require.NoError(t, a.Update())
	d, err := a.Get()
	require.NoError(t, err)
	assert.Nil(t, d, "position needs a third sample")

	require.NoError(t, a.Update())
	d, err = a.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	// Constant 2 acceleration integrated from rest: v = 2, 4; x adds 3.
	assert.InDelta(t, 2.0, d.Value.Acceleration, 1e-9)
	assert.InDelta(t, 4.0, d.Value.Velocity, 1e-9)
	assert.InDelta(t, 3.0, d.Value.Position, 1e-9)
}
