package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/mechstreams/types"
)

func TestCommandFromState(t *testing.T) {
	tests := []struct {
		name     string
		state    types.State
		expected types.Command
	}{
		{
			name:     "acceleration dominates",
			state:    types.NewState(1, 2, 3),
			expected: types.NewCommand(types.Acceleration, 3),
		},
		{
			name:     "velocity when acceleration zero",
			state:    types.NewState(1, 2, 0),
			expected: types.NewCommand(types.Velocity, 2),
		},
		{
			name:     "position when both zero",
			state:    types.NewState(1, 0, 0),
			expected: types.NewCommand(types.Position, 1),
		},
		{
			name:     "all zero commands position",
			state:    types.NewState(0, 0, 0),
			expected: types.NewCommand(types.Position, 0),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, types.CommandFromState(test.state))
		})
	}
}

func TestCommandAccessors(t *testing.T) {
	pos := types.NewCommand(types.Position, 5)
	require.NotNil(t, pos.Position())
	assert.Equal(t, 5.0, *pos.Position())
	require.NotNil(t, pos.Velocity())
	assert.Zero(t, *pos.Velocity())
	assert.Zero(t, pos.Acceleration())

	vel := types.NewCommand(types.Velocity, 2)
	assert.Nil(t, vel.Position())
	require.NotNil(t, vel.Velocity())
	assert.Equal(t, 2.0, *vel.Velocity())
	assert.Zero(t, vel.Acceleration())

	acc := types.NewCommand(types.Acceleration, 9)
	assert.Nil(t, acc.Position())
	assert.Nil(t, acc.Velocity())
	assert.Equal(t, 9.0, acc.Acceleration())
}

func TestCommandArithmetic(t *testing.T) {
	a := types.NewCommand(types.Velocity, 3)
	b := types.NewCommand(types.Velocity, 2)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, types.NewCommand(types.Velocity, 5), sum)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, types.NewCommand(types.Velocity, 1), diff)

	_, err = a.Add(types.NewCommand(types.Position, 1))
	assert.ErrorIs(t, err, types.ErrDerivativeMismatch)

	assert.Equal(t, types.NewCommand(types.Velocity, -3), a.Neg())
	assert.Equal(t, types.NewCommand(types.Velocity, 6), a.Scale(2))
}

func TestStateProject(t *testing.T) {
	s := types.NewState(0, 1, 2)
	s.Project(types.FromSeconds(1))
	// v = 1 + 2*1 = 3, p = 0 + 1*(1+3)/2 = 2
	assert.InDelta(t, 2.0, s.Position, 1e-12)
	assert.InDelta(t, 3.0, s.Velocity, 1e-12)
	assert.Equal(t, 2.0, s.Acceleration)
}

func TestStateConstantSetters(t *testing.T) {
	s := types.NewState(1, 2, 3)
	s.SetConstantVelocity(7)
	assert.Equal(t, types.NewState(1, 7, 0), s)
	s.SetConstantPosition(4)
	assert.Equal(t, types.NewState(4, 0, 0), s)
	s.SetConstantAcceleration(2)
	assert.Equal(t, types.NewState(4, 0, 2), s)
}

func TestStateValue(t *testing.T) {
	s := types.NewState(1, 2, 3)
	assert.Equal(t, 1.0, s.Value(types.Position))
	assert.Equal(t, 2.0, s.Value(types.Velocity))
	assert.Equal(t, 3.0, s.Value(types.Acceleration))
}
