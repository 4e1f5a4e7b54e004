package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

func TestConnectDisconnect(t *testing.T) {
	a := NewTerminal()
	b := NewTerminal()

	require.NoError(t, Connect(a, b))
	require.ErrorIs(t, Connect(a, b), errors.ErrAlreadyConnected)
	require.ErrorIs(t, Connect(b, a), errors.ErrAlreadyConnected)

	require.NoError(t, Disconnect(a, b))
	require.ErrorIs(t, Disconnect(a, b), errors.ErrNotConnected)

	// Reconnecting after a disconnect is fine.
	require.NoError(t, Connect(b, a))
}

func TestConnectFanoutBound(t *testing.T) {
	hub := NewTerminal()
	for i := 0; i < MaxFanout; i++ {
		require.NoError(t, Connect(hub, NewTerminal()))
	}
	require.ErrorIs(t, Connect(hub, NewTerminal()), errors.ErrTerminalFanout)
	require.ErrorIs(t, Connect(NewTerminal(), hub), errors.ErrTerminalFanout)
}

func TestTerminalMergeNewerPeerWins(t *testing.T) {
	a := NewTerminal()
	b := NewTerminal()
	require.NoError(t, Connect(a, b))

	a.SetCommand(types.NewDatum(types.FromSeconds(1), types.NewCommand(types.Position, 1)))
	b.SetCommand(types.NewDatum(types.FromSeconds(2), types.NewCommand(types.Position, 2)))

	got := a.Command()
	require.NotNil(t, got)
	assert.Equal(t, 2.0, got.Value.Value)

	// The peer's older value never displaces a fresher own value.
	a.SetCommand(types.NewDatum(types.FromSeconds(3), types.NewCommand(types.Position, 3)))
	got = a.Command()
	require.NotNil(t, got)
	assert.Equal(t, 3.0, got.Value.Value)
}

func TestTerminalMergeOwnWinsTies(t *testing.T) {
	a := NewTerminal()
	b := NewTerminal()
	require.NoError(t, Connect(a, b))

	a.SetState(types.NewDatum(types.FromSeconds(1), types.NewState(1, 0, 0)))
	b.SetState(types.NewDatum(types.FromSeconds(1), types.NewState(9, 0, 0)))

	got := a.State()
	require.NotNil(t, got)
	assert.Equal(t, 1.0, got.Value.Position)

	got = b.State()
	require.NotNil(t, got)
	assert.Equal(t, 9.0, got.Value.Position)
}

func TestTerminalMergeFieldwise(t *testing.T) {
	a := NewTerminal()
	b := NewTerminal()
	require.NoError(t, Connect(a, b))

	// A fresh Command on one side and a fresh State on the other merge
	// independently: each field takes its own newest contributor.
	a.SetCommand(types.NewDatum(types.FromSeconds(5), types.NewCommand(types.Velocity, 4)))
	b.SetState(types.NewDatum(types.FromSeconds(7), types.NewState(3, 0, 0)))

	d := a.Data()
	require.NotNil(t, d)
	require.NotNil(t, d.Value.Command)
	require.NotNil(t, d.Value.State)
	assert.Equal(t, 4.0, d.Value.Command.Value)
	assert.Equal(t, 3.0, d.Value.State.Position)
	assert.Equal(t, types.FromSeconds(7), d.Time)
}

func TestTerminalMergeDoesNotRecurse(t *testing.T) {
	a := NewTerminal()
	b := NewTerminal()
	c := NewTerminal()
	require.NoError(t, Connect(a, b))
	require.NoError(t, Connect(b, c))

	a.SetState(types.NewDatum(types.FromSeconds(1), types.NewState(1, 0, 0)))

	// b sees a's own data directly, but c only sees b's own data, which
	// is empty: merged views do not relay.
	require.NotNil(t, b.State())
	assert.Nil(t, c.State())
}

func TestTerminalDataNilWhenEmpty(t *testing.T) {
	a := NewTerminal()
	assert.Nil(t, a.Data())
	assert.Nil(t, a.Command())
	assert.Nil(t, a.State())
}

func TestTerminalGetMirrorsData(t *testing.T) {
	a := NewTerminal()

	d, err := a.Get()
	require.NoError(t, err)
	assert.Nil(t, d)

	a.SetState(types.NewDatum(types.FromSeconds(2), types.NewState(5, 0, 0)))
	d, err = a.Get()
	require.NoError(t, err)
	require.NotNil(t, d)
	require.NotNil(t, d.Value.State)
	assert.Equal(t, 5.0, d.Value.State.Position)
}
