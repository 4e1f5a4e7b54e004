package natsclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/mechstreams/errors"
)

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)
	assert.Equal(t, "nats://localhost:4222", c.URL())
	assert.Equal(t, StatusDisconnected, c.Status())
	assert.False(t, c.IsHealthy())
	assert.Equal(t, int32(0), c.Reconnects())
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient("")
	require.ErrorIs(t, err, errors.ErrMissingConfig)
}

func TestNewClientRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil logger", WithLogger(nil)},
		{"zero reconnect wait", WithReconnectWait(0)},
		{"negative timeout", WithTimeout(-time.Second)},
		{"zero drain timeout", WithDrainTimeout(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient("nats://localhost:4222", tt.opt)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestPublishWhenDisconnected(t *testing.T) {
	c, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)

	err = c.Publish(context.Background(), "mechstreams.telemetry.axle", []byte("{}"))
	require.ErrorIs(t, err, errors.ErrNoConnection)
	assert.True(t, errors.IsTransient(err))
}

func TestCloseWithoutConnect(t *testing.T) {
	c, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)
	require.NoError(t, c.Close(context.Background()))
}

func TestConnectionStatusString(t *testing.T) {
	assert.Equal(t, "disconnected", StatusDisconnected.String())
	assert.Equal(t, "connecting", StatusConnecting.String())
	assert.Equal(t, "connected", StatusConnected.String())
	assert.Equal(t, "reconnecting", StatusReconnecting.String())
	assert.Equal(t, "unknown", ConnectionStatus(99).String())
}

func TestHealthCallbackOnHandlers(t *testing.T) {
	c, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)

	var events []bool
	c.OnHealthChange(func(up bool) { events = append(events, up) })

	c.handleDisconnect(nil, nil)
	assert.Equal(t, StatusReconnecting, c.Status())

	c.handleReconnect(nil)
	assert.Equal(t, StatusConnected, c.Status())
	assert.Equal(t, int32(1), c.Reconnects())

	c.handleClosed(nil)
	assert.Equal(t, StatusDisconnected, c.Status())

	assert.Equal(t, []bool{false, true, false}, events)
}
