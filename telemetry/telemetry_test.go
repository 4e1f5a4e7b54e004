package telemetry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// fakeTransport records publishes and can fail per subject.
type fakeTransport struct {
	published map[string][][]byte
	fail      map[string]error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		published: make(map[string][][]byte),
		fail:      make(map[string]error),
	}
}

func (t *fakeTransport) Publish(_ context.Context, subject string, data []byte) error {
	if err := t.fail[subject]; err != nil {
		return err
	}
	t.published[subject] = append(t.published[subject], data)
	return nil
}

// fixedGetter serves one datum, or absence, or an error.
type fixedGetter struct {
	datum *types.Datum[types.State]
	err   error
}

func (g *fixedGetter) Get() (*types.Datum[types.State], error) {
	return g.datum, g.err
}

func TestPublishSnapshots(t *testing.T) {
	transport := newFakeTransport()
	p := New(transport)

	d := types.NewDatum(types.FromSeconds(2), types.NewState(1, 2, 3))
	require.NoError(t, p.Add("axle", Getter[types.State](&fixedGetter{datum: &d})))

	require.NoError(t, p.Publish(context.Background()))

	msgs := transport.published["mechstreams.telemetry.axle"]
	require.Len(t, msgs, 1)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(msgs[0], &snap))
	assert.Equal(t, "axle", snap.Name)
	assert.Equal(t, types.FromSeconds(2), snap.Time)

	value, ok := snap.Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, value["position"])
	assert.Equal(t, 2.0, value["velocity"])
	assert.Equal(t, 3.0, value["acceleration"])
}

func TestPublishSkipsAbsentSources(t *testing.T) {
	transport := newFakeTransport()
	p := New(transport)
	require.NoError(t, p.Add("axle", Getter[types.State](&fixedGetter{})))

	require.NoError(t, p.Publish(context.Background()))
	assert.Empty(t, transport.published)
}

func TestPublishContinuesPastFailures(t *testing.T) {
	transport := newFakeTransport()
	transport.fail["mechstreams.telemetry.bad"] = errors.ErrNoConnection

	p := New(transport)
	bad := types.NewDatum(types.FromSeconds(1), types.NewState(0, 0, 0))
	good := types.NewDatum(types.FromSeconds(1), types.NewState(5, 0, 0))
	require.NoError(t, p.Add("bad", Getter[types.State](&fixedGetter{datum: &bad})))
	require.NoError(t, p.Add("failing", Getter[types.State](&fixedGetter{err: errors.ErrNoValue})))
	require.NoError(t, p.Add("good", Getter[types.State](&fixedGetter{datum: &good})))

	err := p.Publish(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoConnection)
	assert.ErrorIs(t, err, errors.ErrNoValue)

	// The healthy source still published.
	assert.Len(t, transport.published["mechstreams.telemetry.good"], 1)
}

func TestAddValidatesNames(t *testing.T) {
	p := New(newFakeTransport())
	sampler := Getter[types.State](&fixedGetter{})

	require.NoError(t, p.Add("axle", sampler))
	require.ErrorIs(t, p.Add("axle", sampler), errors.ErrAlreadyRegistered)

	for _, name := range []string{"", "a.b", "a b", "a*", "a>"} {
		require.ErrorIs(t, p.Add(name, sampler), errors.ErrInvalidConfig, "name %q", name)
	}
}

func TestCustomPrefix(t *testing.T) {
	transport := newFakeTransport()
	p := New(transport, WithSubjectPrefix("lab.telemetry"))

	d := types.NewDatum(types.FromSeconds(1), types.NewState(0, 0, 0))
	require.NoError(t, p.Add("axle", Getter[types.State](&fixedGetter{datum: &d})))
	require.NoError(t, p.Update())

	assert.Len(t, transport.published["lab.telemetry.axle"], 1)
}
