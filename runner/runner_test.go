package runner

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/mechstreams/errors"
)

// countingNode records how often it was updated and can be told to
// fail.
type countingNode struct {
	updates int
	err     error
}

func (n *countingNode) Update() error {
	n.updates++
	return n.err
}

func TestRegisterRejectsDuplicateNames(t *testing.T) {
	r := New("test")
	id, err := r.Register("pid", &countingNode{})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	_, err = r.Register("pid", &countingNode{})
	require.ErrorIs(t, err, errors.ErrAlreadyRegistered)

	id2, err := r.Register("filter", &countingNode{})
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
	assert.Equal(t, []string{"pid", "filter"}, r.Nodes())
}

func TestTickRunsInRegistrationOrder(t *testing.T) {
	r := New("test")
	var order []string
	mk := func(name string) *orderedNode {
		return &orderedNode{name: name, order: &order}
	}
	_, err := r.Register("a", mk("a"))
	require.NoError(t, err)
	_, err = r.Register("b", mk("b"))
	require.NoError(t, err)
	_, err = r.Register("c", mk("c"))
	require.NoError(t, err)

	require.NoError(t, r.Tick())
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

type orderedNode struct {
	name  string
	order *[]string
}

func (n *orderedNode) Update() error {
	*n.order = append(*n.order, n.name)
	return nil
}

func TestTickStopsAtFirstFailure(t *testing.T) {
	r := New("test")
	first := &countingNode{}
	failing := &countingNode{err: errors.WrapTransient(errors.ErrNoConnection, "sensor", "Update", "read failed")}
	last := &countingNode{}

	_, err := r.Register("first", first)
	require.NoError(t, err)
	_, err = r.Register("failing", failing)
	require.NoError(t, err)
	_, err = r.Register("last", last)
	require.NoError(t, err)

	err = r.Tick()
	require.ErrorIs(t, err, errors.ErrNoConnection)
	assert.Equal(t, 1, first.updates)
	assert.Equal(t, 1, failing.updates)
	assert.Equal(t, 0, last.updates)

	// A later healthy tick runs everything.
	failing.err = nil
	require.NoError(t, r.Tick())
	assert.Equal(t, 1, last.updates)
}

func TestTickFailureLogsInstanceID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := New("test", WithLogger(logger))

	failing := &countingNode{err: errors.WrapTransient(errors.ErrNoConnection, "sensor", "Update", "read failed")}
	id, err := r.Register("failing", failing)
	require.NoError(t, err)

	require.Error(t, r.Tick())
	assert.Contains(t, buf.String(), id.String())
	assert.Contains(t, buf.String(), `"node":"failing"`)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	r := New("test")
	node := &countingNode{}
	_, err := r.Register("node", node)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = r.Run(ctx, time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, node.updates, 1)
}

func TestRunSurvivesTransientFailures(t *testing.T) {
	r := New("test")
	node := &countingNode{err: errors.WrapTransient(errors.ErrNoConnection, "sensor", "Update", "read failed")}
	_, err := r.Register("node", node)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = r.Run(ctx, time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, node.updates, 1)
}

func TestRunAbortsOnFatalFailure(t *testing.T) {
	r := New("test")
	node := &countingNode{err: errors.WrapFatal(errors.ErrInvalidConfig, "node", "Update", "broken")}
	_, err := r.Register("node", node)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err = r.Run(ctx, time.Millisecond)
	require.ErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestRunRejectsNonPositiveInterval(t *testing.T) {
	r := New("test")
	err := r.Run(context.Background(), 0)
	require.ErrorIs(t, err, errors.ErrInvalidConfig)
}
