package stream

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// FromHistory adapts a History into a producing node. It holds a notion
// of now taken from its clock, offset by a settable delta, and stamps
// its output with the requesting instant rather than whatever the
// History reports, so downstream consumers see a self-consistent clock.
type FromHistory[T any] struct {
	history types.History[T]
	clock   Clock
	delta   types.Time
	lastNow types.Time
	started bool
	cache   *types.Datum[T]
}

// NewFromHistory constructs the adapter querying history at now+delta
// with delta initially zero.
func NewFromHistory[T any](history types.History[T], clock Clock) *FromHistory[T] {
	return &FromHistory[T]{history: history, clock: clock, started: true}
}

// NewFromHistoryStartAtUpdate constructs the adapter so the history's
// zero instant aligns with the clock's now at the first Update. A motion
// profile built relative to t=0 then starts when the graph starts.
func NewFromHistoryStartAtUpdate[T any](history types.History[T], clock Clock) *FromHistory[T] {
	return &FromHistory[T]{history: history, clock: clock}
}

// SetDelta replaces the offset added to now before querying the history.
func (f *FromHistory[T]) SetDelta(delta types.Time) {
	f.delta = delta
	f.started = true
}

// SetTime pins the history query instant for the most recently observed
// now, adjusting the delta so the next Get reads the history at t.
func (f *FromHistory[T]) SetTime(t types.Time) {
	f.delta = t - f.lastNow
	f.started = true
}

// Get returns the history's value at the last Update's query instant,
// stamped with that instant.
func (f *FromHistory[T]) Get() (*types.Datum[T], error) {
	return f.cache, nil
}

// Update reads the clock and requeries the history.
func (f *FromHistory[T]) Update() error {
	if err := f.clock.Update(); err != nil {
		return errors.Wrap(err, "FromHistory", "Update", "clock update failed")
	}
	now, err := f.clock.Now()
	if err != nil {
		return errors.Wrap(err, "FromHistory", "Update", "clock read failed")
	}
	if !f.started {
		// Align the history's zero with the first observed now.
		f.delta = -now
		f.started = true
	}
	f.lastNow = now
	d := f.history.At(now + f.delta)
	if d == nil {
		f.cache = nil
		return nil
	}
	f.cache = &types.Datum[T]{Time: now, Value: d.Value}
	return nil
}
