package types

// Getter is the produce-a-value contract. Get returns the node's current
// cached output: a datum, or (nil, nil) when the node has no value yet.
//
// Get must be cheap and idempotent; anything expensive belongs in Update.
// After a failed Update, Get reports whatever the node's semantics dictate
// for its cache, which for most nodes is the failure itself until a later
// successful Update.
type Getter[T any] interface {
	Get() (*Datum[T], error)
}

// Updatable is the advance-internal-state contract. Update performs one
// tick's worth of computation, pulling from upstream getters and refreshing
// this node's cache.
//
// Composite nodes must update every upstream node they own before computing
// their own cache, in construction order, and must propagate the first
// upstream failure encountered without evaluating later inputs.
type Updatable interface {
	Update() error
}

// Source combines Getter and Updatable, the shape of most stream nodes.
type Source[T any] interface {
	Getter[T]
	Updatable
}

// Settable is the accept-a-request contract. Set records a requested value;
// LastRequest reports the most recent one, nil if none has arrived.
//
// Implementations must treat a repeated equal request as a no-op with
// respect to internal reset logic: a controller does not re-zero its
// integrator just because the same setpoint was resent. A changed request
// may trigger a reset.
type Settable[T any] interface {
	Set(value T) error
	LastRequest() *T
}

// SettableSource combines the three tick contracts, the shape of a
// closed-loop node such as a controller or an aggregate device.
type SettableSource[T, S any] interface {
	Getter[T]
	Settable[S]
	Updatable
}

// History is like Getter but addressable at an arbitrary instant, used for
// logged or precomputed trajectories. Requeries at arbitrary, non-monotonic
// instants are legal. A query before the data's start returns nil; a History
// representing a completed plan returns its defined terminal value forever
// after its end.
type History[T any] interface {
	At(t Time) *Datum[T]
}

// TimeGetter is a clock source for nodes that need a notion of "now".
// Update advances clocks that are themselves stateful; stateless clocks
// implement it as a no-op.
type TimeGetter interface {
	Now() (Time, error)
	Update() error
}
