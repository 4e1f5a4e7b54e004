package stream

import "github.com/c360/mechstreams/types"

// Input is an upstream reference with an explicit ownership kind. Build
// one with Owned or Shared; the zero value has no upstream and must not
// be used.
type Input[T any] struct {
	getter    types.Getter[T]
	updatable types.Updatable
}

// Owned wraps an upstream this node is responsible for advancing. The
// holder's Update must call the input's Update before reading it.
func Owned[T any](source types.Source[T]) Input[T] {
	return Input[T]{getter: source, updatable: source}
}

// Shared wraps an upstream advanced by some other owner. Update on a
// shared input is a no-op; the holder only reads.
func Shared[T any](getter types.Getter[T]) Input[T] {
	return Input[T]{getter: getter}
}

// Get reads the upstream's cached output.
func (in Input[T]) Get() (*types.Datum[T], error) {
	return in.getter.Get()
}

// Update advances the upstream when this input owns it.
func (in Input[T]) Update() error {
	if in.updatable == nil {
		return nil
	}
	return in.updatable.Update()
}

// Clock is a TimeGetter reference with an explicit ownership kind,
// mirroring Input for clock sources.
type Clock struct {
	timeGetter types.TimeGetter
	owned      bool
}

// OwnedClock wraps a clock this node is responsible for advancing.
func OwnedClock(tg types.TimeGetter) Clock {
	return Clock{timeGetter: tg, owned: true}
}

// SharedClock wraps a clock advanced by some other owner.
func SharedClock(tg types.TimeGetter) Clock {
	return Clock{timeGetter: tg}
}

// Now reads the clock.
func (c Clock) Now() (types.Time, error) {
	return c.timeGetter.Now()
}

// Update advances the clock when this reference owns it.
func (c Clock) Update() error {
	if !c.owned {
		return nil
	}
	return c.timeGetter.Update()
}

// UpdateInputs advances a list of owned inputs in order, stopping at the
// first failure. Composite nodes call this before computing their own
// cache so the whole subgraph is caught up in construction order.
func UpdateInputs[T any](inputs []Input[T]) error {
	for _, in := range inputs {
		if err := in.Update(); err != nil {
			return err
		}
	}
	return nil
}
