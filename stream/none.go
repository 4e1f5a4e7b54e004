package stream

import "github.com/c360/mechstreams/types"

// None always reports "no value yet". It fills a structurally required
// slot that is semantically empty, such as an unused input of a
// fixed-arity node.
type None[T any] struct{}

// NewNone constructs a None.
func NewNone[T any]() None[T] {
	return None[T]{}
}

// Get always returns nil, nil.
func (None[T]) Get() (*types.Datum[T], error) {
	return nil, nil
}

// Update is a no-op.
func (None[T]) Update() error {
	return nil
}
