package stream

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// Latest produces the output of whichever input carries the greatest
// timestamp, recomputed every Update. The first listed input wins ties,
// keeping the selection deterministic. Inputs that fail or have no value
// are passed over rather than failing the selection; Latest is a
// fallback mechanism.
type Latest[T any] struct {
	inputs []Input[T]
	cache  *types.Datum[T]
}

// NewLatest constructs a Latest over at least one input.
func NewLatest[T any](inputs ...Input[T]) (*Latest[T], error) {
	if len(inputs) < 1 {
		return nil, errors.WrapInvalid(errors.ErrNoInputs, "Latest", "NewLatest", "no inputs given")
	}
	return &Latest[T]{inputs: inputs}, nil
}

// Get returns the freshest input datum seen by the last Update, nil when
// every input was absent.
func (l *Latest[T]) Get() (*types.Datum[T], error) {
	return l.cache, nil
}

// Update advances owned inputs in order, then reselects.
func (l *Latest[T]) Update() error {
	if err := UpdateInputs(l.inputs); err != nil {
		return errors.Wrap(err, "Latest", "Update", "input update failed")
	}
	var freshest *types.Datum[T]
	for _, in := range l.inputs {
		d, err := in.Get()
		if err != nil || d == nil {
			continue
		}
		if freshest == nil || d.Time > freshest.Time {
			freshest = d
		}
	}
	l.cache = freshest
	return nil
}
