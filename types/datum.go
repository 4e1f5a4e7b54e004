package types

// Datum is a value paired with the instant it was observed.
type Datum[T any] struct {
	// Time is the observation timestamp. This should normally be absolute.
	Time Time `json:"time"`
	// Value is the observed value.
	Value T `json:"value"`
}

// NewDatum constructs a Datum.
func NewDatum[T any](t Time, value T) Datum[T] {
	return Datum[T]{Time: t, Value: value}
}

// Latest returns the newer of two data. On equal timestamps the first
// argument wins, so merges never spuriously replace an existing value with
// an equally fresh one.
func Latest[T any](a, b Datum[T]) Datum[T] {
	if a.Time >= b.Time {
		return a
	}
	return b
}

// Newer returns the pointer whose datum carries the greater timestamp.
// Either argument may be nil; a wins ties.
func Newer[T any](a, b *Datum[T]) *Datum[T] {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Time >= b.Time:
		return a
	default:
		return b
	}
}

// MergeTime returns the later of two timestamps, used when combining two
// data arithmetically: the result is only as fresh as its freshest input.
func MergeTime(a, b Time) Time {
	if a >= b {
		return a
	}
	return b
}
