package stream

import "github.com/c360/mechstreams/types"

// Request tracks the last accepted value for a Settable node, and
// optionally follows a producing node so each Update re-issues the
// producer's latest value. Reset-on-change decisions stay with the node
// itself; Request only records and reports.
type Request[T comparable] struct {
	last   *T
	source types.Getter[T]
}

// Record stores a request.
func (r *Request[T]) Record(value T) {
	v := value
	r.last = &v
}

// Last reports the most recent request, nil if none has arrived. The
// pointer refers to a private copy; callers may not mutate through it.
func (r *Request[T]) Last() *T {
	return r.last
}

// Follow attaches a producer whose latest value is re-issued on each
// Update of the holding node.
func (r *Request[T]) Follow(source types.Getter[T]) {
	r.source = source
}

// Unfollow detaches the followed producer.
func (r *Request[T]) Unfollow() {
	r.source = nil
}

// Followed polls the followed producer, nil when no producer is attached
// or it has no value yet. The holding node passes the result to its own
// Set so that equal-value no-op semantics apply as usual.
func (r *Request[T]) Followed() (*T, error) {
	if r.source == nil {
		return nil, nil
	}
	d, err := r.source.Get()
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	v := d.Value
	return &v, nil
}
