package stream

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// Constant produces a fixed value stamped with the clock's now on every
// Update. It is settable, so it doubles as a tunable parameter: Set
// replaces the value immediately, the timestamp refreshes on the next
// Update.
type Constant[T comparable] struct {
	clock Clock
	value T
	req   Request[T]
	cache *types.Datum[T]
}

// NewConstant constructs a Constant producing value.
func NewConstant[T comparable](clock Clock, value T) *Constant[T] {
	return &Constant[T]{clock: clock, value: value}
}

// Get returns the cached datum, nil before the first Update.
func (c *Constant[T]) Get() (*types.Datum[T], error) {
	return c.cache, nil
}

// Set replaces the produced value.
func (c *Constant[T]) Set(value T) error {
	c.req.Record(value)
	c.value = value
	if c.cache != nil {
		c.cache = &types.Datum[T]{Time: c.cache.Time, Value: value}
	}
	return nil
}

// LastRequest reports the most recent Set value, nil if none.
func (c *Constant[T]) LastRequest() *T {
	return c.req.Last()
}

// Follow attaches a producer whose latest value is re-issued each Update.
func (c *Constant[T]) Follow(source types.Getter[T]) {
	c.req.Follow(source)
}

// Update restamps the value with the clock's now.
func (c *Constant[T]) Update() error {
	if v, err := c.req.Followed(); err != nil {
		return errors.Wrap(err, "Constant", "Update", "followed source failed")
	} else if v != nil {
		if err := c.Set(*v); err != nil {
			return err
		}
	}
	if err := c.clock.Update(); err != nil {
		return errors.Wrap(err, "Constant", "Update", "clock update failed")
	}
	now, err := c.clock.Now()
	if err != nil {
		return errors.Wrap(err, "Constant", "Update", "clock read failed")
	}
	c.cache = &types.Datum[T]{Time: now, Value: c.value}
	return nil
}
