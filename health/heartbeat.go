package health

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat derives a Status from tick recency. The loop calls Beat on
// every successful tick and Fail on a failed one; Status degrades to
// unhealthy when no beat arrives within maxAge, catching a stalled loop
// that never reports an error at all.
type Heartbeat struct {
	component string
	maxAge    time.Duration
	now       func() time.Time

	mu       sync.Mutex
	lastBeat time.Time
	lastErr  error
}

// NewHeartbeat creates a Heartbeat expecting a beat at least every
// maxAge.
func NewHeartbeat(component string, maxAge time.Duration) *Heartbeat {
	return &Heartbeat{component: component, maxAge: maxAge, now: time.Now}
}

// Beat records a successful tick.
func (h *Heartbeat) Beat() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastBeat = h.now()
	h.lastErr = nil
}

// Fail records a failed tick. The beat still counts for liveness; the
// loop is running, just not cleanly.
func (h *Heartbeat) Fail(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastBeat = h.now()
	h.lastErr = err
}

// Status reports the current health: unhealthy before the first beat or
// after a silence longer than maxAge, degraded while the last tick
// failed, healthy otherwise.
func (h *Heartbeat) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case h.lastBeat.IsZero():
		return NewUnhealthy(h.component, "no tick observed yet")
	case h.now().Sub(h.lastBeat) > h.maxAge:
		return NewUnhealthy(h.component,
			fmt.Sprintf("no tick for %v (limit %v)", h.now().Sub(h.lastBeat).Round(time.Millisecond), h.maxAge))
	case h.lastErr != nil:
		return NewDegraded(h.component, fmt.Sprintf("last tick failed: %v", h.lastErr))
	default:
		return NewHealthy(h.component, "ticking")
	}
}
