// Package debounce collapses bursts of updates into one deferred call.
package debounce

import (
	"sync"
	"time"

	"github.com/five82/standups/internal/clock"
)

// Debouncer delivers the latest scheduled value once no newer value has been
// scheduled for the quiet interval. Each Schedule replaces the pending
// deadline; a waiter that wakes up behind a newer deadline does nothing.
type Debouncer[T any] struct {
	clock clock.Clock
	quiet time.Duration
	fire  func(T)

	// fireMu orders fires so an older value is never delivered after a newer one.
	fireMu sync.Mutex

	mu       sync.Mutex
	gen      uint64
	value    T
	pending  bool
	deadline time.Time
	timer    clock.Timer
}

// New returns a Debouncer that calls fire on the clock's goroutine.
func New[T any](c clock.Clock, quiet time.Duration, fire func(T)) *Debouncer[T] {
	return &Debouncer[T]{clock: c, quiet: quiet, fire: fire}
}

// Schedule records v as the latest value and restarts the quiet interval.
func (d *Debouncer[T]) Schedule(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	d.value = v
	d.pending = true
	d.deadline = d.clock.Now().Add(d.quiet)
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.quiet, func() { d.wake(gen) })
}

func (d *Debouncer[T]) wake(gen uint64) {
	d.fireMu.Lock()
	defer d.fireMu.Unlock()

	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.fire(v)
}

// take clears the pending value. Callers hold mu.
func (d *Debouncer[T]) take() T {
	v := d.value
	var zero T
	d.value = zero
	d.pending = false
	d.deadline = time.Time{}
	d.timer = nil
	return v
}

// Flush fires the pending value now, if any, and reports whether it did.
func (d *Debouncer[T]) Flush() bool {
	d.fireMu.Lock()
	defer d.fireMu.Unlock()

	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	v := d.take()
	d.mu.Unlock()

	d.fire(v)
	return true
}

// Deadline returns when the pending value will fire. ok is false when nothing
// is pending.
func (d *Debouncer[T]) Deadline() (deadline time.Time, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deadline, d.pending
}
