// Package mainloop serializes controller state mutation onto one goroutine.
//
// Controllers are not safe for concurrent use. Every command method and every
// callback must run on the goroutine that drains the Loop. Background work
// (timers, transcription streams) hands its results back with Dispatch, which
// never blocks, so a producer can always observe cancellation promptly.
package mainloop

import (
	"context"
	"sync"
)

// Dispatcher schedules fn to run on the serialized goroutine.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// Loop is an unbounded FIFO of closures.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

// New returns an empty Loop. Nothing runs until Run or Pump is called.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Dispatch appends fn to the queue.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Len reports how many closures are waiting.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) pop() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

// Run executes queued closures on the calling goroutine until ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	return l.Pump(ctx, func(fn func()) { fn() })
}

// Pump hands each queued closure to deliver, in order, until ctx ends. It lets
// another event loop (a Bubble Tea program) be the serialized goroutine.
func (l *Loop) Pump(ctx context.Context, deliver func(fn func())) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fn := l.pop(); fn != nil {
			deliver(fn)
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Drain runs queued closures on the calling goroutine until the queue is
// empty and reports how many ran. Closures queued while draining run too.
func (l *Loop) Drain() int {
	n := 0
	for fn := l.pop(); fn != nil; fn = l.pop() {
		fn()
		n++
	}
	return n
}

// Do dispatches fn and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Dispatch(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
