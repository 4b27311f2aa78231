package clock

import (
	"context"
	"sync"
	"time"
)

// Immediate is a clock on which no time needs to pass: tickers fire as fast
// as they are consumed and AfterFunc runs right away. Virtual time still
// advances so Now reflects every interval that "elapsed".
type Immediate struct {
	mu  sync.Mutex
	now time.Time
}

// NewImmediate returns an Immediate clock starting at start.
func NewImmediate(start time.Time) *Immediate {
	return &Immediate{now: start}
}

func (c *Immediate) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Immediate) advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func (c *Immediate) Ticker(ctx context.Context, interval time.Duration) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		for {
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- c.advance(interval):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (c *Immediate) AfterFunc(d time.Duration, f func()) Timer {
	t := &immediateTimer{}
	go func() {
		if !t.fire() {
			return
		}
		c.advance(d)
		f()
	}()
	return t
}

type immediateTimer struct {
	mu   sync.Mutex
	done bool
}

func (t *immediateTimer) fire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (t *immediateTimer) Stop() bool {
	return t.fire()
}
