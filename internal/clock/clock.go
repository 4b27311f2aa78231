// Package clock abstracts time so timers and debounced work can be driven
// deterministically in tests.
package clock

import (
	"context"
	"time"
)

// Clock is the time source consumed by the controllers.
type Clock interface {
	Now() time.Time
	// Ticker delivers one wake signal per interval until ctx is done, then
	// closes the returned channel.
	Ticker(ctx context.Context, interval time.Duration) <-chan time.Time
	// AfterFunc calls f once d has elapsed. f runs on a goroutine owned by
	// the clock, never on the caller's.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from running and reports whether it was still pending.
	Stop() bool
}

// Real is the wall clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) Ticker(ctx context.Context, interval time.Duration) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				select {
				case out <- t:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
