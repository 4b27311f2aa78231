package clock

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Manual only moves when Advance is called. Timers and tickers that fall due
// during an Advance fire on the advancing goroutine, in deadline order.
type Manual struct {
	mu       sync.Mutex
	now      time.Time
	timers   []*manualTimer
	tickers  []*manualTicker
	changed  chan struct{}
	sequence int
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, changed: make(chan struct{})}
}

type manualTimer struct {
	deadline time.Time
	seq      int
	f        func()
	clock    *Manual
	stopped  bool
}

type manualTicker struct {
	ctx      context.Context
	next     time.Time
	seq      int
	interval time.Duration

	mu     sync.Mutex
	ch     chan time.Time
	closed bool
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence++
	t := &manualTimer{deadline: m.now.Add(d), seq: m.sequence, f: f, clock: m}
	m.timers = append(m.timers, t)
	m.notifyLocked()
	return t
}

func (t *manualTimer) Stop() bool {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			break
		}
	}
	return true
}

func (m *Manual) Ticker(ctx context.Context, interval time.Duration) <-chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence++
	t := &manualTicker{
		ctx:      ctx,
		next:     m.now.Add(interval),
		seq:      m.sequence,
		interval: interval,
		ch:       make(chan time.Time),
	}
	m.tickers = append(m.tickers, t)
	m.notifyLocked()
	context.AfterFunc(ctx, t.close)
	return t.ch
}

func (t *manualTicker) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.ch)
	}
}

func (t *manualTicker) send(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	select {
	case t.ch <- now:
	case <-t.ctx.Done():
	}
}

// Waiters reports how many timers and live tickers are registered.
func (m *Manual) Waiters() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	return len(m.timers) + len(m.tickers)
}

// BlockUntil waits until at least n timers or tickers are registered.
func (m *Manual) BlockUntil(ctx context.Context, n int) error {
	for {
		m.mu.Lock()
		m.pruneLocked()
		if len(m.timers)+len(m.tickers) >= n {
			m.mu.Unlock()
			return nil
		}
		changed := m.changed
		m.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Advance moves the clock forward by d, firing everything that falls due.
// Ticker sends block until the consumer receives or its context ends.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		m.pruneLocked()
		fire, at := m.nextDueLocked(target)
		if fire == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = at
		m.mu.Unlock()

		fire()
	}
}

func (m *Manual) nextDueLocked(target time.Time) (func(), time.Time) {
	type due struct {
		at   time.Time
		seq  int
		fire func()
	}
	var candidates []due
	for _, t := range m.timers {
		if !t.deadline.After(target) {
			timer := t
			candidates = append(candidates, due{at: t.deadline, seq: t.seq, fire: func() {
				m.mu.Lock()
				stopped := timer.stopped
				timer.stopped = true
				for i, other := range m.timers {
					if other == timer {
						m.timers = append(m.timers[:i], m.timers[i+1:]...)
						break
					}
				}
				m.mu.Unlock()
				if !stopped {
					timer.f()
				}
			}})
		}
	}
	for _, t := range m.tickers {
		if !t.next.After(target) {
			ticker := t
			at := t.next
			candidates = append(candidates, due{at: at, seq: t.seq, fire: func() {
				m.mu.Lock()
				ticker.next = ticker.next.Add(ticker.interval)
				m.mu.Unlock()
				ticker.send(at)
			}})
		}
	}
	if len(candidates) == 0 {
		return nil, time.Time{}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].at.Equal(candidates[j].at) {
			return candidates[i].seq < candidates[j].seq
		}
		return candidates[i].at.Before(candidates[j].at)
	})
	return candidates[0].fire, candidates[0].at
}

func (m *Manual) pruneLocked() {
	live := m.tickers[:0]
	for _, t := range m.tickers {
		if t.ctx.Err() == nil {
			live = append(live, t)
		}
	}
	m.tickers = live
}

func (m *Manual) notifyLocked() {
	close(m.changed)
	m.changed = make(chan struct{})
}
