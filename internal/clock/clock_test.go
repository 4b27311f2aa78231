package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func TestManual_AfterFuncFiresAtDeadline(t *testing.T) {
	m := NewManual(epoch)
	var fired atomic.Int32
	m.AfterFunc(time.Second, func() { fired.Add(1) })

	m.Advance(999 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	m.Advance(time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, epoch.Add(time.Second), m.Now())

	m.Advance(time.Hour)
	assert.Equal(t, int32(1), fired.Load(), "timer must fire once")
}

func TestManual_StoppedTimerNeverFires(t *testing.T) {
	m := NewManual(epoch)
	var fired atomic.Int32
	timer := m.AfterFunc(time.Second, func() { fired.Add(1) })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(2 * time.Second)
	assert.Equal(t, int32(0), fired.Load())
	assert.Equal(t, 0, m.Waiters())
}

func TestManual_TickerDeliversEachInterval(t *testing.T) {
	m := NewManual(epoch)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := m.Ticker(ctx, time.Second)
	received := make(chan time.Time, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for tick := range ticks {
			received <- tick
		}
	}()

	m.Advance(3 * time.Second)
	cancel()
	<-done

	require.Len(t, received, 3)
	assert.Equal(t, epoch.Add(time.Second), <-received)
	assert.Equal(t, epoch.Add(2*time.Second), <-received)
	assert.Equal(t, epoch.Add(3*time.Second), <-received)
}

func TestManual_BlockUntil(t *testing.T) {
	m := NewManual(epoch)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		time.Sleep(10 * time.Millisecond)
		m.AfterFunc(time.Second, func() {})
	}()

	require.NoError(t, m.BlockUntil(ctx, 1))
	assert.Equal(t, 1, m.Waiters())
}

func TestImmediate_TickerRunsWithoutWaiting(t *testing.T) {
	c := NewImmediate(epoch)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := c.Ticker(ctx, time.Second)
	for range 5 {
		<-ticks
	}
	cancel()
	for range ticks {
	}
	assert.False(t, c.Now().Before(epoch.Add(5*time.Second)))
}

func TestImmediate_AfterFuncRunsRightAway(t *testing.T) {
	c := NewImmediate(epoch)
	done := make(chan struct{})
	c.AfterFunc(time.Minute, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AfterFunc did not run")
	}
}

func TestReal_TickerClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := Real{}.Ticker(ctx, time.Millisecond)
	<-ticks
	cancel()
	for range ticks {
	}
}
