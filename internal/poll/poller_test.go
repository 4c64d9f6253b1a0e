package poll

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestPoller() *Poller {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger)
}

func TestPoller_RunsImmediatelyAndOnInterval(t *testing.T) {
	p := newTestPoller()

	var calls atomic.Int32
	p.Start(context.Background(), 10*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})
	time.Sleep(100 * time.Millisecond)
	p.Stop()

	got := calls.Load()
	assert.GreaterOrEqual(t, got, int32(3))
}

func TestPoller_SingleFlight(t *testing.T) {
	p := newTestPoller()

	var calls atomic.Int32
	p.Start(context.Background(), 10*time.Millisecond, func(context.Context) {
		calls.Add(1)
		time.Sleep(60 * time.Millisecond) // slower than the interval
	})
	time.Sleep(200 * time.Millisecond)
	p.Stop()

	// Without the single-flight guarantee a 10ms interval would fire ~20
	// times; the slow callback keeps it at a handful of sequential runs.
	assert.LessOrEqual(t, calls.Load(), int32(5))
}

func TestPoller_StopWaitsForCallback(t *testing.T) {
	p := newTestPoller()

	var running atomic.Bool
	p.Start(context.Background(), 5*time.Millisecond, func(context.Context) {
		running.Store(true)
		time.Sleep(20 * time.Millisecond)
		running.Store(false)
	})
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	assert.False(t, running.Load(), "no callback may be in flight after Stop returns")
}

func TestPoller_StopIdempotent(t *testing.T) {
	p := newTestPoller()
	p.Stop()

	p.Start(context.Background(), time.Hour, func(context.Context) {})
	p.Stop()
	p.Stop()
}

func TestPoller_RestartReplacesLoop(t *testing.T) {
	p := newTestPoller()

	var first, second atomic.Int32
	p.Start(context.Background(), 5*time.Millisecond, func(context.Context) { first.Add(1) })
	p.Start(context.Background(), 5*time.Millisecond, func(context.Context) { second.Add(1) })

	time.Sleep(30 * time.Millisecond)
	p.Stop()

	firstCount := first.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, firstCount, first.Load(), "first loop stopped by restart")
	assert.Greater(t, second.Load(), int32(0))
}
