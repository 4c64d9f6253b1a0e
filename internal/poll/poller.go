// Package poll provides a cancellable fixed-interval polling task.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Poller re-runs a fetch callback on a fixed interval with a single-flight
// guarantee: the timer is re-armed only after the callback returns, so two
// fetches for the same resource never overlap and responses cannot arrive
// out of order.
type Poller struct {
	logger *logrus.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an idle poller.
func New(logger *logrus.Logger) *Poller {
	return &Poller{logger: logger}
}

// Start launches the polling loop. The callback runs once immediately and
// then once per interval. Starting an already-running poller stops the
// previous loop first.
func (p *Poller) Start(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	p.Stop()

	runCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go p.loop(runCtx, interval, fn)
}

// Stop cancels the loop and waits for any in-flight callback to return.
// Stopping an idle poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
}

func (p *Poller) loop(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	defer p.wg.Done()

	fn(ctx)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("poller stopped")
			return
		case <-timer.C:
			fn(ctx)
			timer.Reset(interval)
		}
	}
}
