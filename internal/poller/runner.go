// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run emits one PollCycle per iteration on out, sleeping the configured
// interval between iterations. Cancellation is observed at iteration
// boundaries only: an in-flight batch always finishes and its cycle is still
// delivered, then the sleep remainder is skipped and the loop exits. out is
// closed on return.
func (p *Poller) Run(ctx context.Context, out chan<- PollCycle) {
	defer close(out)

	for {
		out <- p.PollOnce()

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.cfg.Interval):
		}
	}
}
