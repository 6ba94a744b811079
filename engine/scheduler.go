package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Run drives the engine on a fixed polling cadence until ctx is canceled.
// Ticks are aligned to interval boundaries so that with the default one-minute
// interval every wall-clock minute is observed exactly once; the digest and
// exact-reminder gates are pure HH:mm equality checks and rely on that.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	timer := time.NewTimer(time.Until(e.now().Truncate(interval).Add(interval)))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.Info("scheduler stopping")
			return
		case <-timer.C:
			if err := e.Tick(ctx); err != nil {
				e.log.Error("tick failed", zap.Error(err))
			}
			timer.Reset(time.Until(e.now().Truncate(interval).Add(interval)))
		}
	}
}
