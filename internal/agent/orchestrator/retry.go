package orchestrator

import (
	"context"
	"time"
)

// withRetry runs fn with a per-attempt timeout and retries transient failures
// with doubling backoff. Validation-style failures never reach this path; it
// wraps only network-facing port calls. The lead-capture tool deliberately
// bypasses it: capture is retried by the user resubmitting, never silently.
func (o *Orchestrator) withRetry(ctx context.Context, port string, timeout time.Duration, fn func(ctx context.Context) error) error {
	var err error
	backoff := o.cfg.RetryBackoff()

	for attempt := 0; attempt <= o.cfg.TransientRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		err = fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}

		o.metrics.PortErrors.WithLabelValues(port).Inc()
		o.log.Warn().
			Err(err).
			Str("port", port).
			Int("attempt", attempt+1).
			Msg("port call failed")

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

// once runs fn with a timeout and no retry.
func (o *Orchestrator) once(ctx context.Context, port string, timeout time.Duration, fn func(ctx context.Context) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := fn(attemptCtx); err != nil {
		o.metrics.PortErrors.WithLabelValues(port).Inc()
		o.log.Warn().Err(err).Str("port", port).Msg("port call failed")
		return err
	}
	return nil
}
