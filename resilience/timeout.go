package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/mailliw2010/edge-agent/observe"
)

// Enforcer runs synchronous operations under a wall-clock deadline by racing
// a pool worker against a timer. The operation itself is never preempted: on
// timeout the caller is released and the worker finishes in the background,
// its outcome discarded.
type Enforcer struct {
	pool   *WorkerPool
	logger observe.Logger
}

// NewEnforcer creates an Enforcer over the given pool.
func NewEnforcer(pool *WorkerPool, logger observe.Logger) *Enforcer {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Enforcer{pool: pool, logger: logger}
}

// Run executes op with an upper bound on execution time. The clock starts at
// submission, so time spent queued for a pool slot counts against the
// budget. A parent-context cancellation is reported as ctx.Err(), not as a
// timeout.
func (e *Enforcer) Run(ctx context.Context, operation string, timeout time.Duration, op func() (any, error)) (any, error) {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch, err := e.pool.Submit(tctx, op)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			// The deadline expired while still queued for a slot.
			e.timedOut(ctx, operation, timeout)
			return nil, &TimeoutError{Operation: operation, Timeout: timeout}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	select {
	case out := <-ch:
		return out.Value, out.Err
	case <-tctx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.timedOut(ctx, operation, timeout)
		return nil, &TimeoutError{Operation: operation, Timeout: timeout}
	}
}

func (e *Enforcer) timedOut(ctx context.Context, operation string, timeout time.Duration) {
	e.logger.WithOperation(operation).Warn(ctx, "operation timed out",
		observe.Field{Key: "timeout_seconds", Value: timeout.Seconds()},
	)
}
