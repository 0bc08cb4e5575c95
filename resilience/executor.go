package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mailliw2010/edge-agent/observe"
)

// Executor runs operations under timeout enforcement and retry with
// exponential backoff. One executor is meant to live for the process and be
// shared by every caller; its pool is the only shared mutable state.
type Executor struct {
	pool     *WorkerPool
	ownsPool bool
	enforcer *Enforcer
	defaults Policy
	logger   observe.Logger
	metrics  observe.Metrics
	tracer   observe.Tracer
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the diagnostic logger.
func WithLogger(l observe.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m observe.Metrics) ExecutorOption {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithTracer sets the tracer used to span each protected call.
func WithTracer(t observe.Tracer) ExecutorOption {
	return func(e *Executor) {
		e.tracer = t
	}
}

// WithPool shares an existing worker pool instead of creating one. The
// caller keeps ownership: Close will not shut a shared pool down.
func WithPool(p *WorkerPool) ExecutorOption {
	return func(e *Executor) {
		e.pool = p
		e.ownsPool = false
	}
}

// NewExecutor creates an Executor from the given configuration.
func NewExecutor(cfg Config, opts ...ExecutorOption) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Executor{
		defaults: cfg.policy(),
		logger:   observe.NopLogger(),
		metrics:  observe.NopMetrics(),
		tracer:   observe.NopTracer(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.pool == nil {
		e.pool = NewWorkerPool(cfg.PoolSize)
		e.ownsPool = true
	}
	e.enforcer = NewEnforcer(e.pool, e.logger)

	return e, nil
}

// Defaults returns the executor's default policy.
func (e *Executor) Defaults() Policy {
	return e.defaults
}

// Pool returns the executor's worker pool.
func (e *Executor) Pool() *WorkerPool {
	return e.pool
}

// Close shuts the executor's pool down without waiting for in-flight
// operations. Shared pools (see WithPool) are left alone.
func (e *Executor) Close() {
	if e.ownsPool {
		e.pool.Shutdown()
	}
}

// Execute runs op under the executor's policy, optionally overridden per
// call. It returns op's result, or the original error when its kind is not
// retryable, or a *ResilienceError once all attempts are exhausted. Attempts
// of one call never overlap; a timed-out attempt's operation may still be
// running in the background when the next attempt starts, so wrapped
// operations must tolerate duplicate execution.
func Execute[T any](ctx context.Context, e *Executor, operation string, op func() (T, error), opts ...Option) (T, error) {
	result, err := e.execute(ctx, operation, func() (any, error) { return op() }, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := result.(T)
	return v, nil
}

func (e *Executor) execute(ctx context.Context, operation string, op func() (any, error), opts ...Option) (any, error) {
	p := e.defaults
	for _, opt := range opts {
		opt(&p)
	}
	p = p.normalize()

	log := e.logger.WithOperation(operation)
	callID := uuid.NewString()

	ctx, span := e.tracer.StartCall(ctx, operation)

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		attempts = attempt

		start := time.Now()
		result, err := e.enforcer.Run(ctx, operation, p.Timeout, op)
		e.metrics.RecordAttempt(ctx, operation, attempt, time.Since(start), err != nil)

		if err == nil {
			e.tracer.EndCall(span, nil)
			return result, nil
		}

		if KindOf(err) == KindTimeout {
			e.metrics.RecordTimeout(ctx, operation)
		}

		// Caller cancellation is not a failure to recover from.
		if ctx.Err() != nil {
			e.tracer.EndCall(span, err)
			return nil, err
		}

		if !p.retryable(err) {
			log.Debug(ctx, "non-retryable failure, propagating",
				observe.Field{Key: "call_id", Value: callID},
				observe.Field{Key: "kind", Value: KindOf(err).String()},
				observe.Field{Key: "error", Value: err.Error()},
			)
			e.tracer.EndCall(span, err)
			return nil, err
		}

		lastErr = err
		if attempt == p.MaxAttempts {
			break
		}

		delay := p.backoffDelay(attempt)
		log.Warn(ctx, "attempt failed, retrying",
			observe.Field{Key: "call_id", Value: callID},
			observe.Field{Key: "attempt", Value: attempt},
			observe.Field{Key: "delay_seconds", Value: delay.Seconds()},
			observe.Field{Key: "error", Value: err.Error()},
		)
		e.metrics.RecordRetry(ctx, operation, attempt, delay)

		select {
		case <-ctx.Done():
			e.tracer.EndCall(span, ctx.Err())
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if lastErr == nil {
		// Should not happen; keep the terminal error's cause non-nil.
		lastErr = errors.New("resilience: cause unknown")
	}

	rerr := &ResilienceError{Operation: operation, Attempts: attempts, Last: lastErr}
	log.Error(ctx, "all attempts failed",
		observe.Field{Key: "call_id", Value: callID},
		observe.Field{Key: "attempts", Value: attempts},
		observe.Field{Key: "error", Value: lastErr.Error()},
	)
	e.metrics.RecordExhausted(ctx, operation, attempts)
	e.tracer.EndCall(span, rerr)

	return nil, rerr
}
