package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records attempt-level and call-level execution metrics for
// protected operations. The caller decides which events to record; this
// interface never inspects errors itself.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordAttempt records one attempt of an operation with its duration
	// and error status.
	RecordAttempt(ctx context.Context, operation string, attempt int, duration time.Duration, failed bool)

	// RecordRetry records that a retry has been scheduled after a failed
	// attempt, with the backoff delay about to be slept.
	RecordRetry(ctx context.Context, operation string, attempt int, delay time.Duration)

	// RecordTimeout records that an attempt exceeded its deadline.
	RecordTimeout(ctx context.Context, operation string)

	// RecordExhausted records that a call failed after all attempts.
	RecordExhausted(ctx context.Context, operation string, attempts int)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter          metric.Meter
	attemptCount   metric.Int64Counter
	retryCount     metric.Int64Counter
	timeoutCount   metric.Int64Counter
	exhaustCount   metric.Int64Counter
	attemptDurHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance recording through the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	attemptCount, err := meter.Int64Counter(
		"resilience.attempts.total",
		metric.WithDescription("Total number of operation attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	retryCount, err := meter.Int64Counter(
		"resilience.retries.total",
		metric.WithDescription("Total number of scheduled retries"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	timeoutCount, err := meter.Int64Counter(
		"resilience.timeouts.total",
		metric.WithDescription("Total number of attempts that exceeded their deadline"),
		metric.WithUnit("{timeout}"),
	)
	if err != nil {
		return nil, err
	}

	exhaustCount, err := meter.Int64Counter(
		"resilience.exhausted.total",
		metric.WithDescription("Total number of calls that failed after all attempts"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	attemptDurHist, err := meter.Float64Histogram(
		"resilience.attempt.duration_ms",
		metric.WithDescription("Single attempt duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:          meter,
		attemptCount:   attemptCount,
		retryCount:     retryCount,
		timeoutCount:   timeoutCount,
		exhaustCount:   exhaustCount,
		attemptDurHist: attemptDurHist,
	}, nil
}

func (m *metricsImpl) RecordAttempt(ctx context.Context, operation string, attempt int, duration time.Duration, failed bool) {
	opt := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("error", failed),
	)

	m.attemptCount.Add(ctx, 1, opt)
	m.attemptDurHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordRetry(ctx context.Context, operation string, attempt int, delay time.Duration) {
	m.retryCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func (m *metricsImpl) RecordTimeout(ctx context.Context, operation string) {
	m.timeoutCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func (m *metricsImpl) RecordExhausted(ctx context.Context, operation string, attempts int) {
	m.exhaustCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Int("attempts", attempts),
	))
}

// nopMetrics is a metrics implementation that does nothing.
type nopMetrics struct{}

func (nopMetrics) RecordAttempt(ctx context.Context, operation string, attempt int, duration time.Duration, failed bool) {
}
func (nopMetrics) RecordRetry(ctx context.Context, operation string, attempt int, delay time.Duration) {
}
func (nopMetrics) RecordTimeout(ctx context.Context, operation string)           {}
func (nopMetrics) RecordExhausted(ctx context.Context, operation string, attempts int) {}

// NopMetrics returns a Metrics implementation that records nothing.
func NopMetrics() Metrics {
	return nopMetrics{}
}
