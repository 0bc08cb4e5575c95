// Package resilience executes synchronous, potentially slow or flaky
// operations under a bounded timeout, retrying transient failures with
// exponential backoff and converting exhausted retries into a single
// well-typed terminal error.
//
// # Model
//
// An Executor owns a bounded worker pool used solely to impose wall-clock
// deadlines on operations that have no native cancellation support. Each
// call supplies an operation name (for diagnostics), a zero-argument
// operation, and optional policy overrides:
//
//	exec, err := resilience.NewExecutor(resilience.ConfigFromEnv(),
//	    resilience.WithLogger(logger),
//	)
//	defer exec.Close()
//
//	data, err := resilience.Execute(ctx, exec, "sensor_read", readSensor,
//	    resilience.WithTimeout(5*time.Second),
//	    resilience.WithMaxAttempts(3),
//	    resilience.WithRetryable(resilience.KindIO, resilience.KindDecode),
//	)
//
// Every call produces exactly one terminal outcome: the operation's result,
// a non-retryable error propagated unchanged, or a *ResilienceError carrying
// the attempt count and the last underlying cause.
//
// # Failure classification
//
// Retry eligibility is decided per error Kind, a closed enumeration. Tag
// errors with WithKind, classify with KindOf. Timeouts (KindTimeout) are
// always retryable, even when a caller's explicit set omits them: a timeout
// is inherently transient.
//
// # Limitations
//
// Timed-out operations are not preempted; they keep running on their pool
// worker until they finish, and their outcome is discarded. A retry after a
// timeout can therefore overlap the abandoned attempt, so wrapped operations
// must be safe to run twice.
package resilience
