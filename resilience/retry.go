package resilience

import (
	"errors"
	"math"
	"time"
)

// KindSet is the set of error kinds a policy treats as transient.
type KindSet map[Kind]bool

// Kinds builds a KindSet from the given kinds.
func Kinds(kinds ...Kind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return s[k]
}

// Policy is the effective per-call resilience policy.
type Policy struct {
	// Timeout is the maximum wall-clock time allowed per single attempt.
	Timeout time.Duration

	// MaxAttempts is the total number of attempts including the first.
	// An executor with MaxAttempts = 1 performs no retries, only timeout
	// enforcement.
	MaxAttempts int

	// BackoffBase is the delay before the second attempt.
	BackoffBase time.Duration

	// BackoffMax caps the delay between attempts.
	BackoffMax time.Duration

	// Retryable is the set of kinds that trigger a retry. A nil set means
	// every kind is retryable. KindTimeout is retryable regardless of the
	// set's contents: a timeout is inherently transient.
	Retryable KindSet
}

// Option overrides one field of the default policy for a single call.
type Option func(*Policy)

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Policy) {
		p.Timeout = d
	}
}

// WithMaxAttempts overrides the total attempt budget.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		p.MaxAttempts = n
	}
}

// WithBackoff overrides the backoff base delay and cap.
func WithBackoff(base, max time.Duration) Option {
	return func(p *Policy) {
		p.BackoffBase = base
		p.BackoffMax = max
	}
}

// WithRetryable restricts retries to the given kinds. Timeouts stay
// retryable even when omitted.
func WithRetryable(kinds ...Kind) Option {
	return func(p *Policy) {
		p.Retryable = Kinds(kinds...)
	}
}

// retryable reports whether err should consume a retry. A closed pool can
// never recover within a call, so ErrPoolClosed is not retried.
func (p Policy) retryable(err error) bool {
	if errors.Is(err, ErrPoolClosed) {
		return false
	}
	kind := KindOf(err)
	if kind == KindTimeout {
		return true
	}
	if p.Retryable == nil {
		return true
	}
	return p.Retryable.Has(kind)
}

// backoffDelay returns min(BackoffMax, BackoffBase * 2^(attempt-1)), the
// delay to sleep after the given attempt number has failed.
func (p Policy) backoffDelay(attempt int) time.Duration {
	d := float64(p.BackoffBase) * math.Pow(2, float64(attempt-1))
	if d > float64(p.BackoffMax) {
		return p.BackoffMax
	}
	return time.Duration(d)
}

// normalize fills unusable fields so a zero or partially-set policy still
// behaves.
func (p Policy) normalize() Policy {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BackoffBase < 0 {
		p.BackoffBase = 0
	}
	if p.BackoffMax < 0 {
		p.BackoffMax = 0
	}
	return p
}
