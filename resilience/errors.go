package resilience

import (
	"errors"
	"fmt"
	"time"
)

// ErrPoolClosed is returned when work is submitted after Shutdown.
var ErrPoolClosed = errors.New("resilience: worker pool is closed")

// Kind is a closed classification of operation failures. Retry eligibility
// is decided per Kind, so the retryable set stays statically analyzable.
type Kind int

const (
	// KindUnknown is the fallback for unclassified errors.
	KindUnknown Kind = iota
	// KindTimeout marks an attempt that exceeded its deadline. Always
	// treated as retryable.
	KindTimeout
	// KindIO marks filesystem and device I/O failures.
	KindIO
	// KindDecode marks payload parse/decode failures.
	KindDecode
	// KindUnavailable marks a dependency that is temporarily unreachable.
	KindUnavailable
	// KindInvalid marks rejected input. Typically excluded from retry sets.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	case KindUnavailable:
		return "unavailable"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// TimeoutError reports that a single attempt did not complete within its
// configured deadline. The underlying operation may still be running in the
// background; its eventual outcome is discarded.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("resilience: operation %q did not complete within %s", e.Operation, e.Timeout)
}

// ResilienceError is the terminal error raised once every attempt of a call
// has failed. Last is the error from the final attempt, which is not
// necessarily a TimeoutError.
type ResilienceError struct {
	Operation string
	Attempts  int
	Last      error
}

func (e *ResilienceError) Error() string {
	return fmt.Sprintf("resilience: operation %q failed after %d attempts: %v", e.Operation, e.Attempts, e.Last)
}

// Unwrap exposes the final cause so errors.Is/As reach through.
func (e *ResilienceError) Unwrap() error {
	return e.Last
}

// kindError carries a Kind alongside the original error.
type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }

func (e *kindError) Unwrap() error { return e.err }

// WithKind tags err with a failure kind. Returns nil for a nil err.
func WithKind(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// KindOf classifies an error. Timeout errors classify as KindTimeout even
// when wrapped; tagged errors report their tag; everything else is
// KindUnknown.
func KindOf(err error) Kind {
	var te *TimeoutError
	if errors.As(err, &te) {
		return KindTimeout
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindUnknown
}
