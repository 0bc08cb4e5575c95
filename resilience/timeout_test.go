package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mailliw2010/edge-agent/observe"
)

func newTestEnforcer(capacity int) (*Enforcer, *WorkerPool) {
	pool := NewWorkerPool(capacity)
	return NewEnforcer(pool, observe.NopLogger()), pool
}

func TestEnforcer_Success(t *testing.T) {
	e, pool := newTestEnforcer(2)
	defer pool.Shutdown()

	got, err := e.Run(context.Background(), "op", time.Second, func() (any, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Run() = %v, want %q", got, "ok")
	}
}

func TestEnforcer_OperationError(t *testing.T) {
	e, pool := newTestEnforcer(2)
	defer pool.Shutdown()

	opErr := errors.New("sensor offline")
	_, err := e.Run(context.Background(), "op", time.Second, func() (any, error) {
		return nil, opErr
	})
	if err != opErr {
		t.Errorf("Run() error = %v, want the operation's own error", err)
	}
}

func TestEnforcer_Timeout(t *testing.T) {
	e, pool := newTestEnforcer(2)
	defer pool.Shutdown()

	start := time.Now()
	_, err := e.Run(context.Background(), "slow_op", 50*time.Millisecond, func() (any, error) {
		time.Sleep(2 * time.Second)
		return "too late", nil
	})
	elapsed := time.Since(start)

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("Run() error = %v, want *TimeoutError", err)
	}
	if te.Operation != "slow_op" {
		t.Errorf("Operation = %q, want %q", te.Operation, "slow_op")
	}
	if te.Timeout != 50*time.Millisecond {
		t.Errorf("Timeout = %v, want 50ms", te.Timeout)
	}

	// The caller must be released at the deadline, not when the operation
	// eventually finishes.
	if elapsed > 500*time.Millisecond {
		t.Errorf("Run() returned after %v, want ~50ms", elapsed)
	}
}

func TestEnforcer_QueueWaitCountsAgainstBudget(t *testing.T) {
	e, pool := newTestEnforcer(1)
	defer pool.Shutdown()

	release := make(chan struct{})
	defer close(release)
	if _, err := pool.Submit(context.Background(), func() (any, error) {
		<-release
		return nil, nil
	}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// The pool is saturated, so this attempt spends its whole budget queued.
	_, err := e.Run(context.Background(), "queued_op", 30*time.Millisecond, func() (any, error) {
		return nil, nil
	})

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("Run() error = %v, want *TimeoutError", err)
	}
}

func TestEnforcer_ParentCancellation(t *testing.T) {
	e, pool := newTestEnforcer(2)
	defer pool.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := e.Run(ctx, "op", time.Second, func() (any, error) {
		time.Sleep(2 * time.Second)
		return nil, nil
	})

	if err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestEnforcer_PoolClosed(t *testing.T) {
	e, pool := newTestEnforcer(1)
	pool.Shutdown()

	_, err := e.Run(context.Background(), "op", time.Second, func() (any, error) {
		return nil, nil
	})
	if err != ErrPoolClosed {
		t.Errorf("Run() error = %v, want ErrPoolClosed", err)
	}
}

func TestEnforcer_BackgroundOutcomeDiscarded(t *testing.T) {
	e, pool := newTestEnforcer(1)
	defer pool.Shutdown()

	finished := make(chan struct{})
	_, err := e.Run(context.Background(), "op", 30*time.Millisecond, func() (any, error) {
		time.Sleep(100 * time.Millisecond)
		close(finished)
		return "late result", nil
	})

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("Run() error = %v, want *TimeoutError", err)
	}

	// The abandoned attempt keeps running to completion in the background.
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Error("abandoned operation never completed")
	}
}
