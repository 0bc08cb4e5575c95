package resilience

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Outcome is the single result delivered for a submitted operation.
type Outcome struct {
	Value any
	Err   error
}

// WorkerPool bounds the number of operations in flight at once. It exists to
// give synchronous, non-cancellable operations a place to run while their
// caller waits under a deadline.
//
// A saturated pool queues submitters rather than rejecting them: Submit
// blocks until a slot frees up or ctx expires.
type WorkerPool struct {
	sem      *semaphore.Weighted
	capacity int

	mu        sync.Mutex
	closed    bool
	active    int
	maxActive int
	submitted int64
}

// NewWorkerPool creates a pool with the given capacity. Non-positive
// capacities fall back to DefaultPoolSize.
func NewWorkerPool(capacity int) *WorkerPool {
	if capacity <= 0 {
		capacity = DefaultPoolSize
	}
	return &WorkerPool{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Submit acquires a slot (blocking while the pool is saturated, bounded by
// ctx) and runs op on its own goroutine. The returned channel receives
// exactly one Outcome; it is buffered, so a caller that stops listening does
// not strand the worker.
func (p *WorkerPool) Submit(ctx context.Context, op func() (any, error)) (<-chan Outcome, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.mu.Unlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.submitted++
	p.active++
	if p.active > p.maxActive {
		p.maxActive = p.active
	}
	p.mu.Unlock()

	ch := make(chan Outcome, 1)

	go func() {
		defer func() {
			p.mu.Lock()
			p.active--
			p.mu.Unlock()
			p.sem.Release(1)
		}()
		value, err := call(op)
		ch <- Outcome{Value: value, Err: err}
	}()

	return ch, nil
}

// call invokes op, converting a panic into an error. A panicking operation
// must not take down the process after its caller has already moved on.
func call(op func() (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resilience: operation panicked: %v", r)
		}
	}()
	return op()
}

// Shutdown marks the pool closed. It does not wait for in-flight operations;
// stragglers are abandoned, matching process-exit semantics.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

// Metrics returns current pool statistics.
func (p *WorkerPool) Metrics() PoolMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PoolMetrics{
		Active:    p.active,
		MaxActive: p.maxActive,
		Available: p.capacity - p.active,
		Capacity:  p.capacity,
		Submitted: p.submitted,
	}
}

// PoolMetrics contains worker pool statistics.
type PoolMetrics struct {
	Active    int
	MaxActive int
	Available int
	Capacity  int
	Submitted int64
}
