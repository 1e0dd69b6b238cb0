package batch

import (
	"context"
)

// Gate is a counting semaphore bounding how many jobs run at once.
// Unlike a fail-fast bulkhead, a gate always waits: a job blocks until a
// slot frees up or the context is canceled. Slots are only ever held for
// the duration of one Run call, so waiters cannot deadlock.
type Gate struct {
	capacity int
	sem      chan struct{}

	// OnAcquire and OnRelease are called after a slot is taken and after
	// it is returned. Used to feed the active-jobs gauge.
	OnAcquire func()
	OnRelease func()
}

// NewGate creates a gate admitting at most capacity concurrent callers.
// A capacity below one is clamped to one, which serializes all jobs.
func NewGate(capacity int) *Gate {
	if capacity < 1 {
		capacity = 1
	}
	return &Gate{
		capacity: capacity,
		sem:      make(chan struct{}, capacity),
	}
}

// Run executes fn while holding a gate slot. It blocks until a slot is
// available or ctx is canceled; the slot is released when fn returns,
// even if fn panics.
func (g *Gate) Run(ctx context.Context, fn func() error) error {
	if err := g.acquire(ctx); err != nil {
		return err
	}
	defer g.release()

	if g.OnAcquire != nil {
		g.OnAcquire()
	}
	defer func() {
		if g.OnRelease != nil {
			g.OnRelease()
		}
	}()

	return fn()
}

// acquire takes a slot, waiting as long as the context allows.
func (g *Gate) acquire(ctx context.Context) error {
	// Fast path when a slot is free.
	select {
	case g.sem <- struct{}{}:
		return nil
	default:
	}

	select {
	case g.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release returns a slot to the gate.
func (g *Gate) release() {
	<-g.sem
}

// Available returns the number of free slots.
func (g *Gate) Available() int {
	return g.capacity - len(g.sem)
}

// InUse returns the number of slots currently held.
func (g *Gate) InUse() int {
	return len(g.sem)
}

// Capacity returns the maximum concurrent callers admitted.
func (g *Gate) Capacity() int {
	return g.capacity
}
