package sequence

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Semaphore is a counting gate bounding the number of concurrently running
// task actions to a fixed capacity K. Waiters are served in FIFO order: the
// capacity is never left briefly "free" between a release and the next
// waiter's acquire, so there is no thundering-herd and no starvation.
//
// It is a thin wrapper over golang.org/x/sync/semaphore.Weighted, which
// already provides exactly this FIFO-fair counting-gate semantics.
type Semaphore struct {
	weighted *semaphore.Weighted
}

// NewSemaphore creates a Semaphore with the given fixed capacity. Values
// below 1 are treated as 1; capacity 1 degenerates to strict serial
// execution.
func NewSemaphore(capacity int) *Semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &Semaphore{weighted: semaphore.NewWeighted(int64(capacity))}
}

// Acquire blocks until a permit is available or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	return s.weighted.Acquire(ctx, 1)
}

// Release returns a permit, handing it directly to the longest-waiting
// acquirer if one exists.
func (s *Semaphore) Release() {
	s.weighted.Release(1)
}
