package sequence

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSemaphore_BoundsConcurrency(t *testing.T) {
	sem := NewSemaphore(2)
	var inFlight, maxObserved atomic.Int32

	run := func(done chan<- struct{}) {
		require.NoError(t, sem.Acquire(context.Background()))
		defer sem.Release()
		n := inFlight.Add(1)
		for {
			m := maxObserved.Load()
			if n <= m || maxObserved.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		close(done)
	}

	dones := make([]chan struct{}, 6)
	for i := range dones {
		dones[i] = make(chan struct{})
		go run(dones[i])
	}
	for _, d := range dones {
		<-d
	}

	require.LessOrEqual(t, int(maxObserved.Load()), 2)
}

func TestSemaphore_AcquireRespectsCancellation(t *testing.T) {
	sem := NewSemaphore(1)
	require.NoError(t, sem.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := sem.Acquire(ctx)
	require.Error(t, err)
}

func TestNewSemaphore_ClampsCapacityToOne(t *testing.T) {
	sem := NewSemaphore(0)
	require.NoError(t, sem.Acquire(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, sem.Acquire(ctx))
}
