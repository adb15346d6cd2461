package testutil

import (
	"bytes"
	"sync"
)

// SafeBuffer is a thread-safe bytes.Buffer, suitable as the output of a
// *slog.Logger read back from concurrent test goroutines.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}
