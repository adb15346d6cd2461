package testutil

import (
	"sync"

	"github.com/vk/dagseq/internal/sequence"
)

// EventRecorder collects every sequence.Event published during a run, for
// assertions after Run returns. Safe for concurrent delivery.
type EventRecorder struct {
	mu     sync.Mutex
	events []sequence.Event
}

// Subscriber returns the sequence.Subscriber to pass to Sequence.Subscribe.
func (r *EventRecorder) Subscriber() sequence.Subscriber {
	return func(e sequence.Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
	}
}

// Events returns a snapshot of every event recorded so far, in emission
// order.
func (r *EventRecorder) Events() []sequence.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sequence.Event, len(r.events))
	copy(out, r.events)
	return out
}

// TaskIDsForKind returns the task ids of every recorded event of the given
// kind, in emission order.
func (r *EventRecorder) TaskIDsForKind(kind sequence.EventKind) []string {
	var ids []string
	for _, e := range r.Events() {
		if e.Kind == kind {
			ids = append(ids, e.TaskID)
		}
	}
	return ids
}
