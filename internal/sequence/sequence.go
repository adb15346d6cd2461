package sequence

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/dagseq/internal/ctxlog"
	"github.com/vk/dagseq/internal/verbosity"
)

// Config configures a Sequence.
type Config struct {
	// MaxConcurrency bounds the number of task actions running at once.
	// Values below 1 are treated as 1.
	MaxConcurrency int
	// Verbose, when true, makes Run emit human-readable, color-coded
	// progress lines to stdout as a side effect, in addition to the
	// structured event stream.
	Verbose bool
	// Tracer receives span open/close events covering the sequence and
	// each task's attempt loop (one span per task, with an event per failed
	// attempt). Defaults to a no-op tracer.
	Tracer Tracer
}

// Sequence is the orchestrator that builds a task graph and runs it to
// completion, respecting dependency order, bounded concurrency, priority,
// and per-task error policy.
type Sequence struct {
	config      Config
	descriptors []TaskDescriptor
	sem         *Semaphore
	bus         *eventBus
	tracer      Tracer
	clock       clock

	mu       sync.Mutex
	graph    *Graph
	built    bool
	cleanups []func()
}

// New creates a Sequence with the given configuration.
func New(cfg Config) *Sequence {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if cfg.Tracer == nil {
		cfg.Tracer = noopTracer{}
	}
	return &Sequence{
		config: cfg,
		sem:    NewSemaphore(cfg.MaxConcurrency),
		bus:    &eventBus{},
		tracer: cfg.Tracer,
		clock:  realClock{},
	}
}

// AddTask appends a descriptor. It returns the Sequence for chaining. Id
// uniqueness is checked at Run time, not here, since descriptors may be
// added in any order.
func (s *Sequence) AddTask(d TaskDescriptor) *Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.descriptors = append(s.descriptors, d)
	return s
}

// Subscribe registers a Subscriber that receives every event published
// during Run, in emission order.
func (s *Sequence) Subscribe(sub Subscriber) *Sequence {
	s.bus.Subscribe(sub)
	return s
}

type cleanupKey struct{}

// RegisterCleanup registers fn to run, in LIFO order, once the whole
// sequence finishes running — regardless of outcome. It is meant to be
// called from within a task's Action, using the ctx Action receives. It is
// a no-op if ctx was not produced by a running Sequence.
func RegisterCleanup(ctx context.Context, fn func()) {
	if s, ok := ctx.Value(cleanupKey{}).(*Sequence); ok {
		s.pushCleanup(fn)
	}
}

func (s *Sequence) pushCleanup(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

func (s *Sequence) runCleanups(ctx context.Context) {
	s.mu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	for i := len(cleanups) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("sequence: cleanup panicked", "panic", r)
				}
			}()
			cleanups[i]()
		}()
	}
}

// Run builds the task graph and executes it to completion. It returns a
// build-time error (DuplicateTaskIDError, UnknownDependencyError,
// CycleDetectedError) before any action runs, or a SequenceAbortedError if
// a task whose OnError is OnErrorAbort exhausts its retries. Otherwise it
// returns nil even if some tasks failed with OnErrorContinue.
func (s *Sequence) Run(ctx context.Context) error {
	s.mu.Lock()
	descriptors := make([]TaskDescriptor, len(s.descriptors))
	copy(descriptors, s.descriptors)
	s.mu.Unlock()

	g, err := Build(descriptors)
	if err != nil {
		return err
	}
	p, err := Plan(g)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.graph = g
	s.built = true
	s.mu.Unlock()

	ctx = context.WithValue(ctx, cleanupKey{}, s)

	start := s.clock.Now()
	if s.config.Verbose {
		s.wireVerbose(start)
	}
	sequenceSpan := s.tracer.StartSpan("sequence")
	s.bus.publish(Event{Kind: EventSequenceStarted, At: start})

	levelCtx, cancelLevel := context.WithCancel(ctx)
	defer cancelLevel()

	var aborted atomic.Bool
	var abortErr atomic.Pointer[SequenceAbortedError]

	for level := 0; level <= p.maxLevel; level++ {
		// Nodes within a level are already ordered by descending priority
		// (the planner's tie-break). Acquiring the semaphore sequentially in
		// that order, on this goroutine, before handing execution off,
		// preserves that order as the order permits are granted: spawning
		// every node's goroutine up front and letting them race for the
		// semaphore would throw the priority ordering away.
		eg, _ := errgroup.WithContext(ctx)
		for _, n := range p.byLevel[level] {
			n := n
			if !allParentsSucceeded(n) {
				n.setStatus(StatusSkipped)
				continue
			}
			if err := s.sem.Acquire(levelCtx); err != nil {
				n.setStatus(StatusSkipped)
				continue
			}
			eg.Go(func() error {
				defer s.sem.Release()
				s.runNode(ctx, levelCtx, n, &aborted, &abortErr, cancelLevel)
				return nil
			})
		}
		_ = eg.Wait()

		if aborted.Load() {
			break
		}
	}

	finishedAt := s.clock.Now()
	failures := 0
	for _, n := range g.order {
		if n.Status() == StatusFailed {
			failures++
		}
	}
	ok := !aborted.Load()
	sequenceSpan.End(ok, "")
	s.bus.publish(Event{
		Kind:       EventSequenceFinished,
		At:         finishedAt,
		OK:         ok,
		DurationMs: finishedAt.Sub(start).Milliseconds(),
		Failures:   failures,
	})

	s.runCleanups(ctx)

	if aborted.Load() {
		return abortErr.Load()
	}
	return nil
}

// runNode executes one node's attempt loop; the caller has already verified
// its parents succeeded and acquired its semaphore permit.
func (s *Sequence) runNode(ctx, levelCtx context.Context, n *node, aborted *atomic.Bool, abortErr *atomic.Pointer[SequenceAbortedError], cancelLevel context.CancelFunc) {
	if levelCtx.Err() != nil {
		n.setStatus(StatusSkipped)
		return
	}

	n.setStatus(StatusRunning)
	artifacts := gatherArtifacts(n)
	runTask(ctx, n, s.tracer, s.bus, s.clock, artifacts)

	if n.Status() == StatusFailed && n.desc.OnError == OnErrorAbort {
		if aborted.CompareAndSwap(false, true) {
			n.mu.Lock()
			cause := &TaskFailedError{ID: n.id, Attempts: n.attempts, LastMessage: errMessage(n.err)}
			n.mu.Unlock()
			abortErr.Store(&SequenceAbortedError{At: n.id, Cause: cause})
			cancelLevel()
		}
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func allParentsSucceeded(n *node) bool {
	for _, parent := range n.parents {
		if parent.Status() != StatusSucceeded {
			return false
		}
	}
	return true
}

func gatherArtifacts(n *node) []any {
	artifacts := make([]any, len(n.parents))
	for i, parent := range n.parents {
		parent.mu.Lock()
		artifacts[i] = parent.artifact
		parent.mu.Unlock()
	}
	return artifacts
}

// ArtifactOf returns the artifact of a succeeded task and true, or nil and
// false if the task doesn't exist, hasn't run, or didn't succeed. Only
// meaningful after Run returns.
func (s *Sequence) ArtifactOf(id string) (any, bool) {
	s.mu.Lock()
	g := s.graph
	s.mu.Unlock()
	if g == nil {
		return nil, false
	}
	n, ok := g.byID[id]
	if !ok || n.Status() != StatusSucceeded {
		return nil, false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.artifact, true
}

// StatusOf returns a task's terminal or current status and true, or
// StatusPending and false if the task id is unknown.
func (s *Sequence) StatusOf(id string) (Status, bool) {
	s.mu.Lock()
	g := s.graph
	s.mu.Unlock()
	if g == nil {
		return StatusPending, false
	}
	n, ok := g.byID[id]
	if !ok {
		return StatusPending, false
	}
	return n.Status(), true
}

func (s *Sequence) wireVerbose(start time.Time) {
	printer := verbosity.NewPrinter(start)
	s.Subscribe(func(e Event) {
		switch e.Kind {
		case EventSequenceStarted:
			printer.Info(e.At, "sequence started")
		case EventSequenceFinished:
			if e.OK {
				printer.Success(e.At, "sequence finished ok", "failures", e.Failures, "duration_ms", e.DurationMs)
			} else {
				printer.Error(e.At, "sequence aborted", "failures", e.Failures, "duration_ms", e.DurationMs)
			}
		case EventTaskStarted:
			printer.Info(e.At, "task started", "task", e.TaskID, "attempt", e.Attempt)
		case EventTaskAttemptFailed:
			printer.Warning(e.At, "task attempt failed", "task", e.TaskID, "attempt", e.Attempt, "error", e.Message)
		case EventTaskSucceeded:
			printer.Success(e.At, "task succeeded", "task", e.TaskID, "duration_ms", e.DurationMs)
		case EventTaskFailed:
			printer.Error(e.At, "task failed", "task", e.TaskID, "attempts", e.Attempts, "error", e.Message)
		}
	})
}
