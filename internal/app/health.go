package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/vk/dagseq/internal/sequence"
)

// metricsCollector tallies task outcomes off the event stream for the
// /metrics endpoint. It is a pure consumer: it never touches sequence
// internals directly, only the published Event values. The skipped counter
// is reported but never incremented: the event stream carries no event for a
// skipped task, so it always reads 0.
type metricsCollector struct {
	mu        sync.Mutex
	started   int
	succeeded int
	failed    int
	skipped   int
	running   int
}

func newMetricsCollector() *metricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) observe(e sequence.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch e.Kind {
	case sequence.EventTaskStarted:
		if e.Attempt == 1 {
			m.started++
			m.running++
		}
	case sequence.EventTaskSucceeded:
		m.running--
		m.succeeded++
	case sequence.EventTaskFailed:
		m.running--
		m.failed++
	}
}

func (m *metricsCollector) snapshot() (started, succeeded, failed, skipped, running int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started, m.succeeded, m.failed, m.skipped, m.running
}

// healthHandler reports liveness; it never depends on the sequence's state,
// so it answers even before Run is called.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("health check endpoint hit", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// metricsHandler reports a plaintext snapshot of task counters.
func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	started, succeeded, failed, skipped, running := a.metrics.snapshot()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "dagseq_tasks_started %d\n", started)
	fmt.Fprintf(w, "dagseq_tasks_succeeded %d\n", succeeded)
	fmt.Fprintf(w, "dagseq_tasks_failed %d\n", failed)
	fmt.Fprintf(w, "dagseq_tasks_skipped %d\n", skipped)
	fmt.Fprintf(w, "dagseq_tasks_running %d\n", running)
}

// startHealthcheckServer initializes and runs the health/metrics HTTP
// server on the given port. It runs in a background goroutine and never
// blocks the caller.
func (a *App) startHealthcheckServer(port int) {
	a.logger.Debug("configuring health check server")
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", a.healthHandler)
	mux.HandleFunc("/metrics", a.metricsHandler)

	addr := fmt.Sprintf(":%d", port)
	a.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		a.logger.Info("health check server starting", "address", fmt.Sprintf("http://localhost%s/healthz", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("health check server failed unexpectedly", "error", err)
		}
	}()
}

// closeHealthcheckServer shuts the health server down gracefully, bounded
// by a short timeout so Run never hangs waiting on it.
func (a *App) closeHealthcheckServer() error {
	if a.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down health check server")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("health check server shutdown failed", "error", err)
		return err
	}
	return nil
}
