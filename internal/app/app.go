package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vk/dagseq/internal/actions"
	"github.com/vk/dagseq/internal/config"
	"github.com/vk/dagseq/internal/ctxlog"
	"github.com/vk/dagseq/internal/eventbridge"
	"github.com/vk/dagseq/internal/sequence"
)

// App encapsulates a loaded sequence and its dependencies, ready to Run.
type App struct {
	logger *slog.Logger
	seq    *sequence.Sequence
	config *Config

	healthcheckPort int
	metrics         *metricsCollector
	httpServer      *http.Server

	eventBridgeAddr string
	bridge          *eventbridge.Bridge
}

// New loads configuration through loader, binds every task's declared
// action against registry, and builds the sequence.Sequence. It returns an
// error rather than panicking on a bad config, since this is meant to be
// usable as a library, not only from a CLI.
func New(ctx context.Context, outW io.Writer, cfg *Config, loader config.Loader, registry actions.Registry) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("loading sequence configuration", "paths", cfg.SequencePaths)

	scfg, err := loader.Load(ctx, cfg.SequencePaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load sequence configuration: %w", err)
	}

	logLevel, logFormat := cfg.LogLevel, cfg.LogFormat
	if logLevel == "" {
		logLevel = scfg.LogLevel
	}
	if logFormat == "" {
		logFormat = scfg.LogFormat
	}
	if logLevel != cfg.LogLevel || logFormat != cfg.LogFormat {
		logger = newLogger(logLevel, logFormat, outW)
	}

	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = scfg.MaxConcurrency
	}
	verbose := cfg.Verbose || scfg.Verbose
	healthcheckPort := cfg.HealthcheckPort
	if healthcheckPort == 0 {
		healthcheckPort = scfg.HealthcheckPort
	}

	eventBridgeAddr := scfg.EventBridgeAddr

	metrics := newMetricsCollector()
	seq := sequence.New(sequence.Config{MaxConcurrency: maxConcurrency, Verbose: verbose})
	seq.Subscribe(metrics.observe)

	var bridge *eventbridge.Bridge
	if eventBridgeAddr != "" {
		bridge = eventbridge.New()
		seq.Subscribe(bridge.Subscriber())
	}

	for _, t := range scfg.Tasks {
		action, ok := registry.Bind(t.Action, t.Params)
		if !ok {
			return nil, fmt.Errorf("task %q: unknown action %q", t.ID, t.Action)
		}

		errPolicy := sequence.OnErrorContinue
		if t.OnError == config.ErrorPolicyAbort {
			errPolicy = sequence.OnErrorAbort
		}

		seq.AddTask(sequence.TaskDescriptor{
			ID:         t.ID,
			Action:     action,
			Parents:    t.Parents,
			RetryCount: t.RetryCount,
			RetryDelay: time.Duration(t.RetryDelayMs) * time.Millisecond,
			OnError:    errPolicy,
			Priority:   t.Priority,
		})
	}
	logger.Debug("sequence built", "task_count", len(scfg.Tasks))

	return &App{
		logger:          logger,
		seq:             seq,
		config:          cfg,
		healthcheckPort: healthcheckPort,
		metrics:         metrics,
		eventBridgeAddr: eventBridgeAddr,
		bridge:          bridge,
	}, nil
}

// Sequence returns the underlying sequence.Sequence, primarily so a caller
// can inspect artifacts and statuses once Run returns.
func (a *App) Sequence() *sequence.Sequence {
	return a.seq
}

// Subscribe registers an additional sequence.Subscriber, useful for wiring
// an external observer (e.g. an eventbridge broadcaster) before Run.
func (a *App) Subscribe(sub sequence.Subscriber) {
	a.seq.Subscribe(sub)
}

// Run starts the health server if configured, then runs the sequence to
// completion.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("app run started")

	if a.healthcheckPort > 0 {
		a.startHealthcheckServer(a.healthcheckPort)
		defer a.closeHealthcheckServer()
	}

	if a.bridge != nil {
		if err := a.bridge.Listen(ctx, a.eventBridgeAddr); err != nil {
			return fmt.Errorf("failed to start eventbridge: %w", err)
		}
		defer a.bridge.Close(ctx)
	}

	err := a.seq.Run(ctx)
	a.logger.Debug("app run finished", "error", err)
	return err
}
