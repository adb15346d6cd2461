package eventbridge

import (
	"context"
	"fmt"

	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/dagseq/internal/ctxlog"
	"github.com/vk/dagseq/internal/sequence"
)

// eventName is the Socket.IO event every wireEvent is emitted under, on the
// "sequence" namespace.
const eventName = "sequence:event"

// wireEvent is the JSON shape broadcast to subscribers, decoupled from
// sequence.Event's Go-side layout so the wire format stays stable even if
// internal field names change.
type wireEvent struct {
	Seq        int64  `json:"seq"`
	Kind       string `json:"kind"`
	AtUnixMs   int64  `json:"at_unix_ms"`
	TaskID     string `json:"task_id,omitempty"`
	Attempt    int    `json:"attempt,omitempty"`
	Attempts   int    `json:"attempts,omitempty"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
	OK         bool   `json:"ok,omitempty"`
	Failures   int    `json:"failures,omitempty"`
}

func toWireEvent(e sequence.Event) wireEvent {
	return wireEvent{
		Seq:        e.Seq,
		Kind:       e.Kind.String(),
		AtUnixMs:   e.At.UnixMilli(),
		TaskID:     e.TaskID,
		Attempt:    e.Attempt,
		Attempts:   e.Attempts,
		Message:    e.Message,
		DurationMs: e.DurationMs,
		OK:         e.OK,
		Failures:   e.Failures,
	}
}

// Bridge hosts a Socket.IO server and rebroadcasts every Event it receives
// to every client connected to the "sequence" namespace.
type Bridge struct {
	io        *socket.Server
	webServer *types.HttpServer
	nsp       socket.Namespace
}

// New creates a Bridge bound to no transport yet; call Listen to start
// serving.
func New() *Bridge {
	io := socket.NewServer(nil, nil)
	nsp := io.Of("/sequence", nil)

	return &Bridge{io: io, nsp: nsp}
}

// Subscriber returns the sequence.Subscriber to pass to Sequence.Subscribe.
// Delivery is best-effort: a slow or disconnected client never blocks the
// driving goroutine, since socket.IO's Emit enqueues asynchronously.
func (b *Bridge) Subscriber() sequence.Subscriber {
	return func(e sequence.Event) {
		b.nsp.Emit(eventName, toWireEvent(e))
	}
}

// Listen attaches the Socket.IO server to a fresh HTTP server and starts
// listening on addr (e.g. ":4001") on a background goroutine. It returns
// immediately, without waiting for the listener to be bound, and always
// returns nil: a bind failure is not reported to the caller.
func (b *Bridge) Listen(ctx context.Context, addr string) error {
	logger := ctxlog.FromContext(ctx)

	b.webServer = types.NewWebServer(nil)
	b.io.Attach(b.webServer, nil)

	logger.Info("eventbridge: socket.io server starting", "address", addr)
	go b.webServer.Listen(addr, nil)
	return nil
}

// Close shuts down the Socket.IO server and its underlying HTTP listener.
func (b *Bridge) Close(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("eventbridge: closing socket.io server")

	var closeErr error
	b.io.Close(func(err error) { closeErr = err })
	if closeErr != nil {
		return fmt.Errorf("eventbridge: close: %w", closeErr)
	}
	return nil
}
