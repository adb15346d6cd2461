// Package eventbridge rebrokers a sequence's Event stream over Socket.IO so
// an out-of-process renderer (a web dashboard, a TUI client) can observe a
// run without linking against the engine itself. It is a pure consumer of
// the Observation Surface: it never touches sequence or graph internals.
package eventbridge
