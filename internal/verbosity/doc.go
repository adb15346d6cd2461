// Package verbosity renders human-readable, color-coded progress lines for
// a running sequence: info, success, warning, and error lines carrying an
// ISO-8601 timestamp and a "+Δs" offset from the sequence's start instant.
//
// A Printer is a pure consumer of the sequence's event stream — it never
// touches engine state — so it is freely swappable for an out-of-process
// renderer.
package verbosity
