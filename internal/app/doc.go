// Package app contains the core application logic: it loads a sequence
// configuration, binds its tasks to Go actions, builds a sequence.Sequence,
// and runs it — decoupled from any particular entrypoint like a CLI.
package app
