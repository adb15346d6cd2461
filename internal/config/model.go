package config

import "github.com/zclconf/go-cty/cty"

// ErrorPolicy is the declarative form of sequence.ErrorPolicy. It is a
// string in the model so loaders can read it straight off a file without
// reaching into the engine package.
type ErrorPolicy string

const (
	ErrorPolicyContinue ErrorPolicy = "continue"
	ErrorPolicyAbort    ErrorPolicy = "abort"
)

// TaskSpec is the format-agnostic declaration of one task: its identity,
// its place in the graph, and its retry/priority/error policy. Action is a
// key into a Go action registry supplied by the caller at bind time, not a
// callable itself — the declarative file only ever describes graph shape
// and policy.
type TaskSpec struct {
	ID           string
	Action       string
	Parents      []string
	RetryCount   int
	RetryDelayMs int
	OnError      ErrorPolicy
	Priority     int
	// Params carries the task's scalar arguments, evaluated from whatever
	// expression syntax the loader's format uses into cty.Value so every
	// action factory receives them in one common shape regardless of which
	// loader produced them.
	Params map[string]cty.Value
}

// SequenceConfig is the unified, format-agnostic model a Loader produces.
type SequenceConfig struct {
	MaxConcurrency  int
	Verbose         bool
	LogLevel        string
	LogFormat       string
	HealthcheckPort int
	// EventBridgeAddr, if non-empty, starts a Socket.IO server at this
	// address (e.g. ":4001") that rebroadcasts every sequence.Event for
	// out-of-process renderers. Empty disables it.
	EventBridgeAddr string
	Tasks           []TaskSpec
}
