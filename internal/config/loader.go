package config

import "context"

// Loader reads sequence configuration from one or more paths — a single
// file or a directory to be searched recursively, depending on the
// implementation — and translates it into the format-agnostic model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*SequenceConfig, error)
}
