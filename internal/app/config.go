package app

import "errors"

// Config holds everything needed to start an App. Fields left at their zero
// value fall back to whatever the loaded sequence file declares.
type Config struct {
	// SequencePaths is one or more ".hcl" files or directories to load.
	SequencePaths []string

	MaxConcurrency  int
	Verbose         bool
	LogLevel        string
	LogFormat       string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SequencePaths) == 0 {
		return nil, errors.New("at least one sequence path is required")
	}
	return &cfg, nil
}
