package hclconfig

import "github.com/hashicorp/hcl/v2"

// paramsBlock captures a task's "params" block as a raw HCL body so its
// attributes can be evaluated into cty.Value without a fixed Go shape.
type paramsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// taskBlock is the HCL schema for one `task "id" { ... }` block.
type taskBlock struct {
	ID           string       `hcl:"id,label"`
	Action       string       `hcl:"action"`
	DependsOn    []string     `hcl:"depends_on,optional"`
	RetryCount   int          `hcl:"retry_count,optional"`
	RetryDelayMs int          `hcl:"retry_delay_ms,optional"`
	OnError      string       `hcl:"on_error,optional"`
	Priority     int          `hcl:"priority,optional"`
	Params       *paramsBlock `hcl:"params,block"`
}

// sequenceBlock is the HCL schema for the file's single `sequence { ... }`
// block, carrying run-wide policy rather than any individual task's.
type sequenceBlock struct {
	MaxConcurrency  int    `hcl:"max_concurrency,optional"`
	Verbose         bool   `hcl:"verbose,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	LogFormat       string `hcl:"log_format,optional"`
	HealthcheckPort int    `hcl:"healthcheck_port,optional"`
	EventBridgeAddr string `hcl:"eventbridge_addr,optional"`
}

// fileSchema is the top-level structure of one sequence file.
type fileSchema struct {
	Sequence *sequenceBlock `hcl:"sequence,block"`
	Tasks    []*taskBlock   `hcl:"task,block"`
}
