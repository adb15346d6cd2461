package hclconfig

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/dagseq/internal/config"
	"github.com/vk/dagseq/internal/ctxlog"
	"github.com/vk/dagseq/internal/fsutil"
)

// Loader reads sequence configuration from ".hcl" files.
type Loader struct{}

// NewLoader creates an HCL sequence Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. Each path may be a single ".hcl" file or a
// directory, searched recursively for ".hcl" files. Task and sequence
// blocks from every file are merged; later sequence blocks only override
// fields they set to a non-zero value, so a directory of files can split
// run-wide policy from task declarations.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.SequenceConfig, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("hclconfig: %w", err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("hclconfig: failed to search %s: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}
	logger.Debug("hclconfig: resolved sequence files", "count", len(files))

	out := &config.SequenceConfig{}
	parser := hclparse.NewParser()
	for _, file := range files {
		if err := l.loadFile(parser, file, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (l *Loader) loadFile(parser *hclparse.Parser, path string, out *config.SequenceConfig) error {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("hclconfig: failed to parse %s: %w", path, diags)
	}

	var parsed fileSchema
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("hclconfig: failed to decode %s: %w", path, diags)
	}

	if parsed.Sequence != nil {
		mergeSequenceBlock(out, parsed.Sequence)
	}

	for _, t := range parsed.Tasks {
		spec, err := translateTask(t)
		if err != nil {
			return fmt.Errorf("hclconfig: task %q in %s: %w", t.ID, path, err)
		}
		out.Tasks = append(out.Tasks, spec)
	}

	return nil
}

func mergeSequenceBlock(out *config.SequenceConfig, b *sequenceBlock) {
	if b.MaxConcurrency != 0 {
		out.MaxConcurrency = b.MaxConcurrency
	}
	if b.Verbose {
		out.Verbose = true
	}
	if b.LogLevel != "" {
		out.LogLevel = b.LogLevel
	}
	if b.LogFormat != "" {
		out.LogFormat = b.LogFormat
	}
	if b.HealthcheckPort != 0 {
		out.HealthcheckPort = b.HealthcheckPort
	}
	if b.EventBridgeAddr != "" {
		out.EventBridgeAddr = b.EventBridgeAddr
	}
}

func translateTask(t *taskBlock) (config.TaskSpec, error) {
	onError := config.ErrorPolicyContinue
	switch t.OnError {
	case "", string(config.ErrorPolicyContinue):
		onError = config.ErrorPolicyContinue
	case string(config.ErrorPolicyAbort):
		onError = config.ErrorPolicyAbort
	default:
		return config.TaskSpec{}, fmt.Errorf("invalid on_error %q: must be %q or %q", t.OnError, config.ErrorPolicyContinue, config.ErrorPolicyAbort)
	}

	params, err := extractParams(t.Params)
	if err != nil {
		return config.TaskSpec{}, err
	}

	return config.TaskSpec{
		ID:           t.ID,
		Action:       t.Action,
		Parents:      t.DependsOn,
		RetryCount:   t.RetryCount,
		RetryDelayMs: t.RetryDelayMs,
		OnError:      onError,
		Priority:     t.Priority,
		Params:       params,
	}, nil
}

// extractParams evaluates a task's "params" block attributes into
// cty.Value. Only literal expressions are supported — the declarative file
// supplies static arguments, not cross-task variable references.
func extractParams(b *paramsBlock) (map[string]cty.Value, error) {
	if b == nil || b.Body == nil {
		return nil, nil
	}
	attrs, diags := b.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid params block: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(&hcl.EvalContext{})
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid param %q: %w", name, diags)
		}
		values[name] = val
	}
	return values, nil
}
