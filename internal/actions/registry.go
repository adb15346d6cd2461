package actions

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/dagseq/internal/sequence"
)

// Factory builds a sequence.ActionFunc bound to one task's params.
type Factory func(params map[string]cty.Value) sequence.ActionFunc

// Registry maps an action name (as declared in a task's "action" field) to
// the Factory that builds it.
type Registry map[string]Factory

// Bind looks up name and builds the bound ActionFunc. The bool return is
// false if name isn't registered.
func (r Registry) Bind(name string, params map[string]cty.Value) (sequence.ActionFunc, bool) {
	factory, ok := r[name]
	if !ok {
		return nil, false
	}
	return factory(params), true
}

// DefaultRegistry returns the registry carrying this module's built-in
// example actions.
func DefaultRegistry() Registry {
	return Registry{
		"print":      PrintFactory,
		"env_lookup": EnvLookupFactory,
	}
}

func paramString(params map[string]cty.Value, name string) (string, error) {
	v, ok := params[name]
	if !ok {
		return "", fmt.Errorf("missing required param %q", name)
	}
	if v.Type() != cty.String {
		return "", fmt.Errorf("param %q must be a string", name)
	}
	return v.AsString(), nil
}
