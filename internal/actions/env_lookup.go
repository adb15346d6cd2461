package actions

import (
	"context"
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/dagseq/internal/sequence"
)

// EnvLookupFactory builds an action that resolves the environment variable
// named by its "key" param and returns its value as the task's artifact,
// falling back to an optional "default" param when unset.
func EnvLookupFactory(params map[string]cty.Value) sequence.ActionFunc {
	return func(ctx context.Context, parentArtifacts []any) (any, error) {
		key, err := paramString(params, "key")
		if err != nil {
			return nil, fmt.Errorf("env_lookup: %w", err)
		}

		value, ok := os.LookupEnv(key)
		if !ok {
			if def, hasDefault := params["default"]; hasDefault && def.Type() == cty.String {
				return def.AsString(), nil
			}
			return nil, fmt.Errorf("env_lookup: environment variable %q is not set", key)
		}
		return value, nil
	}
}
