package actions

import (
	"context"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/dagseq/internal/ctxlog"
	"github.com/vk/dagseq/internal/sequence"
)

// PrintFactory builds an action that logs its params (sorted by key, for
// stable output) and every parent artifact it receives, then returns nil.
func PrintFactory(params map[string]cty.Value) sequence.ActionFunc {
	return func(ctx context.Context, parentArtifacts []any) (any, error) {
		logger := ctxlog.FromContext(ctx)

		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			logger.Info("print", "param", k, "value", displayValue(params[k]))
		}
		for i, artifact := range parentArtifacts {
			logger.Info("print", "parent", i, "artifact", artifact)
		}
		return nil, nil
	}
}

func displayValue(v cty.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Bool:
		return v.True()
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f
	default:
		return v.GoString()
	}
}
