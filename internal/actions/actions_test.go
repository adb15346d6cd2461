package actions

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestDefaultRegistry_BindsKnownActions(t *testing.T) {
	reg := DefaultRegistry()

	fn, ok := reg.Bind("print", map[string]cty.Value{"msg": cty.StringVal("hello")})
	require.True(t, ok)
	_, err := fn(context.Background(), nil)
	require.NoError(t, err)
}

func TestDefaultRegistry_UnknownActionNotOK(t *testing.T) {
	reg := DefaultRegistry()
	_, ok := reg.Bind("does-not-exist", nil)
	require.False(t, ok)
}

func TestEnvLookupFactory_ResolvesSetVariable(t *testing.T) {
	t.Setenv("DAGSEQ_TEST_VAR", "value-123")

	fn := EnvLookupFactory(map[string]cty.Value{"key": cty.StringVal("DAGSEQ_TEST_VAR")})
	artifact, err := fn(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "value-123", artifact)
}

func TestEnvLookupFactory_FallsBackToDefault(t *testing.T) {
	os.Unsetenv("DAGSEQ_TEST_VAR_MISSING")

	fn := EnvLookupFactory(map[string]cty.Value{
		"key":     cty.StringVal("DAGSEQ_TEST_VAR_MISSING"),
		"default": cty.StringVal("fallback"),
	})
	artifact, err := fn(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "fallback", artifact)
}

func TestEnvLookupFactory_ErrorsWhenUnsetAndNoDefault(t *testing.T) {
	os.Unsetenv("DAGSEQ_TEST_VAR_MISSING")

	fn := EnvLookupFactory(map[string]cty.Value{"key": cty.StringVal("DAGSEQ_TEST_VAR_MISSING")})
	_, err := fn(context.Background(), nil)
	require.Error(t, err)
}

func TestEnvLookupFactory_MissingKeyParam(t *testing.T) {
	fn := EnvLookupFactory(nil)
	_, err := fn(context.Background(), nil)
	require.Error(t, err)
}
