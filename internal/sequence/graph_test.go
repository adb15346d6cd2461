package sequence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func noopAction(ctx context.Context, in []any) (any, error) {
	return nil, nil
}

func TestBuild_LinksParentsAndChildren(t *testing.T) {
	g, err := Build([]TaskDescriptor{
		{ID: "a", Action: noopAction},
		{ID: "b", Action: noopAction, Parents: []string{"a"}},
		{ID: "c", Action: noopAction, Parents: []string{"a", "b"}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, g.NodeCount())

	a := g.byID["a"]
	b := g.byID["b"]
	c := g.byID["c"]
	require.Len(t, a.children, 2)
	require.Len(t, b.parents, 1)
	require.Same(t, a, b.parents[0])
	require.Len(t, c.parents, 2)
}

func TestBuild_DuplicateTaskID(t *testing.T) {
	_, err := Build([]TaskDescriptor{
		{ID: "a", Action: noopAction},
		{ID: "a", Action: noopAction},
	})
	require.Error(t, err)
	var dup *DuplicateTaskIDError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "a", dup.ID)
}

func TestBuild_UnknownDependency(t *testing.T) {
	_, err := Build([]TaskDescriptor{
		{ID: "a", Action: noopAction, Parents: []string{"ghost"}},
	})
	require.Error(t, err)
	var unknown *UnknownDependencyError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "a", unknown.Child)
	require.Equal(t, "ghost", unknown.Parent)
}

func TestBuild_DetectsDirectCycle(t *testing.T) {
	_, err := Build([]TaskDescriptor{
		{ID: "a", Action: noopAction, Parents: []string{"b"}},
		{ID: "b", Action: noopAction, Parents: []string{"a"}},
	})
	require.Error(t, err)
	var cycle *CycleDetectedError
	require.ErrorAs(t, err, &cycle)
	require.NotEmpty(t, cycle.Involved)
}

func TestBuild_DetectsSelfCycle(t *testing.T) {
	_, err := Build([]TaskDescriptor{
		{ID: "a", Action: noopAction, Parents: []string{"a"}},
	})
	require.Error(t, err)
	var cycle *CycleDetectedError
	require.ErrorAs(t, err, &cycle)
}

func TestBuild_AcyclicDiamondHasNoError(t *testing.T) {
	_, err := Build([]TaskDescriptor{
		{ID: "root", Action: noopAction},
		{ID: "left", Action: noopAction, Parents: []string{"root"}},
		{ID: "right", Action: noopAction, Parents: []string{"root"}},
		{ID: "join", Action: noopAction, Parents: []string{"left", "right"}},
	})
	require.NoError(t, err)
}
