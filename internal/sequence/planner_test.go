package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlan_LevelsFollowLongestPath(t *testing.T) {
	g, err := Build([]TaskDescriptor{
		{ID: "root", Action: noopAction},
		{ID: "left", Action: noopAction, Parents: []string{"root"}},
		{ID: "right", Action: noopAction, Parents: []string{"root"}},
		{ID: "join", Action: noopAction, Parents: []string{"left", "right"}},
	})
	require.NoError(t, err)

	p, err := Plan(g)
	require.NoError(t, err)
	require.Equal(t, 2, p.maxLevel)
	require.Equal(t, 0, p.level["root"])
	require.Equal(t, 1, p.level["left"])
	require.Equal(t, 1, p.level["right"])
	require.Equal(t, 2, p.level["join"])
	require.Len(t, p.byLevel[0], 1)
	require.Len(t, p.byLevel[1], 2)
	require.Len(t, p.byLevel[2], 1)
}

func TestPlan_PriorityOrdersReadyNodesAtSameLevel(t *testing.T) {
	g, err := Build([]TaskDescriptor{
		{ID: "low", Action: noopAction, Priority: 1},
		{ID: "high", Action: noopAction, Priority: 10},
		{ID: "mid", Action: noopAction, Priority: 5},
	})
	require.NoError(t, err)

	p, err := Plan(g)
	require.NoError(t, err)
	require.Len(t, p.order, 3)
	require.Equal(t, "high", p.order[0].id)
	require.Equal(t, "mid", p.order[1].id)
	require.Equal(t, "low", p.order[2].id)
}

func TestPlan_EqualPriorityBreaksTiesByInsertionOrder(t *testing.T) {
	g, err := Build([]TaskDescriptor{
		{ID: "first", Action: noopAction, Priority: 5},
		{ID: "second", Action: noopAction, Priority: 5},
		{ID: "third", Action: noopAction, Priority: 5},
	})
	require.NoError(t, err)

	p, err := Plan(g)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, nodeIDs(p.order))
}

func TestPlan_ByLevelSortsByPriorityAcrossDifferentParentChains(t *testing.T) {
	// "eagerRoot" outranks everything and pops from the ready heap first, so
	// "eagerChild" becomes ready and gets compared only against "slowRoot"
	// (priority 1) — winning that comparison and popping well before
	// "slowRoot" is done and "slowChild" is even pushed onto the heap.
	// "eagerChild" and "slowChild" are therefore never compared against each
	// other during Kahn's algorithm, even though they land in the same
	// level; byLevel must still rank "slowChild" first since it independently
	// sorts each level by priority instead of trusting that incidental pop
	// order.
	g, err := Build([]TaskDescriptor{
		{ID: "eagerRoot", Action: noopAction, Priority: 1000},
		{ID: "slowRoot", Action: noopAction, Priority: 1},
		{ID: "eagerChild", Action: noopAction, Priority: 50, Parents: []string{"eagerRoot"}},
		{ID: "slowChild", Action: noopAction, Priority: 200, Parents: []string{"slowRoot"}},
	})
	require.NoError(t, err)

	p, err := Plan(g)
	require.NoError(t, err)

	require.Equal(t, []string{"slowChild", "eagerChild"}, nodeIDs(p.byLevel[1]))
}

func nodeIDs(nodes []*node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.id
	}
	return ids
}
