package sequence

import (
	"container/heap"
	"sort"
)

// plan is the planner's output: a priority-respecting topological order and
// a level assignment (longest dependency-path length from any root) for
// every node.
type plan struct {
	order    []*node
	level    map[string]int
	maxLevel int
	byLevel  map[int][]*node
}

// readyHeap orders nodes by descending priority, breaking ties by ascending
// insertion order (earliest registered first). It never reorders across a
// dependency edge: it only ever contains nodes whose dependencies are
// already satisfied.
type readyHeap []*node

func (h readyHeap) Len() int { return len(h) }
func (h readyHeap) Less(i, j int) bool {
	if h[i].desc.Priority != h[j].desc.Priority {
		return h[i].desc.Priority > h[j].desc.Priority
	}
	return h[i].index < h[j].index
}
func (h readyHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *readyHeap) Push(x any)         { *h = append(*h, x.(*node)) }
func (h *readyHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Plan computes the priority-aware topological order and level assignment
// for every node in g. It fails defensively with CycleDetectedError if the
// output doesn't cover every node; Build should already have rejected cycles.
func Plan(g *Graph) (*plan, error) {
	inDegree := make(map[string]int, len(g.order))
	for _, n := range g.order {
		inDegree[n.id] = len(n.parents)
	}

	h := &readyHeap{}
	heap.Init(h)
	for _, n := range g.order {
		if inDegree[n.id] == 0 {
			heap.Push(h, n)
		}
	}

	order := make([]*node, 0, len(g.order))
	for h.Len() > 0 {
		n := heap.Pop(h).(*node)
		order = append(order, n)
		for _, child := range n.children {
			inDegree[child.id]--
			if inDegree[child.id] == 0 {
				heap.Push(h, child)
			}
		}
	}

	if len(order) != len(g.order) {
		var involved []string
		for id, deg := range inDegree {
			if deg > 0 {
				involved = append(involved, id)
			}
		}
		return nil, &CycleDetectedError{Involved: involved}
	}

	level := make(map[string]int, len(order))
	maxLevel := 0
	for _, n := range order {
		l := 0
		for _, parent := range n.parents {
			if pl := level[parent.id] + 1; pl > l {
				l = pl
			}
		}
		level[n.id] = l
		n.level = l
		if l > maxLevel {
			maxLevel = l
		}
	}

	byLevel := make(map[int][]*node, maxLevel+1)
	for _, n := range order {
		byLevel[n.level] = append(byLevel[n.level], n)
	}
	// The Kahn's-algorithm pop order above only compares nodes that are
	// simultaneously in the ready heap. A node can become ready and get
	// popped before a same-level sibling further down a different parent
	// chain is even pushed, so the two are never compared against each
	// other there. The driver treats every node in a level as ready
	// together at the level barrier, so each level's slice needs its own
	// priority sort rather than inheriting the global pop order.
	for l, nodes := range byLevel {
		sort.SliceStable(nodes, func(i, j int) bool {
			if nodes[i].desc.Priority != nodes[j].desc.Priority {
				return nodes[i].desc.Priority > nodes[j].desc.Priority
			}
			return nodes[i].index < nodes[j].index
		})
		byLevel[l] = nodes
	}

	return &plan{order: order, level: level, maxLevel: maxLevel, byLevel: byLevel}, nil
}
