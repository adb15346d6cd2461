package sequence

import (
	"sync"
)

// node is a single vertex in the execution graph. It is owned exclusively by
// the Graph that created it. level is set by the planner; the fields under
// mu are written by the goroutine running this node's task, except that the
// driving goroutine marks a node skipped without running it.
type node struct {
	id       string
	desc     *TaskDescriptor
	index    int // insertion order, used for priority tie-breaking
	parents  []*node
	children []*node

	level int

	mu       sync.Mutex
	status   Status
	attempts int
	artifact any
	err      error
	metrics  Metrics
}

func (n *node) Status() Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.status
}

func (n *node) setStatus(s Status) {
	n.mu.Lock()
	n.status = s
	n.mu.Unlock()
}

// Graph is the validated, acyclic dependency structure built from task
// descriptors. Once built, its topology is read-only for the remainder of a
// run; only each node's own mutable fields change, and only from the one
// goroutine driving that node.
type Graph struct {
	order []*node          // insertion order
	byID  map[string]*node
}

// Build validates an ordered list of descriptors and materializes a Graph.
// Duplicate ids, unknown dependency references, and cycles all fail the
// build before any action runs.
func Build(descriptors []TaskDescriptor) (*Graph, error) {
	g := &Graph{
		byID: make(map[string]*node, len(descriptors)),
	}

	for i := range descriptors {
		d := &descriptors[i]
		if _, exists := g.byID[d.ID]; exists {
			return nil, &DuplicateTaskIDError{ID: d.ID}
		}
		n := &node{id: d.ID, desc: d, index: i, status: StatusPending}
		g.byID[d.ID] = n
		g.order = append(g.order, n)
	}

	for _, n := range g.order {
		for _, parentID := range n.desc.Parents {
			parent, ok := g.byID[parentID]
			if !ok {
				return nil, &UnknownDependencyError{Child: n.id, Parent: parentID}
			}
			n.parents = append(n.parents, parent)
			parent.children = append(parent.children, n)
		}
	}

	if err := g.detectCycles(); err != nil {
		return nil, err
	}

	return g, nil
}

// detectCycles runs classic three-color DFS over the dependency edges.
func (g *Graph) detectCycles() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	color := make(map[string]int, len(g.order))

	var involved []string
	var visit func(n *node) bool
	visit = func(n *node) bool {
		color[n.id] = visiting
		for _, child := range n.children {
			switch color[child.id] {
			case visiting:
				involved = append(involved, child.id)
				return true
			case unvisited:
				if visit(child) {
					return true
				}
			}
		}
		color[n.id] = done
		return false
	}

	for _, n := range g.order {
		if color[n.id] == unvisited {
			if visit(n) {
				involved = append(involved, n.id)
				return &CycleDetectedError{Involved: involved}
			}
		}
	}
	return nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.order)
}
