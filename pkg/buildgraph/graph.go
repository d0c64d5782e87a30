package buildgraph

import (
	"path"
	"sort"
	"time"
)

// Status is the recorded outcome of a single recipe execution.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusSkipped Status = "skipped"
)

// Node is a single executed build recipe with recorded timing.
// Nodes are immutable once the graph is loaded.
type Node struct {
	// ID is the path of the build target this execution produced.
	ID string
	// Dir is the parent path component of ID, computed once at load time.
	Dir string
	// Recipe identifies the command that ran.
	Recipe string

	Start    time.Time
	Duration time.Duration
	Status   Status
}

// End returns the wall-clock completion time of the execution.
func (n *Node) End() time.Time {
	return n.Start.Add(n.Duration)
}

// Edge is a dependency relation: From depends on To.
type Edge struct {
	From string
	To   string
}

// Graph is the dependency DAG of build-target executions. It is constructed
// once by Load and read-only afterwards. Adjacency is kept in both directions:
// deps maps a node to its sorted dependencies, rdeps to its sorted dependents.
type Graph struct {
	nodes map[string]*Node
	order []string
	deps  map[string][]string
	rdeps map[string][]string
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes ordered by id.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Dependencies returns the sorted ids the given node depends on.
func (g *Graph) Dependencies(id string) []string {
	return g.deps[id]
}

// Dependents returns the sorted ids that depend on the given node.
func (g *Graph) Dependents(id string) []string {
	return g.rdeps[id]
}

// Roots returns the sorted ids of nodes no other node depends on.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.rdeps[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Sinks returns the sorted ids of nodes with no dependencies.
func (g *Graph) Sinks() []string {
	var sinks []string
	for _, id := range g.order {
		if len(g.deps[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	return sinks
}

// Edges returns all dependency edges sorted by (From, To).
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, from := range g.order {
		for _, to := range g.deps[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// NumEdges returns the number of dependency edges.
func (g *Graph) NumEdges() int {
	count := 0
	for _, deps := range g.deps {
		count += len(deps)
	}
	return count
}

const (
	colorUnvisited = iota
	colorOnStack
	colorDone
)

// FindCycle runs a depth-first traversal tracking the recursion stack and
// returns the first dependency cycle found as a closed node sequence, with
// the first id repeated at the end. A valid loaded graph returns nil.
func (g *Graph) FindCycle() []string {
	colors := make(map[string]int, len(g.order))
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		colors[id] = colorOnStack
		stack = append(stack, id)
		for _, dep := range g.deps[id] {
			switch colors[dep] {
			case colorOnStack:
				for i, seen := range stack {
					if seen == dep {
						cycle := append([]string{}, stack[i:]...)
						return append(cycle, dep)
					}
				}
			case colorUnvisited:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		colors[id] = colorDone
		return nil
	}

	for _, id := range g.order {
		if colors[id] != colorUnvisited {
			continue
		}
		stack = stack[:0]
		if cycle := visit(id); cycle != nil {
			return cycle
		}
	}
	return nil
}

func dirOf(id string) string {
	return path.Dir(id)
}

func sortedKeys(m map[string]*Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
