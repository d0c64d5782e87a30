// Package analyze derives performance reports from a loaded build graph:
// summary statistics, critical paths, per-directory and per-recipe
// aggregates, and the payloads feeding the format exporters. All operations
// are pure queries over the read-only graph.
package analyze

import (
	"container/heap"
	"errors"
	"time"

	"github.com/buildgrind/buildgrind/pkg/buildgraph"
)

// ErrEmptyGraph is returned by every operation when the graph has no nodes.
var ErrEmptyGraph = errors.New("analyze: empty graph")

// Analyzer answers report queries over one loaded graph.
type Analyzer struct {
	g *buildgraph.Graph
}

func New(g *buildgraph.Graph) *Analyzer {
	return &Analyzer{g: g}
}

func (a *Analyzer) check() error {
	if a.g.Len() == 0 {
		return ErrEmptyGraph
	}
	return nil
}

// start returns the earliest node start, used as the build date on report
// envelopes and as the trace time origin.
func (a *Analyzer) start() time.Time {
	var min time.Time
	for i, node := range a.g.Nodes() {
		if i == 0 || node.Start.Before(min) {
			min = node.Start
		}
	}
	return min
}

// topoOrder returns node ids via Kahn's algorithm, dependencies before
// dependents, ties among ready nodes broken lexicographically. A cycle makes
// the sort fail fast with CyclicDependencyError instead of looping; loading
// rejects cycles, so this only fires on a graph that bypassed Load.
func (a *Analyzer) topoOrder() ([]string, error) {
	remaining := make(map[string]int, a.g.Len())
	ready := &stringHeap{}
	for _, node := range a.g.Nodes() {
		deps := a.g.Dependencies(node.ID)
		remaining[node.ID] = len(deps)
		if len(deps) == 0 {
			heap.Push(ready, node.ID)
		}
	}

	order := make([]string, 0, a.g.Len())
	for ready.Len() > 0 {
		id := heap.Pop(ready).(string)
		order = append(order, id)
		for _, dependent := range a.g.Dependents(id) {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				heap.Push(ready, dependent)
			}
		}
	}

	if len(order) < a.g.Len() {
		return nil, &buildgraph.CyclicDependencyError{Cycle: a.g.FindCycle()}
	}
	return order, nil
}

type stringHeap []string

func (h stringHeap) Len() int           { return len(h) }
func (h stringHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h stringHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *stringHeap) Push(x any)        { *h = append(*h, x.(string)) }
func (h *stringHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
