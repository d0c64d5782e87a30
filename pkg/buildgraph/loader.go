package buildgraph

import (
	"sort"
	"time"
)

// NodeRecord is the externally supplied description of a single build-target
// execution, the parsed form of the upstream build tool's profiling output.
type NodeRecord struct {
	ID        string
	Directory string
	Recipe    string
	Start     time.Time
	Duration  time.Duration
	Status    Status
}

// Load validates the supplied node and edge records and constructs the
// dependency graph. Malformed input is rejected, never repaired: a dangling
// edge endpoint or duplicate node id yields MalformedGraphError, a directed
// cycle yields CyclicDependencyError with the offending node sequence, and a
// negative duration yields InvalidTimingError. Parallel edges between the
// same pair of nodes are collapsed.
func Load(records []NodeRecord, edges []Edge) (*Graph, error) {
	nodes := make(map[string]*Node, len(records))
	for _, rec := range records {
		if _, ok := nodes[rec.ID]; ok {
			return nil, &MalformedGraphError{DuplicateID: rec.ID}
		}
		dir := rec.Directory
		if dir == "" {
			dir = dirOf(rec.ID)
		}
		nodes[rec.ID] = &Node{
			ID:       rec.ID,
			Dir:      dir,
			Recipe:   rec.Recipe,
			Start:    rec.Start,
			Duration: rec.Duration,
			Status:   rec.Status,
		}
	}

	depSets := make(map[string]map[string]struct{}, len(nodes))
	for _, e := range edges {
		if _, ok := nodes[e.From]; !ok {
			return nil, &MalformedGraphError{Edge: e, MissingID: e.From}
		}
		if _, ok := nodes[e.To]; !ok {
			return nil, &MalformedGraphError{Edge: e, MissingID: e.To}
		}
		set := depSets[e.From]
		if set == nil {
			set = make(map[string]struct{})
			depSets[e.From] = set
		}
		set[e.To] = struct{}{}
	}

	g := &Graph{
		nodes: nodes,
		order: sortedKeys(nodes),
		deps:  make(map[string][]string, len(depSets)),
		rdeps: make(map[string][]string),
	}
	for from, set := range depSets {
		deps := make([]string, 0, len(set))
		for to := range set {
			deps = append(deps, to)
			g.rdeps[to] = append(g.rdeps[to], from)
		}
		sort.Strings(deps)
		g.deps[from] = deps
	}
	for _, dependents := range g.rdeps {
		sort.Strings(dependents)
	}

	if cycle := g.FindCycle(); cycle != nil {
		return nil, &CyclicDependencyError{Cycle: cycle}
	}

	for _, id := range g.order {
		if node := g.nodes[id]; node.Duration < 0 {
			return nil, &InvalidTimingError{NodeID: id, Duration: node.Duration}
		}
	}

	return g, nil
}

