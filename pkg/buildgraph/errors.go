package buildgraph

import (
	"fmt"
	"strings"
	"time"
)

// MalformedGraphError reports a structural defect in the input graph:
// an edge endpoint that references no declared node, or a duplicate node id.
type MalformedGraphError struct {
	Edge        Edge
	MissingID   string
	DuplicateID string
}

func (e *MalformedGraphError) Error() string {
	if e.DuplicateID != "" {
		return fmt.Sprintf("malformed graph: duplicate node id %q", e.DuplicateID)
	}
	return fmt.Sprintf("malformed graph: edge %s -> %s references unknown node %q",
		e.Edge.From, e.Edge.To, e.MissingID)
}

// CyclicDependencyError reports a directed cycle in the dependency graph.
// Cycle holds the offending node sequence; the first id is repeated at the
// end to close the loop.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency: %s", strings.Join(e.Cycle, " -> "))
}

// InvalidTimingError reports a node with a negative or missing recorded
// duration.
type InvalidTimingError struct {
	NodeID   string
	Duration time.Duration
}

func (e *InvalidTimingError) Error() string {
	if e.Duration < 0 {
		return fmt.Sprintf("invalid timing: node %q has negative duration %s", e.NodeID, e.Duration)
	}
	return fmt.Sprintf("invalid timing: node %q has no recorded duration", e.NodeID)
}
