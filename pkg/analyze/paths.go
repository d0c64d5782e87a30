package analyze

import (
	"slices"
	"time"

	"github.com/buildgrind/buildgrind/pkg/report"
)

// pathCandidate is a path from one node down to a sink, node first, with the
// summed duration of everything on it.
type pathCandidate struct {
	total time.Duration
	path  []string
}

// better orders candidates by descending duration, ties broken by the
// lexicographic order of the full node sequence.
func better(a, b pathCandidate) int {
	if a.total != b.total {
		if a.total > b.total {
			return -1
		}
		return 1
	}
	return slices.Compare(a.path, b.path)
}

// kBestPaths runs the longest-path dynamic program over the topological
// order, keeping up to k candidates per node:
//
//	longest[n] = duration(n) + max(longest[dep] for dep in dependencies(n))
//
// with longest[n] = duration(n) for sinks. Cumulative duration sums node
// durations, not wall-clock spans: parallel branches overlap in time but
// each still consumes accounted duration. Paths are distinct by their full
// node sequence.
func (a *Analyzer) kBestPaths(k int) ([]pathCandidate, error) {
	order, err := a.topoOrder()
	if err != nil {
		return nil, err
	}

	bests := make(map[string][]pathCandidate, len(order))
	for _, id := range order {
		node, _ := a.g.Node(id)
		deps := a.g.Dependencies(id)
		if len(deps) == 0 {
			bests[id] = []pathCandidate{{total: node.Duration, path: []string{id}}}
			continue
		}
		var cands []pathCandidate
		for _, dep := range deps {
			for _, c := range bests[dep] {
				path := make([]string, 0, len(c.path)+1)
				path = append(path, id)
				path = append(path, c.path...)
				cands = append(cands, pathCandidate{total: node.Duration + c.total, path: path})
			}
		}
		slices.SortFunc(cands, better)
		if len(cands) > k {
			cands = cands[:k]
		}
		bests[id] = cands
	}

	var top []pathCandidate
	for _, root := range a.g.Roots() {
		top = append(top, bests[root]...)
	}
	slices.SortFunc(top, better)
	if len(top) > k {
		top = top[:k]
	}
	return top, nil
}

// criticalPathDuration returns the cumulative duration of the single
// heaviest root-to-sink path.
func (a *Analyzer) criticalPathDuration() (time.Duration, error) {
	top, err := a.kBestPaths(1)
	if err != nil {
		return 0, err
	}
	if len(top) == 0 {
		return 0, nil
	}
	return top[0].total, nil
}

// CriticalPaths reports the top-k root-to-sink paths by cumulative duration,
// descending, ties broken by path node sequence.
func (a *Analyzer) CriticalPaths(k int) (*report.Envelope, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	if k < 1 {
		k = 1
	}

	top, err := a.kBestPaths(k)
	if err != nil {
		return nil, err
	}

	payload := &report.Paths{Count: len(top)}
	for _, cand := range top {
		entry := report.Path{
			Length: len(cand.path),
			Total:  report.Duration(cand.total),
		}
		for _, id := range cand.path {
			node, _ := a.g.Node(id)
			entry.Targets = append(entry.Targets, report.PathTarget{
				Target:   node.ID,
				Recipe:   node.Recipe,
				Dir:      node.Dir,
				Duration: report.Duration(node.Duration),
				Percent:  report.NewPercent(node.Duration, cand.total),
			})
		}
		payload.Paths = append(payload.Paths, entry)
	}

	return &report.Envelope{
		Key:     report.KeyPaths,
		Name:    "Top Paths",
		Date:    a.start(),
		Payload: payload,
	}, nil
}
