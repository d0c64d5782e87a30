package analyze

import (
	"sort"
	"time"

	"github.com/buildgrind/buildgrind/pkg/buildgraph"
	"github.com/buildgrind/buildgrind/pkg/report"
)

type functionKey struct {
	dir    string
	recipe string
}

// Callgrind builds the callgrind export payload: directories become objects,
// recipes become functions, and self costs are summed in microseconds across
// repeated invocations of the same recipe. Dependency edges become call
// entries costing the callee's duration. Command is the cmd: header value.
func (a *Analyzer) Callgrind(command string) (*report.Envelope, error) {
	if err := a.check(); err != nil {
		return nil, err
	}

	selfCost := make(map[functionKey]int64)
	byDir := make(map[string]map[string]struct{})
	for _, node := range a.g.Nodes() {
		key := functionKey{dir: node.Dir, recipe: node.Recipe}
		selfCost[key] += node.Duration.Microseconds()
		recipes := byDir[node.Dir]
		if recipes == nil {
			recipes = make(map[string]struct{})
			byDir[node.Dir] = recipes
		}
		recipes[node.Recipe] = struct{}{}
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	payload := &report.Callgrind{Command: command}
	lines := make(map[functionKey]int, len(selfCost))
	for _, dir := range dirs {
		recipes := make([]string, 0, len(byDir[dir]))
		for recipe := range byDir[dir] {
			recipes = append(recipes, recipe)
		}
		sort.Strings(recipes)

		object := report.CallgrindObject{Dir: dir}
		for i, recipe := range recipes {
			key := functionKey{dir: dir, recipe: recipe}
			lines[key] = i + 1
			object.Functions = append(object.Functions, report.CallgrindFunction{
				Recipe:   recipe,
				Line:     i + 1,
				SelfCost: selfCost[key],
			})
		}
		payload.Objects = append(payload.Objects, object)
	}

	// Objects and Functions are fully laid out now, so pointers into the
	// slices stay valid while call edges are attached.
	functions := make(map[functionKey]*report.CallgrindFunction, len(selfCost))
	for oi := range payload.Objects {
		object := &payload.Objects[oi]
		for fi := range object.Functions {
			fn := &object.Functions[fi]
			functions[functionKey{dir: object.Dir, recipe: fn.Recipe}] = fn
		}
	}

	for _, edge := range a.g.Edges() {
		from, _ := a.g.Node(edge.From)
		to, _ := a.g.Node(edge.To)
		fn := functions[functionKey{dir: from.Dir, recipe: from.Recipe}]
		fn.Calls = append(fn.Calls, report.CallgrindCall{
			Dir:    to.Dir,
			Recipe: to.Recipe,
			Line:   lines[functionKey{dir: to.Dir, recipe: to.Recipe}],
			Cost:   to.Duration.Microseconds(),
		})
	}

	return &report.Envelope{
		Key:     report.KeyCallgrind,
		Name:    "Callgrind",
		Date:    a.start(),
		Payload: payload,
	}, nil
}

// Trace builds the Chrome tracing payload. Timestamps are microseconds since
// the earliest node start. Directories are mapped to pids; within each
// directory overlapping executions are spread over tids by greedy lane
// assignment so parallel recipes render on separate tracks. Events are
// ordered by start time.
func (a *Analyzer) Trace() (*report.Envelope, error) {
	if err := a.check(); err != nil {
		return nil, err
	}

	origin := a.start()

	byDir := make(map[string][]*buildgraph.Node)
	for _, node := range a.g.Nodes() {
		byDir[node.Dir] = append(byDir[node.Dir], node)
	}
	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	payload := &report.Trace{Events: []report.TraceEvent{}}
	for pid, dir := range dirs {
		nodes := byDir[dir]
		sort.Slice(nodes, func(i, j int) bool {
			if !nodes[i].Start.Equal(nodes[j].Start) {
				return nodes[i].Start.Before(nodes[j].Start)
			}
			return nodes[i].ID < nodes[j].ID
		})

		var lanes []time.Time
		for _, node := range nodes {
			tid := -1
			for lane, busyUntil := range lanes {
				if !busyUntil.After(node.Start) {
					tid = lane
					break
				}
			}
			if tid == -1 {
				tid = len(lanes)
				lanes = append(lanes, time.Time{})
			}
			lanes[tid] = node.End()

			payload.Events = append(payload.Events, report.TraceEvent{
				Phase:     "X",
				Timestamp: node.Start.Sub(origin).Microseconds(),
				Duration:  node.Duration.Microseconds(),
				PID:       pid + 1,
				TID:       tid + 1,
				Name:      node.Recipe,
				Args:      report.TraceArgs{Status: string(node.Status)},
			})
		}
	}

	events := payload.Events
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp != events[j].Timestamp {
			return events[i].Timestamp < events[j].Timestamp
		}
		if events[i].PID != events[j].PID {
			return events[i].PID < events[j].PID
		}
		return events[i].TID < events[j].TID
	})

	return &report.Envelope{
		Key:     report.KeyTrace,
		Name:    "Chrome Tracing",
		Date:    origin,
		Payload: payload,
	}, nil
}

// Profile builds the pprof export payload: one sample per execution whose
// stack climbs from the node through its heaviest dependents up to a root,
// so viewers show where accounted build time accumulates. Sample values sum
// to the total CPU time of the build.
func (a *Analyzer) Profile() (*report.Envelope, error) {
	if err := a.check(); err != nil {
		return nil, err
	}

	payload := &report.Profile{}
	for _, node := range a.g.Nodes() {
		stack := []report.ProfileFrame{{Function: node.ID, File: node.Dir}}
		for id := node.ID; ; {
			next := a.heaviestDependent(id)
			if next == "" {
				break
			}
			parent, _ := a.g.Node(next)
			stack = append(stack, report.ProfileFrame{Function: parent.ID, File: parent.Dir})
			id = next
		}
		payload.Samples = append(payload.Samples, report.ProfileSample{
			Stack: stack,
			Value: node.Duration,
		})
	}

	return &report.Envelope{
		Key:     report.KeyProfile,
		Name:    "CPU Profile",
		Date:    a.start(),
		Payload: payload,
	}, nil
}

// heaviestDependent picks the dependent with the greatest duration, ties
// broken lexicographically. Returns "" for roots.
func (a *Analyzer) heaviestDependent(id string) string {
	best := ""
	var bestDur time.Duration
	for _, dependent := range a.g.Dependents(id) {
		node, _ := a.g.Node(dependent)
		if best == "" || node.Duration > bestDur {
			best = dependent
			bestDur = node.Duration
		}
	}
	return best
}
