package report

import "time"

// Callgrind is the payload consumed by the callgrind exporter. Directories
// map to callgrind objects, recipes to functions; costs are integer
// microseconds, summed per function across repeated invocations.
type Callgrind struct {
	Command string
	Objects []CallgrindObject
}

// CallgrindObject groups the functions of one directory.
type CallgrindObject struct {
	Dir       string
	Functions []CallgrindFunction
}

// CallgrindFunction is one recipe with its accumulated self cost and the
// call edges derived from dependency edges. Line is a synthesized position:
// the 1-based ordinal of the function within its object.
type CallgrindFunction struct {
	Recipe   string
	Line     int
	SelfCost int64
	Calls    []CallgrindCall
}

// CallgrindCall is one dependency edge rendered as a call to the callee
// recipe, costing the callee's duration in microseconds.
type CallgrindCall struct {
	Dir    string
	Recipe string
	Line   int
	Cost   int64
}

// Trace is the payload consumed by the Chrome tracing exporter.
type Trace struct {
	Events []TraceEvent `json:"traceEvents"`
}

// TraceEvent is a single complete ("X") trace event. Timestamps and
// durations are microseconds; Timestamp is relative to the earliest node
// start in the build.
type TraceEvent struct {
	Phase     string    `json:"ph"`
	Timestamp int64     `json:"ts"`
	Duration  int64     `json:"dur"`
	PID       int       `json:"pid"`
	TID       int       `json:"tid"`
	Name      string    `json:"name"`
	Args      TraceArgs `json:"args"`
}

// TraceArgs carries the exit status of the recipe execution.
type TraceArgs struct {
	Status string `json:"status"`
}

// Profile is the payload consumed by the pprof exporter: one weighted stack
// per execution, leaf first.
type Profile struct {
	Samples []ProfileSample
}

// ProfileSample attributes a node's duration to its chain of dependents.
type ProfileSample struct {
	Stack []ProfileFrame
	Value time.Duration
}

// ProfileFrame is one stack frame: the target as the function, its
// directory as the file.
type ProfileFrame struct {
	Function string
	File     string
}
