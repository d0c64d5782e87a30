// Package pprofile renders a profile report envelope as a pprof profile, so
// standard pprof tooling can show where accounted build time accumulates.
package pprofile

import (
	"io"
	"time"

	"github.com/google/pprof/profile"

	"github.com/buildgrind/buildgrind/pkg/report"
)

// Write emits a gzip-compressed pprof protobuf with one duration/nanoseconds
// sample per recipe execution. Targets become functions, their directories
// become file names. The sum of sample values equals the build's total
// accounted CPU time.
func Write(w io.Writer, env *report.Envelope) error {
	payload, ok := env.Payload.(*report.Profile)
	if !ok {
		panic("pprofile: envelope payload is not a profile")
	}

	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "duration", Unit: "nanoseconds"},
		},
		TimeNanos: env.Date.UnixNano(),
	}

	functions := make(map[report.ProfileFrame]*profile.Function)
	locations := make(map[report.ProfileFrame]*profile.Location)
	location := func(frame report.ProfileFrame) *profile.Location {
		if loc, ok := locations[frame]; ok {
			return loc
		}
		fn := &profile.Function{
			ID:         uint64(len(functions) + 1),
			Name:       frame.Function,
			SystemName: frame.Function,
			Filename:   frame.File,
		}
		functions[frame] = fn
		p.Function = append(p.Function, fn)

		loc := &profile.Location{
			ID:   uint64(len(locations) + 1),
			Line: []profile.Line{{Function: fn, Line: 1}},
		}
		locations[frame] = loc
		p.Location = append(p.Location, loc)
		return loc
	}

	var total time.Duration
	for _, sample := range payload.Samples {
		stack := make([]*profile.Location, 0, len(sample.Stack))
		for _, frame := range sample.Stack {
			stack = append(stack, location(frame))
		}
		p.Sample = append(p.Sample, &profile.Sample{
			Location: stack,
			Value:    []int64{int64(sample.Value)},
		})
		total += sample.Value
	}
	p.DurationNanos = int64(total)

	return p.Write(w)
}
