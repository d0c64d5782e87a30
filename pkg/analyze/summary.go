package analyze

import (
	"math"
	"time"

	"github.com/buildgrind/buildgrind/pkg/buildgraph"
	"github.com/buildgrind/buildgrind/pkg/report"
)

// Summary reports global build statistics: wall-clock span, total accounted
// CPU time, node and failure counts, and the critical-path duration.
func (a *Analyzer) Summary() (*report.Envelope, error) {
	if err := a.check(); err != nil {
		return nil, err
	}

	var (
		minStart time.Time
		maxEnd   time.Time
		cpu      time.Duration
		failures int
	)
	for i, node := range a.g.Nodes() {
		if i == 0 || node.Start.Before(minStart) {
			minStart = node.Start
		}
		if end := node.End(); i == 0 || end.After(maxEnd) {
			maxEnd = end
		}
		cpu += node.Duration
		if node.Status == buildgraph.StatusFailure {
			failures++
		}
	}

	critical, err := a.criticalPathDuration()
	if err != nil {
		return nil, err
	}

	wall := maxEnd.Sub(minStart)
	parallelism := 0.0
	if wall > 0 {
		parallelism = math.Round(1000*float64(cpu)/float64(wall)) / 1000
	}

	return &report.Envelope{
		Key:  report.KeySummary,
		Name: "Summary",
		Date: minStart,
		Payload: &report.Summary{
			Total:        report.Duration(wall),
			CPU:          report.Duration(cpu),
			Targets:      a.g.Len(),
			Dependencies: a.g.NumEdges(),
			Failures:     failures,
			CriticalPath: report.Duration(critical),
			Parallelism:  parallelism,
		},
	}, nil
}
