// Package callgrind renders a callgrind report envelope into the callgrind
// text format, with directories as objects, recipes as functions and
// dependency edges as calls.
package callgrind

import (
	"bufio"
	"fmt"
	"io"

	"github.com/buildgrind/buildgrind/pkg/report"
)

// Write emits the callgrind file: the mandatory header lines followed by one
// block per function with its summed self cost and one calls block per
// dependency edge. Costs are integer microseconds. Output is byte-identical
// for identical envelopes.
func Write(w io.Writer, env *report.Envelope) error {
	payload, ok := env.Payload.(*report.Callgrind)
	if !ok {
		panic("callgrind: envelope payload is not a callgrind profile")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# callgrind format\n")
	fmt.Fprintf(bw, "version: 1\n")
	fmt.Fprintf(bw, "cmd: %s\n", payload.Command)
	fmt.Fprintf(bw, "positions: line\n")
	fmt.Fprintf(bw, "events: Duration\n")

	for _, object := range payload.Objects {
		for _, fn := range object.Functions {
			fmt.Fprintf(bw, "\nob=%s\n", object.Dir)
			fmt.Fprintf(bw, "fl=%s\n", object.Dir)
			fmt.Fprintf(bw, "fn=%s\n", fn.Recipe)
			fmt.Fprintf(bw, "%d %d\n", fn.Line, fn.SelfCost)
			for _, call := range fn.Calls {
				fmt.Fprintf(bw, "cob=%s\n", call.Dir)
				fmt.Fprintf(bw, "cfl=%s\n", call.Dir)
				fmt.Fprintf(bw, "cfn=%s\n", call.Recipe)
				fmt.Fprintf(bw, "calls=1 %d\n", call.Line)
				fmt.Fprintf(bw, "%d %d\n", fn.Line, call.Cost)
			}
		}
	}

	return bw.Flush()
}
