// Package chrometrace renders a trace report envelope into the Chrome
// trace-event JSON format consumed by about://tracing and Perfetto.
package chrometrace

import (
	"encoding/json"
	"io"

	"github.com/buildgrind/buildgrind/pkg/report"
)

// Write emits {"traceEvents": [...]} with one complete ("X") event per
// recipe execution. Serialization is deterministic: exporting the same
// envelope twice yields byte-identical output.
func Write(w io.Writer, env *report.Envelope) error {
	payload, ok := env.Payload.(*report.Trace)
	if !ok {
		panic("chrometrace: envelope payload is not a trace")
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
