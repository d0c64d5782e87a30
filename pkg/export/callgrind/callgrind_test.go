package callgrind_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/buildgrind/buildgrind/pkg/export/callgrind"
	"github.com/buildgrind/buildgrind/pkg/report"
)

func envelope() *report.Envelope {
	return &report.Envelope{
		Key:  report.KeyCallgrind,
		Name: "Callgrind",
		Date: time.Unix(1700000000, 0).UTC(),
		Payload: &report.Callgrind{
			Command: "make all",
			Objects: []report.CallgrindObject{{
				Dir: "src",
				Functions: []report.CallgrindFunction{{
					Recipe:   "compile",
					Line:     1,
					SelfCost: 5000000,
				}, {
					Recipe:   "link",
					Line:     2,
					SelfCost: 3000000,
					Calls: []report.CallgrindCall{{
						Dir:    "src",
						Recipe: "compile",
						Line:   1,
						Cost:   5000000,
					}},
				}},
			}},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, callgrind.Write(&buf, envelope()))

	expected := `# callgrind format
version: 1
cmd: make all
positions: line
events: Duration

ob=src
fl=src
fn=compile
1 5000000

ob=src
fl=src
fn=link
2 3000000
cob=src
cfl=src
cfn=compile
calls=1 1
2 5000000
`
	require.Equal(t, expected, buf.String())
}

func TestWriteDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, callgrind.Write(&first, envelope()))
	require.NoError(t, callgrind.Write(&second, envelope()))
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestWritePanicsOnWrongPayload(t *testing.T) {
	require.Panics(t, func() {
		_ = callgrind.Write(&bytes.Buffer{}, &report.Envelope{
			Key:     report.KeyCallgrind,
			Payload: &report.Summary{},
		})
	})
}
