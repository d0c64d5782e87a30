package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML renders the envelope as structured text: the key/name/date
// header followed by the payload, both as top-level mappings. Field order
// follows struct declaration order, so output is stable and human-diffable.
// An envelope without a payload is a contract violation and panics.
func WriteYAML(w io.Writer, env *Envelope) error {
	if env.Payload == nil {
		panic("report: envelope has no payload")
	}

	head, err := yaml.Marshal(env)
	if err != nil {
		return err
	}
	body, err := yaml.Marshal(env.Payload)
	if err != nil {
		return err
	}

	if _, err := w.Write(head); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}
