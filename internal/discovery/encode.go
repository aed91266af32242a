package discovery

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes the descriptor sequence as a YAML document.
//
// Struct field order is preserved as key order and non-ASCII unit glyphs
// are emitted verbatim; nothing is reordered or escaped on the way out.
func EncodeYAML(w io.Writer, sensors []Sensor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sensors); err != nil {
		return fmt.Errorf("encoding descriptors: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing descriptor document: %w", err)
	}
	return nil
}
