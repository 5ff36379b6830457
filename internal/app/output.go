// Where: internal/app/output.go
// What: Event file decoding and result rendering.
// Why: Operators write events in YAML; state machines and scripts consume JSON.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sigs.k8s.io/yaml"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// readEventFile reads a YAML or JSON event and returns it as JSON.
func readEventFile(path string) (json.RawMessage, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	converted, err := yaml.YAMLToJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("parse event %s: %w", path, err)
	}
	return json.RawMessage(converted), nil
}

// writeResult renders value in the requested format.
// YAML is produced from the JSON encoding so field names match the JSON tags.
func writeResult(out io.Writer, format string, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	switch format {
	case "", outputJSON:
		_, err = fmt.Fprintln(out, string(payload))
		return err
	case outputYAML:
		rendered, err := yaml.JSONToYAML(payload)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = out.Write(rendered)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
