// Where: internal/schema/validator.go
// What: JSON Schema validation for documents read from the parameter store.
// Why: Reject malformed profiles and templates before merging, with a path to the bad field.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/poruru-code/emr-launch/assets"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind names an embedded schema.
type Kind string

const (
	KindProfile       Kind = "profile"
	KindConfiguration Kind = "configuration"
	KindTaskToken     Kind = "task_token"
)

const schemaBaseURL = "https://emr-launch.local/schemas/"

var (
	compileMu sync.Mutex
	compiled  = map[Kind]*jsonschema.Schema{}
)

// Validate checks a decoded JSON value against the schema for kind.
func Validate(kind Kind, document any) error {
	sch, err := load(kind)
	if err != nil {
		return err
	}
	return sch.Validate(document)
}

func load(kind Kind) (*jsonschema.Schema, error) {
	compileMu.Lock()
	defer compileMu.Unlock()

	if sch, ok := compiled[kind]; ok {
		return sch, nil
	}

	name := string(kind) + ".schema.json"
	payload, err := assets.SchemasFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", kind, err)
	}

	url := schemaBaseURL + name
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	sch, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	compiled[kind] = sch
	return sch, nil
}
