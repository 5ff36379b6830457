// Where: internal/domain/emr/document.go
// What: Loosely-typed cluster configuration documents.
// Why: RunJobFlow requests carry many fields we pass through untouched; only a few are merged.
package emr

import (
	"encoding/json"
	"fmt"
)

// Well-known RunJobFlow fields written by the resolver and tag merger.
const (
	FieldName                  = "Name"
	FieldLogURI                = "LogUri"
	FieldJobFlowRole           = "JobFlowRole"
	FieldServiceRole           = "ServiceRole"
	FieldAutoScalingRole       = "AutoScalingRole"
	FieldInstances             = "Instances"
	FieldMasterSecurityGroup   = "EmrManagedMasterSecurityGroup"
	FieldSlaveSecurityGroup    = "EmrManagedSlaveSecurityGroup"
	FieldServiceAccessGroup    = "ServiceAccessSecurityGroup"
	FieldSecurityConfiguration = "SecurityConfiguration"
	FieldTags                  = "Tags"
	FieldClusterConfiguration  = "ClusterConfiguration"
	FieldTagKey                = "Key"
	FieldTagValue              = "Value"
)

// Document is a decoded JSON object.
type Document map[string]any

// DecodeDocument parses a JSON object. Any other JSON value is rejected.
func DecodeDocument(raw []byte) (Document, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	doc, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", typeName(value))
	}
	return Document(doc), nil
}

// Object returns the nested object stored at key.
func (d Document) Object(key string) (Document, error) {
	value, ok := d[key]
	if !ok {
		return nil, fmt.Errorf("missing %q", key)
	}
	nested, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q must be an object, got %s", key, typeName(value))
	}
	return Document(nested), nil
}

// Clone returns a deep copy so callers can mutate without touching the source.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(deepCopy(map[string]any(d)).(map[string]any))
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case Document:
		return deepCopy(map[string]any(v))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any, Document:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
