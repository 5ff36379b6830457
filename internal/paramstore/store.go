// Where: internal/paramstore/store.go
// What: Key-value parameter store abstraction.
// Why: Handlers depend on a three-way lookup result instead of backend error codes.
package paramstore

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/poruru-code/emr-launch/internal/meta"
)

// Lookup is the outcome of a successful store call.
// Found=false means the key does not exist; every other failure is returned as an error.
type Lookup struct {
	Value string
	Found bool
}

// Store is a namespaced key-value store holding JSON documents.
type Store interface {
	Get(ctx context.Context, key string) (Lookup, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Key builds "{prefix}/{namespace}/{name}", defaulting the namespace.
func Key(prefix, namespace, name string) string {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = meta.DefaultNamespace
	}
	return strings.TrimRight(prefix, "/") + "/" + namespace + "/" + name
}

// Join appends path segments to prefix with single slashes.
func Join(prefix string, segments ...string) string {
	out := strings.TrimRight(prefix, "/")
	for _, segment := range segments {
		out += "/" + strings.Trim(segment, "/")
	}
	return out
}

var errNilClient = errors.New("parameter store client is nil")

// hasErrorCode reports whether err carries one of the smithy API error codes.
func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
