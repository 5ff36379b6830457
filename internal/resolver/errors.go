// Where: internal/resolver/errors.go
// What: Error taxonomy for configuration resolution.
// Why: Callers must tell missing inputs (terminal) from store outages (retryable).
package resolver

import (
	"errors"
	"fmt"
)

// ProfileNotFoundError means no profile exists at namespace/name.
type ProfileNotFoundError struct {
	Namespace string
	Name      string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("ProfileNotFound: %s/%s", e.Namespace, e.Name)
}

// ErrorType is the name reported to Step Functions.
func (e *ProfileNotFoundError) ErrorType() string { return "EMRProfileNotFoundError" }

// ConfigurationNotFoundError means no configuration template exists at namespace/name.
type ConfigurationNotFoundError struct {
	Namespace string
	Name      string
}

func (e *ConfigurationNotFoundError) Error() string {
	return fmt.Sprintf("ConfigurationNotFound: %s/%s", e.Namespace, e.Name)
}

func (e *ConfigurationNotFoundError) ErrorType() string { return "ClusterConfigurationNotFoundError" }

// StructuralError wraps a malformed profile, template, or merge input.
type StructuralError struct {
	Subject string
	Err     error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Subject, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a profile or configuration not-found error.
func IsNotFound(err error) bool {
	var profileErr *ProfileNotFoundError
	var configErr *ConfigurationNotFoundError
	return errors.As(err, &profileErr) || errors.As(err, &configErr)
}

// IsTerminal reports whether retrying the same request cannot succeed.
// Store access failures are not terminal.
func IsTerminal(err error) bool {
	var structural *StructuralError
	return IsNotFound(err) || errors.As(err, &structural)
}
