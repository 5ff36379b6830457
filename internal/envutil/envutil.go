// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru-code/emr-launch/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining the project prefix with the given suffix.
// Example: HostEnvKey("LOG_LEVEL") returns "EMR_LAUNCH_LOG_LEVEL"
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv retrieves a trimmed host-level environment variable.
// Example: GetHostEnv("LOG_LEVEL") returns the value of EMR_LAUNCH_LOG_LEVEL
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}
