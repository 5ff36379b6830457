// Where: internal/meta/meta.go
// What: Project identity constants.
// Why: Keep names, prefixes, and directories in one place.
package meta

const (
	// Project Identity
	AppName   = "emr-launch"
	EnvPrefix = "EMR_LAUNCH"

	// Directory Layout
	HomeDir    = ".emr-launch"
	ConfigFile = "config.yaml"

	// Parameter store layout
	ProfilesPrefix       = "/emr_launch/emr_profiles"
	ConfigurationsPrefix = "/emr_launch/cluster_configurations"
	TaskTokensPrefix     = "/emr_launch/control_plane/task_tokens/emr_utilities"
	DefaultNamespace     = "default"
)
