// Where: internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

// Suffixes are joined with the EMR_LAUNCH prefix by envutil.HostEnvKey.
const (
	// Configuration file
	HostSuffixConfigPath = "CONFIG_PATH"
	HostSuffixConfigHome = "CONFIG_HOME"

	// Store
	HostSuffixStoreBackend = "STORE_BACKEND"
	HostSuffixStoreTable   = "STORE_TABLE"
	HostSuffixStoreBucket  = "STORE_BUCKET"
	HostSuffixStoreSeed    = "STORE_SEED"

	// Parameter layout
	HostSuffixProfilesPrefix       = "PROFILES_PREFIX"
	HostSuffixConfigurationsPrefix = "CONFIGURATIONS_PREFIX"
	HostSuffixTaskTokensPrefix     = "TASK_TOKENS_PREFIX"
	HostSuffixLogURITemplate       = "LOG_URI_TEMPLATE"

	// Logging
	HostSuffixLogLevel  = "LOG_LEVEL"
	HostSuffixLogFormat = "LOG_FORMAT"

	// Credentials used against a local endpoint override
	HostSuffixLocalAccessKey = "LOCAL_ACCESS_KEY"
	HostSuffixLocalSecretKey = "LOCAL_SECRET_KEY"
)

// Unprefixed variables owned by the AWS runtime.
const (
	EnvAWSRegion      = "AWS_REGION"
	EnvAWSEndpointURL = "AWS_ENDPOINT_URL"
	EnvLambdaHandler  = "_HANDLER"
)
