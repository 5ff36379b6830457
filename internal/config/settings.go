// Where: internal/config/settings.go
// What: Settings load helpers (YAML file, then environment overlay).
// Why: The CLI reads ~/.emr-launch/config.yaml; Lambda functions read only their environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru-code/emr-launch/internal/constants"
	"github.com/poruru-code/emr-launch/internal/envutil"
	"github.com/poruru-code/emr-launch/internal/meta"
	"gopkg.in/yaml.v3"
)

// Store backends understood by paramstore.Open.
const (
	BackendSSM      = "ssm"
	BackendDynamoDB = "dynamodb"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

const (
	DefaultStoreTable     = "emr_launch_parameters"
	DefaultLogURITemplate = "s3://{{ .LogsBucket }}/elasticmapreduce/{{ .ClusterName }}"
)

// Settings is the effective runtime configuration.
type Settings struct {
	Version        int               `yaml:"version"`
	Region         string            `yaml:"region,omitempty"`
	Endpoint       string            `yaml:"endpoint,omitempty"`
	Store          StoreSettings     `yaml:"store"`
	Parameters     ParameterSettings `yaml:"parameters"`
	LogURITemplate string            `yaml:"log_uri_template,omitempty"`
	Logging        LoggingSettings   `yaml:"logging"`
}

// StoreSettings selects where profiles, configurations, and task tokens live.
type StoreSettings struct {
	Backend string `yaml:"backend"`
	Table   string `yaml:"table,omitempty"`
	Bucket  string `yaml:"bucket,omitempty"`
	// Seed is a YAML/JSON file of key -> document used by the memory backend.
	Seed string `yaml:"seed,omitempty"`
}

// ParameterSettings holds the key prefixes under which records are stored.
type ParameterSettings struct {
	ProfilesPrefix       string `yaml:"profiles_prefix"`
	ConfigurationsPrefix string `yaml:"configurations_prefix"`
	TaskTokensPrefix     string `yaml:"task_tokens_prefix"`
}

type LoggingSettings struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Version: 1,
		Store: StoreSettings{
			Backend: BackendSSM,
			Table:   DefaultStoreTable,
		},
		Parameters: ParameterSettings{
			ProfilesPrefix:       meta.ProfilesPrefix,
			ConfigurationsPrefix: meta.ConfigurationsPrefix,
			TaskTokensPrefix:     meta.TaskTokensPrefix,
		},
		LogURITemplate: DefaultLogURITemplate,
		Logging:        LoggingSettings{Level: "info", Format: "json"},
	}
}

// ConfigPath returns the path to the settings file.
// Respects EMR_LAUNCH_CONFIG_PATH and EMR_LAUNCH_CONFIG_HOME.
func ConfigPath() (string, error) {
	if override := envutil.GetHostEnv(constants.HostSuffixConfigPath); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	if override := envutil.GetHostEnv(constants.HostSuffixConfigHome); override != "" {
		return filepath.Join(override, meta.ConfigFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, meta.HomeDir, meta.ConfigFile), nil
}

// LoadFile reads settings from path on top of the defaults.
// A missing file yields the defaults.
func LoadFile(path string) (Settings, error) {
	cfg := DefaultSettings()
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Settings{}, err
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes settings to path, creating parent directories.
func Save(path string, cfg Settings) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// Load resolves the settings file (path, or ConfigPath when empty),
// overlays the environment, and validates the result.
func Load(path string) (Settings, error) {
	if strings.TrimSpace(path) == "" {
		resolved, err := ConfigPath()
		if err != nil {
			return Settings{}, err
		}
		path = resolved
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Settings{}, err
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// FromEnv builds settings from the defaults and the environment only.
func FromEnv() (Settings, error) {
	cfg := DefaultSettings()
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays non-empty environment variables onto cfg.
func ApplyEnv(cfg *Settings) {
	overlay := func(target *string, value string) {
		if value != "" {
			*target = value
		}
	}
	overlay(&cfg.Region, strings.TrimSpace(os.Getenv(constants.EnvAWSRegion)))
	overlay(&cfg.Endpoint, strings.TrimSpace(os.Getenv(constants.EnvAWSEndpointURL)))
	overlay(&cfg.Store.Backend, envutil.GetHostEnv(constants.HostSuffixStoreBackend))
	overlay(&cfg.Store.Table, envutil.GetHostEnv(constants.HostSuffixStoreTable))
	overlay(&cfg.Store.Bucket, envutil.GetHostEnv(constants.HostSuffixStoreBucket))
	overlay(&cfg.Store.Seed, envutil.GetHostEnv(constants.HostSuffixStoreSeed))
	overlay(&cfg.Parameters.ProfilesPrefix, envutil.GetHostEnv(constants.HostSuffixProfilesPrefix))
	overlay(&cfg.Parameters.ConfigurationsPrefix, envutil.GetHostEnv(constants.HostSuffixConfigurationsPrefix))
	overlay(&cfg.Parameters.TaskTokensPrefix, envutil.GetHostEnv(constants.HostSuffixTaskTokensPrefix))
	overlay(&cfg.LogURITemplate, envutil.GetHostEnv(constants.HostSuffixLogURITemplate))
	overlay(&cfg.Logging.Level, envutil.GetHostEnv(constants.HostSuffixLogLevel))
	overlay(&cfg.Logging.Format, envutil.GetHostEnv(constants.HostSuffixLogFormat))
}

// Validate normalizes prefixes and checks backend-specific requirements.
func (s *Settings) Validate() error {
	s.Store.Backend = strings.ToLower(strings.TrimSpace(s.Store.Backend))
	switch s.Store.Backend {
	case "":
		s.Store.Backend = BackendSSM
	case BackendSSM, BackendMemory:
	case BackendDynamoDB:
		if strings.TrimSpace(s.Store.Table) == "" {
			return fmt.Errorf("store.table is required for the %s backend", BackendDynamoDB)
		}
	case BackendS3:
		if strings.TrimSpace(s.Store.Bucket) == "" {
			return fmt.Errorf("store.bucket is required for the %s backend", BackendS3)
		}
	default:
		return fmt.Errorf("unsupported store backend: %s", s.Store.Backend)
	}

	defaults := DefaultSettings().Parameters
	s.Parameters.ProfilesPrefix = normalizePrefix(s.Parameters.ProfilesPrefix, defaults.ProfilesPrefix)
	s.Parameters.ConfigurationsPrefix = normalizePrefix(s.Parameters.ConfigurationsPrefix, defaults.ConfigurationsPrefix)
	s.Parameters.TaskTokensPrefix = normalizePrefix(s.Parameters.TaskTokensPrefix, defaults.TaskTokensPrefix)
	if strings.TrimSpace(s.LogURITemplate) == "" {
		s.LogURITemplate = DefaultLogURITemplate
	}
	return nil
}

func normalizePrefix(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	value = strings.TrimRight(value, "/")
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	return value
}
